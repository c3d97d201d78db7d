package a

import "time"

type store struct {
	now func() time.Time
}

func newStore() *store {
	return &store{now: time.Now}
}

func (s *store) created() time.Time {
	return s.now()
}

func bad() {
	_ = time.Now() // want "time.Now\\(\\) called directly; read the time from an injected clock"
}

func alsoBad() time.Time {
	return time.Now().UTC() // want "time.Now\\(\\) called directly; read the time from an injected clock"
}

func nolintGeneral() {
	//nolint
	_ = time.Now()
}

func nolintSpecific() {
	_ = time.Now() //nolint:clocknow // row metadata
}

func nolintList() {
	_ = time.Now() //nolint:errcheck,clocknow
}

func nolintOtherLinter() {
	_ = time.Now() //nolint:otherlinter // want "time.Now\\(\\) called directly; read the time from an injected clock"
}
