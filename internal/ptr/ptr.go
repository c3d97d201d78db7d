// Package ptr provides pointer helpers for optional task fields and patches.
package ptr

// To returns a pointer to the given value.
func To[T any](v T) *T {
	return &v
}

// Copy returns a pointer to a copy of *p, or nil when p is nil. Tasks handed
// out of the store use it so callers never alias stored optional fields.
func Copy[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Deref returns *p, or def when p is nil.
func Deref[T any](p *T, def T) T {
	if p != nil {
		return *p
	}
	return def
}
