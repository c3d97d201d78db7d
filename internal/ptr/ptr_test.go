package ptr

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCopy(t *testing.T) {
	assert.Nil(t, Copy[time.Time](nil))

	orig := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	p := &orig
	c := Copy(p)
	assert.Equal(t, orig, *c)
	assert.NotSame(t, p, c)

	*c = c.Add(time.Hour)
	assert.Equal(t, time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC), orig, "original untouched")
}

func TestDeref(t *testing.T) {
	assert.Equal(t, "fallback", Deref(nil, "fallback"))
	assert.Equal(t, "value", Deref(To("value"), "fallback"))
}
