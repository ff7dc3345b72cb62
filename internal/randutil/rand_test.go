package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsDeterministic(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Int64(), b.Int64())
	}
}

func TestSeed(t *testing.T) {
	assert.Equal(t, int64(7), Seed(7))
	assert.NotZero(t, Seed(0))
}

func TestDerive(t *testing.T) {
	first := Derive(99, 4)
	second := Derive(99, 4)

	assert.Len(t, first, 4)
	assert.Equal(t, first, second)
	assert.NotEqual(t, first[0], first[1])
	assert.NotEqual(t, Derive(100, 4), first)
}
