package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func draw(seed int64, stream int) []uint64 {
	rng := Derive(seed, stream)
	out := make([]uint64, 8)
	for i := range out {
		out[i] = rng.Uint64()
	}
	return out
}

func TestDeriveIsDeterministic(t *testing.T) {
	assert.Equal(t, draw(99, 3), draw(99, 3))
	assert.Equal(t, New(99).Uint64(), Derive(99, 0).Uint64())
}

func TestDeriveSeparatesStreams(t *testing.T) {
	assert.NotEqual(t, draw(99, 0), draw(99, 1))
	assert.NotEqual(t, draw(1, 0), draw(2, 0))
}
