package fixed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromInt(t *testing.T) {
	assert.Equal(t, One, FromInt(1))
	assert.Equal(t, -One, FromInt(-1))
	assert.Equal(t, int32(42), FromInt(42).Round())
	assert.Equal(t, int32(-42), FromInt(-42).Round())
}

func TestFromFloat(t *testing.T) {
	assert.Equal(t, One, FromFloat(1))
	assert.Equal(t, One/2, FromFloat(0.5))
	assert.InDelta(t, 0.25, FromFloat(0.25).Float(), 1.0/65536)
	assert.InDelta(t, -0.1, FromFloat(-0.1).Float(), 1.0/65536)
}

func TestMul(t *testing.T) {
	assert.Equal(t, FromInt(6), FromInt(2).Mul(FromInt(3)))
	assert.Equal(t, FromInt(-6), FromInt(2).Mul(FromInt(-3)))
	assert.Equal(t, One/4, (One / 2).Mul(One/2))

	// large magnitudes use a 64-bit intermediate
	assert.Equal(t, FromInt(30000), FromInt(30000).Mul(One))
}

func TestRound(t *testing.T) {
	assert.Equal(t, int32(1), FromFloat(0.5).Round())
	assert.Equal(t, int32(0), FromFloat(0.49).Round())
	assert.Equal(t, int32(-1), FromFloat(-0.5).Round())
	assert.Equal(t, int32(0), FromFloat(-0.49).Round())
	assert.Equal(t, int32(2), FromFloat(1.7).Round())
}

func TestTrunc(t *testing.T) {
	assert.Equal(t, int32(1), FromFloat(1.9).Trunc())
	assert.Equal(t, int32(-1), FromFloat(-1.9).Trunc())
	assert.Equal(t, int32(0), FromFloat(0.9).Trunc())
}
