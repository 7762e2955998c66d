package gf256

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd(t *testing.T) {
	assert.Equal(t, byte(0x99), Add(0x53, 0xCA))
	assert.Equal(t, byte(0x00), Add(0xAB, 0xAB), "addition is its own inverse")
}

func TestMul(t *testing.T) {
	assert.Equal(t, byte(0x01), Mul(0x53, 0xCA))
	assert.Equal(t, byte(0x00), Mul(0x7F, 0x00), "zero absorbs")
	assert.Equal(t, byte(0xAB), Mul(0xAB, 0x01), "one is the identity")
}

func TestMulCommutativity(t *testing.T) {
	for a := 0; a < 256; a += 7 {
		for b := 0; b < 256; b += 11 {
			assert.Equal(t, Mul(byte(a), byte(b)), Mul(byte(b), byte(a)))
		}
	}
}

func TestMulAssociativityAndDistributivity(t *testing.T) {
	a, b, c := byte(0x53), byte(0xCA), byte(0x7B)
	assert.Equal(t, Mul(Mul(a, b), c), Mul(a, Mul(b, c)))
	assert.Equal(t, Mul(a, Add(b, c)), Add(Mul(a, b), Mul(a, c)))
}

func TestInvAllNonZero(t *testing.T) {
	for i := 1; i < 256; i++ {
		a := byte(i)
		inv := Inv(a)
		require.Equal(t, byte(0x01), Mul(a, inv), "a=0x%02X inv=0x%02X", a, inv)
	}
}

func TestInvKnownValues(t *testing.T) {
	cases := []struct{ a, inv byte }{
		{0x53, 0xCA},
		{0x7B, 0x06},
		{0xA4, 0x8F},
		{0xE1, 0x0D},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.inv, Inv(tc.a), "inverse of 0x%02X", tc.a)
	}
}

func TestInvZero(t *testing.T) {
	assert.Equal(t, byte(0x00), Inv(0), "inv(0) is 0 by contract")
}

func TestDiv(t *testing.T) {
	assert.Equal(t, byte(0x01), Div(0x53, 0x53))
	assert.Equal(t, byte(0x00), Div(0x00, 0x53))
	assert.Equal(t, byte(0x00), Div(0x53, 0x00), "division by zero yields 0, no panic")
}

func TestPow(t *testing.T) {
	base := byte(0x03)
	assert.Equal(t, byte(0x01), Pow(base, 0))
	assert.Equal(t, base, Pow(base, 1))
	assert.Equal(t, Mul(Mul(base, base), base), Pow(base, 3))
	assert.Equal(t, Inv(base), Pow(base, 254))
}
