package sosi

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeFixedPoint(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{12.345, "12345"},
		{-1, "-1000"},
		{5, "5000"},
		{0, "0"},
		{100.0, "100000"},
		{0.5, "500"},
		{-0.25, "-250"},
		{-0.0001, "0"},
		{7033412.6789, "7033412679"},
		{271234.0004, "271234000"},
		{0.0625, "63"},
		{271234.0625, "271234063"},
		{-0.0625, "-63"},
		{1.1875, "1188"},
		{0.0005, "1"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, EncodeFixedPoint(tt.in, Accuracy), "encode %v", tt.in)
	}
}

func TestEncodeFixedPoint_NonFinite(t *testing.T) {
	assert.Equal(t, "NaN", EncodeFixedPoint(math.NaN(), Accuracy))
	assert.Equal(t, "+Inf", EncodeFixedPoint(math.Inf(1), Accuracy))
}

func TestEncodeFixedPoint_Accuracy(t *testing.T) {
	assert.Equal(t, "1235", EncodeFixedPoint(12.346, 2))
	assert.Equal(t, "12", EncodeFixedPoint(12.345, 0))
}

func TestDecodeFixedPoint(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"12345", 12},
		{"-1000", -1},
		{"200000", 200},
		{"7033412679", 7033412},
		{"500", 0},
		{"0", 0},
	}

	for _, tt := range tests {
		got, err := DecodeFixedPoint(tt.in, Accuracy)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "decode %s", tt.in)
	}

	_, err := DecodeFixedPoint("12.5", Accuracy)
	assert.Error(t, err)
}

func TestDecodeFixedPoint_RoundTrip(t *testing.T) {
	for _, v := range []float64{12.345, 1, 271234.5, 7033412.999} {
		got, err := DecodeFixedPoint(EncodeFixedPoint(v, Accuracy), Accuracy)
		require.NoError(t, err)
		assert.Equal(t, int64(v), got)
	}
}

func TestUnit(t *testing.T) {
	assert.Equal(t, "0.001", Unit(Accuracy))
	assert.Equal(t, "0.01", Unit(2))
	assert.Equal(t, "1", Unit(0))
}
