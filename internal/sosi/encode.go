// Package sosi encodes projected points and assembles SOSI documents.
package sosi

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
)

// Accuracy is the number of fractional digits kept by the fixed-point
// encoding. The header unit and the area decoding both derive from it.
const Accuracy = 3

// Unit returns the ..ENHET value matching accuracy, e.g. "0.001" for 3.
func Unit(accuracy int) string {
	return strconv.FormatFloat(math.Pow10(-accuracy), 'f', -1, 64)
}

// EncodeFixedPoint rounds v to accuracy fractional digits and drops the
// decimal separator, giving v scaled by 10^accuracy as a digit string:
// 12.345 -> "12345", -1 -> "-1000", 0 -> "0". Rounding is done on the exact
// binary value, ties away from zero (0.0625 -> "63"). Negative zero encodes
// as "0". NaN and infinities are returned as formatted by strconv.
func EncodeFixedPoint(v float64, accuracy int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	r := new(big.Rat).SetFloat64(v)
	r.Mul(r, new(big.Rat).SetInt64(pow10(accuracy)))

	num := new(big.Int).Abs(r.Num())
	den := r.Denom()
	q, rem := new(big.Int).QuoRem(num, den, new(big.Int))
	if rem.Lsh(rem, 1).Cmp(den) >= 0 {
		q.Add(q, big.NewInt(1))
	}

	if q.Sign() == 0 {
		return "0"
	}
	if v < 0 {
		return "-" + q.String()
	}
	return q.String()
}

// DecodeFixedPoint returns the integer part of an encoded value, truncated
// toward zero: "12345" -> 12, "-1000" -> -1.
func DecodeFixedPoint(s string, accuracy int) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("decode %q: %w", s, err)
	}
	return n / pow10(accuracy), nil
}

func pow10(n int) int64 {
	p := int64(1)
	for i := 0; i < n; i++ {
		p *= 10
	}
	return p
}
