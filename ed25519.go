package solana

import (
	"fmt"

	"filippo.io/edwards25519"
)

// Conversions between this package's reference arithmetic and
// filippo.io/edwards25519. Both sides agree on the RFC 8032 encodings, so the
// conversions go through bytes.

// Edwards25519 returns p as an edwards25519.Point
func (p Point) Edwards25519() *edwards25519.Point {
	q, err := new(edwards25519.Point).SetBytes(p.Bytes())
	if err != nil {
		// Unreachable: every Point is on the curve and canonically encoded.
		panic(fmt.Sprintf("solana: point %s rejected by edwards25519: %v", p, err))
	}
	return q
}

// PointFromEdwards25519 converts an edwards25519.Point
func PointFromEdwards25519(q *edwards25519.Point) (Point, error) {
	if q == nil {
		return Point{}, ErrPointNotOnCurve.WithDetails("nil point")
	}
	return DecodePoint(q.Bytes())
}

// Edwards25519 returns s as an edwards25519.Scalar
func (s Scalar) Edwards25519() *edwards25519.Scalar {
	out, err := edwards25519.NewScalar().SetCanonicalBytes(s.Bytes())
	if err != nil {
		// Unreachable: Scalars are always reduced below L.
		panic(fmt.Sprintf("solana: scalar %s rejected by edwards25519: %v", s, err))
	}
	return out
}

// ScalarFromEdwards25519 converts an edwards25519.Scalar
func ScalarFromEdwards25519(s *edwards25519.Scalar) Scalar {
	if s == nil {
		return Scalar{}
	}
	return ScalarFromBytes(s.Bytes())
}
