package solana

import (
	"fmt"
)

// Point is an affine point on edwards25519. Every Point obtained from this
// package lies on the curve: constructors validate, and the group operations
// are closed. Points are values and are never modified in place.
type Point struct {
	x, y FieldElement
}

// NewPoint validates (x, y) against the curve equation
func NewPoint(x, y FieldElement) (Point, error) {
	p := Point{x: x, y: y}
	if !p.IsOnCurve() {
		return Point{}, ErrPointNotOnCurve
	}
	return p, nil
}

// X and Y return the affine coordinates. The zero Point value is not a valid
// point, so callers should only use Points from constructors or group
// operations.
func (p Point) X() FieldElement { return p.x }

// Y returns the y-coordinate
func (p Point) Y() FieldElement { return p.y }

// IsOnCurve checks -x^2 + y^2 == 1 + d*x^2*y^2
func (p Point) IsOnCurve() bool {
	xx := p.x.Square()
	yy := p.y.Square()
	lhs := yy.Sub(xx)
	rhs := fieldOne.Add(curveD.Mul(xx).Mul(yy))
	return lhs.Equal(rhs)
}

// Add uses the complete addition law for a = -1:
//
//	x3 = (x1*y2 + x2*y1) / (1 + d*x1*x2*y1*y2)
//	y3 = (y1*y2 + x1*x2) / (1 - d*x1*x2*y1*y2)
//
// Both denominators are non-zero for any two points on the curve, so there
// are no special cases for doubling or the identity.
func (p Point) Add(q Point) Point {
	t := curveD.Mul(p.x).Mul(q.x).Mul(p.y).Mul(q.y)
	x := mustDiv(p.x.Mul(q.y).Add(q.x.Mul(p.y)), fieldOne.Add(t))
	y := mustDiv(p.y.Mul(q.y).Add(p.x.Mul(q.x)), fieldOne.Sub(t))
	return Point{x: x, y: y}
}

func (p Point) Double() Point {
	return p.Add(p)
}

// Negate returns (-x, y)
func (p Point) Negate() Point {
	return Point{x: p.x.Neg(), y: p.y}
}

func (p Point) Sub(q Point) Point {
	return p.Add(q.Negate())
}

// ScalarMult returns k*p by double-and-add, most significant bit first, over
// all 256 bits of the scalar encoding. The loop length does not depend on k.
func (p Point) ScalarMult(k Scalar) Point {
	kb := k.Bytes()
	r := IdentityPoint()
	for i := 255; i >= 0; i-- {
		r = r.Double()
		if (kb[i/8]>>(uint(i)%8))&1 == 1 {
			r = r.Add(p)
		}
	}
	return r
}

// ScalarBaseMult returns k*G
func ScalarBaseMult(k Scalar) Point {
	return basePoint.ScalarMult(k)
}

// Equal compares affine coordinates
func (p Point) Equal(q Point) bool {
	return p.x.Equal(q.x) && p.y.Equal(q.y)
}

func (p Point) IsIdentity() bool {
	return p.x.IsZero() && p.y.Equal(fieldOne)
}

func (p Point) String() string {
	return fmt.Sprintf("(%s, %s)", p.x, p.y)
}
