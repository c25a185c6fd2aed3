package solana

import (
	"math/big"
)

// Curve parameters for edwards25519, the twisted Edwards curve
//
//	-x^2 + y^2 = 1 + d*x^2*y^2  over GF(2^255 - 19)
//
// used by Ed25519 and therefore by every Solana account key.
const (
	// ScalarSize is the size of an encoded scalar in bytes.
	ScalarSize = 32

	// PointSize is the size of a compressed point in bytes.
	PointSize = 32
)

var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)

	// fieldPrime is p = 2^255 - 19.
	fieldPrime = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 255), big.NewInt(19))

	// groupOrder is L = 2^252 + 27742317777372353535851937790883648493.
	groupOrder = new(big.Int).Add(new(big.Int).Lsh(bigOne, 252), mustParseBigInt("27742317777372353535851937790883648493"))

	fieldPrimeMinusTwo = new(big.Int).Sub(fieldPrime, big.NewInt(2))
	groupOrderMinusTwo = new(big.Int).Sub(groupOrder, big.NewInt(2))

	// sqrtCandidateExp is (p+3)/8, the exponent producing a square root candidate.
	sqrtCandidateExp = new(big.Int).Rsh(new(big.Int).Add(fieldPrime, big.NewInt(3)), 3)

	// curveD is d = -121665/121666.
	curveD = mustDiv(FieldElementFromUint64(121665).Neg(), FieldElementFromUint64(121666))

	// sqrtMinusOne is 2^((p-1)/4), a square root of -1.
	sqrtMinusOne = FieldElementFromUint64(2).Exp(new(big.Int).Rsh(new(big.Int).Sub(fieldPrime, bigOne), 2))

	fieldOne = FieldElementFromUint64(1)

	// basePoint is G, the point with y = 4/5 and even x.
	basePoint = mustBasePoint()
)

// FieldPrime returns a copy of p
func FieldPrime() *big.Int {
	return new(big.Int).Set(fieldPrime)
}

// GroupOrder returns a copy of L
func GroupOrder() *big.Int {
	return new(big.Int).Set(groupOrder)
}

// CurveD returns the curve constant d
func CurveD() FieldElement {
	return curveD
}

// BasePoint returns the generator G
func BasePoint() Point {
	return basePoint
}

// IdentityPoint returns the neutral element (0, 1)
func IdentityPoint() Point {
	return Point{x: FieldElement{}, y: fieldOne}
}

func mustParseBigInt(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("solana: invalid integer constant " + s)
	}
	return n
}

// mustDiv divides where a zero denominator is an invariant violation: the
// group law on validated points never produces one.
func mustDiv(a, b FieldElement) FieldElement {
	q, err := a.Div(b)
	if err != nil {
		panic(err)
	}
	return q
}

func mustBasePoint() Point {
	y := mustDiv(FieldElementFromUint64(4), FieldElementFromUint64(5))
	x, err := recoverX(y, false)
	if err != nil {
		panic(err)
	}
	return Point{x: x, y: y}
}
