package solana

import (
	"math/big"
)

// FieldElement is an element of GF(p), p = 2^255 - 19, the coordinate field
// of edwards25519. Values are immutable and always reduced into [0, p); the
// zero value is the field zero.
type FieldElement struct {
	v *big.Int
}

// NewFieldElement reduces x modulo p. A nil x yields zero.
func NewFieldElement(x *big.Int) FieldElement {
	if x == nil {
		return FieldElement{}
	}
	return FieldElement{v: new(big.Int).Mod(x, fieldPrime)}
}

// FieldElementFromUint64 returns n as a field element
func FieldElementFromUint64(n uint64) FieldElement {
	return NewFieldElement(new(big.Int).SetUint64(n))
}

// FieldElementFromBytes interprets b as a little-endian integer and reduces it
// modulo p. Any length is accepted.
func FieldElementFromBytes(b []byte) FieldElement {
	return NewFieldElement(fromLittleEndian(b))
}

func (a FieldElement) int() *big.Int {
	if a.v == nil {
		return bigZero
	}
	return a.v
}

func (a FieldElement) Add(b FieldElement) FieldElement {
	r := new(big.Int).Add(a.int(), b.int())
	return FieldElement{v: r.Mod(r, fieldPrime)}
}

func (a FieldElement) Sub(b FieldElement) FieldElement {
	r := new(big.Int).Sub(a.int(), b.int())
	return FieldElement{v: r.Mod(r, fieldPrime)}
}

func (a FieldElement) Neg() FieldElement {
	r := new(big.Int).Neg(a.int())
	return FieldElement{v: r.Mod(r, fieldPrime)}
}

func (a FieldElement) Mul(b FieldElement) FieldElement {
	r := new(big.Int).Mul(a.int(), b.int())
	return FieldElement{v: r.Mod(r, fieldPrime)}
}

func (a FieldElement) Square() FieldElement {
	return a.Mul(a)
}

// Exp returns a^e mod p by repeated squaring. e must be non-negative.
func (a FieldElement) Exp(e *big.Int) FieldElement {
	return FieldElement{v: new(big.Int).Exp(a.int(), e, fieldPrime)}
}

// Inv returns a^(p-2), the multiplicative inverse of a
func (a FieldElement) Inv() (FieldElement, error) {
	if a.IsZero() {
		return FieldElement{}, ErrDivisionByZero
	}
	return a.Exp(fieldPrimeMinusTwo), nil
}

// Div returns a / b
func (a FieldElement) Div(b FieldElement) (FieldElement, error) {
	inv, err := b.Inv()
	if err != nil {
		return FieldElement{}, err
	}
	return a.Mul(inv), nil
}

func (a FieldElement) Equal(b FieldElement) bool {
	return a.int().Cmp(b.int()) == 0
}

func (a FieldElement) IsZero() bool {
	return a.int().Sign() == 0
}

// IsOdd reports the least significant bit, used as the sign of x in point encodings
func (a FieldElement) IsOdd() bool {
	return a.int().Bit(0) == 1
}

// Bytes returns the 32-byte little-endian encoding
func (a FieldElement) Bytes() []byte {
	return toLittleEndian(a.int(), 32)
}

// BigInt returns a copy of the underlying integer
func (a FieldElement) BigInt() *big.Int {
	return new(big.Int).Set(a.int())
}

func (a FieldElement) String() string {
	return a.int().String()
}
