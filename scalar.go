package solana

import (
	"encoding/hex"
	"math/big"
)

// Scalar is an integer modulo L, the order of the edwards25519 base point.
// It has the same arithmetic shape as FieldElement but is a distinct type, so
// the two moduli cannot be mixed in one expression.
type Scalar struct {
	v *big.Int
}

// NewScalar reduces x modulo L. A nil x yields zero.
func NewScalar(x *big.Int) Scalar {
	if x == nil {
		return Scalar{}
	}
	return Scalar{v: new(big.Int).Mod(x, groupOrder)}
}

// ScalarFromUint64 returns n as a scalar
func ScalarFromUint64(n uint64) Scalar {
	return NewScalar(new(big.Int).SetUint64(n))
}

// ScalarFromBytes interprets b as a little-endian integer of any length and
// reduces it modulo L. This is how 64-byte SHA-512 outputs become scalars.
func ScalarFromBytes(b []byte) Scalar {
	return NewScalar(fromLittleEndian(b))
}

// ScalarFromCanonicalBytes decodes a 32-byte little-endian scalar, rejecting
// values that are not below L
func ScalarFromCanonicalBytes(b []byte) (Scalar, error) {
	if len(b) != 32 {
		return Scalar{}, ErrInvalidScalar.WithDetails("got %d bytes", len(b))
	}
	x := fromLittleEndian(b)
	if x.Cmp(groupOrder) >= 0 {
		return Scalar{}, ErrInvalidScalar
	}
	return Scalar{v: x}, nil
}

func (s Scalar) int() *big.Int {
	if s.v == nil {
		return bigZero
	}
	return s.v
}

func (s Scalar) Add(t Scalar) Scalar {
	r := new(big.Int).Add(s.int(), t.int())
	return Scalar{v: r.Mod(r, groupOrder)}
}

func (s Scalar) Sub(t Scalar) Scalar {
	r := new(big.Int).Sub(s.int(), t.int())
	return Scalar{v: r.Mod(r, groupOrder)}
}

func (s Scalar) Neg() Scalar {
	r := new(big.Int).Neg(s.int())
	return Scalar{v: r.Mod(r, groupOrder)}
}

func (s Scalar) Mul(t Scalar) Scalar {
	r := new(big.Int).Mul(s.int(), t.int())
	return Scalar{v: r.Mod(r, groupOrder)}
}

// Exp returns s^e mod L. e must be non-negative.
func (s Scalar) Exp(e *big.Int) Scalar {
	return Scalar{v: new(big.Int).Exp(s.int(), e, groupOrder)}
}

// Inv returns s^(L-2), the multiplicative inverse of s
func (s Scalar) Inv() (Scalar, error) {
	if s.IsZero() {
		return Scalar{}, ErrDivisionByZero
	}
	return s.Exp(groupOrderMinusTwo), nil
}

// Div returns s / t
func (s Scalar) Div(t Scalar) (Scalar, error) {
	inv, err := t.Inv()
	if err != nil {
		return Scalar{}, err
	}
	return s.Mul(inv), nil
}

func (s Scalar) Equal(t Scalar) bool {
	return s.int().Cmp(t.int()) == 0
}

func (s Scalar) IsZero() bool {
	return s.int().Sign() == 0
}

// Bytes returns the 32-byte little-endian encoding
func (s Scalar) Bytes() []byte {
	return toLittleEndian(s.int(), 32)
}

// BigInt returns a copy of the underlying integer
func (s Scalar) BigInt() *big.Int {
	return new(big.Int).Set(s.int())
}

func (s Scalar) String() string {
	return hex.EncodeToString(s.Bytes())
}
