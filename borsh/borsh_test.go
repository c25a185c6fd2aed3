package borsh

import (
	"encoding/hex"
	"errors"
	"math"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	require.NoError(t, err)
	return b
}

func TestIntegerLayout(t *testing.T) {
	assert.Equal(t, mustHex(t, "ff"), MustMarshal(U8, 255))
	assert.Equal(t, mustHex(t, "80"), MustMarshal(I8, math.MinInt8))
	assert.Equal(t, mustHex(t, "ffff"), MustMarshal(U16, math.MaxUint16))
	assert.Equal(t, mustHex(t, "0080"), MustMarshal(I16, math.MinInt16))
	assert.Equal(t, mustHex(t, "ffffffff"), MustMarshal(U32, math.MaxUint32))
	assert.Equal(t, mustHex(t, "00000080"), MustMarshal(I32, math.MinInt32))
	assert.Equal(t, mustHex(t, "ffffffffffffffff"), MustMarshal(U64, math.MaxUint64))
	assert.Equal(t, mustHex(t, "0000000000000080"), MustMarshal(I64, math.MinInt64))

	v, err := Unmarshal(I32, mustHex(t, "00000080"))
	require.NoError(t, err)
	assert.Equal(t, int32(math.MinInt32), v)
}

func roundTrip[T any](t *testing.T, c Codec[T], v T) {
	t.Helper()
	enc, err := Marshal(c, v)
	require.NoError(t, err)
	dec, err := Unmarshal(c, enc)
	require.NoError(t, err)
	assert.Equal(t, v, dec)
}

func TestIntegerBoundsRoundTrip(t *testing.T) {
	roundTrip(t, U8, 0)
	roundTrip(t, U8, math.MaxUint8)
	roundTrip(t, U16, 0)
	roundTrip(t, U16, math.MaxUint16)
	roundTrip(t, U32, 0)
	roundTrip(t, U32, math.MaxUint32)
	roundTrip(t, U64, 0)
	roundTrip(t, U64, math.MaxUint64)
	roundTrip(t, I8, math.MinInt8)
	roundTrip(t, I8, math.MaxInt8)
	roundTrip(t, I16, math.MinInt16)
	roundTrip(t, I16, math.MaxInt16)
	roundTrip(t, I32, math.MinInt32)
	roundTrip(t, I32, math.MaxInt32)
	roundTrip(t, I64, math.MinInt64)
	roundTrip(t, I64, math.MaxInt64)
}

func TestU128(t *testing.T) {
	top := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	enc, err := Marshal(U128, top)
	require.NoError(t, err)
	assert.Equal(t, mustHex(t, strings.Repeat("ff", 16)), enc)

	dec, err := Unmarshal(U128, enc)
	require.NoError(t, err)
	assert.Equal(t, 0, top.Cmp(dec))

	_, err = Marshal(U128, new(big.Int).Add(top, big.NewInt(1)))
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = Marshal(U128, big.NewInt(-1))
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = Marshal(U128, nil)
	assert.ErrorIs(t, err, ErrNilValue)
}

func TestI128(t *testing.T) {
	bottom := new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
	enc, err := Marshal(I128, bottom)
	require.NoError(t, err)
	assert.Equal(t, mustHex(t, strings.Repeat("00", 15)+"80"), enc)

	dec, err := Unmarshal(I128, enc)
	require.NoError(t, err)
	assert.Equal(t, 0, bottom.Cmp(dec))

	enc, err = Marshal(I128, big.NewInt(-1))
	require.NoError(t, err)
	assert.Equal(t, mustHex(t, strings.Repeat("ff", 16)), enc)

	dec, err = Unmarshal(I128, enc)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), dec.Int64())

	_, err = Marshal(I128, new(big.Int).Sub(bottom, big.NewInt(1)))
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = Marshal(I128, new(big.Int).Neg(bottom))
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestFloatLayout(t *testing.T) {
	assert.Equal(t, mustHex(t, "0000003f"), MustMarshal(F32, 0.5))
	assert.Equal(t, mustHex(t, "000000000000e0bf"), MustMarshal(F64, -0.5))

	f, err := Unmarshal(F64, mustHex(t, "000000000000e0bf"))
	require.NoError(t, err)
	assert.Equal(t, -0.5, f)
}

func TestBoolRejectsNonCanonicalBytes(t *testing.T) {
	assert.Equal(t, []byte{1}, MustMarshal(Bool, true))
	assert.Equal(t, []byte{0}, MustMarshal(Bool, false))

	for _, b := range []byte{2, 0x7f, 0xff} {
		_, err := Unmarshal(Bool, []byte{b})
		assert.ErrorIs(t, err, ErrInvalidBool, "byte %#x", b)
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, mustHex(t, "05000000 68656c6c6f"), MustMarshal(String, "hello"))

	s, err := Unmarshal(String, mustHex(t, "05000000 68656c6c6f"))
	require.NoError(t, err)
	assert.Equal(t, "hello", s)

	_, err = Unmarshal(String, mustHex(t, "02000000 c328"))
	assert.ErrorIs(t, err, ErrInvalidUTF8)

	assert.Equal(t, mustHex(t, "00000000"), MustMarshal(String, ""))
	roundTrip(t, String, "")
}

func TestArrays(t *testing.T) {
	fixed := Array(I16, 3)
	assert.Equal(t, mustHex(t, "010002000300"), MustMarshal(fixed, []int16{1, 2, 3}))

	_, err := Marshal(fixed, []int16{1, 2})
	assert.ErrorIs(t, err, ErrLengthMismatch)

	variable := Vec(I16)
	enc := MustMarshal(variable, []int16{1, 1})
	assert.Equal(t, mustHex(t, "02000000 0100 0100"), enc)

	dec, err := Unmarshal(variable, enc)
	require.NoError(t, err)
	assert.Equal(t, []int16{1, 1}, dec)
}

func TestOption(t *testing.T) {
	c := Option(U8)
	one := uint8(1)
	assert.Equal(t, mustHex(t, "0101"), MustMarshal(c, &one))
	assert.Equal(t, mustHex(t, "00"), MustMarshal(c, nil))

	v, err := Unmarshal(c, mustHex(t, "00"))
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = Unmarshal(c, mustHex(t, "0101"))
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, uint8(1), *v)

	_, err = Unmarshal(c, mustHex(t, "0201"))
	assert.ErrorIs(t, err, ErrInvalidOptionTag)
}

type record struct {
	Amount *big.Int
	Name   string
	Delta  int64
	Extra  *uint16
}

var recordCodec = Struct(
	FieldOf("amount", U128, func(r *record) **big.Int { return &r.Amount }),
	FieldOf("name", String, func(r *record) *string { return &r.Name }),
	FieldOf("delta", I64, func(r *record) *int64 { return &r.Delta }),
	FieldOf("extra", Option(U16), func(r *record) **uint16 { return &r.Extra }),
)

func TestStruct(t *testing.T) {
	extra := uint16(13)
	in := record{Amount: big.NewInt(123), Name: "hello", Delta: 1400, Extra: &extra}

	want := mustHex(t, "7b"+strings.Repeat("00", 15)+
		"05000000 68656c6c6f"+
		"7805000000000000"+
		"01 0d00")
	enc, err := Marshal(recordCodec, in)
	require.NoError(t, err)
	assert.Equal(t, want, enc)

	out, err := Unmarshal(recordCodec, enc)
	require.NoError(t, err)
	assert.Equal(t, 0, in.Amount.Cmp(out.Amount))
	assert.Equal(t, in.Name, out.Name)
	assert.Equal(t, in.Delta, out.Delta)
	require.NotNil(t, out.Extra)
	assert.Equal(t, extra, *out.Extra)
}

type point2 struct {
	X int32
	Y int32
}

type polygon struct {
	Label  string
	Points []point2
	Center *point2
}

var point2Codec = Struct(
	FieldOf("x", I32, func(p *point2) *int32 { return &p.X }),
	FieldOf("y", I32, func(p *point2) *int32 { return &p.Y }),
)

var polygonCodec = Struct(
	FieldOf("label", String, func(p *polygon) *string { return &p.Label }),
	FieldOf("points", Vec(point2Codec), func(p *polygon) *[]point2 { return &p.Points }),
	FieldOf("center", Option(point2Codec), func(p *polygon) **point2 { return &p.Center }),
)

func TestNestedStruct(t *testing.T) {
	in := polygon{
		Label:  "tri",
		Points: []point2{{0, 0}, {4, 0}, {-1, 3}},
		Center: &point2{1, 1},
	}
	want := mustHex(t, "03000000 747269"+
		"03000000 00000000 00000000 04000000 00000000 ffffffff 03000000"+
		"01 01000000 01000000")
	enc, err := Marshal(polygonCodec, in)
	require.NoError(t, err)
	assert.Equal(t, want, enc)

	out, err := Unmarshal(polygonCodec, enc)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	in.Points, in.Center = []point2{}, nil
	roundTrip(t, polygonCodec, in)
}

func TestStructFieldErrorsNameTheField(t *testing.T) {
	_, err := Marshal(recordCodec, record{Name: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNilValue)
	assert.Contains(t, err.Error(), "amount")

	enc := MustMarshal(recordCodec, record{Amount: big.NewInt(1), Name: "x"})
	_, err = Unmarshal(recordCodec, enc[:len(enc)-3])
	assert.ErrorIs(t, err, ErrUnexpectedEOF)
	assert.Contains(t, err.Error(), "delta")
}

func TestMap(t *testing.T) {
	c := Map(String, String)
	enc := MustMarshal(c, map[string]string{"k": "v"})
	assert.Equal(t, mustHex(t, "01000000 01000000 6b 01000000 76"), enc)

	dec, err := Unmarshal(c, enc)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"k": "v"}, dec)
}

func TestMapEncodingIsOrderIndependent(t *testing.T) {
	c := Map(U32, Bool)
	a := map[uint32]bool{}
	b := map[uint32]bool{}
	for i := uint32(0); i < 64; i++ {
		a[i] = i%2 == 0
	}
	for i := uint32(64); i > 0; i-- {
		b[i-1] = (i-1)%2 == 0
	}
	assert.Equal(t, MustMarshal(c, a), MustMarshal(c, b))
}

func TestMapRejectsDuplicateKeys(t *testing.T) {
	c := Map(U8, U8)
	_, err := Unmarshal(c, mustHex(t, "02000000 0101 0102"))
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestSet(t *testing.T) {
	c := Set(U8)
	assert.Equal(t, mustHex(t, "03000000 010203"), MustMarshal(c, []uint8{3, 1, 2}))
	assert.Equal(t, MustMarshal(c, []uint8{1, 2, 3}), MustMarshal(c, []uint8{2, 3, 1}))

	dec, err := Unmarshal(c, mustHex(t, "03000000 010203"))
	require.NoError(t, err)
	assert.Equal(t, []uint8{1, 2, 3}, dec)

	words := Set(String)
	dec2, err := Unmarshal(words, MustMarshal(words, []string{"b", "a"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, dec2)

	_, err = Marshal(c, []uint8{1, 1})
	assert.ErrorIs(t, err, ErrDuplicateKey)

	_, err = Unmarshal(c, mustHex(t, "02000000 0505"))
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestTruncatedInputReportsOffset(t *testing.T) {
	_, err := Unmarshal(U64, []byte{1, 2, 3})
	require.ErrorIs(t, err, ErrUnexpectedEOF)

	var de *DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, 0, de.Offset)

	_, err = Unmarshal(Vec(U32), mustHex(t, "02000000 01000000 0100"))
	require.True(t, errors.As(err, &de))
	assert.Equal(t, 8, de.Offset)
}

func TestHugeLengthPrefixFailsCleanly(t *testing.T) {
	_, err := Unmarshal(Vec(U64), mustHex(t, "ffffffff 0000"))
	assert.ErrorIs(t, err, ErrUnexpectedEOF)

	_, err = Unmarshal(Bytes, mustHex(t, "ffffffff 00"))
	assert.ErrorIs(t, err, ErrUnexpectedEOF)

	_, err = Unmarshal(Set(U8), mustHex(t, "ffffff7f"))
	assert.ErrorIs(t, err, ErrUnexpectedEOF)
}

func TestTrailingBytes(t *testing.T) {
	_, err := Unmarshal(U16, []byte{1, 0, 0})
	assert.ErrorIs(t, err, ErrTrailingBytes)
}

type color uint8

func TestEnum(t *testing.T) {
	c := Enum[color](3)
	assert.Equal(t, []byte{2}, MustMarshal(c, color(2)))

	_, err := Marshal(c, color(3))
	assert.ErrorIs(t, err, ErrUnknownVariant)

	_, err = Unmarshal(c, []byte{7})
	assert.ErrorIs(t, err, ErrUnknownVariant)
}

type shape interface{ sides() uint8 }

type square struct{ Side uint32 }
type circle struct{ Radius uint64 }

func (square) sides() uint8 { return 4 }
func (circle) sides() uint8 { return 0 }

func TestUnion(t *testing.T) {
	c := Union(func(s shape) uint8 {
		if _, ok := s.(circle); ok {
			return 1
		}
		return 0
	}, map[uint8]Codec[shape]{
		0: As[shape](Struct(FieldOf("side", U32, func(s *square) *uint32 { return &s.Side }))),
		1: As[shape](Struct(FieldOf("radius", U64, func(c *circle) *uint64 { return &c.Radius }))),
	})

	enc := MustMarshal[shape](c, circle{Radius: 9})
	assert.Equal(t, mustHex(t, "01 0900000000000000"), enc)

	dec, err := Unmarshal(c, enc)
	require.NoError(t, err)
	assert.Equal(t, circle{Radius: 9}, dec)

	dec, err = Unmarshal(c, mustHex(t, "00 04000000"))
	require.NoError(t, err)
	assert.Equal(t, uint8(4), dec.sides())

	_, err = Unmarshal(c, mustHex(t, "05"))
	assert.ErrorIs(t, err, ErrUnknownVariant)
}

func TestFixedBytes(t *testing.T) {
	c := FixedBytes(4)
	assert.Equal(t, []byte{1, 2, 3, 4}, MustMarshal(c, []byte{1, 2, 3, 4}))

	_, err := Marshal(c, []byte{1})
	assert.ErrorIs(t, err, ErrLengthMismatch)
}
