package borsh

import (
	"encoding/binary"
	"math"
	"math/big"
	"unicode/utf8"
)

// Primitive codecs
var (
	U8  Codec[uint8]  = u8Codec{}
	U16 Codec[uint16] = u16Codec{}
	U32 Codec[uint32] = u32Codec{}
	U64 Codec[uint64] = u64Codec{}

	I8  Codec[int8]  = i8Codec{}
	I16 Codec[int16] = i16Codec{}
	I32 Codec[int32] = i32Codec{}
	I64 Codec[int64] = i64Codec{}

	// U128 and I128 carry *big.Int values and reject anything outside the
	// 128-bit range before writing.
	U128 Codec[*big.Int] = u128Codec{}
	I128 Codec[*big.Int] = i128Codec{}

	F32 Codec[float32] = f32Codec{}
	F64 Codec[float64] = f64Codec{}

	Bool Codec[bool] = boolCodec{}

	// String is a u32 byte length followed by UTF-8 bytes.
	String Codec[string] = stringCodec{}

	// Bytes is a u32 length followed by raw bytes, the layout of Vec<u8>.
	Bytes Codec[[]byte] = bytesCodec{}
)

var (
	two128      = new(big.Int).Lsh(big.NewInt(1), 128)
	two127      = new(big.Int).Lsh(big.NewInt(1), 127)
	minusTwo127 = new(big.Int).Neg(two127)
)

type u8Codec struct{}

func (u8Codec) Encode(w *Writer, v uint8) error { return w.WriteByte(v) }
func (u8Codec) Decode(r *Reader) (uint8, error) { return r.ReadByte() }

type u16Codec struct{}

func (u16Codec) Encode(w *Writer, v uint16) error {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
	return nil
}

func (u16Codec) Decode(r *Reader) (uint16, error) {
	b, err := r.Read(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

type u32Codec struct{}

func (u32Codec) Encode(w *Writer, v uint32) error {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
	return nil
}

func (u32Codec) Decode(r *Reader) (uint32, error) {
	b, err := r.Read(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

type u64Codec struct{}

func (u64Codec) Encode(w *Writer, v uint64) error {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
	return nil
}

func (u64Codec) Decode(r *Reader) (uint64, error) {
	b, err := r.Read(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

type i8Codec struct{}

func (i8Codec) Encode(w *Writer, v int8) error { return w.WriteByte(uint8(v)) }

func (i8Codec) Decode(r *Reader) (int8, error) {
	b, err := r.ReadByte()
	return int8(b), err
}

type i16Codec struct{}

func (i16Codec) Encode(w *Writer, v int16) error { return U16.Encode(w, uint16(v)) }

func (i16Codec) Decode(r *Reader) (int16, error) {
	v, err := U16.Decode(r)
	return int16(v), err
}

type i32Codec struct{}

func (i32Codec) Encode(w *Writer, v int32) error { return U32.Encode(w, uint32(v)) }

func (i32Codec) Decode(r *Reader) (int32, error) {
	v, err := U32.Decode(r)
	return int32(v), err
}

type i64Codec struct{}

func (i64Codec) Encode(w *Writer, v int64) error { return U64.Encode(w, uint64(v)) }

func (i64Codec) Decode(r *Reader) (int64, error) {
	v, err := U64.Decode(r)
	return int64(v), err
}

type u128Codec struct{}

func (u128Codec) Encode(w *Writer, v *big.Int) error {
	if v == nil {
		return ErrNilValue
	}
	if v.Sign() < 0 || v.BitLen() > 128 {
		return ErrOutOfRange
	}
	_, err := w.Write(littleEndian128(v))
	return err
}

func (u128Codec) Decode(r *Reader) (*big.Int, error) {
	b, err := r.Read(16)
	if err != nil {
		return nil, err
	}
	return fromLittleEndian(b), nil
}

type i128Codec struct{}

// Encode writes v in two's complement
func (i128Codec) Encode(w *Writer, v *big.Int) error {
	if v == nil {
		return ErrNilValue
	}
	if v.Cmp(minusTwo127) < 0 || v.Cmp(two127) >= 0 {
		return ErrOutOfRange
	}
	u := new(big.Int).Set(v)
	if u.Sign() < 0 {
		u.Add(u, two128)
	}
	_, err := w.Write(littleEndian128(u))
	return err
}

func (i128Codec) Decode(r *Reader) (*big.Int, error) {
	b, err := r.Read(16)
	if err != nil {
		return nil, err
	}
	v := fromLittleEndian(b)
	if v.Cmp(two127) >= 0 {
		v.Sub(v, two128)
	}
	return v, nil
}

type f32Codec struct{}

func (f32Codec) Encode(w *Writer, v float32) error { return U32.Encode(w, math.Float32bits(v)) }

func (f32Codec) Decode(r *Reader) (float32, error) {
	v, err := U32.Decode(r)
	return math.Float32frombits(v), err
}

type f64Codec struct{}

func (f64Codec) Encode(w *Writer, v float64) error { return U64.Encode(w, math.Float64bits(v)) }

func (f64Codec) Decode(r *Reader) (float64, error) {
	v, err := U64.Decode(r)
	return math.Float64frombits(v), err
}

type boolCodec struct{}

func (boolCodec) Encode(w *Writer, v bool) error {
	if v {
		return w.WriteByte(1)
	}
	return w.WriteByte(0)
}

// Decode accepts only 0 and 1. Any other byte is a corrupt or non-canonical
// encoding and is rejected rather than read as true.
func (boolCodec) Decode(r *Reader) (bool, error) {
	b, err := r.ReadByte()
	if err != nil {
		return false, err
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	r.off--
	return false, r.fail(ErrInvalidBool)
}

type stringCodec struct{}

func (stringCodec) Encode(w *Writer, v string) error {
	if err := writeLength(w, len(v)); err != nil {
		return err
	}
	w.buf = append(w.buf, v...)
	return nil
}

func (stringCodec) Decode(r *Reader) (string, error) {
	n, err := readLength(r)
	if err != nil {
		return "", err
	}
	b, err := r.Read(n)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", r.fail(ErrInvalidUTF8)
	}
	return string(b), nil
}

type bytesCodec struct{}

func (bytesCodec) Encode(w *Writer, v []byte) error {
	if err := writeLength(w, len(v)); err != nil {
		return err
	}
	_, err := w.Write(v)
	return err
}

func (bytesCodec) Decode(r *Reader) ([]byte, error) {
	n, err := readLength(r)
	if err != nil {
		return nil, err
	}
	b, err := r.Read(n)
	if err != nil {
		return nil, err
	}
	return append([]byte{}, b...), nil
}

// writeLength writes the u32 length prefix of a variable-size container
func writeLength(w *Writer, n int) error {
	if uint64(n) > math.MaxUint32 {
		return ErrLengthOverflow
	}
	return U32.Encode(w, uint32(n))
}

func readLength(r *Reader) (int, error) {
	n, err := U32.Decode(r)
	if err != nil {
		return 0, err
	}
	if uint64(n) > uint64(math.MaxInt) {
		return 0, r.fail(ErrLengthOverflow)
	}
	return int(n), nil
}

func littleEndian128(v *big.Int) []byte {
	out := make([]byte, 16)
	be := v.Bytes()
	for i := range be {
		out[i] = be[len(be)-1-i]
	}
	return out
}

func fromLittleEndian(b []byte) *big.Int {
	be := make([]byte, len(b))
	for i := range b {
		be[len(b)-1-i] = b[i]
	}
	return new(big.Int).SetBytes(be)
}
