package solana

import (
	"github.com/canopy-network/canopy/lib/solana/borsh"
)

// MaxCompactU16 is the largest length a compact-u16 can carry
const MaxCompactU16 = 0xffff

// EncodeCompactU16 encodes n in 7-bit groups, least significant first, with
// the high bit of each byte marking a continuation
func EncodeCompactU16(n int) ([]byte, error) {
	if n < 0 || n > MaxCompactU16 {
		return nil, ErrCompactU16Range.WithDetails("%d", n)
	}
	out := make([]byte, 0, 3)
	for {
		b := byte(n & 0x7f)
		n >>= 7
		if n == 0 {
			return append(out, b), nil
		}
		out = append(out, b|0x80)
	}
}

// DecodeCompactU16 reads a compact-u16 from the front of b and returns the
// value and the number of bytes it occupied
func DecodeCompactU16(b []byte) (int, int, error) {
	r := borsh.NewReader(b)
	v, err := CompactU16.Decode(r)
	if err != nil {
		return 0, 0, err
	}
	return v, r.Offset(), nil
}

// CompactU16 is the variable-length length prefix used throughout the
// transaction format. Decoding rejects encodings longer than three bytes,
// values above 0xffff, and non-minimal encodings.
var CompactU16 borsh.Codec[int] = compactU16Codec{}

type compactU16Codec struct{}

func (compactU16Codec) Encode(w *borsh.Writer, n int) error {
	b, err := EncodeCompactU16(n)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

func (compactU16Codec) Decode(r *borsh.Reader) (int, error) {
	v := 0
	for i := 0; i < 3; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return 0, ErrInvalidCompactU16.WithCause(err)
		}
		if i == 2 && b > 0x03 {
			return 0, ErrInvalidCompactU16.WithCause(r.Fail(ErrCompactU16Range))
		}
		v |= int(b&0x7f) << (7 * i)
		if b&0x80 == 0 {
			if i > 0 && b == 0 {
				return 0, ErrInvalidCompactU16.WithDetails("non-minimal encoding at offset %d", r.Offset()-1)
			}
			return v, nil
		}
	}
	// unreachable: the third byte is at most 0x03 and carries no continuation
	return v, nil
}

// ShortVec is a compact-u16 element count followed by the elements
func ShortVec[T any](c borsh.Codec[T]) borsh.Codec[[]T] {
	return shortVecCodec[T]{elem: c}
}

type shortVecCodec[T any] struct {
	elem borsh.Codec[T]
}

func (s shortVecCodec[T]) Encode(w *borsh.Writer, v []T) error {
	if err := CompactU16.Encode(w, len(v)); err != nil {
		return err
	}
	for i := range v {
		if err := s.elem.Encode(w, v[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s shortVecCodec[T]) Decode(r *borsh.Reader) ([]T, error) {
	n, err := CompactU16.Decode(r)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, min(n, r.Remaining()))
	for i := 0; i < n; i++ {
		v, err := s.elem.Decode(r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
