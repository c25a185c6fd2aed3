package borsh

import (
	"bytes"
	"fmt"
	"slices"
)

// Option encodes a nil pointer as 0x00 and a present value as 0x01 followed by
// the value
func Option[T any](c Codec[T]) Codec[*T] {
	return optionCodec[T]{elem: c}
}

type optionCodec[T any] struct {
	elem Codec[T]
}

func (o optionCodec[T]) Encode(w *Writer, v *T) error {
	if v == nil {
		return w.WriteByte(0)
	}
	if err := w.WriteByte(1); err != nil {
		return err
	}
	return o.elem.Encode(w, *v)
}

func (o optionCodec[T]) Decode(r *Reader) (*T, error) {
	tag, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	switch tag {
	case 0:
		return nil, nil
	case 1:
		v, err := o.elem.Decode(r)
		if err != nil {
			return nil, err
		}
		return &v, nil
	}
	r.off--
	return nil, r.fail(ErrInvalidOptionTag)
}

// Vec is a u32 element count followed by the elements
func Vec[T any](c Codec[T]) Codec[[]T] {
	return vecCodec[T]{elem: c}
}

type vecCodec[T any] struct {
	elem Codec[T]
}

func (c vecCodec[T]) Encode(w *Writer, v []T) error {
	if err := writeLength(w, len(v)); err != nil {
		return err
	}
	return encodeAll(w, c.elem, v)
}

func (c vecCodec[T]) Decode(r *Reader) ([]T, error) {
	n, err := readLength(r)
	if err != nil {
		return nil, err
	}
	return decodeN(r, c.elem, n)
}

// FixedBytes is exactly n raw bytes with no length prefix
func FixedBytes(n int) Codec[[]byte] {
	return fixedBytesCodec(n)
}

type fixedBytesCodec int

func (n fixedBytesCodec) Encode(w *Writer, v []byte) error {
	if len(v) != int(n) {
		return fmt.Errorf("%w: have %d bytes, want %d", ErrLengthMismatch, len(v), int(n))
	}
	_, err := w.Write(v)
	return err
}

func (n fixedBytesCodec) Decode(r *Reader) ([]byte, error) {
	b, err := r.Read(int(n))
	if err != nil {
		return nil, err
	}
	return append([]byte{}, b...), nil
}

// Array is exactly n elements with no length prefix
func Array[T any](c Codec[T], n int) Codec[[]T] {
	return arrayCodec[T]{elem: c, n: n}
}

type arrayCodec[T any] struct {
	elem Codec[T]
	n    int
}

func (c arrayCodec[T]) Encode(w *Writer, v []T) error {
	if len(v) != c.n {
		return fmt.Errorf("%w: have %d elements, want %d", ErrLengthMismatch, len(v), c.n)
	}
	return encodeAll(w, c.elem, v)
}

func (c arrayCodec[T]) Decode(r *Reader) ([]T, error) {
	return decodeN(r, c.elem, c.n)
}

func encodeAll[T any](w *Writer, c Codec[T], v []T) error {
	for i := range v {
		if err := c.Encode(w, v[i]); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

// decodeN never preallocates more slots than there are bytes left, so a
// hostile length prefix fails with ErrUnexpectedEOF instead of exhausting
// memory.
func decodeN[T any](r *Reader, c Codec[T], n int) ([]T, error) {
	out := make([]T, 0, min(n, r.Remaining()))
	for i := 0; i < n; i++ {
		v, err := c.Decode(r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Map encodes a u32 entry count followed by key/value pairs sorted by the
// encoded bytes of the key. Decoding rejects repeated keys.
func Map[K comparable, V any](kc Codec[K], vc Codec[V]) Codec[map[K]V] {
	return mapCodec[K, V]{key: kc, value: vc}
}

type mapCodec[K comparable, V any] struct {
	key   Codec[K]
	value Codec[V]
}

type encodedEntry[K any] struct {
	enc []byte
	key K
}

func (c mapCodec[K, V]) Encode(w *Writer, m map[K]V) error {
	if err := writeLength(w, len(m)); err != nil {
		return err
	}
	entries := make([]encodedEntry[K], 0, len(m))
	for k := range m {
		enc, err := Marshal(c.key, k)
		if err != nil {
			return fmt.Errorf("map key: %w", err)
		}
		entries = append(entries, encodedEntry[K]{enc: enc, key: k})
	}
	slices.SortFunc(entries, func(a, b encodedEntry[K]) int {
		return bytes.Compare(a.enc, b.enc)
	})
	for _, e := range entries {
		if _, err := w.Write(e.enc); err != nil {
			return err
		}
		if err := c.value.Encode(w, m[e.key]); err != nil {
			return fmt.Errorf("map value: %w", err)
		}
	}
	return nil
}

func (c mapCodec[K, V]) Decode(r *Reader) (map[K]V, error) {
	n, err := readLength(r)
	if err != nil {
		return nil, err
	}
	out := make(map[K]V, min(n, r.Remaining()))
	for i := 0; i < n; i++ {
		start := r.off
		k, err := c.key.Decode(r)
		if err != nil {
			return nil, err
		}
		if _, dup := out[k]; dup {
			r.off = start
			return nil, r.fail(ErrDuplicateKey)
		}
		v, err := c.value.Decode(r)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

// Set encodes a u32 element count followed by the elements sorted by their
// encoded bytes. Two elements with the same encoding are the same element, so
// duplicates are rejected in both directions.
func Set[T any](c Codec[T]) Codec[[]T] {
	return setCodec[T]{elem: c}
}

type setCodec[T any] struct {
	elem Codec[T]
}

func (c setCodec[T]) Encode(w *Writer, v []T) error {
	if err := writeLength(w, len(v)); err != nil {
		return err
	}
	encoded := make([][]byte, 0, len(v))
	for i := range v {
		enc, err := Marshal(c.elem, v[i])
		if err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
		encoded = append(encoded, enc)
	}
	slices.SortFunc(encoded, bytes.Compare)
	for i, enc := range encoded {
		if i > 0 && bytes.Equal(enc, encoded[i-1]) {
			return ErrDuplicateKey
		}
		if _, err := w.Write(enc); err != nil {
			return err
		}
	}
	return nil
}

func (c setCodec[T]) Decode(r *Reader) ([]T, error) {
	n, err := readLength(r)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, min(n, r.Remaining()))
	out := make([]T, 0, min(n, r.Remaining()))
	for i := 0; i < n; i++ {
		start := r.off
		v, err := c.elem.Decode(r)
		if err != nil {
			return nil, err
		}
		key := string(r.span(start, r.off))
		if _, dup := seen[key]; dup {
			r.off = start
			return nil, r.fail(ErrDuplicateKey)
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out, nil
}

// Field binds one struct field to its codec. Fields are created with FieldOf.
type Field[S any] interface {
	Name() string
	encode(w *Writer, s *S) error
	decode(r *Reader, s *S) error
}

// FieldOf binds a field of S, reached through ref, to codec c
func FieldOf[S, F any](name string, c Codec[F], ref func(*S) *F) Field[S] {
	return boundField[S, F]{name: name, codec: c, ref: ref}
}

type boundField[S, F any] struct {
	name  string
	codec Codec[F]
	ref   func(*S) *F
}

func (f boundField[S, F]) Name() string { return f.name }

func (f boundField[S, F]) encode(w *Writer, s *S) error {
	return f.codec.Encode(w, *f.ref(s))
}

func (f boundField[S, F]) decode(r *Reader, s *S) error {
	v, err := f.codec.Decode(r)
	if err != nil {
		return err
	}
	*f.ref(s) = v
	return nil
}

// Struct encodes the fields in the order given, with no framing between them
func Struct[S any](fields ...Field[S]) Codec[S] {
	return structCodec[S]{fields: fields}
}

type structCodec[S any] struct {
	fields []Field[S]
}

func (c structCodec[S]) Encode(w *Writer, v S) error {
	for _, f := range c.fields {
		if err := f.encode(w, &v); err != nil {
			return fmt.Errorf("field %s: %w", f.Name(), err)
		}
	}
	return nil
}

func (c structCodec[S]) Decode(r *Reader) (S, error) {
	var v S
	for _, f := range c.fields {
		if err := f.decode(r, &v); err != nil {
			var zero S
			return zero, fmt.Errorf("field %s: %w", f.Name(), err)
		}
	}
	return v, nil
}

// Enum is a one-byte discriminant for a C-like enum with the given number of
// variants, numbered from zero
func Enum[T ~uint8](variants int) Codec[T] {
	return enumCodec[T]{variants: variants}
}

type enumCodec[T ~uint8] struct {
	variants int
}

func (c enumCodec[T]) Encode(w *Writer, v T) error {
	if int(v) >= c.variants {
		return fmt.Errorf("%w: %d of %d", ErrUnknownVariant, v, c.variants)
	}
	return w.WriteByte(uint8(v))
}

func (c enumCodec[T]) Decode(r *Reader) (T, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, err
	}
	if int(b) >= c.variants {
		r.off--
		return 0, r.fail(ErrUnknownVariant)
	}
	return T(b), nil
}

// Union is a one-byte tag followed by the payload of the variant it selects.
// tagOf reports which variant a value is.
func Union[T any](tagOf func(T) uint8, variants map[uint8]Codec[T]) Codec[T] {
	return unionCodec[T]{tagOf: tagOf, variants: variants}
}

type unionCodec[T any] struct {
	tagOf    func(T) uint8
	variants map[uint8]Codec[T]
}

func (c unionCodec[T]) Encode(w *Writer, v T) error {
	tag := c.tagOf(v)
	vc, ok := c.variants[tag]
	if !ok {
		return fmt.Errorf("%w: tag %d", ErrUnknownVariant, tag)
	}
	if err := w.WriteByte(tag); err != nil {
		return err
	}
	return vc.Encode(w, v)
}

func (c unionCodec[T]) Decode(r *Reader) (T, error) {
	var zero T
	tag, err := r.ReadByte()
	if err != nil {
		return zero, err
	}
	vc, ok := c.variants[tag]
	if !ok {
		r.off--
		return zero, r.fail(ErrUnknownVariant)
	}
	return vc.Decode(r)
}

// As adapts a codec for the concrete type V to an interface type T that V
// implements. Union variants over an interface are built with it.
func As[T, V any](c Codec[V]) Codec[T] {
	return asCodec[T, V]{inner: c}
}

type asCodec[T, V any] struct {
	inner Codec[V]
}

func (c asCodec[T, V]) Encode(w *Writer, v T) error {
	inner, ok := any(v).(V)
	if !ok {
		return fmt.Errorf("%w: %T", ErrTypeMismatch, v)
	}
	return c.inner.Encode(w, inner)
}

func (c asCodec[T, V]) Decode(r *Reader) (T, error) {
	v, err := c.inner.Decode(r)
	if err != nil {
		var zero T
		return zero, err
	}
	out, ok := any(v).(T)
	if !ok {
		var zero T
		return zero, r.fail(ErrTypeMismatch)
	}
	return out, nil
}
