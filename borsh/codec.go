package borsh

import (
	"errors"
	"fmt"
)

// Common errors returned by the borsh package
var (
	ErrUnexpectedEOF    = errors.New("borsh: unexpected end of input")
	ErrTrailingBytes    = errors.New("borsh: trailing bytes after value")
	ErrOutOfRange       = errors.New("borsh: value out of range for type")
	ErrLengthOverflow   = errors.New("borsh: length does not fit in u32")
	ErrLengthMismatch   = errors.New("borsh: fixed array length mismatch")
	ErrInvalidBool      = errors.New("borsh: invalid bool byte")
	ErrInvalidOptionTag = errors.New("borsh: invalid option tag")
	ErrInvalidUTF8      = errors.New("borsh: string is not valid UTF-8")
	ErrUnknownVariant   = errors.New("borsh: unknown enum variant")
	ErrDuplicateKey     = errors.New("borsh: duplicate map key or set element")
	ErrNilValue         = errors.New("borsh: nil value")
	ErrTypeMismatch     = errors.New("borsh: value does not match variant type")
)

// DecodeError reports where in the input decoding failed
type DecodeError struct {
	// Offset is the reader position when the failure was detected.
	Offset int

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("borsh: decode failed at offset %d: %v", e.Offset, e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Codec encodes and decodes values of one schema node. Composite codecs are
// built by nesting other codecs.
type Codec[T any] interface {
	Encode(w *Writer, v T) error
	Decode(r *Reader) (T, error)
}

// Writer accumulates encoded bytes
type Writer struct {
	buf []byte
}

// NewWriter returns an empty writer
func NewWriter() *Writer {
	return &Writer{}
}

// Write appends raw bytes
func (w *Writer) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	return len(p), nil
}

// WriteByte appends one byte
func (w *Writer) WriteByte(c byte) error {
	w.buf = append(w.buf, c)
	return nil
}

// Bytes returns the accumulated encoding
func (w *Writer) Bytes() []byte {
	return w.buf
}

func (w *Writer) Len() int {
	return len(w.buf)
}

// Reader is a cursor over an encoded byte slice
type Reader struct {
	data []byte
	off  int
}

// NewReader returns a reader positioned at the start of data
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Read consumes exactly n bytes. The returned slice aliases the input.
func (r *Reader) Read(n int) ([]byte, error) {
	if n < 0 || n > len(r.data)-r.off {
		return nil, r.fail(ErrUnexpectedEOF)
	}
	out := r.data[r.off : r.off+n]
	r.off += n
	return out, nil
}

// ReadByte consumes one byte
func (r *Reader) ReadByte() (byte, error) {
	if r.off >= len(r.data) {
		return 0, r.fail(ErrUnexpectedEOF)
	}
	c := r.data[r.off]
	r.off++
	return c, nil
}

// Remaining is the number of unread bytes
func (r *Reader) Remaining() int {
	return len(r.data) - r.off
}

// Offset is the number of bytes consumed so far
func (r *Reader) Offset() int {
	return r.off
}

// Fail wraps err in a *DecodeError at the current offset. Codecs defined
// outside this package use it to report schema violations.
func (r *Reader) Fail(err error) error {
	return r.fail(err)
}

func (r *Reader) fail(err error) error {
	var de *DecodeError
	if errors.As(err, &de) {
		return err
	}
	return &DecodeError{Offset: r.off, Err: err}
}

// span returns the bytes consumed between two offsets
func (r *Reader) span(from, to int) []byte {
	return r.data[from:to]
}

// Marshal encodes v with c
func Marshal[T any](c Codec[T], v T) ([]byte, error) {
	w := NewWriter()
	if err := c.Encode(w, v); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// MustMarshal is Marshal for values known to be encodable
func MustMarshal[T any](c Codec[T], v T) []byte {
	b, err := Marshal(c, v)
	if err != nil {
		panic(err)
	}
	return b
}

// Unmarshal decodes a single value that must span all of data
func Unmarshal[T any](c Codec[T], data []byte) (T, error) {
	r := NewReader(data)
	v, err := c.Decode(r)
	if err != nil {
		var zero T
		return zero, err
	}
	if r.Remaining() != 0 {
		var zero T
		return zero, r.fail(ErrTrailingBytes)
	}
	return v, nil
}
