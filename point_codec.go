package solana

// Encode compresses p into 32 bytes: y in little-endian with the least
// significant bit of x copied into bit 255 (RFC 8032, section 5.1.2).
func (p Point) Encode() [PointSize]byte {
	var out [PointSize]byte
	copy(out[:], p.y.Bytes())
	if p.x.IsOdd() {
		out[31] |= 0x80
	}
	return out
}

// Bytes returns the compressed encoding as a slice
func (p Point) Bytes() []byte {
	b := p.Encode()
	return b[:]
}

// DecodePoint decompresses a 32-byte encoding (RFC 8032, section 5.1.3).
// The input is treated as untrusted: every failure is returned as an error in
// the malformed_input category and the function never panics.
func DecodePoint(b []byte) (Point, error) {
	if len(b) != PointSize {
		return Point{}, ErrInvalidPointLength.WithDetails("got %d bytes", len(b))
	}

	var enc [PointSize]byte
	copy(enc[:], b)
	sign := enc[31]>>7 == 1
	enc[31] &= 0x7f

	yInt := fromLittleEndian(enc[:])
	if yInt.Cmp(fieldPrime) >= 0 {
		return Point{}, ErrNonCanonicalPoint
	}
	y := FieldElement{v: yInt}

	x, err := recoverX(y, sign)
	if err != nil {
		return Point{}, err
	}
	return NewPoint(x, y)
}

// IsOnCurveEncoding reports whether b decodes to a curve point. Program
// derived addresses are required to fail this check.
func IsOnCurveEncoding(b []byte) bool {
	_, err := DecodePoint(b)
	return err == nil
}

// xSquared solves the curve equation for x^2 = (y^2 - 1) / (d*y^2 + 1). A
// zero denominator is a malformed encoding rather than an arithmetic fault.
func xSquared(y, d FieldElement) (FieldElement, error) {
	yy := y.Square()
	xx, err := yy.Sub(fieldOne).Div(d.Mul(yy).Add(fieldOne))
	if err != nil {
		return FieldElement{}, WrapError(err, ErrorCategoryMalformedInput, ErrDivisionByZero.Code, ErrDivisionByZero.Message)
	}
	return xx, nil
}

// recoverX solves x^2 = (y^2 - 1) / (d*y^2 + 1) and picks the root whose low
// bit matches sign.
func recoverX(y FieldElement, sign bool) (FieldElement, error) {
	xx, err := xSquared(y, curveD)
	if err != nil {
		return FieldElement{}, err
	}

	x := xx.Exp(sqrtCandidateExp)
	if !x.Square().Equal(xx) {
		x = x.Mul(sqrtMinusOne)
		if !x.Square().Equal(xx) {
			return FieldElement{}, ErrNoSquareRoot
		}
	}

	if x.IsZero() && sign {
		return FieldElement{}, ErrInvalidSignBit
	}
	if x.IsOdd() != sign {
		x = x.Neg()
	}
	return x, nil
}
