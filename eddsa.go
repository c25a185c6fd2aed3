package solana

// Deterministic Ed25519 as specified by RFC 8032, section 5.1. No randomness
// is consumed: the nonce is derived from the key and the message, so the same
// key and message always produce the same signature.

// expandedKey holds what SHA-512(seed) yields
type expandedKey struct {
	a      Scalar
	prefix []byte
	public PublicKey
}

// expand hashes the seed, clamps the lower half into the signing scalar and
// keeps the upper half as the nonce prefix
func expand(k PrivateKey) expandedKey {
	h := hash512(k[:])

	var clamped [32]byte
	copy(clamped[:], h[:32])
	clamped[0] &= 248
	clamped[31] &= 127
	clamped[31] |= 64
	a := ScalarFromBytes(clamped[:])
	ZeroizeBytes(clamped[:])

	prefix := make([]byte, 32)
	copy(prefix, h[32:])
	ZeroizeBytes(h)

	var pub PublicKey
	copy(pub[:], ScalarBaseMult(a).Bytes())
	return expandedKey{a: a, prefix: prefix, public: pub}
}

// PublicKey derives the public key, encode(G * a)
func (k PrivateKey) PublicKey() PublicKey {
	e := expand(k)
	ZeroizeBytes(e.prefix)
	return e.public
}

// Sign produces the deterministic signature of msg
func (k PrivateKey) Sign(msg []byte) Signature {
	return Sign(k, msg)
}

// Sign computes
//
//	r = SHA-512(prefix || msg) mod L
//	R = G * r
//	h = SHA-512(encode(R) || A || msg) mod L
//	s = r + h*a mod L
//
// and returns encode(R) || LE(s).
func Sign(k PrivateKey, msg []byte) Signature {
	e := expand(k)
	defer ZeroizeBytes(e.prefix)

	r := ScalarFromBytes(hash512(e.prefix, msg))
	R := ScalarBaseMult(r).Encode()
	h := Challenge(R, e.public, msg)
	s := r.Add(h.Mul(e.a))

	var sig Signature
	copy(sig[:PointSize], R[:])
	copy(sig[PointSize:], s.Bytes())
	return sig
}

// Challenge computes SHA-512(R || A || msg) reduced modulo L. The order of the
// hash inputs is part of the wire contract with every other verifier.
func Challenge(commitment [PointSize]byte, pub PublicKey, msg []byte) Scalar {
	return ScalarFromBytes(hash512(commitment[:], pub[:], msg))
}

// Verify checks G*s == R + A*h. Malformed keys or signatures are reported in
// the malformed_input category; a well-formed signature that does not verify
// returns ErrSignatureVerificationFailed.
func Verify(pub PublicKey, msg []byte, sig Signature) error {
	A, err := DecodePoint(pub[:])
	if err != nil {
		return ErrInvalidPublicKey.WithCause(err)
	}

	Rb := sig.R()
	R, err := DecodePoint(Rb[:])
	if err != nil {
		return ErrInvalidSignature.WithDetails("commitment").WithCause(err)
	}

	Sb := sig.S()
	s, err := ScalarFromCanonicalBytes(Sb[:])
	if err != nil {
		return ErrInvalidSignature.WithDetails("response").WithCause(err)
	}

	h := Challenge(Rb, pub, msg)
	if !ScalarBaseMult(s).Equal(R.Add(A.ScalarMult(h))) {
		return ErrSignatureVerificationFailed
	}
	return nil
}

// Verify reports whether sig is a valid signature of msg by pk
func (pk PublicKey) Verify(msg []byte, sig Signature) bool {
	return Verify(pk, msg, sig) == nil
}
