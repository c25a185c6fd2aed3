package solana

import (
	"crypto/rand"
	"crypto/sha512"
	"math/big"
)

// fromLittleEndian interprets b as an unsigned little-endian integer
func fromLittleEndian(b []byte) *big.Int {
	be := make([]byte, len(b))
	for i := range b {
		be[len(b)-1-i] = b[i]
	}
	return new(big.Int).SetBytes(be)
}

// toLittleEndian writes a non-negative x into size little-endian bytes.
// x must fit; every caller passes a value already reduced below 2^(8*size).
func toLittleEndian(x *big.Int, size int) []byte {
	out := make([]byte, size)
	be := x.Bytes()
	for i := range be {
		out[i] = be[len(be)-1-i]
	}
	return out
}

// hash512 is SHA-512 over the concatenation of parts
func hash512(parts ...[]byte) []byte {
	h := sha512.New()
	for _, p := range parts {
		h.Write(p)
	}
	return h.Sum(nil)
}

// SecureRandom generates cryptographically secure random bytes
func SecureRandom(size int) ([]byte, error) {
	b := make([]byte, size)
	_, err := rand.Read(b)
	return b, err
}

// SecureCompare performs constant-time comparison of byte slices
func SecureCompare(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}

	var result byte
	for i := 0; i < len(a); i++ {
		result |= a[i] ^ b[i]
	}

	return result == 0
}

// ZeroizeBytes clears a byte slice holding secret material
func ZeroizeBytes(data []byte) {
	for i := range data {
		data[i] = 0
	}
}
