package solana

import (
	"github.com/btcsuite/btcd/btcutil/base58"
)

// Key and signature sizes
const (
	// PrivateKeySize is the size of an Ed25519 seed in bytes.
	PrivateKeySize = 32

	// PublicKeySize is the size of a compressed public key in bytes.
	PublicKeySize = 32

	// SignatureSize is the size of R || s in bytes.
	SignatureSize = 64

	// KeypairSize is the size of seed || public key, the layout of Solana
	// keypair files and keypair strings.
	KeypairSize = 64

	// HashSize is the size of a blockhash in bytes.
	HashSize = 32
)

// PrivateKey is a 32-byte Ed25519 seed
type PrivateKey [PrivateKeySize]byte

// PublicKey is a 32-byte compressed curve point. It is also the Solana
// account address; program derived addresses share the type but are
// deliberately not valid points.
type PublicKey [PublicKeySize]byte

// Signature is the 64-byte encoding R || s
type Signature [SignatureSize]byte

// Hash is a 32-byte blockhash
type Hash [HashSize]byte

// GeneratePrivateKey draws a new seed from crypto/rand
func GeneratePrivateKey() (PrivateKey, error) {
	var k PrivateKey
	b, err := SecureRandom(PrivateKeySize)
	if err != nil {
		return k, err
	}
	copy(k[:], b)
	ZeroizeBytes(b)
	return k, nil
}

// PrivateKeyFromBase58 decodes a base58 encoded 32-byte seed
func PrivateKeyFromBase58(s string) (PrivateKey, error) {
	var k PrivateKey
	b, err := decodeBase58(s, PrivateKeySize)
	if err != nil {
		return k, err
	}
	copy(k[:], b)
	return k, nil
}

// PrivateKeyFromWIF decodes a base58 keypair string (seed || public key) and
// checks that the public half belongs to the seed
func PrivateKeyFromWIF(s string) (PrivateKey, error) {
	var k PrivateKey
	b, err := decodeBase58(s, KeypairSize)
	if err != nil {
		return k, err
	}
	copy(k[:], b[:PrivateKeySize])
	pub := k.PublicKey()
	if !SecureCompare(pub[:], b[PrivateKeySize:]) {
		return PrivateKey{}, ErrKeypairMismatch
	}
	return k, nil
}

// Base58 returns the seed in base58. It is deliberately not named String so
// that formatting a key with %v does not leak it.
func (k PrivateKey) Base58() string {
	return base58.Encode(k[:])
}

// Keypair returns seed || public key
func (k PrivateKey) Keypair() [KeypairSize]byte {
	var out [KeypairSize]byte
	pub := k.PublicKey()
	copy(out[:PrivateKeySize], k[:])
	copy(out[PrivateKeySize:], pub[:])
	return out
}

// WIF returns the base58 encoded keypair
func (k PrivateKey) WIF() string {
	kp := k.Keypair()
	defer ZeroizeBytes(kp[:])
	return base58.Encode(kp[:])
}

// PublicKeyFromBase58 decodes a base58 address
func PublicKeyFromBase58(s string) (PublicKey, error) {
	var pk PublicKey
	b, err := decodeBase58(s, PublicKeySize)
	if err != nil {
		return pk, err
	}
	copy(pk[:], b)
	return pk, nil
}

// MustPublicKeyFromBase58 is for well-known program ids
func MustPublicKeyFromBase58(s string) PublicKey {
	pk, err := PublicKeyFromBase58(s)
	if err != nil {
		panic(err)
	}
	return pk
}

func (pk PublicKey) String() string {
	return base58.Encode(pk[:])
}

func (pk PublicKey) Bytes() []byte {
	return pk[:]
}

func (pk PublicKey) IsZero() bool {
	return pk == PublicKey{}
}

// Point decodes the key as a curve point
func (pk PublicKey) Point() (Point, error) {
	return DecodePoint(pk[:])
}

// IsOnCurve reports whether the address is a valid Ed25519 public key
func (pk PublicKey) IsOnCurve() bool {
	return IsOnCurveEncoding(pk[:])
}

func (pk PublicKey) MarshalText() ([]byte, error) {
	return []byte(pk.String()), nil
}

func (pk *PublicKey) UnmarshalText(text []byte) error {
	v, err := PublicKeyFromBase58(string(text))
	if err != nil {
		return err
	}
	*pk = v
	return nil
}

// SignatureFromBase58 decodes a base58 signature
func SignatureFromBase58(s string) (Signature, error) {
	var sig Signature
	b, err := decodeBase58(s, SignatureSize)
	if err != nil {
		return sig, err
	}
	copy(sig[:], b)
	return sig, nil
}

func (sig Signature) String() string {
	return base58.Encode(sig[:])
}

// R returns the encoded commitment point
func (sig Signature) R() [PointSize]byte {
	var r [PointSize]byte
	copy(r[:], sig[:PointSize])
	return r
}

// S returns the little-endian response scalar bytes
func (sig Signature) S() [ScalarSize]byte {
	var s [ScalarSize]byte
	copy(s[:], sig[PointSize:])
	return s
}

// IsZero reports an unfilled signature slot
func (sig Signature) IsZero() bool {
	return sig == Signature{}
}

func (sig Signature) MarshalText() ([]byte, error) {
	return []byte(sig.String()), nil
}

func (sig *Signature) UnmarshalText(text []byte) error {
	v, err := SignatureFromBase58(string(text))
	if err != nil {
		return err
	}
	*sig = v
	return nil
}

// HashFromBase58 decodes a base58 blockhash
func HashFromBase58(s string) (Hash, error) {
	var h Hash
	b, err := decodeBase58(s, HashSize)
	if err != nil {
		return h, err
	}
	copy(h[:], b)
	return h, nil
}

func (h Hash) String() string {
	return base58.Encode(h[:])
}

func (h Hash) IsZero() bool {
	return h == Hash{}
}

func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *Hash) UnmarshalText(text []byte) error {
	v, err := HashFromBase58(string(text))
	if err != nil {
		return err
	}
	*h = v
	return nil
}

func decodeBase58(s string, size int) ([]byte, error) {
	b := base58.Decode(s)
	if len(b) != size {
		return nil, ErrInvalidBase58.WithDetails("want %d bytes, got %d", size, len(b))
	}
	return b, nil
}
