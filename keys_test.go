package solana

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/btcsuite/btcd/btcutil/base58"
)

// TestAddressFromPrivateKey checks base58 addresses derived from small seeds
func TestAddressFromPrivateKey(t *testing.T) {
	tests := []struct {
		seed int64
		want string
	}{
		{1, "6ASf5EcmmEHTgDJ4X4ZT5vT6iHVJBXPg5AN5YoTCpGWt"},
		{2, "8pM1DN3RiT8vbom5u1sNryaNT1nyL8CTTW3b5PwWXRBH"},
	}
	for _, tt := range tests {
		got := privateKeyFromInt(tt.seed).PublicKey().String()
		if got != tt.want {
			t.Errorf("Seed %d: got address %s, want %s", tt.seed, got, tt.want)
		}

		pk, err := PublicKeyFromBase58(tt.want)
		if err != nil {
			t.Fatalf("Failed to parse %s: %v", tt.want, err)
		}
		if pk != privateKeyFromInt(tt.seed).PublicKey() {
			t.Errorf("Parsed address %s does not match the derived key", tt.want)
		}
	}
}

// TestWIF checks the keypair string of seed 1 and its decoding
func TestWIF(t *testing.T) {
	key := privateKeyFromInt(1)
	const want = "1111111111111111111111111111111PPm2a2NNZH2EFJ5UkEjkH9Fcxn8cvjTmZDKQQisyLDmA"

	if got := key.WIF(); got != want {
		t.Fatalf("WIF mismatch: got %s", got)
	}

	decoded, err := PrivateKeyFromWIF(want)
	if err != nil {
		t.Fatalf("Failed to decode WIF: %v", err)
	}
	if decoded != key {
		t.Error("Decoded WIF should equal the original key")
	}

	kp := key.Keypair()
	pub := key.PublicKey()
	if [32]byte(kp[32:]) != [32]byte(pub) {
		t.Error("Keypair should end with the public key")
	}
}

// TestWIFRejectsMismatchedPublicKey checks the public half is validated
func TestWIFRejectsMismatchedPublicKey(t *testing.T) {
	kp := privateKeyFromInt(1).Keypair()
	other := privateKeyFromInt(2).PublicKey()
	copy(kp[32:], other[:])

	wif := base58.Encode(kp[:])
	if _, err := PrivateKeyFromWIF(wif); !errors.Is(err, ErrKeypairMismatch) {
		t.Errorf("Expected ErrKeypairMismatch, got %v", err)
	}
	if _, err := PrivateKeyFromWIF("not base58 0OIl"); !errors.Is(err, ErrInvalidBase58) {
		t.Errorf("Expected ErrInvalidBase58, got %v", err)
	}
}

// TestBase58Lengths checks decoders enforce the expected byte length
func TestBase58Lengths(t *testing.T) {
	if _, err := PublicKeyFromBase58("11111111"); !errors.Is(err, ErrInvalidBase58) {
		t.Errorf("Expected ErrInvalidBase58 for a short key, got %v", err)
	}
	if _, err := SignatureFromBase58("6ASf5EcmmEHTgDJ4X4ZT5vT6iHVJBXPg5AN5YoTCpGWt"); !errors.Is(err, ErrInvalidBase58) {
		t.Errorf("Expected ErrInvalidBase58 for a 32-byte signature, got %v", err)
	}

	sys, err := PublicKeyFromBase58("11111111111111111111111111111111")
	if err != nil {
		t.Fatalf("Failed to parse system program id: %v", err)
	}
	if !sys.IsZero() {
		t.Error("System program id should be all zeros")
	}
}

// TestPrivateKeyBase58 checks the seed text form round trips
func TestPrivateKeyBase58(t *testing.T) {
	key, err := GeneratePrivateKey()
	if err != nil {
		t.Fatalf("Failed to generate key: %v", err)
	}
	parsed, err := PrivateKeyFromBase58(key.Base58())
	if err != nil {
		t.Fatalf("Failed to parse key: %v", err)
	}
	if parsed != key {
		t.Error("Private key should round trip through base58")
	}
	if !key.PublicKey().IsOnCurve() {
		t.Error("Public keys should be curve points")
	}
}

// TestKeysAsJSON checks keys, hashes and signatures marshal as base58 strings
func TestKeysAsJSON(t *testing.T) {
	type doc struct {
		Key  PublicKey `json:"key"`
		Hash Hash      `json:"hash"`
		Sig  Signature `json:"sig"`
	}
	key := privateKeyFromInt(1)
	in := doc{Key: key.PublicKey(), Sig: key.Sign([]byte("json"))}
	in.Hash[0] = 9

	b, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}
	var fields map[string]string
	if err := json.Unmarshal(b, &fields); err != nil {
		t.Fatalf("Expected string fields: %v", err)
	}
	if fields["key"] != "6ASf5EcmmEHTgDJ4X4ZT5vT6iHVJBXPg5AN5YoTCpGWt" {
		t.Errorf("Unexpected key text %q", fields["key"])
	}

	var out doc
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if out != in {
		t.Error("Document should round trip through JSON")
	}
}
