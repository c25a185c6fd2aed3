package solana

import (
	"bytes"
	"errors"
	"math/big"
	"testing"

	"github.com/canopy-network/canopy/lib/solana/borsh"
)

// TestProgramIDs checks the well-known ids decode to the expected bytes
func TestProgramIDs(t *testing.T) {
	if !SystemProgramID.IsZero() {
		t.Error("System program id should be all zeros")
	}
	want := map[string]PublicKey{
		"TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA":  TokenProgramID,
		"ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL": AssociatedTokenProgramID,
		"SysvarC1ock11111111111111111111111111111111":  ClockSysvarID,
	}
	for s, id := range want {
		if id.String() != s {
			t.Errorf("Id %s re-encodes as %s", s, id)
		}
	}
	if TokenProgramID[0] != 0x06 || TokenProgramID[31] != 0xa9 {
		t.Errorf("Unexpected token program bytes %x", TokenProgramID[:])
	}
}

// TestFindProgramAddress checks derived addresses and bump seeds against
// known values
func TestFindProgramAddress(t *testing.T) {
	one := make([]byte, 32)
	big.NewInt(1).FillBytes(one)

	tests := []struct {
		name string
		seed []byte
		want string
		bump uint8
	}{
		{"zero seed", make([]byte, 32), "5ReXsszTZPmCZuH7wHPoEkxqRq3Bb1xWWcim13zDH6LX", 253},
		{"seed one", one, "Eb6T9mLCxAE1FxAXbCGpB5TN3yMbgo9rsP8A8HWGwuXc", 255},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, bump, err := FindProgramAddress([][]byte{tt.seed}, BPFLoaderUpgradeableProgramID)
			if err != nil {
				t.Fatalf("Failed to find address: %v", err)
			}
			if addr.String() != tt.want || bump != tt.bump {
				t.Errorf("Got (%s, %d), want (%s, %d)", addr, bump, tt.want, tt.bump)
			}
			if addr.IsOnCurve() {
				t.Error("Program address must be off the curve")
			}

			again, err := CreateProgramAddress([][]byte{tt.seed, {bump}}, BPFLoaderUpgradeableProgramID)
			if err != nil {
				t.Fatalf("Failed to recreate address: %v", err)
			}
			if again != addr {
				t.Error("CreateProgramAddress should agree with the found bump")
			}
		})
	}

	programData, err := ProgramDataAddress(TokenProgramID)
	if err != nil {
		t.Fatalf("Failed to derive program data address: %v", err)
	}
	if programData.String() != "3gvYRKWyXRR9xKWe1ZjPhLY5ZJRN7KDB4rFZFGoJfFk2" {
		t.Errorf("Unexpected program data address %s", programData)
	}
}

// TestCreateProgramAddressOnCurve checks bumps that land on the curve are
// rejected
func TestCreateProgramAddressOnCurve(t *testing.T) {
	seed := make([]byte, 32)
	_, bump, err := FindProgramAddress([][]byte{seed}, BPFLoaderUpgradeableProgramID)
	if err != nil {
		t.Fatalf("Failed to find address: %v", err)
	}
	if bump == 255 {
		t.Fatal("Expected the search to skip at least one bump")
	}
	_, err = CreateProgramAddress([][]byte{seed, {255}}, BPFLoaderUpgradeableProgramID)
	if !errors.Is(err, ErrInvalidSeeds) {
		t.Errorf("Expected ErrInvalidSeeds for an on-curve result, got %v", err)
	}
}

// TestProgramAddressSeedLimits checks seed count and length limits
func TestProgramAddressSeedLimits(t *testing.T) {
	long := [][]byte{make([]byte, MaxSeedLength+1)}
	if _, err := CreateProgramAddress(long, TokenProgramID); !errors.Is(err, ErrInvalidSeeds) {
		t.Errorf("Expected ErrInvalidSeeds for a long seed, got %v", err)
	}
	if _, _, err := FindProgramAddress(long, TokenProgramID); !errors.Is(err, ErrInvalidSeeds) {
		t.Errorf("Expected ErrInvalidSeeds for a long seed, got %v", err)
	}

	many := make([][]byte, MaxSeeds)
	for i := range many {
		many[i] = []byte{byte(i)}
	}
	if _, err := CreateProgramAddress(many[:MaxSeeds-1], TokenProgramID); err != nil && !errors.Is(err, ErrInvalidSeeds) {
		t.Errorf("Unexpected error for %d seeds: %v", MaxSeeds-1, err)
	}
	// The bump counts as a seed.
	if _, _, err := FindProgramAddress(many, TokenProgramID); !errors.Is(err, ErrInvalidSeeds) {
		t.Errorf("Expected ErrInvalidSeeds for %d seeds plus a bump, got %v", MaxSeeds, err)
	}
	if _, _, err := FindProgramAddress(many[:MaxSeeds-1], TokenProgramID); err != nil {
		t.Errorf("Failed with %d seeds plus a bump: %v", MaxSeeds-1, err)
	}
	if _, err := CreateProgramAddress(append(many, []byte{0}), TokenProgramID); !errors.Is(err, ErrInvalidSeeds) {
		t.Errorf("Expected ErrInvalidSeeds for %d seeds, got %v", MaxSeeds+1, err)
	}
}

// TestAssociatedTokenAddress checks the derived account and the create
// instruction that uses it
func TestAssociatedTokenAddress(t *testing.T) {
	owner := privateKeyFromInt(1).PublicKey()
	mint := MustPublicKeyFromBase58("So11111111111111111111111111111111111111112")

	ata, err := AssociatedTokenAddress(owner, mint)
	if err != nil {
		t.Fatalf("Failed to derive address: %v", err)
	}
	if ata.String() != "GXdQoMK4pxjZKhvmVjzHVsruWAPiHbgru65zAFV1pU6i" {
		t.Errorf("Unexpected associated token address %s", ata)
	}

	for _, idempotent := range []bool{false, true} {
		ix, err := CreateAssociatedTokenAccountInstruction(owner, owner, mint, idempotent)
		if err != nil {
			t.Fatalf("Failed to build instruction: %v", err)
		}
		if ix.ProgramID != AssociatedTokenProgramID || len(ix.Accounts) != 6 {
			t.Fatalf("Unexpected instruction %+v", ix)
		}
		if ix.Accounts[1].PublicKey != ata || !ix.Accounts[1].IsWritable {
			t.Error("Second account should be the writable token account")
		}
		want := byte(0)
		if idempotent {
			want = 1
		}
		if !bytes.Equal(ix.Data, []byte{want}) {
			t.Errorf("Unexpected data %x", ix.Data)
		}
	}
}

// TestSystemInstructionData checks the system program layouts and decodes
// them back
func TestSystemInstructionData(t *testing.T) {
	from := privateKeyFromInt(1).PublicKey()
	to := privateKeyFromInt(2).PublicKey()

	tests := []struct {
		name string
		ix   Instruction
		data string
		want any
	}{
		{
			name: "transfer",
			ix:   TransferInstruction(from, to, LamportsPerSOL),
			data: "0200000000ca9a3b00000000",
			want: SystemTransfer{Lamports: LamportsPerSOL},
		},
		{
			name: "allocate",
			ix:   AllocateInstruction(from, 165),
			data: "08000000a500000000000000",
			want: SystemAllocate{Space: 165},
		},
		{
			name: "assign",
			ix:   AssignInstruction(from, SystemProgramID),
			data: "01000000" + "0000000000000000000000000000000000000000000000000000000000000000",
			want: SystemAssign{},
		},
		{
			name: "create account",
			ix:   CreateAccountInstruction(from, to, 1, 82, SystemProgramID),
			data: "00000000" + "0100000000000000" + "5200000000000000" +
				"0000000000000000000000000000000000000000000000000000000000000000",
			want: SystemCreateAccount{Lamports: 1, Space: 82},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.ix.ProgramID != SystemProgramID {
				t.Error("Instruction should target the system program")
			}
			if !bytes.Equal(tt.ix.Data, mustDecodeHex(t, tt.data)) {
				t.Fatalf("Data mismatch: got %x, want %s", tt.ix.Data, tt.data)
			}
			got, err := DecodeSystemInstruction(tt.ix.Data)
			if err != nil {
				t.Fatalf("Failed to decode: %v", err)
			}
			if got != tt.want {
				t.Errorf("Decoded %+v, want %+v", got, tt.want)
			}
		})
	}
}

// TestDecodeSystemInstructionFailures checks unknown tags and bad lengths
func TestDecodeSystemInstructionFailures(t *testing.T) {
	for _, data := range [][]byte{
		nil,
		{0x02, 0x00},
		{0x03, 0x00, 0x00, 0x00},
		mustDecodeHex(t, "0200000000ca9a3b0000000000"),
		mustDecodeHex(t, "0200000000ca9a3b"),
	} {
		if _, err := DecodeSystemInstruction(data); !errors.Is(err, ErrMalformedTransaction) {
			t.Errorf("Expected ErrMalformedTransaction for %x, got %v", data, err)
		}
	}
}

// TestTokenInstructionData checks the token program layouts
func TestTokenInstructionData(t *testing.T) {
	a := privateKeyFromInt(1).PublicKey()
	b := privateKeyFromInt(2).PublicKey()
	mint := privateKeyFromInt(3).PublicKey()

	transfer := TokenTransferInstruction(a, b, a, 500)
	if !bytes.Equal(transfer.Data, mustDecodeHex(t, "03f401000000000000")) {
		t.Errorf("Unexpected transfer data %x", transfer.Data)
	}
	if !transfer.Accounts[2].IsSigner || transfer.Accounts[2].IsWritable {
		t.Error("Authority should be a read-only signer")
	}

	checked := TokenTransferCheckedInstruction(a, mint, b, a, 500, 6)
	if !bytes.Equal(checked.Data, mustDecodeHex(t, "0cf40100000000000006")) {
		t.Errorf("Unexpected transfer checked data %x", checked.Data)
	}
	if len(checked.Accounts) != 4 || checked.Accounts[1].PublicKey != mint {
		t.Error("Mint should be the second account")
	}

	mintTo := TokenMintToInstruction(mint, b, a, 1)
	if !bytes.Equal(mintTo.Data, mustDecodeHex(t, "070100000000000000")) {
		t.Errorf("Unexpected mint to data %x", mintTo.Data)
	}
	burn := TokenBurnInstruction(b, mint, a, 2)
	if !bytes.Equal(burn.Data, mustDecodeHex(t, "080200000000000000")) {
		t.Errorf("Unexpected burn data %x", burn.Data)
	}

	initNoFreeze := TokenInitializeMintInstruction(mint, a, PublicKey{}, 9)
	want := append([]byte{0x00, 0x09}, a[:]...)
	if !bytes.Equal(initNoFreeze.Data, append(want, 0x00)) {
		t.Errorf("Unexpected initialize mint data %x", initNoFreeze.Data)
	}
	initFreeze := TokenInitializeMintInstruction(mint, a, b, 9)
	want = append(append(want, 0x01), b[:]...)
	if !bytes.Equal(initFreeze.Data, want) {
		t.Errorf("Unexpected initialize mint data with freeze authority %x", initFreeze.Data)
	}
	if initFreeze.Accounts[1].PublicKey != RentSysvarID {
		t.Error("Initialize mint should reference the rent sysvar")
	}
}

// TestMintCodec checks the fixed mint layout and its optional authorities
func TestMintCodec(t *testing.T) {
	authority := privateKeyFromInt(1).PublicKey()
	in := Mint{MintAuthority: &authority, Supply: 1_000_000, Decimals: 6, IsInitialized: true}

	b, err := borsh.Marshal(MintCodec, in)
	if err != nil {
		t.Fatalf("Failed to encode mint: %v", err)
	}
	if len(b) != MintSize {
		t.Fatalf("Mint should be %d bytes, got %d", MintSize, len(b))
	}
	if !bytes.Equal(b[:4], []byte{1, 0, 0, 0}) || !bytes.Equal(b[46:50], []byte{0, 0, 0, 0}) {
		t.Errorf("Unexpected option tags in %x", b)
	}

	out, err := borsh.Unmarshal(MintCodec, b)
	if err != nil {
		t.Fatalf("Failed to decode mint: %v", err)
	}
	if out.MintAuthority == nil || *out.MintAuthority != authority || out.FreezeAuthority != nil {
		t.Error("Authorities should round trip")
	}
	if out.Supply != in.Supply || out.Decimals != 6 || !out.IsInitialized {
		t.Errorf("Unexpected mint %+v", out)
	}

	b[46] = 2
	if _, err := borsh.Unmarshal(MintCodec, b); !errors.Is(err, borsh.ErrInvalidOptionTag) {
		t.Errorf("Expected ErrInvalidOptionTag, got %v", err)
	}
}

// TestTokenAccountCodec checks the fixed token account layout
func TestTokenAccountCodec(t *testing.T) {
	rent := uint64(2_039_280)
	in := TokenAccount{
		Mint:     privateKeyFromInt(3).PublicKey(),
		Owner:    privateKeyFromInt(1).PublicKey(),
		Amount:   42,
		State:    TokenAccountFrozen,
		IsNative: &rent,
	}

	b, err := borsh.Marshal(TokenAccountCodec, in)
	if err != nil {
		t.Fatalf("Failed to encode token account: %v", err)
	}
	if len(b) != TokenAccountSize {
		t.Fatalf("Token account should be %d bytes, got %d", TokenAccountSize, len(b))
	}
	if b[108] != byte(TokenAccountFrozen) {
		t.Errorf("State should follow the delegate option, got %d", b[108])
	}

	out, err := borsh.Unmarshal(TokenAccountCodec, b)
	if err != nil {
		t.Fatalf("Failed to decode token account: %v", err)
	}
	if out.Mint != in.Mint || out.Owner != in.Owner || out.Amount != 42 || out.State != TokenAccountFrozen {
		t.Errorf("Unexpected token account %+v", out)
	}
	if out.IsNative == nil || *out.IsNative != rent || out.Delegate != nil || out.CloseAuthority != nil {
		t.Error("Optional fields should round trip")
	}

	b[108] = 3
	if _, err := borsh.Unmarshal(TokenAccountCodec, b); !errors.Is(err, borsh.ErrUnknownVariant) {
		t.Errorf("Expected ErrUnknownVariant, got %v", err)
	}
	if _, err := borsh.Unmarshal(TokenAccountCodec, b[:100]); !errors.Is(err, borsh.ErrUnexpectedEOF) {
		t.Errorf("Expected ErrUnexpectedEOF, got %v", err)
	}
}

// TestLamportConversion checks SOL and lamport conversions
func TestLamportConversion(t *testing.T) {
	if SOLToLamports(1.5) != 1_500_000_000 {
		t.Errorf("1.5 SOL should be 1.5e9 lamports, got %d", SOLToLamports(1.5))
	}
	if LamportsToSOL(250_000_000) != 0.25 {
		t.Errorf("2.5e8 lamports should be 0.25 SOL, got %f", LamportsToSOL(250_000_000))
	}
}
