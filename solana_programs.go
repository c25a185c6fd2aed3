package solana

import (
	"crypto/sha256"

	"github.com/canopy-network/canopy/lib/solana/borsh"
)

// Well-known program and sysvar addresses
var (
	SystemProgramID               = MustPublicKeyFromBase58("11111111111111111111111111111111")
	TokenProgramID                = MustPublicKeyFromBase58("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")
	AssociatedTokenProgramID      = MustPublicKeyFromBase58("ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL")
	BPFLoaderUpgradeableProgramID = MustPublicKeyFromBase58("BPFLoaderUpgradeab1e11111111111111111111111")
	ComputeBudgetProgramID        = MustPublicKeyFromBase58("ComputeBudget111111111111111111111111111111")
	RentSysvarID                  = MustPublicKeyFromBase58("SysvarRent111111111111111111111111111111111")
	ClockSysvarID                 = MustPublicKeyFromBase58("SysvarC1ock11111111111111111111111111111111")
)

// LamportsPerSOL is the number of lamports in one SOL
const LamportsPerSOL = uint64(1_000_000_000)

// SOLToLamports converts SOL to lamports
func SOLToLamports(sol float64) uint64 {
	return uint64(sol * float64(LamportsPerSOL))
}

// LamportsToSOL converts lamports to SOL
func LamportsToSOL(lamports uint64) float64 {
	return float64(lamports) / float64(LamportsPerSOL)
}

// System program instruction discriminants. They are encoded as u32.
const (
	SystemCreateAccountTag uint32 = 0
	SystemAssignTag        uint32 = 1
	SystemTransferTag      uint32 = 2
	SystemAllocateTag      uint32 = 8
)

// SystemCreateAccount funds a new account, allocates its data and assigns it
// to owner
type SystemCreateAccount struct {
	Lamports uint64
	Space    uint64
	Owner    PublicKey
}

// SystemAssign changes the owner of an account
type SystemAssign struct {
	Owner PublicKey
}

// SystemTransfer moves lamports between system accounts
type SystemTransfer struct {
	Lamports uint64
}

// SystemAllocate sets the data size of an account
type SystemAllocate struct {
	Space uint64
}

var (
	systemCreateAccountCodec = borsh.Struct(
		borsh.FieldOf("lamports", borsh.U64, func(v *SystemCreateAccount) *uint64 { return &v.Lamports }),
		borsh.FieldOf("space", borsh.U64, func(v *SystemCreateAccount) *uint64 { return &v.Space }),
		borsh.FieldOf("owner", PublicKeyCodec, func(v *SystemCreateAccount) *PublicKey { return &v.Owner }),
	)
	systemAssignCodec = borsh.Struct(
		borsh.FieldOf("owner", PublicKeyCodec, func(v *SystemAssign) *PublicKey { return &v.Owner }),
	)
	systemTransferCodec = borsh.Struct(
		borsh.FieldOf("lamports", borsh.U64, func(v *SystemTransfer) *uint64 { return &v.Lamports }),
	)
	systemAllocateCodec = borsh.Struct(
		borsh.FieldOf("space", borsh.U64, func(v *SystemAllocate) *uint64 { return &v.Space }),
	)
)

// taggedData encodes a discriminant followed by the instruction payload
func taggedData[T, V any](tag borsh.Codec[T], t T, body borsh.Codec[V], v V) []byte {
	w := borsh.NewWriter()
	if err := tag.Encode(w, t); err != nil {
		panic(err)
	}
	if err := body.Encode(w, v); err != nil {
		// Unreachable: instruction payloads are fixed-size integers and keys.
		panic(err)
	}
	return w.Bytes()
}

// TransferInstruction moves lamports from a signing system account
func TransferInstruction(from, to PublicKey, lamports uint64) Instruction {
	return NewInstruction(SystemProgramID, []AccountMeta{
		NewAccountMeta(from, true, true),
		NewAccountMeta(to, false, true),
	}, taggedData(borsh.U32, SystemTransferTag, systemTransferCodec, SystemTransfer{Lamports: lamports}))
}

// CreateAccountInstruction funds and allocates newAccount, which must sign
func CreateAccountInstruction(from, newAccount PublicKey, lamports, space uint64, owner PublicKey) Instruction {
	return NewInstruction(SystemProgramID, []AccountMeta{
		NewAccountMeta(from, true, true),
		NewAccountMeta(newAccount, true, true),
	}, taggedData(borsh.U32, SystemCreateAccountTag, systemCreateAccountCodec,
		SystemCreateAccount{Lamports: lamports, Space: space, Owner: owner}))
}

// AssignInstruction assigns account to a new owner program
func AssignInstruction(account, owner PublicKey) Instruction {
	return NewInstruction(SystemProgramID, []AccountMeta{
		NewAccountMeta(account, true, true),
	}, taggedData(borsh.U32, SystemAssignTag, systemAssignCodec, SystemAssign{Owner: owner}))
}

// AllocateInstruction sets the data size of account
func AllocateInstruction(account PublicKey, space uint64) Instruction {
	return NewInstruction(SystemProgramID, []AccountMeta{
		NewAccountMeta(account, true, true),
	}, taggedData(borsh.U32, SystemAllocateTag, systemAllocateCodec, SystemAllocate{Space: space}))
}

// DecodeSystemInstruction decodes system program instruction data into one
// of SystemCreateAccount, SystemAssign, SystemTransfer or SystemAllocate
func DecodeSystemInstruction(data []byte) (any, error) {
	r := borsh.NewReader(data)
	tag, err := borsh.U32.Decode(r)
	if err != nil {
		return nil, ErrMalformedTransaction.WithCause(err)
	}
	var v any
	switch tag {
	case SystemCreateAccountTag:
		v, err = decodeRest(r, systemCreateAccountCodec)
	case SystemAssignTag:
		v, err = decodeRest(r, systemAssignCodec)
	case SystemTransferTag:
		v, err = decodeRest(r, systemTransferCodec)
	case SystemAllocateTag:
		v, err = decodeRest(r, systemAllocateCodec)
	default:
		return nil, ErrMalformedTransaction.WithDetails("unsupported system instruction %d", tag)
	}
	if err != nil {
		return nil, ErrMalformedTransaction.WithCause(err)
	}
	return v, nil
}

func decodeRest[T any](r *borsh.Reader, c borsh.Codec[T]) (T, error) {
	v, err := c.Decode(r)
	if err != nil {
		return v, err
	}
	if r.Remaining() != 0 {
		return v, r.Fail(borsh.ErrTrailingBytes)
	}
	return v, nil
}

// Token program instruction discriminants. They are encoded as u8.
const (
	TokenInitializeMintTag  uint8 = 0
	TokenTransferTag        uint8 = 3
	TokenMintToTag          uint8 = 7
	TokenBurnTag            uint8 = 8
	TokenTransferCheckedTag uint8 = 12
)

type tokenInitializeMint struct {
	Decimals        uint8
	MintAuthority   PublicKey
	FreezeAuthority *PublicKey
}

type tokenAmount struct {
	Amount uint64
}

type tokenAmountChecked struct {
	Amount   uint64
	Decimals uint8
}

var (
	tokenInitializeMintCodec = borsh.Struct(
		borsh.FieldOf("decimals", borsh.U8, func(v *tokenInitializeMint) *uint8 { return &v.Decimals }),
		borsh.FieldOf("mint_authority", PublicKeyCodec, func(v *tokenInitializeMint) *PublicKey { return &v.MintAuthority }),
		borsh.FieldOf("freeze_authority", borsh.Option(PublicKeyCodec),
			func(v *tokenInitializeMint) **PublicKey { return &v.FreezeAuthority }),
	)
	tokenAmountCodec = borsh.Struct(
		borsh.FieldOf("amount", borsh.U64, func(v *tokenAmount) *uint64 { return &v.Amount }),
	)
	tokenAmountCheckedCodec = borsh.Struct(
		borsh.FieldOf("amount", borsh.U64, func(v *tokenAmountChecked) *uint64 { return &v.Amount }),
		borsh.FieldOf("decimals", borsh.U8, func(v *tokenAmountChecked) *uint8 { return &v.Decimals }),
	)
)

// TokenInitializeMintInstruction initializes a mint. A zero freezeAuthority
// leaves the mint without one.
func TokenInitializeMintInstruction(mint, mintAuthority, freezeAuthority PublicKey, decimals uint8) Instruction {
	args := tokenInitializeMint{Decimals: decimals, MintAuthority: mintAuthority}
	if !freezeAuthority.IsZero() {
		args.FreezeAuthority = &freezeAuthority
	}
	return NewInstruction(TokenProgramID, []AccountMeta{
		NewAccountMeta(mint, false, true),
		NewAccountMeta(RentSysvarID, false, false),
	}, taggedData(borsh.U8, TokenInitializeMintTag, tokenInitializeMintCodec, args))
}

// TokenTransferInstruction moves tokens between token accounts
func TokenTransferInstruction(source, destination, authority PublicKey, amount uint64) Instruction {
	return NewInstruction(TokenProgramID, []AccountMeta{
		NewAccountMeta(source, false, true),
		NewAccountMeta(destination, false, true),
		NewAccountMeta(authority, true, false),
	}, taggedData(borsh.U8, TokenTransferTag, tokenAmountCodec, tokenAmount{Amount: amount}))
}

// TokenTransferCheckedInstruction moves tokens and asserts the mint and its
// decimals
func TokenTransferCheckedInstruction(source, mint, destination, authority PublicKey, amount uint64, decimals uint8) Instruction {
	return NewInstruction(TokenProgramID, []AccountMeta{
		NewAccountMeta(source, false, true),
		NewAccountMeta(mint, false, false),
		NewAccountMeta(destination, false, true),
		NewAccountMeta(authority, true, false),
	}, taggedData(borsh.U8, TokenTransferCheckedTag, tokenAmountCheckedCodec,
		tokenAmountChecked{Amount: amount, Decimals: decimals}))
}

// TokenMintToInstruction mints new tokens into destination
func TokenMintToInstruction(mint, destination, authority PublicKey, amount uint64) Instruction {
	return NewInstruction(TokenProgramID, []AccountMeta{
		NewAccountMeta(mint, false, true),
		NewAccountMeta(destination, false, true),
		NewAccountMeta(authority, true, false),
	}, taggedData(borsh.U8, TokenMintToTag, tokenAmountCodec, tokenAmount{Amount: amount}))
}

// TokenBurnInstruction burns tokens held by account
func TokenBurnInstruction(account, mint, authority PublicKey, amount uint64) Instruction {
	return NewInstruction(TokenProgramID, []AccountMeta{
		NewAccountMeta(account, false, true),
		NewAccountMeta(mint, false, true),
		NewAccountMeta(authority, true, false),
	}, taggedData(borsh.U8, TokenBurnTag, tokenAmountCodec, tokenAmount{Amount: amount}))
}

// CreateAssociatedTokenAccountInstruction creates owner's token account for
// mint at its derived address. With idempotent set it succeeds when the
// account already exists.
func CreateAssociatedTokenAccountInstruction(payer, owner, mint PublicKey, idempotent bool) (Instruction, error) {
	ata, err := AssociatedTokenAddress(owner, mint)
	if err != nil {
		return Instruction{}, err
	}
	data := []byte{0}
	if idempotent {
		data[0] = 1
	}
	return NewInstruction(AssociatedTokenProgramID, []AccountMeta{
		NewAccountMeta(payer, true, true),
		NewAccountMeta(ata, false, true),
		NewAccountMeta(owner, false, false),
		NewAccountMeta(mint, false, false),
		NewAccountMeta(SystemProgramID, false, false),
		NewAccountMeta(TokenProgramID, false, false),
	}, data), nil
}

// AssociatedTokenAddress derives owner's canonical token account for mint
func AssociatedTokenAddress(owner, mint PublicKey) (PublicKey, error) {
	addr, _, err := FindProgramAddress([][]byte{owner[:], TokenProgramID[:], mint[:]}, AssociatedTokenProgramID)
	return addr, err
}

// ProgramDataAddress derives the account holding an upgradeable program's
// byte-code
func ProgramDataAddress(program PublicKey) (PublicKey, error) {
	addr, _, err := FindProgramAddress([][]byte{program[:]}, BPFLoaderUpgradeableProgramID)
	return addr, err
}

// Program derived address limits
const (
	MaxSeeds      = 16
	MaxSeedLength = 32
)

const pdaMarker = "ProgramDerivedAddress"

// CreateProgramAddress hashes seeds, programID and a fixed marker with
// SHA-256. The result must not be a valid curve point, so that no private
// key can sign for it.
func CreateProgramAddress(seeds [][]byte, programID PublicKey) (PublicKey, error) {
	if err := checkSeeds(seeds); err != nil {
		return PublicKey{}, err
	}
	addr := hashProgramAddress(seeds, programID)
	if addr.IsOnCurve() {
		return PublicKey{}, ErrInvalidSeeds.WithDetails("derived address %s is on the curve", addr)
	}
	return addr, nil
}

// FindProgramAddress appends a bump seed, counting down from 255, until the
// derived address falls off the curve. It returns the address and the bump.
func FindProgramAddress(seeds [][]byte, programID PublicKey) (PublicKey, uint8, error) {
	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)
	bump := []byte{255}
	withBump[len(seeds)] = bump
	if err := checkSeeds(withBump); err != nil {
		return PublicKey{}, 0, err
	}
	for b := 255; b > 0; b-- {
		bump[0] = uint8(b)
		if addr := hashProgramAddress(withBump, programID); !addr.IsOnCurve() {
			return addr, uint8(b), nil
		}
	}
	return PublicKey{}, 0, ErrNoProgramAddress.WithDetails("program %s", programID)
}

func checkSeeds(seeds [][]byte) error {
	if len(seeds) > MaxSeeds {
		return ErrInvalidSeeds.WithDetails("%d seeds, at most %d allowed", len(seeds), MaxSeeds)
	}
	for i, seed := range seeds {
		if len(seed) > MaxSeedLength {
			return ErrInvalidSeeds.WithDetails("seed %d is %d bytes, at most %d allowed",
				i, len(seed), MaxSeedLength)
		}
	}
	return nil
}

func hashProgramAddress(seeds [][]byte, programID PublicKey) PublicKey {
	h := sha256.New()
	for _, seed := range seeds {
		h.Write(seed)
	}
	h.Write(programID[:])
	h.Write([]byte(pdaMarker))

	var addr PublicKey
	copy(addr[:], h.Sum(nil))
	return addr
}
