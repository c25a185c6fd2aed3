package adapters

import (
	"context"
	"errors"
	"fmt"

	"github.com/canopy-network/canopy/lib/solana"
	"github.com/canopy-network/canopy/lib/solana/borsh"
)

// ChainType represents different blockchain types
type ChainType string

// ChainTypeSolana represents the Solana blockchain
const ChainTypeSolana ChainType = "solana"

// Commitment is how settled a block must be before the node reports on it
type Commitment string

const (
	CommitmentProcessed Commitment = "processed"
	CommitmentConfirmed Commitment = "confirmed"
	CommitmentFinalized Commitment = "finalized"
)

var (
	ErrNilRPC            = errors.New("rpc client is required")
	ErrInvalidCommitment = errors.New("invalid commitment")
	ErrZeroAmount        = errors.New("transfer amount must be greater than 0")
	ErrSignatureMismatch = errors.New("node returned a different transaction signature")
)

// Config holds the per-request settings passed to the RPC collaborator
type Config struct {
	Commitment    Commitment `json:"commitment"`
	SkipPreflight bool       `json:"skipPreflight"`
}

// DefaultConfig returns a config using the confirmed commitment level
func DefaultConfig() Config {
	return Config{Commitment: CommitmentConfirmed}
}

// Validate checks the commitment level is one the node understands
func (c Config) Validate() error {
	switch c.Commitment {
	case CommitmentProcessed, CommitmentConfirmed, CommitmentFinalized:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidCommitment, c.Commitment)
}

// RPC is how the adapter talks to a Solana node. Implementations own
// transport, retries and rate limiting.
type RPC interface {
	LatestBlockhash(ctx context.Context, cfg Config) (solana.Hash, error)
	SendTransaction(ctx context.Context, raw []byte, cfg Config) (solana.Signature, error)
	AccountData(ctx context.Context, account solana.PublicKey, cfg Config) ([]byte, error)
}

// SolanaAdapter builds, signs and submits transactions through an RPC node
type SolanaAdapter struct {
	rpc    RPC
	config Config
}

// NewSolanaAdapter creates a new Solana adapter
func NewSolanaAdapter(rpc RPC, cfg Config) (*SolanaAdapter, error) {
	if rpc == nil {
		return nil, ErrNilRPC
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &SolanaAdapter{
		rpc:    rpc,
		config: cfg,
	}, nil
}

// Config returns the settings sent with every request
func (sa *SolanaAdapter) Config() Config {
	return sa.config
}

// GetChainType returns the chain type for this adapter
func (sa *SolanaAdapter) GetChainType() ChainType {
	return ChainTypeSolana
}

// BuildTransaction compiles instructions into an unsigned transaction using
// the node's latest blockhash
func (sa *SolanaAdapter) BuildTransaction(
	ctx context.Context,
	feePayer solana.PublicKey,
	instructions ...solana.Instruction,
) (*solana.Transaction, error) {
	blockhash, err := sa.rpc.LatestBlockhash(ctx, sa.config)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest blockhash: %w", err)
	}

	tx, err := solana.NewTransactionBuilder().
		SetFeePayer(feePayer).
		SetRecentBlockhash(blockhash).
		AddInstruction(instructions...).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build transaction: %w", err)
	}
	return tx, nil
}

// SignAndSubmit signs tx with keys and sends it. The returned signature is
// the transaction id.
func (sa *SolanaAdapter) SignAndSubmit(
	ctx context.Context,
	tx *solana.Transaction,
	keys ...solana.PrivateKey,
) (solana.Signature, error) {
	if err := tx.Sign(keys...); err != nil {
		return solana.Signature{}, fmt.Errorf("failed to sign transaction: %w", err)
	}
	return sa.SubmitTransaction(ctx, tx)
}

// SubmitTransaction sends an already signed transaction
func (sa *SolanaAdapter) SubmitTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	if !tx.IsSigned() {
		return solana.Signature{}, solana.ErrMissingSigner.WithDetails("transaction is not fully signed")
	}
	if err := tx.CheckSize(); err != nil {
		return solana.Signature{}, err
	}
	raw, err := tx.Serialize()
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to serialize transaction: %w", err)
	}

	sig, err := sa.rpc.SendTransaction(ctx, raw, sa.config)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to send transaction: %w", err)
	}
	if sig != tx.ID() {
		return solana.Signature{}, fmt.Errorf("%w: got %s, want %s", ErrSignatureMismatch, sig, tx.ID())
	}
	return sig, nil
}

// Submit builds a transaction paid for by payer, signs it with payer and
// any additional signers, and sends it
func (sa *SolanaAdapter) Submit(
	ctx context.Context,
	payer solana.PrivateKey,
	instructions []solana.Instruction,
	signers ...solana.PrivateKey,
) (solana.Signature, error) {
	tx, err := sa.BuildTransaction(ctx, payer.PublicKey(), instructions...)
	if err != nil {
		return solana.Signature{}, err
	}
	return sa.SignAndSubmit(ctx, tx, append([]solana.PrivateKey{payer}, signers...)...)
}

// Transfer sends lamports from the sender, who also pays the fee
func (sa *SolanaAdapter) Transfer(
	ctx context.Context,
	from solana.PrivateKey,
	to solana.PublicKey,
	lamports uint64,
) (solana.Signature, error) {
	if lamports == 0 {
		return solana.Signature{}, ErrZeroAmount
	}
	ix := solana.TransferInstruction(from.PublicKey(), to, lamports)
	return sa.Submit(ctx, from, []solana.Instruction{ix})
}

// SignTransaction adds signatures from keys to a serialized transaction and
// returns the re-serialized result. Slots for other signers are kept.
func (sa *SolanaAdapter) SignTransaction(raw []byte, keys ...solana.PrivateKey) ([]byte, error) {
	tx, err := solana.DeserializeTransaction(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse transaction: %w", err)
	}
	if err := tx.PartialSign(keys...); err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}
	return tx.Serialize()
}

// ValidateTransaction checks a serialized transaction is well formed, fits
// in a packet and carries valid signatures
func (sa *SolanaAdapter) ValidateTransaction(raw []byte) error {
	if len(raw) == 0 {
		return fmt.Errorf("transaction cannot be empty")
	}
	if len(raw) > solana.MaxTransactionSize {
		return solana.ErrTransactionTooLarge.WithDetails("%d bytes", len(raw))
	}
	tx, err := solana.DeserializeTransaction(raw)
	if err != nil {
		return err
	}
	return tx.Verify()
}

// EstimateTransactionSize returns the serialized size of tx once every
// signature slot is filled
func (sa *SolanaAdapter) EstimateTransactionSize(tx *solana.Transaction) (int, error) {
	signed := tx.Clone()
	signed.Signatures = make([]solana.Signature, tx.Message.Header.NumRequiredSignatures)
	raw, err := signed.Serialize()
	if err != nil {
		return 0, err
	}
	return len(raw), nil
}

// FetchAccount reads an account and decodes its data with codec. Data longer
// than the codec's layout is an error.
func FetchAccount[T any](
	ctx context.Context,
	sa *SolanaAdapter,
	account solana.PublicKey,
	codec borsh.Codec[T],
) (T, error) {
	var zero T
	data, err := sa.rpc.AccountData(ctx, account, sa.config)
	if err != nil {
		return zero, fmt.Errorf("failed to fetch account %s: %w", account, err)
	}
	v, err := borsh.Unmarshal(codec, data)
	if err != nil {
		return zero, fmt.Errorf("failed to decode account %s: %w", account, err)
	}
	return v, nil
}

// FetchTokenAccount reads and decodes a token account
func (sa *SolanaAdapter) FetchTokenAccount(ctx context.Context, account solana.PublicKey) (solana.TokenAccount, error) {
	return FetchAccount(ctx, sa, account, solana.TokenAccountCodec)
}

// FetchMint reads and decodes a token mint
func (sa *SolanaAdapter) FetchMint(ctx context.Context, mint solana.PublicKey) (solana.Mint, error) {
	return FetchAccount(ctx, sa, mint, solana.MintCodec)
}
