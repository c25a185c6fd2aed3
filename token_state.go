package solana

import (
	"github.com/canopy-network/canopy/lib/solana/borsh"
)

// Account sizes of the token program state
const (
	MintSize         = 82
	TokenAccountSize = 165
)

// Mint is the state of a token mint account
type Mint struct {
	MintAuthority   *PublicKey
	Supply          uint64
	Decimals        uint8
	IsInitialized   bool
	FreezeAuthority *PublicKey
}

// TokenAccountState is the lifecycle state of a token account
type TokenAccountState uint8

const (
	TokenAccountUninitialized TokenAccountState = iota
	TokenAccountInitialized
	TokenAccountFrozen
)

// TokenAccount is the state of an account holding tokens of one mint
type TokenAccount struct {
	Mint            PublicKey
	Owner           PublicKey
	Amount          uint64
	Delegate        *PublicKey
	State           TokenAccountState
	IsNative        *uint64
	DelegatedAmount uint64
	CloseAuthority  *PublicKey
}

// cOption is the fixed-width optional used by token program account state: a
// u32 tag followed by the value, zero-filled when absent
func cOption[T any](c borsh.Codec[T], size int) borsh.Codec[*T] {
	return cOptionCodec[T]{elem: c, size: size}
}

type cOptionCodec[T any] struct {
	elem borsh.Codec[T]
	size int
}

func (c cOptionCodec[T]) Encode(w *borsh.Writer, v *T) error {
	if v == nil {
		if err := borsh.U32.Encode(w, 0); err != nil {
			return err
		}
		_, err := w.Write(make([]byte, c.size))
		return err
	}
	if err := borsh.U32.Encode(w, 1); err != nil {
		return err
	}
	return c.elem.Encode(w, *v)
}

func (c cOptionCodec[T]) Decode(r *borsh.Reader) (*T, error) {
	tag, err := borsh.U32.Decode(r)
	if err != nil {
		return nil, err
	}
	switch tag {
	case 0:
		if _, err := r.Read(c.size); err != nil {
			return nil, err
		}
		return nil, nil
	case 1:
		v, err := c.elem.Decode(r)
		if err != nil {
			return nil, err
		}
		return &v, nil
	}
	return nil, r.Fail(borsh.ErrInvalidOptionTag)
}

// MintCodec decodes the 82-byte mint layout
var MintCodec = borsh.Struct(
	borsh.FieldOf("mint_authority", cOption(PublicKeyCodec, PublicKeySize),
		func(m *Mint) **PublicKey { return &m.MintAuthority }),
	borsh.FieldOf("supply", borsh.U64, func(m *Mint) *uint64 { return &m.Supply }),
	borsh.FieldOf("decimals", borsh.U8, func(m *Mint) *uint8 { return &m.Decimals }),
	borsh.FieldOf("is_initialized", borsh.Bool, func(m *Mint) *bool { return &m.IsInitialized }),
	borsh.FieldOf("freeze_authority", cOption(PublicKeyCodec, PublicKeySize),
		func(m *Mint) **PublicKey { return &m.FreezeAuthority }),
)

// TokenAccountCodec decodes the 165-byte token account layout
var TokenAccountCodec = borsh.Struct(
	borsh.FieldOf("mint", PublicKeyCodec, func(a *TokenAccount) *PublicKey { return &a.Mint }),
	borsh.FieldOf("owner", PublicKeyCodec, func(a *TokenAccount) *PublicKey { return &a.Owner }),
	borsh.FieldOf("amount", borsh.U64, func(a *TokenAccount) *uint64 { return &a.Amount }),
	borsh.FieldOf("delegate", cOption(PublicKeyCodec, PublicKeySize),
		func(a *TokenAccount) **PublicKey { return &a.Delegate }),
	borsh.FieldOf("state", borsh.Enum[TokenAccountState](3),
		func(a *TokenAccount) *TokenAccountState { return &a.State }),
	borsh.FieldOf("is_native", cOption(borsh.U64, 8),
		func(a *TokenAccount) **uint64 { return &a.IsNative }),
	borsh.FieldOf("delegated_amount", borsh.U64, func(a *TokenAccount) *uint64 { return &a.DelegatedAmount }),
	borsh.FieldOf("close_authority", cOption(PublicKeyCodec, PublicKeySize),
		func(a *TokenAccount) **PublicKey { return &a.CloseAuthority }),
)
