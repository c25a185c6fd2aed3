package solana

import (
	"encoding/json"

	"github.com/btcsuite/btcd/btcutil/base58"

	"github.com/canopy-network/canopy/lib/solana/borsh"
)

// MaxTransactionSize is the largest serialized transaction that fits in one
// network packet
const MaxTransactionSize = 1232

// MaxAccounts is the number of account keys a u8 index can address
const MaxAccounts = 256

// MessageHeader counts the signer and read-only accounts at the front and
// back of the account key list
type MessageHeader struct {
	NumRequiredSignatures       uint8 `json:"numRequiredSignatures"`
	NumReadonlySignedAccounts   uint8 `json:"numReadonlySignedAccounts"`
	NumReadonlyUnsignedAccounts uint8 `json:"numReadonlyUnsignedAccounts"`
}

// CompiledInstruction is an instruction whose program and accounts are
// indices into the message's account keys
type CompiledInstruction struct {
	ProgramIDIndex uint8
	Accounts       []uint8
	Data           []byte
}

type compiledInstructionJSON struct {
	ProgramIDIndex uint8  `json:"programIdIndex"`
	Accounts       []int  `json:"accounts"`
	Data           string `json:"data"`
}

// MarshalJSON writes account indices as numbers and data as base58
func (ci CompiledInstruction) MarshalJSON() ([]byte, error) {
	accounts := make([]int, len(ci.Accounts))
	for i, a := range ci.Accounts {
		accounts[i] = int(a)
	}
	return json.Marshal(compiledInstructionJSON{
		ProgramIDIndex: ci.ProgramIDIndex,
		Accounts:       accounts,
		Data:           base58.Encode(ci.Data),
	})
}

func (ci *CompiledInstruction) UnmarshalJSON(b []byte) error {
	var v compiledInstructionJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	accounts := make([]uint8, len(v.Accounts))
	for i, a := range v.Accounts {
		if a < 0 || a >= MaxAccounts {
			return ErrInvalidAccountIndex.WithDetails("%d", a)
		}
		accounts[i] = uint8(a)
	}
	data := base58.Decode(v.Data)
	if len(data) == 0 && v.Data != "" {
		return ErrInvalidBase58.WithDetails("instruction data")
	}
	*ci = CompiledInstruction{ProgramIDIndex: v.ProgramIDIndex, Accounts: accounts, Data: data}
	return nil
}

// Message is the signed portion of a transaction
type Message struct {
	Header          MessageHeader         `json:"header"`
	AccountKeys     []PublicKey           `json:"accountKeys"`
	RecentBlockhash Hash                  `json:"recentBlockhash"`
	Instructions    []CompiledInstruction `json:"instructions"`
}

// Transaction is a message plus one signature per required signer, in the
// order of the message's account keys
type Transaction struct {
	Signatures []Signature `json:"signatures"`
	Message    Message     `json:"message"`
}

// byteArrayCodec writes a fixed-size key type as its raw bytes
type byteArrayCodec[A any] struct {
	size  int
	bytes func(*A) []byte
}

func (c byteArrayCodec[A]) Encode(w *borsh.Writer, v A) error {
	_, err := w.Write(c.bytes(&v))
	return err
}

func (c byteArrayCodec[A]) Decode(r *borsh.Reader) (A, error) {
	var v A
	b, err := r.Read(c.size)
	if err != nil {
		return v, err
	}
	copy(c.bytes(&v), b)
	return v, nil
}

// Codecs for the fixed-size types, usable inside account data schemas
var (
	PublicKeyCodec borsh.Codec[PublicKey] = byteArrayCodec[PublicKey]{
		size: PublicKeySize, bytes: func(k *PublicKey) []byte { return k[:] }}
	HashCodec borsh.Codec[Hash] = byteArrayCodec[Hash]{
		size: HashSize, bytes: func(h *Hash) []byte { return h[:] }}
	SignatureCodec borsh.Codec[Signature] = byteArrayCodec[Signature]{
		size: SignatureSize, bytes: func(s *Signature) []byte { return s[:] }}
)

var messageHeaderCodec = borsh.Struct(
	borsh.FieldOf("num_required_signatures", borsh.U8,
		func(h *MessageHeader) *uint8 { return &h.NumRequiredSignatures }),
	borsh.FieldOf("num_readonly_signed_accounts", borsh.U8,
		func(h *MessageHeader) *uint8 { return &h.NumReadonlySignedAccounts }),
	borsh.FieldOf("num_readonly_unsigned_accounts", borsh.U8,
		func(h *MessageHeader) *uint8 { return &h.NumReadonlyUnsignedAccounts }),
)

var compiledInstructionCodec = borsh.Struct(
	borsh.FieldOf("program_id_index", borsh.U8,
		func(ci *CompiledInstruction) *uint8 { return &ci.ProgramIDIndex }),
	borsh.FieldOf("accounts", ShortVec(borsh.U8),
		func(ci *CompiledInstruction) *[]uint8 { return &ci.Accounts }),
	borsh.FieldOf("data", ShortVec(borsh.U8),
		func(ci *CompiledInstruction) *[]byte { return &ci.Data }),
)

var messageCodec = borsh.Struct(
	borsh.FieldOf("header", messageHeaderCodec,
		func(m *Message) *MessageHeader { return &m.Header }),
	borsh.FieldOf("account_keys", ShortVec(PublicKeyCodec),
		func(m *Message) *[]PublicKey { return &m.AccountKeys }),
	borsh.FieldOf("recent_blockhash", HashCodec,
		func(m *Message) *Hash { return &m.RecentBlockhash }),
	borsh.FieldOf("instructions", ShortVec(compiledInstructionCodec),
		func(m *Message) *[]CompiledInstruction { return &m.Instructions }),
)

var transactionCodec = borsh.Struct(
	borsh.FieldOf("signatures", ShortVec(SignatureCodec),
		func(tx *Transaction) *[]Signature { return &tx.Signatures }),
	borsh.FieldOf("message", messageCodec,
		func(tx *Transaction) *Message { return &tx.Message }),
)

// Serialize encodes the message. These are the bytes every signer signs.
func (m *Message) Serialize() ([]byte, error) {
	if len(m.AccountKeys) > MaxAccounts {
		return nil, ErrTooManyAccounts.WithDetails("%d keys", len(m.AccountKeys))
	}
	return borsh.Marshal(messageCodec, *m)
}

// DeserializeMessage decodes and validates a message
func DeserializeMessage(b []byte) (*Message, error) {
	m, err := borsh.Unmarshal(messageCodec, b)
	if err != nil {
		return nil, ErrMalformedTransaction.WithCause(err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks that the header counts fit the account list and that
// every instruction index points at an account
func (m *Message) Validate() error {
	n := len(m.AccountKeys)
	h := m.Header
	if n > MaxAccounts {
		return ErrTooManyAccounts.WithDetails("%d keys", n)
	}
	if int(h.NumRequiredSignatures) > n {
		return ErrMalformedTransaction.WithDetails("%d signers but %d accounts", h.NumRequiredSignatures, n)
	}
	if h.NumReadonlySignedAccounts > 0 && h.NumReadonlySignedAccounts >= h.NumRequiredSignatures {
		return ErrMalformedTransaction.WithDetails("fee payer must be writable")
	}
	if int(h.NumRequiredSignatures)+int(h.NumReadonlyUnsignedAccounts) > n {
		return ErrMalformedTransaction.WithDetails("%d read-only unsigned accounts exceed the account list",
			h.NumReadonlyUnsignedAccounts)
	}
	for i, ci := range m.Instructions {
		if int(ci.ProgramIDIndex) >= n {
			return ErrInvalidAccountIndex.WithDetails("instruction %d program index %d", i, ci.ProgramIDIndex)
		}
		for _, a := range ci.Accounts {
			if int(a) >= n {
				return ErrInvalidAccountIndex.WithDetails("instruction %d account index %d", i, a)
			}
		}
	}
	return nil
}

// Signers returns the account keys that must sign, fee payer first
func (m *Message) Signers() []PublicKey {
	n := min(int(m.Header.NumRequiredSignatures), len(m.AccountKeys))
	return m.AccountKeys[:n]
}

// FeePayer is the first account key, or the zero key for an empty message
func (m *Message) FeePayer() PublicKey {
	if len(m.AccountKeys) == 0 {
		return PublicKey{}
	}
	return m.AccountKeys[0]
}

// IsSigner reports whether account i is a required signer
func (m *Message) IsSigner(i int) bool {
	return i >= 0 && i < int(m.Header.NumRequiredSignatures) && i < len(m.AccountKeys)
}

// IsWritable reports whether account i may be modified by the transaction
func (m *Message) IsWritable(i int) bool {
	if i < 0 || i >= len(m.AccountKeys) {
		return false
	}
	h := m.Header
	if i < int(h.NumRequiredSignatures) {
		return i < int(h.NumRequiredSignatures)-int(h.NumReadonlySignedAccounts)
	}
	return i < len(m.AccountKeys)-int(h.NumReadonlyUnsignedAccounts)
}

// Clone creates a deep copy of the message
func (m *Message) Clone() *Message {
	clone := &Message{
		Header:          m.Header,
		AccountKeys:     make([]PublicKey, len(m.AccountKeys)),
		RecentBlockhash: m.RecentBlockhash,
		Instructions:    make([]CompiledInstruction, len(m.Instructions)),
	}
	copy(clone.AccountKeys, m.AccountKeys)
	for i, ci := range m.Instructions {
		clone.Instructions[i] = CompiledInstruction{
			ProgramIDIndex: ci.ProgramIDIndex,
			Accounts:       append([]uint8{}, ci.Accounts...),
			Data:           append([]byte{}, ci.Data...),
		}
	}
	return clone
}

// NewTransaction wraps a message with one empty signature slot per required
// signer
func NewTransaction(m *Message) *Transaction {
	return &Transaction{
		Signatures: make([]Signature, m.Header.NumRequiredSignatures),
		Message:    *m.Clone(),
	}
}

// Serialize encodes the transaction for submission
func (tx *Transaction) Serialize() ([]byte, error) {
	if len(tx.Message.AccountKeys) > MaxAccounts {
		return nil, ErrTooManyAccounts.WithDetails("%d keys", len(tx.Message.AccountKeys))
	}
	return borsh.Marshal(transactionCodec, *tx)
}

// DeserializeTransaction decodes and validates a serialized transaction. It
// does not verify the signatures.
func DeserializeTransaction(b []byte) (*Transaction, error) {
	tx, err := borsh.Unmarshal(transactionCodec, b)
	if err != nil {
		return nil, ErrMalformedTransaction.WithCause(err)
	}
	if err := tx.Message.Validate(); err != nil {
		return nil, err
	}
	if len(tx.Signatures) != int(tx.Message.Header.NumRequiredSignatures) {
		return nil, ErrSignatureCountMismatch.WithDetails("%d signatures for %d signers",
			len(tx.Signatures), tx.Message.Header.NumRequiredSignatures)
	}
	return &tx, nil
}

// CheckSize rejects transactions too large for one packet
func (tx *Transaction) CheckSize() error {
	b, err := tx.Serialize()
	if err != nil {
		return err
	}
	if len(b) > MaxTransactionSize {
		return ErrTransactionTooLarge.WithDetails("%d bytes", len(b))
	}
	return nil
}

// PartialSign fills the signature slot of every key given. Keys that are not
// required signers are rejected; slots without a key are left as they are.
func (tx *Transaction) PartialSign(keys ...PrivateKey) error {
	if err := tx.Message.Validate(); err != nil {
		return err
	}
	msg, err := tx.Message.Serialize()
	if err != nil {
		return err
	}
	if len(tx.Signatures) != int(tx.Message.Header.NumRequiredSignatures) {
		tx.Signatures = make([]Signature, tx.Message.Header.NumRequiredSignatures)
	}
	signers := tx.Message.Signers()
	for _, k := range keys {
		pub := k.PublicKey()
		idx := -1
		for i, s := range signers {
			if s == pub {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrUnexpectedSigner.WithDetails("%s", pub)
		}
		tx.Signatures[idx] = Sign(k, msg)
	}
	return nil
}

// Sign signs the message with keys, which must cover every required signer
func (tx *Transaction) Sign(keys ...PrivateKey) error {
	if err := tx.PartialSign(keys...); err != nil {
		return err
	}
	for i, sig := range tx.Signatures {
		if sig.IsZero() {
			return ErrMissingSigner.WithDetails("%s", tx.Message.AccountKeys[i])
		}
	}
	return nil
}

// Verify checks every signature against its signer's key
func (tx *Transaction) Verify() error {
	signers := tx.Message.Signers()
	if len(tx.Signatures) != int(tx.Message.Header.NumRequiredSignatures) ||
		len(signers) != len(tx.Signatures) {
		return ErrSignatureCountMismatch.WithDetails("%d signatures for %d signers",
			len(tx.Signatures), tx.Message.Header.NumRequiredSignatures)
	}
	msg, err := tx.Message.Serialize()
	if err != nil {
		return err
	}
	for i, sig := range tx.Signatures {
		if err := Verify(signers[i], msg, sig); err != nil {
			return WrapError(err, ErrorCategoryVerification, "TRANSACTION_SIGNATURE_INVALID",
				"transaction signature invalid").WithDetails("signer %d (%s)", i, signers[i])
		}
	}
	return nil
}

// IsSigned reports whether every signature slot is filled
func (tx *Transaction) IsSigned() bool {
	if len(tx.Signatures) != int(tx.Message.Header.NumRequiredSignatures) {
		return false
	}
	for _, sig := range tx.Signatures {
		if sig.IsZero() {
			return false
		}
	}
	return true
}

// ID returns the fee payer's signature, which identifies the transaction
func (tx *Transaction) ID() Signature {
	if len(tx.Signatures) == 0 {
		return Signature{}
	}
	return tx.Signatures[0]
}

// Clone creates a deep copy of the transaction
func (tx *Transaction) Clone() *Transaction {
	return &Transaction{
		Signatures: append([]Signature{}, tx.Signatures...),
		Message:    *tx.Message.Clone(),
	}
}
