package solana

// AccountMeta describes how an instruction uses one account
type AccountMeta struct {
	PublicKey  PublicKey
	IsSigner   bool
	IsWritable bool
}

// NewAccountMeta creates a new AccountMeta
func NewAccountMeta(pubkey PublicKey, isSigner, isWritable bool) AccountMeta {
	return AccountMeta{
		PublicKey:  pubkey,
		IsSigner:   isSigner,
		IsWritable: isWritable,
	}
}

// Instruction is a program invocation before its accounts are compiled into
// message indices
type Instruction struct {
	ProgramID PublicKey
	Accounts  []AccountMeta
	Data      []byte
}

// NewInstruction creates a new instruction
func NewInstruction(programID PublicKey, accounts []AccountMeta, data []byte) Instruction {
	return Instruction{
		ProgramID: programID,
		Accounts:  accounts,
		Data:      data,
	}
}

// NewMessage compiles instructions into a message paid for by feePayer.
//
// Every account referenced by an instruction, including each program id, is
// listed once with the union of its signer and writable flags. The fee payer
// comes first as a writable signer, followed by the other writable signers,
// read-only signers, writable non-signers and read-only non-signers, each
// group in order of first appearance. The recent blockhash is left zero for
// the caller to fill in before signing.
func NewMessage(feePayer PublicKey, instructions ...Instruction) (*Message, error) {
	if len(instructions) == 0 {
		return nil, ErrNoInstructions
	}

	type entry struct {
		key      PublicKey
		signer   bool
		writable bool
	}
	index := make(map[PublicKey]int)
	var accounts []*entry
	add := func(key PublicKey, signer, writable bool) {
		if i, ok := index[key]; ok {
			accounts[i].signer = accounts[i].signer || signer
			accounts[i].writable = accounts[i].writable || writable
			return
		}
		index[key] = len(accounts)
		accounts = append(accounts, &entry{key: key, signer: signer, writable: writable})
	}

	add(feePayer, true, true)
	for _, ix := range instructions {
		for _, meta := range ix.Accounts {
			add(meta.PublicKey, meta.IsSigner, meta.IsWritable)
		}
		add(ix.ProgramID, false, false)
	}
	if len(accounts) > MaxAccounts {
		return nil, ErrTooManyAccounts.WithDetails("%d keys", len(accounts))
	}

	// Stable partition into the four groups. The fee payer is a writable
	// signer that appeared first, so it stays at index zero.
	rank := func(e *entry) int {
		switch {
		case e.signer && e.writable:
			return 0
		case e.signer:
			return 1
		case e.writable:
			return 2
		default:
			return 3
		}
	}
	ordered := make([]*entry, 0, len(accounts))
	for group := 0; group < 4; group++ {
		for _, e := range accounts {
			if rank(e) == group {
				ordered = append(ordered, e)
			}
		}
	}

	m := &Message{AccountKeys: make([]PublicKey, len(ordered))}
	position := make(map[PublicKey]uint8, len(ordered))
	for i, e := range ordered {
		m.AccountKeys[i] = e.key
		position[e.key] = uint8(i)
		switch rank(e) {
		case 0:
			m.Header.NumRequiredSignatures++
		case 1:
			m.Header.NumRequiredSignatures++
			m.Header.NumReadonlySignedAccounts++
		case 3:
			m.Header.NumReadonlyUnsignedAccounts++
		}
	}

	m.Instructions = make([]CompiledInstruction, len(instructions))
	for i, ix := range instructions {
		ci := CompiledInstruction{
			ProgramIDIndex: position[ix.ProgramID],
			Accounts:       make([]uint8, len(ix.Accounts)),
			Data:           append([]byte{}, ix.Data...),
		}
		for j, meta := range ix.Accounts {
			ci.Accounts[j] = position[meta.PublicKey]
		}
		m.Instructions[i] = ci
	}
	return m, nil
}

// TransactionBuilder helps build transactions step by step
type TransactionBuilder struct {
	instructions    []Instruction
	feePayer        PublicKey
	recentBlockhash Hash
}

// NewTransactionBuilder creates a new transaction builder
func NewTransactionBuilder() *TransactionBuilder {
	return &TransactionBuilder{}
}

// SetFeePayer sets the transaction fee payer
func (b *TransactionBuilder) SetFeePayer(feePayer PublicKey) *TransactionBuilder {
	b.feePayer = feePayer
	return b
}

// SetRecentBlockhash sets the recent blockhash
func (b *TransactionBuilder) SetRecentBlockhash(blockhash Hash) *TransactionBuilder {
	b.recentBlockhash = blockhash
	return b
}

// AddInstruction adds an instruction to the transaction
func (b *TransactionBuilder) AddInstruction(ix ...Instruction) *TransactionBuilder {
	b.instructions = append(b.instructions, ix...)
	return b
}

// Build compiles the message and returns an unsigned transaction
func (b *TransactionBuilder) Build() (*Transaction, error) {
	if b.feePayer.IsZero() {
		return nil, ErrMissingSigner.WithDetails("fee payer must be set")
	}
	m, err := NewMessage(b.feePayer, b.instructions...)
	if err != nil {
		return nil, err
	}
	m.RecentBlockhash = b.recentBlockhash
	return NewTransaction(m), nil
}

// BuildTransferTransaction builds an unsigned lamport transfer paid for by
// the sender
func BuildTransferTransaction(from, to PublicKey, lamports uint64, recentBlockhash Hash) (*Transaction, error) {
	return NewTransactionBuilder().
		SetFeePayer(from).
		SetRecentBlockhash(recentBlockhash).
		AddInstruction(TransferInstruction(from, to, lamports)).
		Build()
}
