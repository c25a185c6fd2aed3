// Package commands defines the solkit CLI for working with Solana keys,
// signatures, transactions and program addresses offline.
//
// Commands
//
//   - keygen      Generate a new keypair
//   - pubkey      Print the address of a private key
//   - sign        Sign a message
//   - verify      Verify a message signature
//   - tx decode   Decode, check and print a serialized transaction
//   - pda         Derive a program address
//
// The persistent --encoding flag selects how message and seed arguments are
// read: utf8 (default), hex, base58 or base64. Private keys are accepted as
// a base58 seed or as a base58 keypair.
package commands
