// Package solana implements the cryptographic and wire-format core of a
// Solana client.
//
// The curve layer provides arithmetic modulo p = 2^255 - 19 (FieldElement),
// arithmetic modulo the group order L (Scalar), and the twisted Edwards group
// of Ed25519 (Point) with the 32-byte compressed encoding of RFC 8032.
// Decoding rejects non-canonical y coordinates, y values without a square
// root, and a set sign bit on x = 0.
//
// On top of the curve, Sign and Verify implement deterministic EdDSA as used
// for Solana transaction signatures. Verification requires a canonical s.
//
// The transaction layer covers messages, compact-u16 lengths, account
// ordering, signing, and program derived addresses, with instruction builders
// for the system, token and associated token programs. Program data is
// encoded with the borsh subpackage.
//
// All operations are synchronous and free of shared mutable state. Errors
// are *Error values carrying a category and a stable code; use errors.Is
// against the exported sentinels.
package solana
