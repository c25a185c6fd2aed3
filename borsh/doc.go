// Package borsh implements the compact, schema-directed binary layout used
// for Solana program data.
//
// The format is not self-describing. A decoder must be given the same schema
// that produced the bytes, and schemas are built by composing Codec values:
//
//	type Greeting struct {
//		ID   uint64
//		Text string
//		Tags []string
//	}
//
//	var GreetingCodec = borsh.Struct(
//		borsh.FieldOf("id", borsh.U64, func(g *Greeting) *uint64 { return &g.ID }),
//		borsh.FieldOf("text", borsh.String, func(g *Greeting) *string { return &g.Text }),
//		borsh.FieldOf("tags", borsh.Vec(borsh.String), func(g *Greeting) *[]string { return &g.Tags }),
//	)
//
//	data, err := borsh.Marshal(GreetingCodec, Greeting{ID: 1, Text: "gm"})
//
// Layout rules:
//   - integers and floats are fixed width, little-endian
//   - bool is one byte, 0 or 1
//   - strings, byte slices and sequences carry a u32 length prefix
//   - fixed arrays carry no prefix
//   - options and enum discriminants are one byte
//   - structs are their fields in declared order
//   - maps and sets are u32-prefixed and sorted by the encoded bytes of the
//     key (or element), so equal collections always encode identically
//
// Decoding never reads past the end of its input: running out of bytes is a
// *DecodeError wrapping ErrUnexpectedEOF, and length prefixes never cause an
// allocation larger than the remaining input.
package borsh
