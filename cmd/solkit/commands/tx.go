package commands

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/spf13/cobra"

	"github.com/canopy-network/canopy/lib/solana"
)

func txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Work with serialized transactions",
	}
	cmd.AddCommand(txDecodeCmd())
	return cmd
}

func txDecodeCmd() *cobra.Command {
	var skipVerify bool
	cmd := &cobra.Command{
		Use:   "decode <transaction>",
		Short: "Decode a base64 or base58 transaction and print it as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := decodeTransactionArg(args[0])
			if err != nil {
				return err
			}
			tx, err := solana.DeserializeTransaction(raw)
			if err != nil {
				return err
			}
			if !skipVerify {
				if err := tx.Verify(); err != nil {
					return err
				}
			}
			out, err := json.MarshalIndent(tx, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	cmd.Flags().BoolVar(&skipVerify, "skip-verify", false, "print the transaction without checking its signatures")
	return cmd
}

// decodeTransactionArg reads a transaction in the wire encodings RPC nodes
// use. An explicit --encoding of hex, base58 or base64 wins. Otherwise the
// argument is read as base64 and as base58, and the first reading that parses
// as a transaction is used.
func decodeTransactionArg(s string) ([]byte, error) {
	if encoding != encodingUTF8 {
		return decodeArg(s)
	}
	var candidates [][]byte
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		candidates = append(candidates, b)
	}
	if b := base58.Decode(s); len(b) > 0 {
		candidates = append(candidates, b)
	}
	if len(candidates) == 0 {
		return nil, errors.New("transaction is neither base64 nor base58")
	}
	for _, b := range candidates {
		if _, err := solana.DeserializeTransaction(b); err == nil {
			return b, nil
		}
	}
	return candidates[0], nil
}
