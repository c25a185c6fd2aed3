package commands

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/spf13/cobra"

	"github.com/canopy-network/canopy/lib/solana"
)

const (
	encodingUTF8   = "utf8"
	encodingHex    = "hex"
	encodingBase58 = "base58"
	encodingBase64 = "base64"
)

var encoding string

// NewRootCmd builds the solkit command tree
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "solkit",
		Short:        "Offline Solana key, signature and transaction tool",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch encoding {
			case encodingUTF8, encodingHex, encodingBase58, encodingBase64:
				return nil
			}
			return fmt.Errorf("unknown encoding %q (want utf8, hex, base58 or base64)", encoding)
		},
	}

	root.PersistentFlags().StringVarP(&encoding, "encoding", "e", encodingUTF8,
		"how message and seed arguments are read: utf8, hex, base58 or base64")

	root.AddCommand(keygenCmd(), pubkeyCmd(), signCmd(), verifyCmd(), txCmd(), pdaCmd())
	return root
}

func Execute() error {
	return NewRootCmd().Execute()
}

// decodeArg reads a message or seed argument using the --encoding flag
func decodeArg(s string) ([]byte, error) {
	switch encoding {
	case encodingHex:
		return hex.DecodeString(s)
	case encodingBase64:
		return base64.StdEncoding.DecodeString(s)
	case encodingBase58:
		b := base58.Decode(s)
		if len(b) == 0 && s != "" {
			return nil, fmt.Errorf("invalid base58 %q", s)
		}
		return b, nil
	}
	return []byte(s), nil
}

// parsePrivateKey accepts a base58 seed or a base58 keypair
func parsePrivateKey(s string) (solana.PrivateKey, error) {
	if len(base58.Decode(s)) == solana.KeypairSize {
		return solana.PrivateKeyFromWIF(s)
	}
	return solana.PrivateKeyFromBase58(s)
}
