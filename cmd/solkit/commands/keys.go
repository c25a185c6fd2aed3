package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/canopy-network/canopy/lib/solana"
)

func keygenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a new keypair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := solana.GeneratePrivateKey()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Address: %s\n", key.PublicKey())
			fmt.Fprintf(out, "Seed: %s\n", key.Base58())
			fmt.Fprintf(out, "Keypair: %s\n", key.WIF())
			return nil
		},
	}
	return cmd
}

func pubkeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pubkey <private-key>",
		Short: "Print the address of a private key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := parsePrivateKey(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), key.PublicKey())
			return nil
		},
	}
	return cmd
}
