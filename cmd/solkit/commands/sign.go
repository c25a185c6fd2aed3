package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/canopy-network/canopy/lib/solana"
)

func signCmd() *cobra.Command {
	var keyArg string
	cmd := &cobra.Command{
		Use:   "sign --key <private-key> <message>",
		Short: "Sign a message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if keyArg == "" {
				return errors.New("--key is required")
			}
			key, err := parsePrivateKey(keyArg)
			if err != nil {
				return err
			}
			msg, err := decodeArg(args[0])
			if err != nil {
				return fmt.Errorf("message: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), key.Sign(msg))
			return nil
		},
	}
	cmd.Flags().StringVarP(&keyArg, "key", "k", "", "private key as a base58 seed or keypair")
	return cmd
}

func verifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <address> <signature> <message>",
		Short: "Verify a message signature",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			pub, err := solana.PublicKeyFromBase58(args[0])
			if err != nil {
				return err
			}
			sig, err := solana.SignatureFromBase58(args[1])
			if err != nil {
				return err
			}
			msg, err := decodeArg(args[2])
			if err != nil {
				return fmt.Errorf("message: %w", err)
			}
			if err := solana.Verify(pub, msg, sig); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "OK")
			return nil
		},
	}
	return cmd
}
