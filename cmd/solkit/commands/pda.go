package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/canopy-network/canopy/lib/solana"
)

func pdaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pda <program> [seed...]",
		Short: "Derive a program address and its bump seed",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := solana.PublicKeyFromBase58(args[0])
			if err != nil {
				return err
			}
			seeds := make([][]byte, 0, len(args)-1)
			for _, a := range args[1:] {
				seed, err := decodeArg(a)
				if err != nil {
					return fmt.Errorf("seed %q: %w", a, err)
				}
				seeds = append(seeds, seed)
			}
			addr, bump, err := solana.FindProgramAddress(seeds, program)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d\n", addr, bump)
			return nil
		},
	}
	return cmd
}
