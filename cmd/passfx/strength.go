package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vaultpass/passfx-go/internal/crypto"
)

func newStrengthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strength [password]",
		Short: "Rate the strength of a password",
		Long: `Rate a password from Very Weak to Very Strong based on its length and
the character classes it uses. With no argument the password is read from
the first line of standard input.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("reading password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}

			s := crypto.Score(password)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %.0f%%\n", renderStrength(s), s.Percentage)
			return nil
		},
	}
}
