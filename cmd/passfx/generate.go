package main

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vaultpass/passfx-go/internal/crypto"
	"github.com/vaultpass/passfx-go/internal/model"
	"github.com/vaultpass/passfx-go/internal/service"
)

// copyToClipboard is swapped out in tests.
var copyToClipboard = clipboard.WriteAll

func newGenerateCmd(v *viper.Viper) *cobra.Command {
	var (
		noUpper, noLower, noNumbers, noSymbols bool
		copyOut, withHash                      bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random password",
		Long: `Generate a random password from the enabled character classes.
At least one character of every enabled class is included, and the length
must be between 1 and 128 characters.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := model.GenerateRequest{
				Length:         v.GetInt("length"),
				Uppercase:      boolPtr(!noUpper),
				Lowercase:      boolPtr(!noLower),
				Numbers:        boolPtr(!noNumbers),
				Symbols:        boolPtr(!noSymbols),
				ExcludeSimilar: v.GetBool("exclude_similar"),
				Hash:           withHash,
			}

			svc := service.NewGeneratorService(nil, crypto.NewHasher(crypto.DefaultHashParams()))
			resp, err := svc.Generate(cmd.Context(), "", req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, resp.Password)
			fmt.Fprintf(out, "Strength: %s\n", renderStrength(resp.Strength))
			if resp.Hash != "" {
				fmt.Fprintf(out, "Hash: %s\n", resp.Hash)
			}

			if copyOut {
				if err := copyToClipboard(resp.Password); err != nil {
					return fmt.Errorf("copying to clipboard: %w", err)
				}
				fmt.Fprintln(cmd.ErrOrStderr(), "Copied to clipboard.")
			}
			return nil
		},
	}

	cmd.Flags().IntP("length", "l", 16, "password length")
	cmd.Flags().BoolVar(&noUpper, "no-upper", false, "exclude uppercase letters")
	cmd.Flags().BoolVar(&noLower, "no-lower", false, "exclude lowercase letters")
	cmd.Flags().BoolVar(&noNumbers, "no-numbers", false, "exclude digits")
	cmd.Flags().BoolVar(&noSymbols, "no-symbols", false, "exclude symbols")
	cmd.Flags().Bool("exclude-similar", false, "exclude look-alike characters (il1Lo0O)")
	cmd.Flags().BoolVarP(&copyOut, "copy", "c", false, "copy the password to the clipboard")
	cmd.Flags().BoolVar(&withHash, "hash", false, "also print the Argon2id hash of the password")

	v.BindPFlag("length", cmd.Flags().Lookup("length"))
	v.BindPFlag("exclude_similar", cmd.Flags().Lookup("exclude-similar"))

	return cmd
}

// renderStrength colours the label with the strength's colour.
func renderStrength(s crypto.Strength) string {
	label := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(s.Color)).Render(s.Label)
	return fmt.Sprintf("%s (%d/%d)", label, s.Score, crypto.MaxStrengthScore)
}

func boolPtr(b bool) *bool { return &b }
