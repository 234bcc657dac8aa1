// Command passfx generates passwords, scores them and converts currency
// amounts from the terminal.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vaultpass/passfx-go/internal/rates"
)

var version = "dev" // set by the linker

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd builds a fresh command tree with its own viper instance, so
// tests can run commands in isolation.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	v.SetDefault("length", 16)
	v.SetDefault("exclude_similar", false)
	v.SetDefault("rates.latency", rates.DefaultLatency)
	v.SetDefault("rates.spread", rates.DefaultSpread)
	v.SetDefault("rates.seed_file", "")

	var cfgFile string

	cmd := &cobra.Command{
		Use:   "passfx",
		Short: "Generate passwords and convert currencies.",
		Long: `passfx generates random passwords, rates their strength and converts
amounts between currencies using a built-in rate table.

Defaults can be set in $HOME/.passfx.yaml or ./.passfx.yaml, or through
PASSFX_* environment variables (e.g. PASSFX_LENGTH=24).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(v, cfgFile)
		},
	}
	cmd.Version = version

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.passfx.yaml or ./.passfx.yaml)")

	cmd.AddCommand(newGenerateCmd(v))
	cmd.AddCommand(newStrengthCmd())
	cmd.AddCommand(newConvertCmd(v))
	cmd.AddCommand(newRatesCmd(v))
	cmd.AddCommand(newCurrenciesCmd())

	return cmd
}

// initConfig reads the optional config file and binds PASSFX_* environment
// variables. A missing default config file is not an error.
func initConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".passfx")
	}

	v.SetEnvPrefix("PASSFX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && cfgFile == "" {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}
