package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vaultpass/passfx-go/internal/model"
	"github.com/vaultpass/passfx-go/internal/rates"
	"github.com/vaultpass/passfx-go/internal/service"
)

func newConvertCmd(v *viper.Viper) *cobra.Command {
	var quick bool

	cmd := &cobra.Command{
		Use:   "convert <amount> <from> <to>",
		Short: "Convert an amount between currencies",
		Long: `Convert an amount between two currencies. Rates come from the built-in
table (or the file set with --rates-file) and fluctuate slightly on every
lookup, like quotes from a live rates API.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := converterFromConfig(cmd, v)
			if err != nil {
				return err
			}

			result, err := svc.Convert(cmd.Context(), "", model.ConvertRequest{Amount: args[0], From: args[1], To: args[2]})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, result.Display)
			fmt.Fprintf(out, "1 %s = %s %s\n", result.FromCurrency.Code, rates.FormatNumber(result.Rate), result.ToCurrency.Code)

			if quick {
				table := service.QuickTable(result.FromCurrency, result.ToCurrency, result.Rate)
				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				for _, row := range table.Rows {
					fmt.Fprintf(w, "%s\t%s\n", row.FromDisplay, row.ToDisplay)
				}
				w.Flush()
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quick, "quick", "q", false, "also print the quick conversion table")
	addRatesFlags(cmd)
	return cmd
}

func newRatesCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rates <from> <to>",
		Short: "Quote the exchange rate for a currency pair",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := converterFromConfig(cmd, v)
			if err != nil {
				return err
			}

			resp, err := svc.Rate(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "1 %s = %s %s\n", resp.From, rates.FormatNumber(resp.Rate), resp.To)
			return nil
		},
	}

	addRatesFlags(cmd)
	return cmd
}

func newCurrenciesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "currencies",
		Short: "List the supported currencies",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, c := range rates.Currencies() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.Flag, c.Code, strings.TrimSpace(c.Symbol), c.Name)
			}
			w.Flush()
		},
	}
}

func addRatesFlags(cmd *cobra.Command) {
	cmd.Flags().Duration("latency", rates.DefaultLatency, "simulated rate lookup latency")
	cmd.Flags().Float64("spread", rates.DefaultSpread, "maximum relative rate fluctuation")
	cmd.Flags().String("rates-file", "", "YAML rate seed file (default is the built-in USD table)")
}

// converterFromConfig binds the running command's rate flags, which
// several commands share, before reading them back through v.
func converterFromConfig(cmd *cobra.Command, v *viper.Viper) (*service.ConverterService, error) {
	v.BindPFlag("rates.latency", cmd.Flags().Lookup("latency"))
	v.BindPFlag("rates.spread", cmd.Flags().Lookup("spread"))
	v.BindPFlag("rates.seed_file", cmd.Flags().Lookup("rates-file"))

	seed := rates.DefaultSeed()
	if path := v.GetString("rates.seed_file"); path != "" {
		var err error
		if seed, err = rates.LoadSeed(path); err != nil {
			return nil, err
		}
	}

	spread := v.GetFloat64("rates.spread")
	if spread < 0 || spread > rates.MaxSpread {
		return nil, fmt.Errorf("invalid spread %v: must be between 0 and %v", spread, rates.MaxSpread)
	}

	provider := rates.NewProvider(rates.Build(seed), rates.ProviderOptions{
		Latency: v.GetDuration("rates.latency"),
		Spread:  spread,
		Logger:  slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})),
	})
	return service.NewConverterService(provider, nil), nil
}
