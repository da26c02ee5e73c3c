package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cristianadrielbraun/payqr/internal/currency"
	"github.com/cristianadrielbraun/payqr/internal/payuri"
)

func currenciesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "currencies",
		Short: "List the supported currencies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tLABEL\tTICKER\tSCHEME")
			for _, d := range currency.All() {
				scheme := d.Scheme
				if scheme == "" {
					scheme = "-"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d.ID, d.Label, d.Ticker(), scheme)
			}
			return tw.Flush()
		},
	}
}

func classifyCmd() *cobra.Command {
	var against string
	cmd := &cobra.Command{
		Use:   "classify <text>",
		Short: "Detect the currency of an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cls := currency.Classify(args[0])
			def, _ := currency.Lookup(cls.CurrencyID)
			out := cmd.OutOrStdout()
			if cls.Matched {
				fmt.Fprintf(out, "%s\t%s\n", def.ID, def.Label)
			} else {
				fmt.Fprintf(out, "%s\t%s (no address pattern matched)\n", def.ID, def.Label)
			}
			if against == "" {
				return nil
			}
			want, err := currency.Lookup(against)
			if err != nil {
				return fmt.Errorf("%w: %q", err, against)
			}
			if !currency.ValidateAgainst(cls.Text, want.ID) {
				fmt.Fprintf(out, "warning: this does not look like a valid %s address\n", want.Label)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&against, "verify", "", "also check the text against this currency")
	return cmd
}

type paramFlags struct {
	currency string
	payuri.Params
}

func (p *paramFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&p.currency, "currency", "c", "", "currency id (detected when empty)")
	cmd.Flags().StringVar(&p.Amount, "amount", "", "requested amount")
	cmd.Flags().StringVar(&p.Label, "label", "", "recipient label")
	cmd.Flags().StringVar(&p.Message, "message", "", "payment description")
}

func (p *paramFlags) validate() error {
	if p.currency == "" {
		return nil
	}
	if _, err := currency.Lookup(p.currency); err != nil {
		return fmt.Errorf("%w: %q", err, p.currency)
	}
	return nil
}

func uriCmd() *cobra.Command {
	var p paramFlags
	cmd := &cobra.Command{
		Use:   "uri <text>",
		Short: "Print the payment URI for an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := p.validate(); err != nil {
				return err
			}
			cls := currency.Classify(args[0])
			id := p.currency
			if id == "" {
				id = cls.CurrencyID
			}
			fmt.Fprintln(cmd.OutOrStdout(), payuri.BuildFor(id, cls.Text, p.Params))
			return nil
		},
	}
	p.register(cmd)
	return cmd
}
