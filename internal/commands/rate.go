package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/kept-dev/kept/internal/ledger"
	"github.com/kept-dev/kept/internal/model"
)

func newRateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rate",
		Short: "Show or change the interest rate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			proj := s.store.Projection()
			fmt.Printf("Current rate: %s%% (default %s%%)\n", proj.CurrentRate, s.store.DefaultRate())
			for _, p := range proj.RateHistory {
				fmt.Printf("  %s  %s%%\n", p.Date.Format("2006-01-02"), p.Rate)
			}
			return nil
		},
	}

	cmd.AddCommand(newRateSetCommand())
	cmd.AddCommand(newRateDefaultCommand())
	return cmd
}

func newRateSetCommand() *cobra.Command {
	var dateStr string

	cmd := &cobra.Command{
		Use:   "set RATE",
		Short: "Record a rate change effective from a date forward",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rate, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("invalid rate %q: %w", args[0], err)
			}
			date, err := parseDateFlag(dateStr)
			if err != nil {
				return err
			}

			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			event, _, err := s.store.AddEvent(ledger.AddParams{
				Date:    date,
				Kind:    model.KindRateChange,
				NewRate: rate,
			})
			if err != nil {
				return err
			}
			if err := s.save(); err != nil {
				return err
			}
			fmt.Printf("Rate %s%% effective from %s\n", event.NewRate, event.Date.Format("2006-01-02"))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "effective date as YYYY-MM-DD (default today)")
	return cmd
}

func newRateDefaultCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "default RATE",
		Short: "Change the fallback rate used before any rate change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rate, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("invalid rate %q: %w", args[0], err)
			}
			if rate.IsNegative() {
				return fmt.Errorf("rate must not be negative, got %s", rate)
			}

			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			s.store.SetDefaultRate(rate)
			if err := s.save(); err != nil {
				return err
			}
			fmt.Printf("Default rate is now %s%%\n", rate)
			return nil
		},
	}
}
