package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/kept-dev/kept/internal/ledger"
	"github.com/kept-dev/kept/internal/model"
)

func newSpendCommand() *cobra.Command {
	return newAddCommand("spend", "Record a purchase", model.KindPurchase)
}

func newAvoidCommand() *cobra.Command {
	return newAddCommand("avoid", "Record a purchase you talked yourself out of", model.KindAvoidedPurchase)
}

func newAddCommand(use, short string, kind model.Kind) *cobra.Command {
	var dateStr string
	var category string

	cmd := &cobra.Command{
		Use:   use + " AMOUNT DESCRIPTION...",
		Short: short,
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[0], err)
			}
			date, err := parseDateFlag(dateStr)
			if err != nil {
				return err
			}

			s, err := openSession(cmd)
			if err != nil {
				return err
			}

			event, proj, err := s.store.AddEvent(ledger.AddParams{
				Date:        date,
				Kind:        kind,
				Amount:      amount,
				Category:    model.Category(strings.ToLower(category)),
				Description: strings.Join(args[1:], " "),
			})
			if err != nil {
				return err
			}
			if err := s.save(); err != nil {
				return err
			}

			verb := "Spent"
			if kind == model.KindAvoidedPurchase {
				verb = "Kept"
			}
			fmt.Printf("%s %s on %s (%s)\n", verb, event.Amount, event.Date.Format("2006-01-02"), event.ID)
			fmt.Printf("This month: saved %s, spent %s, pending interest %s\n",
				proj.CurrentMonth.AvoidedTotal, proj.CurrentMonth.PurchasesTotal, proj.PendingOnAvoided)
			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "event date as YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&category, "category", string(model.CategoryOther), "category")

	return cmd
}

// parseDateFlag parses --date, defaulting to today.
func parseDateFlag(s string) (time.Time, error) {
	if s == "" {
		return model.DayOf(time.Now()), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return model.DayOf(t), nil
}
