package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kept-dev/kept/internal/model"
)

func newEventsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "events [YYYY-MM]",
		Short: "List ledger events, optionally for one month",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}

			events := s.store.Events()
			if len(args) == 1 {
				month, err := model.ParseMonthKey(args[0])
				if err != nil {
					return err
				}
				events = s.store.EventsForMonth(month)
			}

			for _, e := range events {
				fmt.Println(formatEvent(e))
			}
			return nil
		},
	}
}

func formatEvent(e model.Event) string {
	date := e.Date.Format("2006-01-02")
	switch e.Kind {
	case model.KindPurchase:
		return fmt.Sprintf("%s  spend  %10s  %-13s %s  [%s]", date, e.Amount, e.Category, e.Description, e.ID)
	case model.KindAvoidedPurchase:
		return fmt.Sprintf("%s  avoid  %10s  %-13s %s  [%s]", date, e.Amount, e.Category, e.Description, e.ID)
	case model.KindRateChange:
		return fmt.Sprintf("%s  rate   %9s%%  [%s]", date, e.NewRate, e.ID)
	case model.KindInterestApplication:
		return fmt.Sprintf("%s  posted %10s saved / %s missed  [%s]", date, e.PendingOnAvoided, e.PendingOnSpent, e.ID)
	}
	return fmt.Sprintf("%s  %s  [%s]", date, e.Kind, e.ID)
}
