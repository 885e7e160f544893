package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSummaryCommand() *cobra.Command {
	var history bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show this month and all-time totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			proj := s.store.Projection()

			cm := proj.CurrentMonth
			fmt.Printf("%s\n", cm.Month)
			fmt.Printf("  avoided   %s (%d)\n", cm.AvoidedTotal, cm.AvoidedCount)
			fmt.Printf("  spent     %s (%d)\n", cm.PurchasesTotal, cm.PurchaseCount)
			fmt.Printf("  pending interest: %s saved / %s missed\n", proj.PendingOnAvoided, proj.PendingOnSpent)
			fmt.Printf("  rate      %s%%\n", proj.CurrentRate)

			at := proj.AllTime
			fmt.Printf("All time\n")
			fmt.Printf("  saved     %s (incl. interest)\n", at.SavedTotal)
			fmt.Printf("  spent     %s\n", at.SpentTotal)
			fmt.Printf("  missed interest: %s\n", at.MissedInterest)

			if history {
				fmt.Printf("History\n")
				for _, m := range proj.MonthlyHistory {
					fmt.Printf("  %s  avoided %s  spent %s  interest %s/%s\n",
						m.Month, m.AvoidedTotal, m.PurchasesTotal, m.AppliedOnAvoided, m.AppliedOnSpent)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&history, "history", false, "include every month on record")
	return cmd
}
