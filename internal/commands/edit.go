package commands

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/kept-dev/kept/internal/ledger"
	"github.com/kept-dev/kept/internal/model"
)

func newEditCommand() *cobra.Command {
	var dateStr, amountStr, category, description, rateStr string

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change fields of an existing event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var update ledger.Update

			if cmd.Flags().Changed("date") {
				date, err := parseDateFlag(dateStr)
				if err != nil {
					return err
				}
				update.Date = &date
			}
			if cmd.Flags().Changed("amount") {
				amount, err := decimal.NewFromString(amountStr)
				if err != nil {
					return fmt.Errorf("invalid amount %q: %w", amountStr, err)
				}
				update.Amount = &amount
			}
			if cmd.Flags().Changed("category") {
				c := model.Category(strings.ToLower(category))
				update.Category = &c
			}
			if cmd.Flags().Changed("description") {
				update.Description = &description
			}
			if cmd.Flags().Changed("rate") {
				rate, err := decimal.NewFromString(rateStr)
				if err != nil {
					return fmt.Errorf("invalid rate %q: %w", rateStr, err)
				}
				update.NewRate = &rate
			}

			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			if _, err := s.store.UpdateEvent(args[0], update); err != nil {
				return err
			}
			if err := s.save(); err != nil {
				return err
			}

			if e, ok := s.store.EventByID(args[0]); ok {
				fmt.Println(formatEvent(e))
			} else {
				fmt.Printf("No event with id %s\n", args[0])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "new date as YYYY-MM-DD")
	cmd.Flags().StringVar(&amountStr, "amount", "", "new amount")
	cmd.Flags().StringVar(&category, "category", "", "new category")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringVar(&rateStr, "rate", "", "new rate (rate-change events only)")

	return cmd
}

func newRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Delete an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			s.store.DeleteEvent(args[0])
			if err := s.save(); err != nil {
				return err
			}
			fmt.Printf("Removed %s\n", args[0])
			return nil
		},
	}
}
