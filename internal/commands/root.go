package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kept-dev/kept/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "kept",
		Short:   "Track avoided purchases and the interest they earn",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("dir", ".", "ledger directory")
	rootCmd.PersistentFlags().Bool("force", false, "load best-effort past malformed stored events")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newSpendCommand())
	rootCmd.AddCommand(newAvoidCommand())
	rootCmd.AddCommand(newRateCommand())
	rootCmd.AddCommand(newSummaryCommand())
	rootCmd.AddCommand(newEventsCommand())
	rootCmd.AddCommand(newEditCommand())
	rootCmd.AddCommand(newRemoveCommand())
	rootCmd.AddCommand(newExportCommand())
	rootCmd.AddCommand(newImportCommand())

	return rootCmd
}
