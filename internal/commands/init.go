package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/kept-dev/kept/internal/config"
	"github.com/kept-dev/kept/internal/statefile"
)

func newInitCommand() *cobra.Command {
	var rate string
	var reset bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a kept ledger in the target directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cmd.Flags().GetString("dir")
			if err != nil {
				return err
			}
			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runInit(absDir, rate, reset)
		},
	}

	cmd.Flags().StringVar(&rate, "rate", "3.5", "default annual interest rate")
	cmd.Flags().BoolVar(&reset, "reset", false, "overwrite an existing ledger")

	return cmd
}

func runInit(dir, rate string, reset bool) error {
	defaultRate, err := decimal.NewFromString(rate)
	if err != nil {
		return fmt.Errorf("invalid rate %q: %w", rate, err)
	}
	if defaultRate.IsNegative() {
		return fmt.Errorf("rate must not be negative, got %s", defaultRate)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	cfg := config.Default()
	cfgPath := filepath.Join(dir, config.FileName)
	dataPath := filepath.Join(dir, cfg.DataFile)

	if !reset {
		if _, err := os.Stat(dataPath); err == nil {
			return fmt.Errorf("%s already exists (use --reset to start over)", dataPath)
		}
	}

	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	if err := statefile.Save(dataPath, statefile.State{DefaultInterestRate: defaultRate}); err != nil {
		return fmt.Errorf("writing state: %w", err)
	}

	fmt.Printf("Initialized kept ledger at %s (default rate %s%%)\n", dir, defaultRate)
	return nil
}
