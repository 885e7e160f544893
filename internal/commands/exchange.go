package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kept-dev/kept/internal/exchange"
)

func newExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export [FILE]",
		Short: "Write the ledger as a versioned JSON document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}

			doc := exchange.Export(s.store.Events(), s.store.DefaultRate(), time.Now())
			out := os.Stdout
			if len(args) == 1 {
				f, err := os.Create(args[0])
				if err != nil {
					return fmt.Errorf("creating export file: %w", err)
				}
				defer f.Close()
				out = f
			}
			return exchange.Encode(out, doc)
		},
	}
}

func newImportCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Merge events from an export document or CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening import file: %w", err)
			}
			defer f.Close()

			s, err := openSession(cmd)
			if err != nil {
				return err
			}

			var added int
			switch format {
			case "json":
				doc, err := exchange.Decode(f)
				if err != nil {
					return err
				}
				added, _ = s.store.ImportEvents(doc.Events)
			default:
				parser := exchange.DefaultRegistry().Get(format)
				if parser == nil {
					return fmt.Errorf("unknown import format %q", format)
				}
				parsed, err := parser.Parse(f)
				if err != nil {
					return err
				}
				added, _ = s.store.ImportEvents(parsed)
			}

			if err := s.save(); err != nil {
				return err
			}
			fmt.Printf("Imported %d events\n", added)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "import format (json, transactions)")
	return cmd
}
