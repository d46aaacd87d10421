package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	centcli "github.com/mwhite/centsible/internal/cli"
	"github.com/mwhite/centsible/internal/importer"
	"github.com/mwhite/centsible/internal/ofx"
)

func importOFXCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-ofx [files...]",
		Short: "Import transactions from OFX/QFX files",
		Long: `Parse one or more OFX/QFX statement files downloaded from your bank and
import their transactions. Each transaction is categorized as it lands.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImportOFX,
	}

	cmd.Flags().String("source", "", "source label stored on imported transactions (default: file name)")

	return cmd
}

func runImportOFX(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	sourceFlag, _ := cmd.Flags().GetString("source")

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	parser := ofx.NewParser()
	totalImported := 0

	for _, path := range args {
		file, openErr := os.Open(path) // #nosec G304 -- user-supplied statement path
		if openErr != nil {
			return fmt.Errorf("failed to open %s: %w", path, openErr)
		}

		records, parseErr := parser.ParseFile(file)
		_ = file.Close()
		if parseErr != nil {
			return fmt.Errorf("failed to parse %s: %w", path, parseErr)
		}

		if len(records) == 0 {
			fmt.Println(centcli.FormatWarning(fmt.Sprintf("No transactions found in %s", path)))
			continue
		}

		source := sourceFlag
		if source == "" {
			source = filepath.Base(path)
		}

		var bar *progressbar.ProgressBar
		created, ingestErr := importer.Ingest(ctx, store, records, source, func(_, total int) {
			if bar == nil {
				bar = centcli.NewImportProgressBar(total, os.Stdout)
			}
			_ = bar.Add(1)
		})
		totalImported += len(created)
		if ingestErr != nil {
			fmt.Println(centcli.FormatWarning(fmt.Sprintf(
				"Import of %s stopped after %d transactions", path, len(created))))
			return ingestErr
		}

		fmt.Println(centcli.FormatSuccess(fmt.Sprintf(
			"Imported %d transactions from %s", len(created), path)))
	}

	fmt.Println(centcli.FormatTitle(fmt.Sprintf("Done, %d transactions imported", totalImported)))
	return nil
}
