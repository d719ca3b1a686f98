package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"devicehub-api/internal/config"
	"devicehub-api/internal/store"
	"devicehub-api/pkg/importer"
)

var errUsage = errors.New("usage: import_excel --file=path.xlsx [--mapping=mapping.yaml] [--dry-run] [--max-errors=50]")

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
			fmt.Println(errUsage)
			os.Exit(1)
		}
		log.Fatal(err)
	}
}

// run imports one workbook and prints the summary to out. The store is
// closed on every path.
func run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("import_excel", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var (
		filePath    = fs.String("file", "", "path to the .xlsx workbook")
		mappingPath = fs.String("mapping", "", "YAML column mapping (default: embedded)")
		dryRun      = fs.Bool("dry-run", false, "count changes without writing")
		maxErrors   = fs.Int("max-errors", 50, "stop after this many row errors")
	)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if *filePath == "" {
		return errUsage
	}

	cfg, err := config.LoadAndValidate()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	st, err := store.Open(ctx, cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer st.Close()

	if cfg.AutoMigrate {
		if _, err := st.Migrate(ctx); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	file, err := os.Open(*filePath)
	if err != nil {
		return fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(out, "Importing assets from %s (dry_run=%v)\n", *filePath, *dryRun)
	fmt.Fprintln(out, strings.Repeat("=", 60))

	summary, err := importer.ImportExcel(ctx, st, file, importer.ImportOptions{
		MappingPath: *mappingPath,
		DryRun:      *dryRun,
		MaxErrors:   *maxErrors,
	})
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Fprintln(out, "\n"+strings.Repeat("=", 60))
	fmt.Fprintln(out, "IMPORT SUMMARY")
	fmt.Fprintln(out, strings.Repeat("=", 60))

	fmt.Fprintf(out, "Total inserted: %d\n", summary.Inserted)
	fmt.Fprintf(out, "Total updated: %d\n", summary.Updated)
	fmt.Fprintf(out, "Total skipped: %d\n", summary.Skipped)
	fmt.Fprintf(out, "Total errors: %d\n", summary.Errors)
	fmt.Fprintf(out, "Dry run: %v\n", summary.DryRun)

	for _, sheet := range summary.Sheets {
		fmt.Fprintf(out, "  %s: inserted=%d, updated=%d, skipped=%d, errors=%d\n",
			sheet.Name, sheet.Inserted, sheet.Updated, sheet.Skipped, sheet.Errors)
		for _, sample := range sheet.Samples {
			fmt.Fprintf(out, "      Row %d: %s\n", sample.Row, sample.Message)
		}
	}
	return nil
}
