package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"devicehub-api/internal/config"
	"devicehub-api/internal/store"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	err := run(ctx, os.Stdout)
	cancel()
	if err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, out io.Writer) error {
	cfg, err := config.LoadAndValidate()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	st, err := store.Open(ctx, cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	defer st.Close()

	fmt.Fprintf(out, "Connected to %s database\n", cfg.DBDriver)

	applied, err := st.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	for _, name := range applied {
		fmt.Fprintf(out, "Applied %s\n", name)
	}
	if len(applied) == 0 {
		fmt.Fprintln(out, "Schema is up to date")
		return nil
	}
	fmt.Fprintln(out, "All migrations applied successfully")
	return nil
}
