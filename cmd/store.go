package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"object-storage/core/config"
	"object-storage/core/logger"
	"object-storage/feature/bucketfs"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// storeFunc is the body of a command that needs an open store.
type storeFunc func(ctx context.Context, cmd *cobra.Command, store *bucketfs.Store, args []string) error

// withStore loads configuration, opens the store for the duration of fn and
// closes it on every path.
func withStore(fn storeFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer logg.Sync()

		store, err := bucketfs.Open(cfg.Storage, logg, bucketfs.WithTransferConfig(cfg.Transfer))
		if err != nil {
			return err
		}
		defer store.Close()

		logg.Debug("Store opened", zap.String("bucket", store.Bucket()), zap.String("endpoint", cfg.Storage.Endpoint))
		return fn(cmd.Context(), cmd, store, args)
	}
}

// printJSON writes v indented to w.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// reportResults prints batch results and fails when any item failed.
func reportResults(w io.Writer, results []bucketfs.Result) error {
	if jsonOutput {
		if err := printJSON(w, results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			line := fmt.Sprintf("%-18s %s", r.Status, r.Path)
			if r.Target != "" {
				line += " -> " + r.Target
			}
			if r.Deleted > 0 {
				line += fmt.Sprintf(" (%d deleted)", r.Deleted)
			}
			if r.Error != "" && r.Status == bucketfs.StatusFailed {
				line += ": " + r.Error
			}
			fmt.Fprintln(w, line)
		}
	}

	if failed := bucketfs.Failed(results); len(failed) > 0 {
		return fmt.Errorf("%d of %d items did not succeed", len(failed), len(results))
	}
	return nil
}
