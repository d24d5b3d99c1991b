package cmd

import (
	"fmt"
	"os"

	"object-storage/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var jsonOutput bool

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "object-storage",
	Short: "Filesystem verbs for S3-compatible buckets",
	Long: `object-storage treats an S3-compatible bucket like a filesystem.
Directories are zero-byte marker objects whose key ends in "/".
Use the subcommands for one-off operations or "start" to serve them over HTTP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Use the application's standard logger for error reporting
		// We default to console format to match user expectations (CLI tool)
		// We use "debug" level configuration to get ISO8601 timestamps (DevConfig) instead of Epoch (ProdConfig)
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print results as JSON")
}
