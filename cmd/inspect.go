package cmd

import (
	"context"
	"fmt"
	"time"

	"object-storage/feature/bucketfs"

	"github.com/spf13/cobra"
)

var existsDir bool

// existsCmd represents the exists command
var existsCmd = &cobra.Command{
	Use:   "exists PATH",
	Short: "Check whether a key or directory exists",
	Long:  `Prints true or false. With --dir the path is checked as a directory marker (PATH/).`,
	Args:  cobra.ExactArgs(1),
	RunE: withStore(func(ctx context.Context, cmd *cobra.Command, store *bucketfs.Store, args []string) error {
		var ok bool
		var err error
		if existsDir {
			ok, err = store.DirectoryExists(ctx, args[0])
		} else {
			ok, err = store.FileExists(ctx, args[0])
		}
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), map[string]any{"path": args[0], "exists": ok})
		}
		fmt.Fprintln(cmd.OutOrStdout(), ok)
		return nil
	}),
}

// lsCmd represents the ls command
var lsCmd = &cobra.Command{
	Use:   "ls [PATH]",
	Short: "List one directory level",
	Args:  cobra.MaximumNArgs(1),
	RunE: withStore(func(ctx context.Context, cmd *cobra.Command, store *bucketfs.Store, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		entries, err := store.ListOneLevel(ctx, path)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), entries)
		}
		for _, e := range entries {
			if e.IsDir {
				fmt.Fprintf(cmd.OutOrStdout(), "%12s  %-20s  %s\n", "DIR", "", e.Key)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%12d  %-20s  %s\n", e.Size, e.LastModified.Format(time.DateTime), e.Key)
		}
		return nil
	}),
}

// duCmd represents the du command
var duCmd = &cobra.Command{
	Use:   "du [PREFIX]",
	Short: "Summarize object count and size under a prefix",
	Args:  cobra.MaximumNArgs(1),
	RunE: withStore(func(ctx context.Context, cmd *cobra.Command, store *bucketfs.Store, args []string) error {
		prefix := ""
		if len(args) == 1 {
			prefix = args[0]
		}
		entries, err := store.Usage(ctx, prefix)
		if err != nil {
			return err
		}
		usage := bucketfs.Summarize(entries)
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), usage)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Objects: %d\nDirectories: %d\nBytes: %d\n", usage.Objects, usage.Directories, usage.Bytes)
		return nil
	}),
}

func init() {
	existsCmd.Flags().BoolVar(&existsDir, "dir", false, "Check a directory marker")
	RootCmd.AddCommand(existsCmd, lsCmd, duCmd)
}
