package cmd

import (
	"context"
	"fmt"

	"object-storage/feature/bucketfs"

	"github.com/spf13/cobra"
)

var (
	putRecursive bool
	putDir       bool
	getRecursive bool
)

// putCmd represents the put command
var putCmd = &cobra.Command{
	Use:   "put PREFIX FILE... | put --dir [-r] PREFIX DIR",
	Short: "Upload local files",
	Long: `Uploads each FILE to PREFIX/<file name>. With --dir the files directly in DIR are uploaded
under PREFIX keeping their relative paths; add -r to include subdirectories.`,
	Args: cobra.MinimumNArgs(2),
	RunE: withStore(func(ctx context.Context, cmd *cobra.Command, store *bucketfs.Store, args []string) error {
		prefix := args[0]
		if putDir || putRecursive {
			if len(args) != 2 {
				return fmt.Errorf("directory upload takes exactly one directory, got %d", len(args)-1)
			}
			if err := store.UploadDirectory(ctx, prefix, args[1], putRecursive); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", args[1], prefix)
			return nil
		}
		return reportResults(cmd.OutOrStdout(), store.UploadFiles(ctx, prefix, args[1:]))
	}),
}

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get DEST_DIR KEY... | get -r PREFIX DEST_DIR",
	Short: "Download objects",
	Long: `Downloads each KEY into DEST_DIR named after the last segment of the key.
With -r every object under PREFIX is written to DEST_DIR/<key>.`,
	Args: cobra.MinimumNArgs(2),
	RunE: withStore(func(ctx context.Context, cmd *cobra.Command, store *bucketfs.Store, args []string) error {
		if getRecursive {
			if len(args) != 2 {
				return fmt.Errorf("recursive download takes PREFIX and DEST_DIR, got %d arguments", len(args))
			}
			if err := store.DownloadDirectory(ctx, args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", args[0], args[1])
			return nil
		}
		return reportResults(cmd.OutOrStdout(), store.DownloadFiles(ctx, args[1:], args[0]))
	}),
}

func init() {
	putCmd.Flags().BoolVar(&putDir, "dir", false, "Upload a directory")
	putCmd.Flags().BoolVarP(&putRecursive, "recursive", "r", false, "Upload a directory tree (implies --dir)")
	getCmd.Flags().BoolVarP(&getRecursive, "recursive", "r", false, "Download every object under a prefix")
	RootCmd.AddCommand(putCmd, getCmd)
}
