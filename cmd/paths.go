package cmd

import (
	"context"
	"fmt"

	"object-storage/core/utils"
	"object-storage/feature/bucketfs"

	"github.com/spf13/cobra"
)

// mkdirCmd represents the mkdir command
var mkdirCmd = &cobra.Command{
	Use:   "mkdir PATH...",
	Short: "Create directory markers",
	Args:  cobra.MinimumNArgs(1),
	RunE: withStore(func(ctx context.Context, cmd *cobra.Command, store *bucketfs.Store, args []string) error {
		return reportResults(cmd.OutOrStdout(), store.MakeDirectories(ctx, args))
	}),
}

// rmCmd represents the rm command
var rmCmd = &cobra.Command{
	Use:   "rm KEY...",
	Short: "Remove objects",
	Args:  cobra.MinimumNArgs(1),
	RunE: withStore(func(ctx context.Context, cmd *cobra.Command, store *bucketfs.Store, args []string) error {
		return reportResults(cmd.OutOrStdout(), store.RemoveAll(ctx, args))
	}),
}

// rmdirCmd represents the rmdir command
var rmdirCmd = &cobra.Command{
	Use:   "rmdir PREFIX...",
	Short: "Remove every object under a prefix",
	Long:  `Deletes every object whose key starts with PREFIX. The prefix is used as given: pass "logs/" to spare "logs-old/".`,
	Args:  cobra.MinimumNArgs(1),
	RunE: withStore(func(ctx context.Context, cmd *cobra.Command, store *bucketfs.Store, args []string) error {
		return reportResults(cmd.OutOrStdout(), store.RemoveDirectories(ctx, args))
	}),
}

// cpCmd represents the cp command
var cpCmd = &cobra.Command{
	Use:   "cp SRC DEST | cp SRC... DIR/",
	Short: "Copy objects server side",
	Long:  `With two arguments and a DEST without a trailing "/" SRC is copied to DEST. Otherwise every SRC is copied into the directory DIR keeping its base name.`,
	Args:  cobra.MinimumNArgs(2),
	RunE: withStore(func(ctx context.Context, cmd *cobra.Command, store *bucketfs.Store, args []string) error {
		srcs, dest := args[:len(args)-1], args[len(args)-1]
		if len(srcs) == 1 && !utils.IsDirKey(dest) {
			if err := store.Copy(ctx, srcs[0], dest); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", srcs[0], dest)
			return nil
		}
		return reportResults(cmd.OutOrStdout(), store.CopyInto(ctx, srcs, dest))
	}),
}

// mvCmd represents the mv command
var mvCmd = &cobra.Command{
	Use:   "mv SRC DEST | mv SRC... DIR/",
	Short: "Move objects (copy, confirm, delete)",
	Args:  cobra.MinimumNArgs(2),
	RunE: withStore(func(ctx context.Context, cmd *cobra.Command, store *bucketfs.Store, args []string) error {
		srcs, dest := args[:len(args)-1], args[len(args)-1]
		return reportResults(cmd.OutOrStdout(), store.MoveAll(ctx, planMoves(srcs, dest)))
	}),
}

// planMoves pairs each source with its destination. A single source moves
// to dest itself unless dest names a directory.
func planMoves(srcs []string, dest string) []bucketfs.Move {
	if len(srcs) == 1 && !utils.IsDirKey(dest) {
		return []bucketfs.Move{{Src: srcs[0], Dest: dest}}
	}
	moves := make([]bucketfs.Move, 0, len(srcs))
	for _, src := range srcs {
		moves = append(moves, bucketfs.Move{Src: src, Dest: utils.JoinKey(dest, utils.BaseName(src))})
	}
	return moves
}

func init() {
	RootCmd.AddCommand(mkdirCmd, rmCmd, rmdirCmd, cpCmd, mvCmd)
}
