package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/systemshift/lit/internal/vcs"
)

func init() {
	rootCmd.AddCommand(mergeCmd)
}

var mergeCmd = &cobra.Command{
	Use:   "merge <branch>",
	Short: "Merge a branch into the current branch",
	Args:  cobra.ExactArgs(1),
	RunE:  runMerge,
}

func runMerge(cmd *cobra.Command, args []string) error {
	repo, err := openRepo()
	if err != nil {
		return err
	}
	result, err := repo.Merge(args[0])
	if err != nil {
		return err
	}
	switch result.Outcome {
	case vcs.AlreadyAncestor:
		fmt.Println("Given branch is an ancestor of the current branch.")
	case vcs.FastForwarded:
		fmt.Println("Current branch fast-forwarded.")
	case vcs.Merged:
		fmt.Printf("[%s] Merged %s.\n", shortID(vcs.FormatCID(result.Commit)), args[0])
		if result.Conflicted {
			fmt.Println("Encountered a merge conflict.")
		}
	}
	return nil
}
