package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/systemshift/lit/internal/vcs"
)

func init() {
	rootCmd.AddCommand(commitCmd)
}

var commitCmd = &cobra.Command{
	Use:   "commit <message>",
	Short: "Record the staged changes as a new commit",
	Args:  cobra.ExactArgs(1),
	RunE:  runCommit,
}

func runCommit(cmd *cobra.Command, args []string) error {
	repo, err := openRepo()
	if err != nil {
		return err
	}
	id, err := repo.CommitStaged(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("[%s] %s\n", shortID(vcs.FormatCID(id)), args[0])
	return nil
}

// shortID abbreviates a base32 commit id for display.
func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
