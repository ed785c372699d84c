package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(resetCmd)
}

var resetCmd = &cobra.Command{
	Use:   "reset <commit>",
	Short: "Move the current branch to a commit and restore its snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runReset,
}

func runReset(cmd *cobra.Command, args []string) error {
	repo, err := openRepo()
	if err != nil {
		return err
	}
	id, err := repo.ResolveCommitPrefix(args[0])
	if err != nil {
		return err
	}
	return repo.Reset(id)
}
