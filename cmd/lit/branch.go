package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(branchCmd)
	rootCmd.AddCommand(rmBranchCmd)
}

var branchCmd = &cobra.Command{
	Use:   "branch <name>",
	Short: "Create a branch at the current head without switching to it",
	Args:  cobra.ExactArgs(1),
	RunE:  runBranch,
}

var rmBranchCmd = &cobra.Command{
	Use:   "rm-branch <name>",
	Short: "Delete a branch reference (its commits are kept)",
	Args:  cobra.ExactArgs(1),
	RunE:  runRmBranch,
}

func runBranch(cmd *cobra.Command, args []string) error {
	repo, err := openRepo()
	if err != nil {
		return err
	}
	return repo.Branch(args[0])
}

func runRmBranch(cmd *cobra.Command, args []string) error {
	repo, err := openRepo()
	if err != nil {
		return err
	}
	return repo.RemoveBranch(args[0])
}
