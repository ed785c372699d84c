package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/systemshift/lit/internal/vcs"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a repository in the current directory",
	Long: `Initialize a lit repository in the current directory.

Creates the .lit/ data directory with an object store, a deterministic
root commit, and a default branch pointing at it.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	repo, err := vcs.Init(cwd)
	if err != nil {
		return err
	}
	fmt.Printf("Initialized empty lit repository in %s\n", repo.Root())
	return nil
}
