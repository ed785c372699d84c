package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(rmCmd)
}

var rmCmd = &cobra.Command{
	Use:   "rm <file>...",
	Short: "Stage files for removal and delete them from the working area",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRm,
}

func runRm(cmd *cobra.Command, args []string) error {
	repo, err := openRepo()
	if err != nil {
		return err
	}
	for _, path := range args {
		if err := repo.Remove(path); err != nil {
			return err
		}
	}
	return nil
}
