package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show branches, staged changes, and untracked files",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	repo, err := openRepo()
	if err != nil {
		return err
	}
	st, err := repo.Status()
	if err != nil {
		return err
	}

	fmt.Println("=== Branches ===")
	for _, branch := range st.Branches {
		if branch == st.Current {
			fmt.Printf("*%s\n", branch)
		} else {
			fmt.Println(branch)
		}
	}

	fmt.Println("\n=== Staged Files ===")
	for _, path := range st.Staged {
		fmt.Println(path)
	}

	fmt.Println("\n=== Removed Files ===")
	for _, path := range st.Removed {
		fmt.Println(path)
	}

	fmt.Println("\n=== Untracked Files ===")
	for _, path := range st.Untracked {
		fmt.Println(path)
	}
	return nil
}
