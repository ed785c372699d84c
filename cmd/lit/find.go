package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/systemshift/lit/internal/vcs"
)

func init() {
	rootCmd.AddCommand(findCmd)
}

var findCmd = &cobra.Command{
	Use:   "find <message>",
	Short: "Print the ids of all commits with the given message",
	Args:  cobra.ExactArgs(1),
	RunE:  runFind,
}

func runFind(cmd *cobra.Command, args []string) error {
	repo, err := openRepo()
	if err != nil {
		return err
	}
	ids, err := repo.Find(args[0])
	if err != nil {
		return err
	}
	for _, id := range ids {
		fmt.Println(vcs.FormatCID(id))
	}
	return nil
}
