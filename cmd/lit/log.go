package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/systemshift/lit/internal/vcs"
)

func init() {
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(globalLogCmd)
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show the current branch's history, newest first",
	Args:  cobra.NoArgs,
	RunE:  runLog,
}

var globalLogCmd = &cobra.Command{
	Use:   "global-log",
	Short: "Show every commit ever made, in no particular order",
	Args:  cobra.NoArgs,
	RunE:  runGlobalLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	repo, err := openRepo()
	if err != nil {
		return err
	}
	entries, err := repo.Log()
	if err != nil {
		return err
	}
	printEntries(entries)
	return nil
}

func runGlobalLog(cmd *cobra.Command, args []string) error {
	repo, err := openRepo()
	if err != nil {
		return err
	}
	entries, err := repo.GlobalLog()
	if err != nil {
		return err
	}
	printEntries(entries)
	return nil
}

func printEntries(entries []vcs.LogEntry) {
	for _, e := range entries {
		fmt.Println("===")
		fmt.Printf("commit %s\n", vcs.FormatCID(e.ID))
		if mergeParent, ok := e.Commit.MergeParentCID(); ok {
			parent, _ := e.Commit.ParentCID()
			fmt.Printf("Merge: %s %s\n",
				shortID(vcs.FormatCID(parent)), shortID(vcs.FormatCID(mergeParent)))
		}
		fmt.Printf("Date: %s\n", e.Commit.Timestamp.Local().Format("Mon Jan 2 15:04:05 2006 -0700"))
		fmt.Println(e.Commit.Message)
		fmt.Println()
	}
}
