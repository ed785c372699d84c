// Package main provides the lit CLI entry point.
package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/systemshift/lit/internal/vcs"
)

// Version is set at build time via ldflags.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "lit",
	Short: "Local version control with content-addressed storage",
	Long: `lit tracks whole-file snapshots in a local, content-addressed object
store. Commits form a history graph with branch references, a staging
area, and three-way merges with explicit conflict markers.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Version = Version
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("lit: ")
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

// openRepo locates and opens the repository enclosing the working directory.
func openRepo() (*vcs.Repository, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	root, err := vcs.FindRoot(cwd)
	if err != nil {
		return nil, err
	}
	return vcs.Open(root)
}
