package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(checkoutCmd)
}

var checkoutCmd = &cobra.Command{
	Use:   "checkout <branch> | -- <file> | <commit> -- <file>",
	Short: "Switch branches or restore files",
	Long: `Three forms:

  lit checkout <branch>             switch to a branch
  lit checkout -- <file>            restore a file from the head commit
  lit checkout <commit> -- <file>   restore a file from a commit (id prefix ok)`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runCheckout,
}

func runCheckout(cmd *cobra.Command, args []string) error {
	repo, err := openRepo()
	if err != nil {
		return err
	}
	// ArgsLenAtDash distinguishes the three forms: no "--" is a branch
	// switch, "-- <file>" restores from head, "<commit> -- <file>" restores
	// from a specific commit.
	switch dash := cmd.ArgsLenAtDash(); {
	case dash < 0 && len(args) == 1:
		return repo.CheckoutBranch(args[0])
	case dash == 0 && len(args) == 1:
		return repo.CheckoutHeadFile(args[0])
	case dash == 1 && len(args) == 2:
		id, err := repo.ResolveCommitPrefix(args[0])
		if err != nil {
			return err
		}
		return repo.CheckoutFile(id, args[1])
	default:
		return fmt.Errorf("unrecognized checkout form; see 'lit checkout --help'")
	}
}
