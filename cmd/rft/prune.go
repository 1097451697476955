package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove entries under omitted prefixes",
	Long: `Removes recent-list entries that fall under a currently omitted prefix.
Normally unnecessary, since changing the prefixes prunes automatically, but
useful after editing state.json by hand. Idempotent.`,
	RunE: runPrune,
}

func init() {
	rootCmd.AddCommand(pruneCmd)
}

func runPrune(cmd *cobra.Command, args []string) error {
	env, err := setupEnv()
	if err != nil {
		return err
	}

	before := len(env.store.Files())
	env.store.PruneExcluded()
	after := len(env.store.Files())

	if before == after {
		fmt.Println("nothing to prune")
	} else {
		fmt.Printf("pruned %d entries\n", before-after)
	}
	return nil
}
