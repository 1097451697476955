package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rft/internal/recent"
)

var touchCmd = &cobra.Command{
	Use:   "touch <path>",
	Short: "Record a file as just-accessed",
	Long: `Marks a vault-relative path as just-accessed: the file moves to the head
of the recent list (or is inserted, evicting the oldest entry when the list
is full). Paths under an omitted prefix are silently discarded.`,
	Args: cobra.ExactArgs(1),
	RunE: runTouch,
}

func init() {
	rootCmd.AddCommand(touchCmd)
}

func runTouch(cmd *cobra.Command, args []string) error {
	env, err := setupEnv()
	if err != nil {
		return err
	}

	f := recent.NewFileRef(args[0])
	if !env.store.ShouldTrack(f) {
		env.logger.Info("path is under an omitted prefix, not tracked", map[string]interface{}{
			"path": f.Path,
		})
		return nil
	}

	env.store.Touch(f)
	fmt.Printf("tracked %s\n", f.Path)
	return nil
}
