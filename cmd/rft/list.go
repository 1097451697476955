package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rft/internal/export"
	"rft/internal/recent"
)

var (
	listFormat string
	listActive string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the recent files list",
	Long: `Prints the recent list, most recent first. Plain output shows one row per
entry with the basename and path; --active marks the row matching the given
file. Structured formats (json, yaml, toml) emit the full tracking state.`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listFormat, "format", "plain", "Output format: plain, json, yaml, or toml")
	listCmd.Flags().StringVar(&listActive, "active", "", "Vault-relative path to mark as the active row")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	env, err := setupEnv()
	if err != nil {
		return err
	}

	if listFormat != "plain" {
		format, err := export.ParseFormat(listFormat)
		if err != nil {
			return err
		}
		st := &recent.State{
			RecentFiles:  env.store.Files(),
			OmittedPaths: env.store.OmittedPaths(),
			MaxLength:    env.store.MaxLength(),
		}
		return export.Write(os.Stdout, st, export.Options{Format: format})
	}

	files := env.store.Files()
	if len(files) == 0 {
		fmt.Println("no recent files")
		return nil
	}

	active := recent.NewFileRef(listActive)
	for _, f := range files {
		mark := " "
		if listActive != "" && recent.SameEntry(f, active) {
			mark = "*"
		}
		fmt.Printf("%s %-30s %s\n", mark, f.Basename, f.Path)
	}
	return nil
}
