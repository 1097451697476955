package main

import (
	"os"

	"github.com/spf13/cobra"

	"rft/internal/version"
)

var (
	// vaultFlag is the CLI --vault flag value
	vaultFlag string
)

var rootCmd = &cobra.Command{
	Use:   "rft",
	Short: "rft - recent files tracker",
	Long: `rft tracks the files you touch in a vault (a plain directory of notes or
documents) and keeps a short, deduplicated most-recently-used list. The list
is bounded, filtered by omitted path prefixes, and persisted across runs.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("rft version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&vaultFlag, "vault", "",
		"Vault root directory (default: current directory)")
}

// resolveVault determines the vault root from the --vault flag, the RFT_VAULT
// env var, or the working directory, in that order.
func resolveVault() (string, error) {
	if vaultFlag != "" {
		return vaultFlag, nil
	}
	if env := os.Getenv("RFT_VAULT"); env != "" {
		return env, nil
	}
	return os.Getwd()
}
