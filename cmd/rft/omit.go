package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"rft/internal/errors"
)

var omitCmd = &cobra.Command{
	Use:   "omit",
	Short: "Manage omitted path prefixes",
	Long: `Omitted prefixes exclude parts of the vault from tracking. A file whose
path starts with any non-empty prefix is never tracked, and existing list
entries under a newly omitted prefix are removed.`,
}

var omitListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the configured omitted prefixes",
	RunE:  runOmitList,
}

var omitSetCmd = &cobra.Command{
	Use:   "set [file]",
	Short: "Replace the omitted prefixes, one per line",
	Long: `Replaces the omitted prefix set wholesale from a file, or from stdin when
no file (or "-") is given. One prefix per line; blank lines are kept but
never match anything. Entries the new set excludes are pruned immediately.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOmitSet,
}

func init() {
	omitCmd.AddCommand(omitListCmd)
	omitCmd.AddCommand(omitSetCmd)
	rootCmd.AddCommand(omitCmd)
}

func runOmitList(cmd *cobra.Command, args []string) error {
	env, err := setupEnv()
	if err != nil {
		return err
	}

	prefixes := env.store.OmittedPaths()
	if len(prefixes) == 0 {
		fmt.Println("no omitted prefixes")
		return nil
	}
	for _, p := range prefixes {
		fmt.Println(p)
	}
	return nil
}

func runOmitSet(cmd *cobra.Command, args []string) error {
	env, err := setupEnv()
	if err != nil {
		return err
	}

	var r io.Reader = os.Stdin
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return errors.New(errors.InternalError, "could not read prefix file", err, nil)
		}
		defer f.Close()
		r = f
	}

	lines, err := readLines(r)
	if err != nil {
		return errors.New(errors.InternalError, "could not read prefixes", err, nil)
	}

	removed := env.store.SetOmittedPaths(lines)

	fmt.Printf("omitted prefixes set (%d lines)\n", len(lines))
	if len(removed) > 0 {
		fmt.Printf("pruned %d entries:\n", len(removed))
		for _, f := range removed {
			fmt.Printf("  %s\n", f.Path)
		}
	}
	return nil
}

// readLines splits input into logical lines, keeping blank ones so line
// positions survive a round trip through `omit list`.
func readLines(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return []string{}, nil
	}

	var lines []string
	sc := bufio.NewScanner(strings.NewReader(string(data)))
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}
