package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"rft/internal/errors"
	"rft/internal/export"
	"rft/internal/recent"
)

var (
	exportFormat   string
	exportCompress bool
	exportOutput   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the tracking state",
	Long: `Serializes the tracking state (recent list, omitted prefixes, list cap)
to stdout or a file. The JSON form round-trips with .rft/state.json; yaml
and toml are offered for other tooling. --compress gzips the output.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Export format: json, yaml, or toml")
	exportCmd.Flags().BoolVar(&exportCompress, "compress", false, "Gzip the output")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to a file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}

	env, err := setupEnv()
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return errors.New(errors.InternalError, "could not create output file", err, nil)
		}
		defer f.Close()
		w = f
	}

	st := &recent.State{
		RecentFiles:  env.store.Files(),
		OmittedPaths: env.store.OmittedPaths(),
		MaxLength:    env.store.MaxLength(),
	}

	if err := export.Write(w, st, export.Options{Format: format, Compress: exportCompress}); err != nil {
		return errors.New(errors.InternalError, "export failed", err, nil)
	}

	if exportOutput != "" {
		fmt.Printf("exported to %s\n", exportOutput)
	}
	return nil
}
