// Package export serializes the tracking state for inspection or backup.
//
// The JSON form round-trips field-for-field with the persisted state blob;
// YAML and TOML are offered for human consumption and other tooling.
package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"rft/internal/recent"
)

// Format selects the export serialization.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ParseFormat validates a format string from the CLI.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatYAML, FormatTOML:
		return Format(s), nil
	case "":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown export format %q (json, yaml, toml)", s)
	}
}

// Options controls an export run.
type Options struct {
	Format   Format
	Compress bool
}

// Write serializes the state to w according to opts.
func Write(w io.Writer, st *recent.State, opts Options) error {
	if opts.Compress {
		gz := gzip.NewWriter(w)
		if err := writeUncompressed(gz, st, opts.Format); err != nil {
			gz.Close()
			return err
		}
		return gz.Close()
	}
	return writeUncompressed(w, st, opts.Format)
}

func writeUncompressed(w io.Writer, st *recent.State, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(st); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(st)
	case FormatJSON, "":
		data, err := json.MarshalIndent(st, "", "  ")
		if err != nil {
			return err
		}
		data = append(data, '\n')
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}
