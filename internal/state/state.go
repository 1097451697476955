// Package state persists the tracking state blob to .rft/state.json.
//
// Loading is lenient: an absent or malformed file yields the defaults, and a
// partial blob keeps defaults for the missing fields. Saving is best effort.
package state

import (
	"encoding/json"
	"os"
	"path/filepath"

	"rft/internal/config"
	"rft/internal/logging"
	"rft/internal/recent"
)

// Filename is the state blob filename under the .rft directory.
const Filename = "state.json"

// Path returns the state file path for a vault root.
func Path(vaultRoot string) string {
	return filepath.Join(vaultRoot, config.Dir, Filename)
}

// Load reads the state blob for a vault. Any field absent from the blob
// keeps its default, so an explicit "maxLength": 0 is honored while a
// missing maxLength stays at the default cap. A missing or unparseable
// file degrades to the defaults.
func Load(vaultRoot string, logger *logging.Logger) *recent.State {
	st := recent.DefaultState()

	data, err := os.ReadFile(Path(vaultRoot))
	if err != nil {
		if !os.IsNotExist(err) && logger != nil {
			logger.Warn("could not read state file, using defaults", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return st
	}

	// Unmarshal over the defaults-initialized struct: present fields
	// overwrite, absent fields keep their defaults.
	if err := json.Unmarshal(data, st); err != nil {
		if logger != nil {
			logger.Warn("state file is malformed, using defaults", map[string]interface{}{
				"path":  Path(vaultRoot),
				"error": err.Error(),
			})
		}
		return recent.DefaultState()
	}

	if st.RecentFiles == nil {
		st.RecentFiles = []recent.FileRef{}
	}
	if st.OmittedPaths == nil {
		st.OmittedPaths = []string{}
	}
	return st
}

// Save writes the state blob, creating the .rft directory if needed.
func Save(vaultRoot string, st *recent.State) error {
	dir := filepath.Join(vaultRoot, config.Dir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(Path(vaultRoot), data, 0644)
}

// FileSaver adapts Save to the store's Saver interface.
type FileSaver struct {
	VaultRoot string
}

// Save implements recent.Saver.
func (f FileSaver) Save(st *recent.State) error {
	return Save(f.VaultRoot, st)
}
