// Package recent implements the bounded, deduplicated most-recently-used
// list of tracked files, together with the omitted-prefix filter.
//
// The Store exclusively owns the tracking state for the process lifetime.
// Every mutation triggers a best-effort save through the Saver; save
// failures are logged and never surfaced to the caller.
package recent

import (
	"path"
	"path/filepath"
	"strings"

	"rft/internal/logging"
)

// FileRef identifies a trackable file within the vault.
type FileRef struct {
	Path     string `json:"path" yaml:"path" toml:"path"`
	Basename string `json:"basename" yaml:"basename" toml:"basename"`
}

// NewFileRef builds a FileRef from a slash- or OS-separated vault path.
func NewFileRef(p string) FileRef {
	p = filepath.ToSlash(p)
	return FileRef{
		Path:     p,
		Basename: path.Base(p),
	}
}

// DefaultMaxLength is the list cap used when no persisted value exists.
const DefaultMaxLength = 5

// State is the persisted unit: the MRU list, the omitted prefixes, and the
// list cap. Serialized as {"recentFiles":..., "omittedPaths":..., "maxLength":...}.
type State struct {
	RecentFiles  []FileRef `json:"recentFiles" yaml:"recentFiles" toml:"recentFiles"`
	OmittedPaths []string  `json:"omittedPaths" yaml:"omittedPaths" toml:"omittedPaths"`
	MaxLength    int       `json:"maxLength" yaml:"maxLength" toml:"maxLength"`
}

// DefaultState returns the first-run state.
func DefaultState() *State {
	return &State{
		RecentFiles:  []FileRef{},
		OmittedPaths: []string{},
		MaxLength:    DefaultMaxLength,
	}
}

// Saver persists the state after a mutation. Implementations are best
// effort; the Store does not retry.
type Saver interface {
	Save(state *State) error
}

// Store holds the ordered MRU list and the omitted-prefix set.
type Store struct {
	state  *State
	saver  Saver
	logger *logging.Logger
}

// NewStore creates a Store owning the given state. A nil state starts from
// defaults. A negative MaxLength in a loaded blob is clamped to zero.
func NewStore(state *State, saver Saver, logger *logging.Logger) *Store {
	if state == nil {
		state = DefaultState()
	}
	if state.RecentFiles == nil {
		state.RecentFiles = []FileRef{}
	}
	if state.OmittedPaths == nil {
		state.OmittedPaths = []string{}
	}
	if state.MaxLength < 0 {
		state.MaxLength = 0
	}
	if logger == nil {
		logger = logging.NewLogger(logging.Config{Format: logging.HumanFormat, Level: logging.InfoLevel})
	}
	return &Store{
		state:  state,
		saver:  saver,
		logger: logger,
	}
}

// entryKey returns the identity key used for dedup and active-row matching.
// Keyed on the display basename, so two files with the same name in
// different folders share one list entry. Change this to f.Path to switch
// the whole store to full-path identity.
func entryKey(f FileRef) string {
	return f.Basename
}

// SameEntry reports whether two refs resolve to the same list entry.
func SameEntry(a, b FileRef) bool {
	return entryKey(a) == entryKey(b)
}

// Touch marks f as just-accessed: any entry with the same identity key is
// removed, f is inserted at the head, and the tail is trimmed to MaxLength.
// Touching the current head is a no-op in effect but still re-saves.
func (s *Store) Touch(f FileRef) {
	key := entryKey(f)

	entries := make([]FileRef, 0, len(s.state.RecentFiles)+1)
	entries = append(entries, f)
	for _, e := range s.state.RecentFiles {
		if entryKey(e) != key {
			entries = append(entries, e)
		}
	}
	if len(entries) > s.state.MaxLength {
		entries = entries[:s.state.MaxLength]
	}
	s.state.RecentFiles = entries

	s.save()
}

// ShouldTrack reports whether f is trackable: false iff some non-empty
// omitted prefix is a prefix of f.Path. Empty prefixes never match, so an
// empty line in the configuration cannot exclude everything.
func (s *Store) ShouldTrack(f FileRef) bool {
	for _, p := range s.state.OmittedPaths {
		if p == "" {
			continue
		}
		if strings.HasPrefix(f.Path, p) {
			return false
		}
	}
	return true
}

// PruneExcluded removes entries that no longer satisfy ShouldTrack.
// Idempotent; persists only when something was removed.
func (s *Store) PruneExcluded() {
	if removed := s.prune(); len(removed) > 0 {
		s.logger.Info("pruned excluded entries", map[string]interface{}{
			"removed": len(removed),
		})
		s.save()
	}
}

// prune drops untrackable entries and returns what was removed.
func (s *Store) prune() []FileRef {
	kept := make([]FileRef, 0, len(s.state.RecentFiles))
	var removed []FileRef
	for _, e := range s.state.RecentFiles {
		if s.ShouldTrack(e) {
			kept = append(kept, e)
		} else {
			removed = append(removed, e)
		}
	}
	s.state.RecentFiles = kept
	return removed
}

// SetOmittedPaths replaces the omitted-prefix set wholesale, one prefix per
// logical line, then prunes entries the new set excludes. Blank lines are
// kept as empty entries, which never match. Returns the pruned entries.
func (s *Store) SetOmittedPaths(lines []string) []FileRef {
	prefixes := make([]string, len(lines))
	for i, line := range lines {
		prefixes[i] = strings.TrimSuffix(line, "\r")
	}
	s.state.OmittedPaths = prefixes

	removed := s.prune()
	s.save()
	return removed
}

// SetMaxLength updates the list cap (n >= 0; negative values clamp to 0)
// and re-trims the list immediately.
func (s *Store) SetMaxLength(n int) {
	if n < 0 {
		n = 0
	}
	s.state.MaxLength = n
	if len(s.state.RecentFiles) > n {
		s.state.RecentFiles = s.state.RecentFiles[:n]
	}
	s.save()
}

// Files returns a copy of the MRU list, most recent first.
func (s *Store) Files() []FileRef {
	out := make([]FileRef, len(s.state.RecentFiles))
	copy(out, s.state.RecentFiles)
	return out
}

// OmittedPaths returns a copy of the configured prefixes.
func (s *Store) OmittedPaths() []string {
	out := make([]string, len(s.state.OmittedPaths))
	copy(out, s.state.OmittedPaths)
	return out
}

// MaxLength returns the current list cap.
func (s *Store) MaxLength() int {
	return s.state.MaxLength
}

// save persists the state through the Saver, best effort.
func (s *Store) save() {
	if s.saver == nil {
		return
	}
	if err := s.saver.Save(s.state); err != nil {
		s.logger.Error("failed to save tracking state", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
