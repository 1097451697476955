// Package view projects the recent store state into row descriptors.
//
// The concrete UI (terminal list, plain listing) consumes rows; this layer
// knows nothing about rendering surfaces. Rows are rebuilt in full on every
// call, list sizes are bounded by the store's cap.
package view

import (
	"rft/internal/recent"
)

// LookupFunc resolves a basename against the full file universe, returning
// at most one match.
type LookupFunc func(basename string) (recent.FileRef, bool)

// OpenFunc navigates to a resolved file.
type OpenFunc func(f recent.FileRef) error

// Row is one clickable entry in the rendered list.
type Row struct {
	Label  string
	Path   string
	Active bool
	Open   func() error
}

// BuildRows produces one row per entry in list order (most recent first).
// Exactly the row matching the active file's identity is marked active; if
// none matches, no row is marked. A row's Open resolves its label against
// the file universe at click time and navigates if found; a label that no
// longer resolves (file deleted or renamed since the render) is a silent
// no-op.
func BuildRows(files []recent.FileRef, active recent.FileRef, lookup LookupFunc, open OpenFunc) []Row {
	rows := make([]Row, len(files))
	for i, f := range files {
		f := f
		rows[i] = Row{
			Label:  f.Basename,
			Path:   f.Path,
			Active: recent.SameEntry(f, active),
			Open: func() error {
				if lookup == nil || open == nil {
					return nil
				}
				resolved, ok := lookup(f.Basename)
				if !ok {
					return nil
				}
				return open(resolved)
			},
		}
	}
	return rows
}
