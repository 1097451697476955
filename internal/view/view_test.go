package view

import (
	stderrors "errors"
	"testing"

	"rft/internal/recent"
)

func refs(paths ...string) []recent.FileRef {
	out := make([]recent.FileRef, len(paths))
	for i, p := range paths {
		out[i] = recent.NewFileRef(p)
	}
	return out
}

func TestBuildRows_OrderAndLabels(t *testing.T) {
	files := refs("notes/c.md", "notes/b.md", "a.md")

	rows := BuildRows(files, recent.FileRef{}, nil, nil)

	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want 3", len(rows))
	}
	wantLabels := []string{"c.md", "b.md", "a.md"}
	for i, want := range wantLabels {
		if rows[i].Label != want {
			t.Errorf("rows[%d].Label = %q, want %q", i, rows[i].Label, want)
		}
	}
}

func TestBuildRows_ActiveMark(t *testing.T) {
	files := refs("notes/c.md", "notes/b.md")

	tests := []struct {
		name       string
		active     recent.FileRef
		wantActive []bool
	}{
		{"active matches one row", recent.NewFileRef("elsewhere/b.md"), []bool{false, true}},
		{"active matches none", recent.NewFileRef("gone.md"), []bool{false, false}},
		{"zero active matches none", recent.FileRef{}, []bool{false, false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := BuildRows(files, tt.active, nil, nil)

			marked := 0
			for i, row := range rows {
				if row.Active != tt.wantActive[i] {
					t.Errorf("rows[%d].Active = %v, want %v", i, row.Active, tt.wantActive[i])
				}
				if row.Active {
					marked++
				}
			}
			if marked > 1 {
				t.Errorf("marked %d rows active, want at most 1", marked)
			}
		})
	}
}

func TestRowOpen_ResolvesAndNavigates(t *testing.T) {
	files := refs("notes/b.md")
	var opened recent.FileRef
	lookup := func(basename string) (recent.FileRef, bool) {
		if basename == "b.md" {
			return recent.NewFileRef("notes/b.md"), true
		}
		return recent.FileRef{}, false
	}
	open := func(f recent.FileRef) error {
		opened = f
		return nil
	}

	rows := BuildRows(files, recent.FileRef{}, lookup, open)
	if err := rows[0].Open(); err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if opened.Path != "notes/b.md" {
		t.Errorf("opened = %q, want notes/b.md", opened.Path)
	}
}

func TestRowOpen_StaleRowIsSilentNoOp(t *testing.T) {
	files := refs("deleted.md")
	lookup := func(basename string) (recent.FileRef, bool) { return recent.FileRef{}, false }
	open := func(f recent.FileRef) error {
		t.Fatal("open should not be called for an unresolved row")
		return nil
	}

	rows := BuildRows(files, recent.FileRef{}, lookup, open)

	if err := rows[0].Open(); err != nil {
		t.Errorf("Open() on stale row = %v, want nil", err)
	}
}

func TestRowOpen_PropagatesOpenError(t *testing.T) {
	files := refs("b.md")
	wantErr := stderrors.New("no editor")
	lookup := func(string) (recent.FileRef, bool) { return recent.NewFileRef("b.md"), true }
	open := func(recent.FileRef) error { return wantErr }

	rows := BuildRows(files, recent.FileRef{}, lookup, open)

	if err := rows[0].Open(); !stderrors.Is(err, wantErr) {
		t.Errorf("Open() error = %v, want %v", err, wantErr)
	}
}

func TestRowOpen_NilCollaborators(t *testing.T) {
	rows := BuildRows(refs("a.md"), recent.FileRef{}, nil, nil)

	if err := rows[0].Open(); err != nil {
		t.Errorf("Open() with nil collaborators = %v, want nil", err)
	}
}
