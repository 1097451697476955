package state

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"rft/internal/config"
	"rft/internal/recent"
)

func writeState(t *testing.T, vaultRoot, content string) {
	t.Helper()
	dir := filepath.Join(vaultRoot, config.Dir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, Filename), []byte(content), 0644); err != nil {
		t.Fatalf("write state: %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	st := Load(t.TempDir(), nil)

	if st.MaxLength != recent.DefaultMaxLength {
		t.Errorf("MaxLength = %d, want default %d", st.MaxLength, recent.DefaultMaxLength)
	}
	if len(st.RecentFiles) != 0 || len(st.OmittedPaths) != 0 {
		t.Error("defaults should be empty list and empty omissions")
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	vault := t.TempDir()
	writeState(t, vault, "{ not json")

	st := Load(vault, nil)

	if st.MaxLength != recent.DefaultMaxLength {
		t.Errorf("MaxLength = %d, want default after malformed blob", st.MaxLength)
	}
}

func TestLoad_PartialBlob(t *testing.T) {
	tests := []struct {
		name          string
		blob          string
		wantMaxLength int
		wantFiles     int
	}{
		{
			name:          "only recentFiles",
			blob:          `{"recentFiles":[{"path":"a.md","basename":"a.md"}]}`,
			wantMaxLength: recent.DefaultMaxLength,
			wantFiles:     1,
		},
		{
			name:          "explicit zero maxLength survives",
			blob:          `{"maxLength":0}`,
			wantMaxLength: 0,
			wantFiles:     0,
		},
		{
			name:          "only maxLength",
			blob:          `{"maxLength":9}`,
			wantMaxLength: 9,
			wantFiles:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vault := t.TempDir()
			writeState(t, vault, tt.blob)

			st := Load(vault, nil)

			if st.MaxLength != tt.wantMaxLength {
				t.Errorf("MaxLength = %d, want %d", st.MaxLength, tt.wantMaxLength)
			}
			if len(st.RecentFiles) != tt.wantFiles {
				t.Errorf("len(RecentFiles) = %d, want %d", len(st.RecentFiles), tt.wantFiles)
			}
		})
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	vault := t.TempDir()

	original := &recent.State{
		RecentFiles: []recent.FileRef{
			{Path: "notes/c.md", Basename: "c.md"},
			{Path: "notes/b.md", Basename: "b.md"},
		},
		OmittedPaths: []string{"daily/", ""},
		MaxLength:    7,
	}

	if err := Save(vault, original); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded := Load(vault, nil)

	if !reflect.DeepEqual(loaded, original) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, original)
	}
}

func TestSave_CreatesDirectory(t *testing.T) {
	vault := t.TempDir()

	if err := Save(vault, recent.DefaultState()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if _, err := os.Stat(Path(vault)); err != nil {
		t.Errorf("state file not created: %v", err)
	}
}

func TestFileSaver_DrivesStoreMutations(t *testing.T) {
	vault := t.TempDir()
	store := recent.NewStore(Load(vault, nil), FileSaver{VaultRoot: vault}, nil)

	store.Touch(recent.NewFileRef("notes/x.md"))

	loaded := Load(vault, nil)
	if len(loaded.RecentFiles) != 1 || loaded.RecentFiles[0].Path != "notes/x.md" {
		t.Errorf("persisted list = %+v, want the touched file", loaded.RecentFiles)
	}
}
