package bridge

import (
	"context"
	"testing"
	"time"

	"rft/internal/recent"
)

// chanSource feeds a fixed set of activations.
type chanSource struct {
	ch chan Activation
}

func newChanSource() *chanSource {
	return &chanSource{ch: make(chan Activation, 16)}
}

func (s *chanSource) Events() <-chan Activation { return s.ch }

// recordingRedrawer captures each redraw request.
type recordingRedrawer struct {
	calls  int
	files  []recent.FileRef
	active recent.FileRef
}

func (r *recordingRedrawer) Redraw(files []recent.FileRef, active recent.FileRef) {
	r.calls++
	r.files = files
	r.active = active
}

func runBridge(t *testing.T, store *recent.Store, src *chanSource, redrawer Redrawer) {
	t.Helper()
	b := New(store, src, redrawer, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	done := make(chan struct{})
	go func() {
		b.Run(ctx)
		close(done)
	}()
	close(src.ch)
	<-done
}

func TestBridge_TracksAndRedraws(t *testing.T) {
	store := recent.NewStore(nil, nil, nil)
	src := newChanSource()
	redrawer := &recordingRedrawer{}

	src.ch <- NewActivation(recent.NewFileRef("a.md"))
	src.ch <- NewActivation(recent.NewFileRef("b.md"))
	runBridge(t, store, src, redrawer)

	files := store.Files()
	if len(files) != 2 || files[0].Path != "b.md" {
		t.Fatalf("list = %+v, want [b.md a.md]", files)
	}
	if redrawer.calls != 2 {
		t.Errorf("redraw calls = %d, want 2", redrawer.calls)
	}
	if redrawer.active.Path != "b.md" {
		t.Errorf("active = %q, want b.md", redrawer.active.Path)
	}
}

func TestBridge_DiscardsOmitted(t *testing.T) {
	st := recent.DefaultState()
	st.OmittedPaths = []string{"daily/"}
	store := recent.NewStore(st, nil, nil)
	src := newChanSource()
	redrawer := &recordingRedrawer{}

	src.ch <- NewActivation(recent.NewFileRef("daily/2024-01-01.md"))
	runBridge(t, store, src, redrawer)

	if got := len(store.Files()); got != 0 {
		t.Errorf("list length = %d, want 0 (omitted activation discarded)", got)
	}
	if redrawer.calls != 0 {
		t.Errorf("redraw calls = %d, want 0 (no redraw for discarded event)", redrawer.calls)
	}
}

func TestBridge_ProcessesInArrivalOrder(t *testing.T) {
	store := recent.NewStore(nil, nil, nil)
	src := newChanSource()

	for _, p := range []string{"a.md", "b.md", "c.md", "a.md"} {
		src.ch <- NewActivation(recent.NewFileRef(p))
	}
	runBridge(t, store, src, nil)

	files := store.Files()
	want := []string{"a.md", "c.md", "b.md"}
	if len(files) != len(want) {
		t.Fatalf("list = %+v, want %v", files, want)
	}
	for i := range want {
		if files[i].Path != want[i] {
			t.Fatalf("list[%d] = %q, want %q", i, files[i].Path, want[i])
		}
	}
}

func TestBridge_NilRedrawer(t *testing.T) {
	store := recent.NewStore(nil, nil, nil)
	src := newChanSource()

	src.ch <- NewActivation(recent.NewFileRef("a.md"))
	// Must not panic without a redrawer.
	runBridge(t, store, src, nil)

	if got := len(store.Files()); got != 1 {
		t.Errorf("list length = %d, want 1", got)
	}
}

func TestNewActivation_UniqueIDs(t *testing.T) {
	a := NewActivation(recent.NewFileRef("a.md"))
	b := NewActivation(recent.NewFileRef("a.md"))

	if a.ID == "" || b.ID == "" {
		t.Fatal("activation IDs should not be empty")
	}
	if a.ID == b.ID {
		t.Error("activation IDs should be unique")
	}
}
