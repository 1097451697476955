package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"rft/internal/bridge"
	"rft/internal/config"
)

func TestDebouncer_CoalescesBursts(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	defer d.Stop()

	var fires int32
	for i := 0; i < 5; i++ {
		d.Trigger("a.md", func() { atomic.AddInt32(&fires, 1) })
	}

	time.Sleep(200 * time.Millisecond)

	if got := atomic.LoadInt32(&fires); got != 1 {
		t.Errorf("fires = %d, want 1 (burst coalesced)", got)
	}
}

func TestDebouncer_IndependentKeys(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	defer d.Stop()

	var fires int32
	d.Trigger("a.md", func() { atomic.AddInt32(&fires, 1) })
	d.Trigger("b.md", func() { atomic.AddInt32(&fires, 1) })

	time.Sleep(200 * time.Millisecond)

	if got := atomic.LoadInt32(&fires); got != 2 {
		t.Errorf("fires = %d, want 2 (keys debounce independently)", got)
	}
}

func TestDebouncer_Stop(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)

	var fires int32
	d.Trigger("a.md", func() { atomic.AddInt32(&fires, 1) })
	d.Stop()

	time.Sleep(150 * time.Millisecond)

	if got := atomic.LoadInt32(&fires); got != 0 {
		t.Errorf("fires = %d, want 0 after Stop", got)
	}
}

func watcherConfig() config.WatcherConfig {
	return config.WatcherConfig{
		DebounceMs:     30,
		IgnorePatterns: []string{".*", ".rft/**", "*.tmp"},
	}
}

// waitActivation reads one activation or fails after the deadline.
func waitActivation(t *testing.T, events <-chan bridge.Activation, deadline time.Duration) bridge.Activation {
	t.Helper()
	select {
	case ev := <-events:
		return ev
	case <-time.After(deadline):
		t.Fatal("timed out waiting for activation")
		return bridge.Activation{}
	}
}

func TestWatcher_EmitsActivationOnWrite(t *testing.T) {
	vault := t.TempDir()
	w, err := New(vault, watcherConfig(), nil, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	if err := os.WriteFile(filepath.Join(vault, "note.md"), []byte("hello"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	ev := waitActivation(t, w.Events(), 3*time.Second)
	if ev.File.Path != "note.md" {
		t.Errorf("activation path = %q, want note.md", ev.File.Path)
	}
	if ev.ID == "" {
		t.Error("activation should carry an event ID")
	}
}

func TestWatcher_IgnoresFilteredPaths(t *testing.T) {
	vault := t.TempDir()
	w, err := New(vault, watcherConfig(), nil, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	if err := os.WriteFile(filepath.Join(vault, "scratch.tmp"), []byte("x"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case ev := <-w.Events():
		t.Errorf("unexpected activation for ignored path: %q", ev.File.Path)
	case <-time.After(300 * time.Millisecond):
		// expected: nothing emitted
	}
}

func TestWatcher_ClosesEventsOnCancel(t *testing.T) {
	vault := t.TempDir()
	w, err := New(vault, watcherConfig(), nil, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	cancel()
	<-done

	if _, ok := <-w.Events(); ok {
		t.Error("events channel should be closed after Run returns")
	}
}

type fakeRecorder struct {
	upserts int32
	removes int32
}

func (r *fakeRecorder) Upsert(rel string, size int64, mod time.Time) error {
	atomic.AddInt32(&r.upserts, 1)
	return nil
}

func (r *fakeRecorder) Remove(rel string) error {
	atomic.AddInt32(&r.removes, 1)
	return nil
}

func TestWatcher_KeepsRecorderCurrent(t *testing.T) {
	vault := t.TempDir()
	rec := &fakeRecorder{}
	w, err := New(vault, watcherConfig(), rec, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	path := filepath.Join(vault, "note.md")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	waitActivation(t, w.Events(), 3*time.Second)

	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if atomic.LoadInt32(&rec.removes) > 0 {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}

	if atomic.LoadInt32(&rec.upserts) == 0 {
		t.Error("recorder should see upserts for created files")
	}
	if atomic.LoadInt32(&rec.removes) == 0 {
		t.Error("recorder should see removes for deleted files")
	}
}
