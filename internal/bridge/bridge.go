// Package bridge connects an activation event source to the recent store
// and the view layer.
//
// Events are consumed by a single goroutine in arrival order; each event's
// store mutation and save completes before the next event is read, so there
// is no interleaving to reason about.
package bridge

import (
	"context"
	"time"

	"github.com/google/uuid"

	"rft/internal/logging"
	"rft/internal/recent"
)

// Activation is the single inbound event type: a file became active.
type Activation struct {
	ID   string
	File recent.FileRef
	At   time.Time
}

// NewActivation builds an activation for f with a fresh event ID.
func NewActivation(f recent.FileRef) Activation {
	return Activation{
		ID:   uuid.New().String(),
		File: f,
		At:   time.Now(),
	}
}

// Source delivers activation events. The channel is closed when the source
// shuts down.
type Source interface {
	Events() <-chan Activation
}

// Redrawer is asked to re-render after every accepted activation. It
// receives the full list (most recent first) and the now-active file.
type Redrawer interface {
	Redraw(files []recent.FileRef, active recent.FileRef)
}

// Bridge routes activations into the store and requests redraws.
type Bridge struct {
	store    *recent.Store
	source   Source
	redrawer Redrawer // optional
	logger   *logging.Logger
}

// New creates a bridge. The redrawer may be nil (headless operation).
func New(store *recent.Store, source Source, redrawer Redrawer, logger *logging.Logger) *Bridge {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{Format: logging.HumanFormat, Level: logging.InfoLevel})
	}
	return &Bridge{
		store:    store,
		source:   source,
		redrawer: redrawer,
		logger:   logger,
	}
}

// Run consumes the source until the context is cancelled or the source
// channel closes. Blocking call; run it on its own goroutine.
func (b *Bridge) Run(ctx context.Context) {
	events := b.source.Events()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			b.handle(ev)
		}
	}
}

// handle applies one activation: filter, touch, redraw.
func (b *Bridge) handle(ev Activation) {
	if !b.store.ShouldTrack(ev.File) {
		b.logger.Debug("activation discarded by omitted prefix", map[string]interface{}{
			"event": ev.ID,
			"path":  ev.File.Path,
		})
		return
	}

	b.store.Touch(ev.File)

	b.logger.Debug("activation recorded", map[string]interface{}{
		"event": ev.ID,
		"path":  ev.File.Path,
	})

	if b.redrawer != nil {
		b.redrawer.Redraw(b.store.Files(), ev.File)
	}
}
