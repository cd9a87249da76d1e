package state

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/five82/petdesk/internal/petapi"
	"github.com/five82/petdesk/internal/pets"
)

// ErrPending is returned when a delete for the same pet is already running.
var ErrPending = errors.New("delete already in progress")

// LocalStore is the fallback persistence used when the backend rejects a write.
type LocalStore interface {
	Append(in pets.Input) (pets.Pet, []pets.Pet, error)
	Remove(id int64) ([]pets.Pet, error)
}

// Log is the subset of the application logger the collection writes to.
type Log interface {
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
}

// Source identifies where the current collection came from.
type Source string

const (
	SourceNone    Source = ""
	SourceBackend Source = "backend"
	SourceSamples Source = "samples"
	SourceLocal   Source = "local"
)

// Options tunes a Collection. Zero values pick defaults.
type Options struct {
	NoticeDuration time.Duration
	Now            func() time.Time
	Log            Log
}

const defaultNoticeDuration = 5 * time.Second

// Outcome describes how an operation changed the collection.
type Outcome struct {
	Source Source   // source of the resulting collection
	Stale  bool     // superseded by a newer operation; nothing was applied
	Err    error    // backend failure that triggered a fallback
	Pet    pets.Pet // pet created by Add
}

// Fallback reports whether the backend failed and a fallback was applied.
func (o Outcome) Fallback() bool {
	return o.Err != nil && !o.Stale
}

// Snapshot is a copy of the collection state for rendering.
type Snapshot struct {
	Pets                []pets.Pet
	Offline             bool
	Source              Source
	LastError           error
	ConsecutiveFailures int
	LastUpdated         time.Time
	Pending             []int64
	Notices             []Notice
}

// IsPending reports whether a delete for id is in flight.
func (s Snapshot) IsPending(id int64) bool {
	for _, p := range s.Pending {
		if p == id {
			return true
		}
	}
	return false
}

// Collection owns the canonical pet list and reconciles it across the
// backend, the local store, and the sample data.
type Collection struct {
	gateway petapi.Gateway
	local   LocalStore
	log     Log
	now     func() time.Time

	noticeDuration time.Duration

	mu       sync.RWMutex
	pets     []pets.Pet
	offline  bool
	source   Source
	lastErr  error
	failures int
	updated  time.Time
	seq      uint64
	busy     int
	pending  map[int64]struct{}
	notices  map[NoticeKind]Notice
}

// New returns an empty collection backed by gateway and local.
func New(gateway petapi.Gateway, local LocalStore, opts Options) *Collection {
	c := &Collection{
		gateway:        gateway,
		local:          local,
		log:            opts.Log,
		now:            opts.Now,
		noticeDuration: opts.NoticeDuration,
		pets:           []pets.Pet{},
		pending:        make(map[int64]struct{}),
		notices:        make(map[NoticeKind]Notice),
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.noticeDuration <= 0 {
		c.noticeDuration = defaultNoticeDuration
	}
	return c
}

// Refresh replaces the collection with the backend's list. When the backend is
// unreachable the sample data is shown instead and the collection goes
// offline. The local store is not consulted here.
func (c *Collection) Refresh(ctx context.Context) Outcome {
	c.mu.Lock()
	c.seq++
	token := c.seq
	c.beginLoadingLocked("Loading pets...")
	c.mu.Unlock()

	list, err := c.gateway.List(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.endLoadingLocked()

	if token != c.seq {
		return Outcome{Stale: true, Err: err}
	}
	if err != nil && ctx.Err() != nil {
		// Caller gave up; leave the collection as it was.
		return Outcome{Stale: true, Err: err}
	}

	c.updated = c.now()
	if err != nil {
		c.pets = pets.Samples()
		c.offline = true
		c.source = SourceSamples
		c.lastErr = err
		c.failures++
		c.notifyLocked(NoticeError, "Backend not reachable. Using sample data.")
		c.notifyLocked(NoticeSuccess, "Loaded sample pets")
		c.warn("load pets failed, showing samples", zap.Error(err), zap.Int("consecutive_failures", c.failures))
		return Outcome{Source: SourceSamples, Err: err}
	}

	c.pets = pets.NormalizeAll(list)
	c.offline = false
	c.source = SourceBackend
	c.lastErr = nil
	c.failures = 0
	c.info("loaded pets", zap.Int("count", len(c.pets)))
	return Outcome{Source: SourceBackend}
}

// Add creates a pet on the backend and reloads the collection. If the backend
// rejects the write the pet is stored locally and the collection becomes the
// local store's contents, so ids stay unique. The returned error is non-nil
// only when the local fallback also failed.
func (c *Collection) Add(ctx context.Context, in pets.Input) (Outcome, error) {
	c.mu.Lock()
	c.beginLoadingLocked("Adding pet...")
	c.mu.Unlock()

	created, err := c.gateway.Create(ctx, in)
	if err == nil {
		c.mu.Lock()
		c.endLoadingLocked()
		c.notifyLocked(NoticeSuccess, "Added \""+created.Name+"\" successfully!")
		c.mu.Unlock()
		c.info("added pet", zap.Int64("id", created.ID), zap.String("name", created.Name))

		out := c.Refresh(ctx)
		out.Pet = created
		return out, nil
	}

	c.warn("add pet failed, saving locally", zap.Error(err))
	local, stored, lerr := c.local.Append(in)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.endLoadingLocked()
	c.notifyLocked(NoticeError, "Error connecting to backend: "+petapi.Reason(err))
	if lerr != nil {
		c.lastErr = lerr
		return Outcome{Err: err}, fmt.Errorf("save pet locally: %w", lerr)
	}

	c.pets = pets.NormalizeAll(stored)
	c.applyLocalLocked(err)
	c.notifyLocked(NoticeSuccess, "Added \""+local.Name+"\" to local storage")
	return Outcome{Source: SourceLocal, Err: err, Pet: local}, nil
}

// Delete removes a pet on the backend and reloads the collection. If the
// backend fails the pet is removed from the local store and the collection
// becomes the local store's contents.
func (c *Collection) Delete(ctx context.Context, id int64) (Outcome, error) {
	c.mu.Lock()
	if _, busy := c.pending[id]; busy {
		c.mu.Unlock()
		return Outcome{}, ErrPending
	}
	c.pending[id] = struct{}{}
	c.beginLoadingLocked("Deleting pet...")
	c.mu.Unlock()

	err := c.gateway.Remove(ctx, id)
	if err == nil {
		c.mu.Lock()
		delete(c.pending, id)
		c.endLoadingLocked()
		c.notifyLocked(NoticeSuccess, "Pet deleted successfully")
		c.mu.Unlock()
		c.info("deleted pet", zap.Int64("id", id))
		return c.Refresh(ctx), nil
	}

	c.warn("delete pet failed, removing locally", zap.Int64("id", id), zap.Error(err))
	remaining, lerr := c.local.Remove(id)

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pending, id)
	c.endLoadingLocked()
	c.notifyLocked(NoticeError, "Error deleting pet from backend: "+petapi.Reason(err))
	if lerr != nil {
		c.lastErr = lerr
		return Outcome{Err: err}, fmt.Errorf("remove pet locally: %w", lerr)
	}

	c.pets = pets.NormalizeAll(remaining)
	c.applyLocalLocked(err)
	return Outcome{Source: SourceLocal, Err: err}, nil
}

// LoadSamples replaces the collection with the sample data. The offline flag
// is left alone.
func (c *Collection) LoadSamples() Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pets = pets.Samples()
	c.source = SourceSamples
	c.seq++
	c.updated = c.now()
	c.notifyLocked(NoticeSuccess, "Loaded sample pets")
	return Outcome{Source: SourceSamples}
}

// Filter returns the pets matching query. An empty query returns everything.
func (c *Collection) Filter(query string) []pets.Pet {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := pets.Filter(c.pets, query)
	if out == nil {
		return []pets.Pet{}
	}
	return out
}

// Stats summarizes subset.
func (c *Collection) Stats(subset []pets.Pet) pets.Stats {
	return pets.Summarize(subset)
}

// Snapshot returns a copy of the current state.
func (c *Collection) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap := Snapshot{
		Pets:                pets.Clone(c.pets),
		Offline:             c.offline,
		Source:              c.source,
		ConsecutiveFailures: c.failures,
		LastUpdated:         c.updated,
		Notices:             c.activeNoticesLocked(),
	}
	if c.lastErr != nil {
		snap.LastError = fmt.Errorf("%w", c.lastErr)
	}
	if len(c.pending) > 0 {
		snap.Pending = make([]int64, 0, len(c.pending))
		for id := range c.pending {
			snap.Pending = append(snap.Pending, id)
		}
		sort.Slice(snap.Pending, func(i, j int) bool { return snap.Pending[i] < snap.Pending[j] })
	}
	return snap
}

// applyLocalLocked records a locally applied mutation. Bumping seq discards
// reads issued before it.
func (c *Collection) applyLocalLocked(cause error) {
	c.seq++
	c.source = SourceLocal
	c.lastErr = cause
	c.updated = c.now()
}

func (c *Collection) info(msg string, fields ...zap.Field) {
	if c.log != nil {
		c.log.Info(msg, fields...)
	}
}

func (c *Collection) warn(msg string, fields ...zap.Field) {
	if c.log != nil {
		c.log.Warn(msg, fields...)
	}
}
