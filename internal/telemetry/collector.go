package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Collector owns the telemetry history for one process.
//
// A nil *Collector is valid and behaves as a disabled one.
type Collector struct {
	enabled    bool
	onComplete func(Record)
	store      *Store
	logger     *slog.Logger
	now        func() time.Time

	mu      sync.Mutex
	history []Record
}

// CollectorOption configures a Collector.
type CollectorOption func(*Collector)

// WithOnComplete registers fn to receive every completed record.
func WithOnComplete(fn func(Record)) CollectorOption {
	return func(c *Collector) { c.onComplete = fn }
}

// WithStore persists completed records to s.
func WithStore(s *Store) CollectorOption {
	return func(c *Collector) { c.store = s }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) CollectorOption {
	return func(c *Collector) { c.now = now }
}

// WithLogger sets the logger used for persistence failures.
func WithLogger(l *slog.Logger) CollectorOption {
	return func(c *Collector) { c.logger = l }
}

// NewCollector returns a collector. When enabled is false every session it
// starts is inert.
func NewCollector(enabled bool, opts ...CollectorOption) *Collector {
	c := &Collector{enabled: enabled, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Enabled reports whether sessions record anything.
func (c *Collector) Enabled() bool {
	return c != nil && c.enabled
}

// StartSession opens a session for one search. query is the caller's raw
// query, kind the search type (e.g. "grep") and target the path searched.
func (c *Collector) StartSession(query, kind, target string) Session {
	if !c.Enabled() {
		return nopSession{}
	}
	now := c.now()
	return &session{
		collector: c,
		started:   now,
		record: Record{
			ID:         uuid.NewString(),
			Timestamp:  now,
			Query:      query,
			SearchType: kind,
			TargetPath: target,
			Pattern:    query,
		},
	}
}

// History returns a copy of all completed records, oldest first.
func (c *Collector) History() []Record {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Record, len(c.history))
	for i, r := range c.history {
		out[i] = r.clone()
	}
	return out
}

// Len returns the number of completed records.
func (c *Collector) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.history)
}

// Store returns the persistent store, or nil.
func (c *Collector) Store() *Store {
	if c == nil {
		return nil
	}
	return c.store
}

// finish appends r to the history and hands it to the store and callback.
// Store failures are logged; telemetry never fails a search.
func (c *Collector) finish(r Record) {
	c.mu.Lock()
	c.history = append(c.history, r.clone())
	c.mu.Unlock()

	if c.store != nil {
		if err := c.store.Save(context.Background(), r); err != nil {
			c.logger.Warn("failed to persist search session", "id", r.ID, "error", err)
		}
	}
	if c.onComplete != nil {
		c.onComplete(r.clone())
	}
}

// Lookup returns the session whose ID equals or starts with id, searching
// the store when there is one and this process's history otherwise.
func (c *Collector) Lookup(ctx context.Context, id string) (Record, error) {
	if c == nil || id == "" {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if c.store != nil {
		return c.store.Get(ctx, id)
	}

	var found []Record
	for _, r := range c.History() {
		if r.ID == id {
			return r, nil
		}
		if strings.HasPrefix(r.ID, id) {
			found = append(found, r)
		}
	}
	switch len(found) {
	case 0:
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	case 1:
		return found[0], nil
	}
	return Record{}, fmt.Errorf("%w: %s", ErrAmbiguous, id)
}

// Recent returns up to limit records, newest first, from the store when
// there is one and this process's history otherwise. limit <= 0 means all.
func (c *Collector) Recent(ctx context.Context, limit int) ([]Record, error) {
	if c == nil {
		return nil, nil
	}
	if c.store != nil {
		return c.store.List(ctx, limit)
	}
	h := c.History()
	slices.Reverse(h)
	if limit > 0 && len(h) > limit {
		h = h[:limit]
	}
	return h, nil
}
