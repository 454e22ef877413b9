// Package persist saves and restores the task collection as one JSON array
// stored under a single key.
package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/nhle/tasktracker/internal/model"
	"github.com/nhle/tasktracker/internal/store"
)

// errMissing marks an absent key.
var errMissing = errors.New("key not found")

// ReadError describes why a stored collection could not be used.
// Load logs it and falls back to an empty collection.
type ReadError struct {
	Key string
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading tasks from %q: %v", e.Key, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// IsReadError reports whether err is (or wraps) a ReadError.
func IsReadError(err error) bool {
	var re *ReadError
	return errors.As(err, &re)
}

// Gateway moves the whole task collection to and from one store key.
type Gateway struct {
	kv  store.KV
	key string
	log logrus.FieldLogger
}

// New returns a Gateway over kv. An empty key selects model.DefaultStorageKey.
func New(kv store.KV, key string, log logrus.FieldLogger) *Gateway {
	if key == "" {
		key = model.DefaultStorageKey
	}
	return &Gateway{
		kv:  kv,
		key: key,
		log: log.WithField("key", key),
	}
}

// Key returns the store key the collection lives under.
func (g *Gateway) Key() string { return g.key }

// Load returns the persisted collection in stored order. It never fails:
// a missing key, an unreadable store, malformed JSON or a payload that is
// not an array all yield an empty collection. Array elements that do not
// decode as a task are dropped and the rest are kept.
func (g *Gateway) Load(ctx context.Context) []model.Task {
	tasks, skipped, err := g.read(ctx)
	if err != nil {
		if errors.Is(err, errMissing) {
			g.log.Debug("no stored tasks")
		} else {
			g.log.WithError(err).Warn("discarding stored tasks")
		}
		return []model.Task{}
	}
	if skipped > 0 {
		g.log.WithField("skipped", skipped).Warn("dropping unreadable task records")
	}
	g.log.WithField("count", len(tasks)).Debug("loaded tasks")
	return tasks
}

func (g *Gateway) read(ctx context.Context) ([]model.Task, int, error) {
	raw, ok, err := g.kv.Get(ctx, g.key)
	if err != nil {
		return nil, 0, &ReadError{Key: g.key, Err: err}
	}
	if !ok {
		return nil, 0, &ReadError{Key: g.key, Err: errMissing}
	}

	var records []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, 0, &ReadError{Key: g.key, Err: fmt.Errorf("decoding json: %w", err)}
	}
	// "null" decodes into a nil slice without error.
	if records == nil {
		return nil, 0, &ReadError{Key: g.key, Err: errors.New("payload is not an array")}
	}

	tasks := make([]model.Task, 0, len(records))
	skipped := 0
	for i, rec := range records {
		var t *model.Task
		if err := json.Unmarshal(rec, &t); err != nil || t == nil {
			g.log.WithError(err).WithField("index", i).Debug("unreadable task record")
			skipped++
			continue
		}
		tasks = append(tasks, *t)
	}
	return tasks, skipped, nil
}

// Save writes the full collection as a JSON array in a single Set.
func (g *Gateway) Save(ctx context.Context, tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encoding tasks: %w", err)
	}
	if err := g.kv.Set(ctx, g.key, string(data)); err != nil {
		return fmt.Errorf("saving tasks: %w", err)
	}
	g.log.WithField("count", len(tasks)).Debug("saved tasks")
	return nil
}

// Clear removes the stored collection.
func (g *Gateway) Clear(ctx context.Context) error {
	if err := g.kv.Remove(ctx, g.key); err != nil {
		return fmt.Errorf("clearing tasks: %w", err)
	}
	return nil
}
