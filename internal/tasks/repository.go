// Package tasks owns the in-memory task collection and applies every
// mutation to it, persisting the full collection after each change.
package tasks

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nhle/tasktracker/internal/idgen"
	"github.com/nhle/tasktracker/internal/logging"
	"github.com/nhle/tasktracker/internal/model"
)

// Gateway loads and saves the whole collection.
type Gateway interface {
	Load(ctx context.Context) []model.Task
	Save(ctx context.Context, tasks []model.Task) error
}

// IDGenerator produces ids for new tasks.
type IDGenerator interface {
	Generate() string
}

// NewTask holds the caller input for Create.
type NewTask struct {
	Topic       string
	Description string
	Priority    model.Priority
	Status      model.Status
}

// Patch holds the fields to change in Update. Nil fields keep their value.
type Patch struct {
	Topic       *string
	Description *string
	Priority    *model.Priority
	Status      *model.Status
}

// Repository holds the task collection in insertion order.
//
// It is not safe for concurrent use; callers serialize access (the TUI
// calls it only from its update loop).
type Repository struct {
	tasks   []model.Task
	gateway Gateway
	ids     IDGenerator
	now     func() time.Time
	log     logrus.FieldLogger
}

// Option configures a Repository.
type Option func(*Repository)

// WithIDGenerator overrides the id source.
func WithIDGenerator(g IDGenerator) Option {
	return func(r *Repository) { r.ids = g }
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// WithLogger sets the logger. The default discards output.
func WithLogger(log logrus.FieldLogger) Option {
	return func(r *Repository) { r.log = log }
}

// Open creates a Repository and loads the persisted collection.
func Open(ctx context.Context, gw Gateway, opts ...Option) *Repository {
	r := &Repository{
		gateway: gw,
		ids:     idgen.New(),
		now:     time.Now,
		log:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.tasks = gw.Load(ctx)
	r.log.WithField("count", len(r.tasks)).Info("task repository opened")
	return r
}

// List returns a copy of the collection in insertion order.
func (r *Repository) List() []model.Task {
	return slices.Clone(r.tasks)
}

// Len returns the number of tasks.
func (r *Repository) Len() int {
	return len(r.tasks)
}

// Get returns the task with id.
func (r *Repository) Get(id string) (model.Task, bool) {
	i := r.index(id)
	if i < 0 {
		return model.Task{}, false
	}
	return r.tasks[i], true
}

// Create validates input, appends a new task and persists the collection.
func (r *Repository) Create(ctx context.Context, in NewTask) (model.Task, error) {
	topic := strings.TrimSpace(in.Topic)
	if topic == "" {
		return model.Task{}, &ValidationError{Field: "topic", Reason: "must not be empty"}
	}
	if !in.Priority.Valid() {
		return model.Task{}, &ValidationError{Field: "priority", Reason: fmt.Sprintf("unknown value %q", in.Priority)}
	}
	if !in.Status.Valid() {
		return model.Task{}, &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown value %q", in.Status)}
	}

	now := r.timestamp()
	task := model.Task{
		ID:          r.newID(),
		Topic:       topic,
		Description: strings.TrimSpace(in.Description),
		Priority:    in.Priority,
		Status:      in.Status,
		Completed:   in.Status == model.StatusDone,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.tasks = append(r.tasks, task)

	r.log.WithField("task_id", task.ID).Info("created task")
	return task, r.save(ctx)
}

// Update applies patch to the task with id and persists the collection.
//
// Setting the status to done also completes the task. Any other status
// leaves the completion flag untouched.
func (r *Repository) Update(ctx context.Context, id string, patch Patch) (model.Task, error) {
	i := r.index(id)
	if i < 0 {
		return model.Task{}, &NotFoundError{ID: id}
	}

	next := r.tasks[i]
	if patch.Topic != nil {
		topic := strings.TrimSpace(*patch.Topic)
		if topic == "" {
			return model.Task{}, &ValidationError{Field: "topic", Reason: "must not be empty"}
		}
		next.Topic = topic
	}
	if patch.Description != nil {
		next.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Priority != nil {
		if !patch.Priority.Valid() {
			return model.Task{}, &ValidationError{Field: "priority", Reason: fmt.Sprintf("unknown value %q", *patch.Priority)}
		}
		next.Priority = *patch.Priority
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return model.Task{}, &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown value %q", *patch.Status)}
		}
		next.Status = *patch.Status
		next.Completed = model.CompletedAfterUpdate(next.Completed, next.Status)
	}
	next.UpdatedAt = r.touch(next.CreatedAt)

	r.tasks[i] = next
	r.log.WithField("task_id", id).Info("updated task")
	return next, r.save(ctx)
}

// ToggleComplete flips the completion flag of the task with id and
// persists the collection.
func (r *Repository) ToggleComplete(ctx context.Context, id string) (model.Task, error) {
	i := r.index(id)
	if i < 0 {
		return model.Task{}, &NotFoundError{ID: id}
	}

	t := &r.tasks[i]
	t.Completed, t.Status = model.Toggle(t.Completed, t.Status)
	t.UpdatedAt = r.touch(t.CreatedAt)

	r.log.WithFields(logrus.Fields{"task_id": id, "completed": t.Completed}).Info("toggled task")
	return *t, r.save(ctx)
}

// Delete removes the task with id and persists the collection. Deleting an
// unknown id is a no-op that still persists.
func (r *Repository) Delete(ctx context.Context, id string) error {
	r.tasks = slices.DeleteFunc(r.tasks, func(t model.Task) bool { return t.ID == id })
	r.log.WithField("task_id", id).Info("deleted task")
	return r.save(ctx)
}

// Reset empties the collection and persists the empty list.
func (r *Repository) Reset(ctx context.Context) error {
	r.tasks = []model.Task{}
	r.log.Info("cleared all tasks")
	return r.save(ctx)
}

func (r *Repository) index(id string) int {
	return slices.IndexFunc(r.tasks, func(t model.Task) bool { return t.ID == id })
}

// newID retries on the off chance the generator repeats an id already
// in the collection.
func (r *Repository) newID() string {
	for {
		id := r.ids.Generate()
		if id != "" && r.index(id) < 0 {
			return id
		}
	}
}

func (r *Repository) timestamp() int64 {
	return r.now().UTC().UnixMilli()
}

// touch returns the current time, never earlier than createdAt.
func (r *Repository) touch(createdAt int64) int64 {
	return max(r.timestamp(), createdAt)
}

func (r *Repository) save(ctx context.Context) error {
	if err := r.gateway.Save(ctx, r.tasks); err != nil {
		r.log.WithError(err).Error("persisting tasks")
		return err
	}
	return nil
}
