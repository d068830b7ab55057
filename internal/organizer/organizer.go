// Package organizer owns the canonical task and project sequences.
//
// Every mutation builds a new sequence with the ordering package, swaps it in
// under the lock and then writes it through the State port. Writes are
// fire-and-forget: a failure is logged and kept for PersistErr, and the
// in-memory snapshot stays authoritative.
package organizer

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"organizer/internal/model"
	"organizer/internal/ordering"
	"organizer/internal/store"

	log "github.com/sirupsen/logrus"
)

// State is the persistence port the Organizer reads at Open and writes after
// each commit. *store.Store implements it.
type State interface {
	LoadTasks(ctx context.Context) ([]model.Task, error)
	SaveTasks(ctx context.Context, tasks []model.Task) error
	LoadProjects(ctx context.Context) ([]model.Project, error)
	SaveProjects(ctx context.Context, projects []model.Project) error
	LoadFilter(ctx context.Context) (model.StatusFilter, error)
	SaveFilter(ctx context.Context, f model.StatusFilter) error
}

// Snapshot is a consistent view of the organizer's state.
type Snapshot struct {
	Tasks    []model.Task       `json:"tasks"`
	Projects []model.Project    `json:"projects"`
	Filter   model.StatusFilter `json:"filter"`
}

type Organizer struct {
	mu sync.Mutex

	state State
	log   log.FieldLogger
	now   func() time.Time
	newID func(prefix string, exists func(string) bool) string

	defaultColor string

	snap       Snapshot
	persistErr error
}

type Option func(*Organizer)

func WithLogger(l log.FieldLogger) Option {
	return func(o *Organizer) {
		if l != nil {
			o.log = l
		}
	}
}

// WithClock sets the source of completion timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *Organizer) {
		if now != nil {
			o.now = now
		}
	}
}

func WithIDGenerator(fn func(prefix string, exists func(string) bool) string) Option {
	return func(o *Organizer) {
		if fn != nil {
			o.newID = fn
		}
	}
}

// WithDefaultColor sets the color used by CreateProject when none is given.
func WithDefaultColor(color string) Option {
	return func(o *Organizer) {
		if c := strings.TrimSpace(color); c != "" {
			o.defaultColor = c
		}
	}
}

// Open loads the persisted state and returns the owning handle over it.
func Open(ctx context.Context, st State, opts ...Option) (*Organizer, error) {
	o := &Organizer{
		state:        st,
		log:          log.StandardLogger(),
		now:          time.Now,
		newID:        store.NewID,
		defaultColor: store.DefaultProjectColor,
	}
	for _, opt := range opts {
		opt(o)
	}

	tasks, err := st.LoadTasks(ctx)
	if err != nil {
		return nil, err
	}
	projects, err := st.LoadProjects(ctx)
	if err != nil {
		return nil, err
	}
	filter, err := st.LoadFilter(ctx)
	if err != nil {
		return nil, err
	}
	o.snap = Snapshot{Tasks: tasks, Projects: projects, Filter: filter}
	return o, nil
}

// Snapshot returns copies of the current sequences.
func (o *Organizer) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return Snapshot{
		Tasks:    slices.Clone(o.snap.Tasks),
		Projects: slices.Clone(o.snap.Projects),
		Filter:   o.snap.Filter,
	}
}

// PersistErr returns the error from the most recent write, or nil when it
// succeeded.
func (o *Organizer) PersistErr() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.persistErr
}

// commitTasks and friends must be called with o.mu held.
func (o *Organizer) commitTasks(ctx context.Context, tasks []model.Task) {
	o.snap.Tasks = tasks
	o.persist(store.KeyTasks, o.state.SaveTasks(ctx, tasks))
}

func (o *Organizer) commitProjects(ctx context.Context, projects []model.Project) {
	o.snap.Projects = projects
	o.persist(store.KeyProjects, o.state.SaveProjects(ctx, projects))
}

func (o *Organizer) persist(key string, err error) {
	o.persistErr = err
	if err != nil {
		o.log.WithError(err).WithField("key", key).Error("persist failed")
	}
}

func (o *Organizer) taskExists(id string) bool {
	_, ok := ordering.FindTask(o.snap.Tasks, id)
	return ok
}

func (o *Organizer) projectExists(id string) bool {
	_, ok := ordering.FindProject(o.snap.Projects, id)
	return ok
}

func (o *Organizer) newTask(title string, group model.GroupRef) (model.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Task{}, ErrBlankTitle
	}
	return model.Task{
		ID:      o.newID(store.TaskIDPrefix, o.taskExists),
		Title:   title,
		GroupID: group,
	}, nil
}

// insertTask commits the sequence built by insert and returns the stored
// copy of the new task.
func (o *Organizer) insertTask(ctx context.Context, title string, group model.GroupRef, insert func([]model.Task, model.Task) []model.Task) (model.Task, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	t, err := o.newTask(title, group)
	if err != nil {
		return model.Task{}, err
	}
	next := insert(o.snap.Tasks, t)
	o.commitTasks(ctx, next)
	stored, _ := ordering.FindTask(next, t.ID)
	return stored, nil
}

// Append adds t at the end of the sequence. A blank or already used ID is
// replaced with a generated one.
func (o *Organizer) Append(ctx context.Context, t model.Task) (model.Task, error) {
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return model.Task{}, ErrBlankTitle
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	t.ID = strings.TrimSpace(t.ID)
	if t.ID == "" || o.taskExists(t.ID) {
		t.ID = o.newID(store.TaskIDPrefix, o.taskExists)
	}
	next := ordering.Append(o.snap.Tasks, t)
	o.commitTasks(ctx, next)
	return next[len(next)-1], nil
}

// AddTaskAtTop creates a task at order 0.
func (o *Organizer) AddTaskAtTop(ctx context.Context, title string, group model.GroupRef) (model.Task, error) {
	return o.insertTask(ctx, title, group, ordering.InsertAtTop)
}

// AddTaskAfterGroup creates a task directly after the last member of group,
// or at the end when the group is empty. Tasks of deleted projects count as
// unassigned.
func (o *Organizer) AddTaskAfterGroup(ctx context.Context, title string, group model.GroupRef) (model.Task, error) {
	return o.insertTask(ctx, title, group, func(tasks []model.Task, t model.Task) []model.Task {
		return ordering.InsertAfterLastFunc(tasks, t, ordering.MemberOf(group, o.snap.Projects))
	})
}

func (o *Organizer) RemoveTask(ctx context.Context, id string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	next, ok := ordering.Remove(o.snap.Tasks, id)
	if !ok {
		return false
	}
	o.commitTasks(ctx, next)
	return true
}

// RemoveCompleted deletes every completed task and returns the count.
func (o *Organizer) RemoveCompleted(ctx context.Context) int {
	o.mu.Lock()
	defer o.mu.Unlock()

	next, n := ordering.RemoveCompleted(o.snap.Tasks)
	if n == 0 {
		return 0
	}
	o.commitTasks(ctx, next)
	return n
}

// SetCompleted marks the task done or not done. It reports whether anything
// changed.
func (o *Organizer) SetCompleted(ctx context.Context, id string, done bool) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	var at *time.Time
	if done {
		now := o.now().UTC()
		at = &now
	}
	next, ok := ordering.SetCompleted(o.snap.Tasks, id, at)
	if !ok {
		return false
	}
	o.commitTasks(ctx, next)
	return true
}

func (o *Organizer) RenameTask(ctx context.Context, id, title string) (bool, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return false, ErrBlankTitle
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	next, ok := ordering.Rename(o.snap.Tasks, id, title)
	if !ok {
		return false, nil
	}
	o.commitTasks(ctx, next)
	return true, nil
}

// ReorderVisible moves movedID onto overID's slot within visibleIDs. Tasks
// outside visibleIDs keep their positions.
func (o *Organizer) ReorderVisible(ctx context.Context, movedID, overID string, visibleIDs []string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	next, ok := ordering.ReorderVisible(o.snap.Tasks, movedID, overID, visibleIDs)
	if !ok {
		o.log.WithFields(log.Fields{"moved": movedID, "over": overID}).Debug("reorder: no-op")
		return false
	}
	o.commitTasks(ctx, next)
	return true
}

// MoveAcrossGroups reassigns movedID to target and places it before refID,
// or after the last visible member of target when refID is empty.
func (o *Organizer) MoveAcrossGroups(ctx context.Context, movedID, refID string, target model.GroupRef, visibleIDs []string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	in := ordering.MemberOf(target, o.snap.Projects)
	next, ok := ordering.ReorderAcrossGroupsFunc(o.snap.Tasks, movedID, refID, target, visibleIDs, in)
	if !ok {
		o.log.WithFields(log.Fields{"moved": movedID, "ref": refID, "target": target.String()}).Debug("move across groups: no-op")
		return false
	}
	o.commitTasks(ctx, next)
	return true
}

// CreateProject appends a project to the registry. A blank color selects the
// default color.
func (o *Organizer) CreateProject(ctx context.Context, name, color string) (model.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Project{}, ErrBlankName
	}
	color = strings.TrimSpace(color)

	o.mu.Lock()
	defer o.mu.Unlock()

	if color == "" {
		color = o.defaultColor
	}
	p := model.Project{
		ID:    o.newID(store.ProjectIDPrefix, o.projectExists),
		Name:  name,
		Color: color,
	}
	next := ordering.AppendProject(o.snap.Projects, p)
	o.commitProjects(ctx, next)
	return next[len(next)-1], nil
}

// UpdateProject renames or recolors a project. It reports false when the
// project is unknown or nothing changed.
func (o *Organizer) UpdateProject(ctx context.Context, id string, upd ordering.ProjectUpdate) (bool, error) {
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return false, ErrBlankName
		}
		upd.Name = &name
	}
	if upd.Color != nil {
		color := strings.TrimSpace(*upd.Color)
		if color == "" {
			upd.Color = nil
		} else {
			upd.Color = &color
		}
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	next, ok := ordering.UpdateProject(o.snap.Projects, id, upd)
	if !ok {
		return false, nil
	}
	o.commitProjects(ctx, next)
	return true, nil
}

// DeleteProject removes the project and moves its tasks to the unassigned
// group in the same commit.
func (o *Organizer) DeleteProject(ctx context.Context, id string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	projects, ok := ordering.RemoveProject(o.snap.Projects, id)
	if !ok {
		return false
	}
	tasks := ordering.UnassignGroup(o.snap.Tasks, id)
	o.snap.Projects = projects
	o.snap.Tasks = tasks

	o.persist(store.KeyProjects, o.state.SaveProjects(ctx, projects))
	if err := o.state.SaveTasks(ctx, tasks); err != nil {
		o.persist(store.KeyTasks, err)
	}
	return true
}

// ReorderProjects re-ranks the registry in the order of ids.
func (o *Organizer) ReorderProjects(ctx context.Context, ids []string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	next, ok := ordering.ReorderProjects(o.snap.Projects, ids)
	if !ok {
		return false
	}
	o.commitProjects(ctx, next)
	return true
}

// Filter returns the persisted status filter.
func (o *Organizer) Filter() model.StatusFilter {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snap.Filter
}

// SetFilter stores the status filter used by views.
func (o *Organizer) SetFilter(ctx context.Context, f model.StatusFilter) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.snap.Filter = model.ParseStatusFilter(string(f))
	o.persist(store.KeyFilter, o.state.SaveFilter(ctx, o.snap.Filter))
}
