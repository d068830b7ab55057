package store

import (
	"context"
	"errors"
	"fmt"

	"organizer/internal/model"

	log "github.com/sirupsen/logrus"
)

const (
	KeyTasks    = "taskOrganizer.tasks"
	KeyProjects = "taskOrganizer.projects"
	KeyFilter   = "taskOrganizer.filter"
)

// Store reads and writes the task, project and filter payloads through a
// Backend. Loads normalize what they read and write the result back when it
// differs from what was stored.
type Store struct {
	Backend Backend
	Log     log.FieldLogger
}

func New(b Backend, logger log.FieldLogger) *Store {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Store{Backend: b, Log: logger}
}

func (s *Store) Close() error {
	if s.Backend == nil {
		return nil
	}
	return s.Backend.Close()
}

func (s *Store) logger() log.FieldLogger {
	if s.Log == nil {
		return log.StandardLogger()
	}
	return s.Log
}

func (s *Store) get(ctx context.Context, key string) ([]byte, bool, error) {
	if s.Backend == nil {
		return nil, false, errors.New("store: missing backend")
	}
	return s.Backend.Get(ctx, key)
}

func (s *Store) put(ctx context.Context, key string, b []byte) error {
	if s.Backend == nil {
		return errors.New("store: missing backend")
	}
	return s.Backend.Put(ctx, key, b)
}

// rewrite stores the normalized form of a payload. Failures are logged only;
// the next load normalizes again.
func (s *Store) rewrite(ctx context.Context, key string, b []byte, err error) {
	l := s.logger().WithField("key", key)
	if err != nil {
		l.WithError(err).Warn("encode normalized payload")
		return
	}
	l.Info("normalized persisted payload")
	if err := s.put(ctx, key, b); err != nil {
		l.WithError(err).Warn("rewrite normalized payload")
	}
}

func (s *Store) LoadTasks(ctx context.Context) ([]model.Task, error) {
	b, ok, err := s.get(ctx, KeyTasks)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []model.Task{}, nil
	}
	tasks, changed := DecodeTasks(b)
	if changed {
		enc, err := EncodeTasks(tasks)
		s.rewrite(ctx, KeyTasks, enc, err)
	}
	return tasks, nil
}

func (s *Store) SaveTasks(ctx context.Context, tasks []model.Task) error {
	b, err := EncodeTasks(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	return s.put(ctx, KeyTasks, b)
}

func (s *Store) LoadProjects(ctx context.Context) ([]model.Project, error) {
	b, ok, err := s.get(ctx, KeyProjects)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []model.Project{}, nil
	}
	projects, changed := DecodeProjects(b)
	if changed {
		enc, err := EncodeProjects(projects)
		s.rewrite(ctx, KeyProjects, enc, err)
	}
	return projects, nil
}

func (s *Store) SaveProjects(ctx context.Context, projects []model.Project) error {
	b, err := EncodeProjects(projects)
	if err != nil {
		return fmt.Errorf("encode projects: %w", err)
	}
	return s.put(ctx, KeyProjects, b)
}

// LoadFilter returns the persisted status filter, FilterAll when none is stored.
func (s *Store) LoadFilter(ctx context.Context) (model.StatusFilter, error) {
	b, ok, err := s.get(ctx, KeyFilter)
	if err != nil {
		return model.FilterAll, err
	}
	if !ok {
		return model.FilterAll, nil
	}
	f, changed := DecodeFilter(b)
	if changed {
		s.rewrite(ctx, KeyFilter, EncodeFilter(f), nil)
	}
	return f, nil
}

func (s *Store) SaveFilter(ctx context.Context, f model.StatusFilter) error {
	return s.put(ctx, KeyFilter, EncodeFilter(f))
}

// Seed overwrites the stored tasks and projects with the sample data set.
func (s *Store) Seed(ctx context.Context) error {
	tasks, projects := SampleData()
	if err := s.SaveProjects(ctx, projects); err != nil {
		return err
	}
	return s.SaveTasks(ctx, tasks)
}

// Empty reports whether neither tasks nor projects have ever been stored.
func (s *Store) Empty(ctx context.Context) (bool, error) {
	for _, key := range []string{KeyTasks, KeyProjects} {
		_, ok, err := s.get(ctx, key)
		if err != nil {
			return false, err
		}
		if ok {
			return false, nil
		}
	}
	return true, nil
}
