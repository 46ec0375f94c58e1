package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	tserrors "github.com/abatilo/tasksched/internal/errors"
	"github.com/abatilo/tasksched/internal/task"
)

const (
	tasksDir = ".tasksched"
	fileExt  = ".md"
)

// Store persists a task graph as one markdown file per task.
type Store struct {
	basePath string
}

// NewStore creates a Store with a project-scoped path (~/.tasksched/<sanitized-project-root>/).
func NewStore() (*Store, error) {
	projectRoot, err := FindProjectRoot()
	if err != nil {
		return nil, err
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve home directory: %w", err)
	}

	sanitized := SanitizePath(projectRoot)
	basePath := filepath.Join(home, tasksDir, sanitized)
	return &Store{basePath: basePath}, nil
}

// NewStoreWithPath creates a Store with a custom base path.
func NewStoreWithPath(path string) *Store {
	return &Store{basePath: path}
}

// BasePath returns the base path of the store.
func (s *Store) BasePath() string {
	return s.basePath
}

// IsInitialized checks if the task directory exists.
func (s *Store) IsInitialized() bool {
	info, err := os.Stat(s.basePath)
	return err == nil && info.IsDir()
}

// Init creates the task directory.
func (s *Store) Init(force bool) error {
	if s.IsInitialized() && !force {
		return tserrors.AlreadyInitializedError{Path: s.basePath}
	}
	return os.MkdirAll(s.basePath, 0o755)
}

func (s *Store) taskPath(id string) string {
	return filepath.Join(s.basePath, id+fileExt)
}

// Load reads every task file and returns the tasks in their recorded order.
func (s *Store) Load() ([]*task.Task, error) {
	if !s.IsInitialized() {
		return nil, tserrors.NotInitializedError{Path: s.basePath}
	}

	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.basePath, err)
	}

	var records []record
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileExt) {
			continue
		}
		path := filepath.Join(s.basePath, entry.Name())
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		rec, err := parseRecord(content)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].order != records[j].order {
			return records[i].order < records[j].order
		}
		return records[i].task.ID < records[j].task.ID
	})

	tasks := make([]*task.Task, len(records))
	for i, rec := range records {
		tasks[i] = rec.task
	}
	return tasks, nil
}

// SaveAll writes every task with its position in tasks and removes the
// files of tasks that are no longer present.
func (s *Store) SaveAll(tasks []*task.Task) error {
	if !s.IsInitialized() {
		return tserrors.NotInitializedError{Path: s.basePath}
	}

	keep := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		if err := ValidateID(t.ID); err != nil {
			return err
		}
		keep[t.ID+fileExt] = true
	}

	for i, t := range tasks {
		content, err := SerializeMarkdown(t, i)
		if err != nil {
			return fmt.Errorf("failed to serialize %s: %w", t.ID, err)
		}
		if err := os.WriteFile(s.taskPath(t.ID), content, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", t.ID, err)
		}
	}

	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", s.basePath, err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, fileExt) || keep[name] {
			continue
		}
		if err := os.Remove(filepath.Join(s.basePath, name)); err != nil {
			return fmt.Errorf("failed to remove %s: %w", name, err)
		}
	}
	return nil
}

// ValidateID rejects ids that cannot be used as a file name.
func ValidateID(id string) error {
	if id == "." || id == ".." || strings.ContainsAny(id, `/\`) || strings.ContainsRune(id, filepath.Separator) {
		return tserrors.InvalidIDError{ID: id}
	}
	return nil
}
