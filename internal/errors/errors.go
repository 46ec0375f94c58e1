//nolint:revive // Package name intentionally matches stdlib for domain clarity
package errors

import (
	"fmt"
	"strings"
)

// NotInitializedError indicates the task directory doesn't exist.
type NotInitializedError struct {
	Path string
}

func (e NotInitializedError) Error() string {
	return fmt.Sprintf("tasksched not initialized at %s: run 'tasksched init' first", e.Path)
}

// AlreadyInitializedError indicates the task directory already exists.
type AlreadyInitializedError struct {
	Path string
}

func (e AlreadyInitializedError) Error() string {
	return fmt.Sprintf("tasksched already initialized at %s", e.Path)
}

// TaskNotFoundError indicates the task ID doesn't match any task.
type TaskNotFoundError struct {
	ID string
}

func (e TaskNotFoundError) Error() string {
	return fmt.Sprintf("task not found: %s", e.ID)
}

// DuplicateTaskError indicates an ID collision.
type DuplicateTaskError struct {
	ID string
}

func (e DuplicateTaskError) Error() string {
	return fmt.Sprintf("task already exists: %s", e.ID)
}

// MissingDependencyError indicates a dependency references an unknown task.
type MissingDependencyError struct {
	Task       string
	Dependency string
}

func (e MissingDependencyError) Error() string {
	if e.Task == "" {
		return fmt.Sprintf("dependency does not exist: %s", e.Dependency)
	}
	return fmt.Sprintf("dependency of %s does not exist: %s", e.Task, e.Dependency)
}

// EmptyNameError indicates a blank task name.
type EmptyNameError struct{}

func (e EmptyNameError) Error() string {
	return "task name cannot be empty"
}

// InvalidPriorityError indicates a priority outside [0, 10].
type InvalidPriorityError struct {
	Value string
}

func (e InvalidPriorityError) Error() string {
	return fmt.Sprintf("invalid priority: %s (valid: integer 0-10)", e.Value)
}

// InvalidDeadlineError indicates a deadline that is malformed or in the past.
type InvalidDeadlineError struct {
	Value  string
	Reason string
}

func (e InvalidDeadlineError) Error() string {
	return fmt.Sprintf("invalid deadline %q: %s", e.Value, e.Reason)
}

// InvalidIDError indicates an ID that cannot be stored as a file name.
type InvalidIDError struct {
	ID string
}

func (e InvalidIDError) Error() string {
	return fmt.Sprintf("invalid task id %q: must not contain path separators", e.ID)
}

// InconsistentGraphError indicates edges and dependency lists disagree.
type InconsistentGraphError struct {
	Problems []string
}

func (e InconsistentGraphError) Error() string {
	return "graph is inconsistent: " + strings.Join(e.Problems, "; ")
}

// NotInRepoError indicates the command was run outside a git repository.
type NotInRepoError struct{}

func (e NotInRepoError) Error() string {
	return "not in a git repository (set TASKSCHED_DIR or pass --dir)"
}

// CycleError indicates an operation that needs an acyclic graph found a cycle.
type CycleError struct {
	Path []string
}

func (e CycleError) Error() string {
	return "graph has a cycle: " + strings.Join(e.Path, " -> ")
}
