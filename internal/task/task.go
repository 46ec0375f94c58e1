package task

import (
	"fmt"
	"math"
	"slices"
)

// Priority is the importance of a task, from MinPriority to MaxPriority.
// Higher values sort first.
type Priority int

const (
	MinPriority Priority = 0
	MaxPriority Priority = 10

	// NoPriority marks a task without a recorded priority. It sorts below
	// every real priority.
	NoPriority Priority = -1
)

// IsValidPriority checks if a priority is within [MinPriority, MaxPriority].
func IsValidPriority(p Priority) bool {
	return p >= MinPriority && p <= MaxPriority
}

// IsSet reports whether a priority was recorded.
func (p Priority) IsSet() bool {
	return p != NoPriority
}

// SortKey returns the value used to order priorities. Unset priorities
// compare lower than MinPriority.
func (p Priority) SortKey() int {
	if !p.IsSet() {
		return math.MinInt32
	}
	return int(p)
}

func (p Priority) String() string {
	if !p.IsSet() {
		return "-"
	}
	return fmt.Sprintf("%d", int(p))
}

// Deadline is a calendar date. The zero value is NoDeadline.
type Deadline struct {
	Year  int `yaml:"year" json:"year"`
	Month int `yaml:"month" json:"month"`
	Day   int `yaml:"day" json:"day"`
}

// NoDeadline is the sentinel for a task without a deadline. No real date
// has a zero month, so it never collides with a concrete deadline.
var NoDeadline = Deadline{} //nolint:gochecknoglobals // immutable sentinel

// IsSet reports whether the deadline holds a concrete date.
func (d Deadline) IsSet() bool {
	return d != NoDeadline
}

// SortKey returns the (year, month, day) triple used for ordering. Missing
// components are replaced by math.MaxInt32 so deadline-less tasks sort last.
func (d Deadline) SortKey() [3]int {
	key := [3]int{d.Year, d.Month, d.Day}
	for i, v := range key {
		if v <= 0 {
			key[i] = math.MaxInt32
		}
	}
	return key
}

// Compare orders two deadlines by year, then month, then day.
func (d Deadline) Compare(other Deadline) int {
	a, b := d.SortKey(), other.SortKey()
	return slices.Compare(a[:], b[:])
}

func (d Deadline) String() string {
	if !d.IsSet() {
		return "----/--/--"
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Task is a named unit of work in the dependency graph.
type Task struct {
	ID          string
	DependsOn   []string
	Priority    Priority
	Deadline    Deadline
	Description string
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	c.DependsOn = slices.Clone(t.DependsOn)
	return &c
}
