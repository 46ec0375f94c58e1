// Package input turns raw user text into the typed, pre-validated values the
// graph engine accepts. The engine itself never parses strings.
package input

import (
	"strconv"
	"strings"
	"time"

	tserrors "github.com/abatilo/tasksched/internal/errors"
	"github.com/abatilo/tasksched/internal/task"
)

// ParseName trims s and rejects blank names.
func ParseName(s string) (string, error) {
	name := strings.TrimSpace(s)
	if name == "" {
		return "", tserrors.EmptyNameError{}
	}
	return name, nil
}

// ParseList splits a comma-separated list, trimming entries and dropping
// empty ones.
func ParseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ParsePriority accepts a plain decimal integer in [0, 10].
func ParsePriority(s string) (task.Priority, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.TrimLeft(s, "0123456789") != "" {
		return task.NoPriority, tserrors.InvalidPriorityError{Value: s}
	}
	n, err := strconv.Atoi(s)
	if err != nil || !task.IsValidPriority(task.Priority(n)) {
		return task.NoPriority, tserrors.InvalidPriorityError{Value: s}
	}
	return task.Priority(n), nil
}

// ParseDeadline accepts YYYY-MM-DD or YYYY/MM/DD. The date must exist on the
// calendar and must not be earlier than now's date. An empty string or
// "none" yields task.NoDeadline.
func ParseDeadline(s string, now time.Time) (task.Deadline, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "none") {
		return task.NoDeadline, nil
	}

	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == '/' })
	if len(parts) != 3 {
		return task.NoDeadline, tserrors.InvalidDeadlineError{Value: s, Reason: "expected YYYY-MM-DD"}
	}
	var nums [3]int
	for i, p := range parts {
		if strings.TrimLeft(p, "0123456789") != "" {
			return task.NoDeadline, tserrors.InvalidDeadlineError{Value: s, Reason: "expected digits"}
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return task.NoDeadline, tserrors.InvalidDeadlineError{Value: s, Reason: err.Error()}
		}
		nums[i] = n
	}
	d := task.Deadline{Year: nums[0], Month: nums[1], Day: nums[2]}
	if err := ValidateDeadline(d, now); err != nil {
		return task.NoDeadline, tserrors.InvalidDeadlineError{Value: s, Reason: err.Error()}
	}
	return d, nil
}

type deadlineError string

func (e deadlineError) Error() string { return string(e) }

// ValidateDeadline checks that d is a real calendar date no earlier than
// now's date.
func ValidateDeadline(d task.Deadline, now time.Time) error {
	if d.Month < 1 || d.Month > 12 {
		return deadlineError("month out of range")
	}
	if d.Year < 1 {
		return deadlineError("year out of range")
	}
	t := time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
	if d.Day < 1 || t.Day() != d.Day {
		return deadlineError("day out of range")
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if t.Before(today) {
		return deadlineError("deadline is before " + today.Format("2006-01-02"))
	}
	return nil
}
