package storage

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/abatilo/tasksched/internal/task"
	"gopkg.in/yaml.v3"
)

const frontmatterDelimiter = "---"

// taskFrontmatter is the YAML-serializable portion of a task.
type taskFrontmatter struct {
	ID        string   `yaml:"id"`
	Order     int      `yaml:"order"`
	Priority  *int     `yaml:"priority,omitempty"`
	Deadline  string   `yaml:"deadline,omitempty"`
	DependsOn []string `yaml:"depends_on,omitempty"`
}

type record struct {
	task  *task.Task
	order int
}

// ParseMarkdown parses a markdown file with YAML frontmatter into a Task.
func ParseMarkdown(content []byte) (*task.Task, error) {
	rec, err := parseRecord(content)
	if err != nil {
		return nil, err
	}
	return rec.task, nil
}

func parseRecord(content []byte) (record, error) {
	lines := strings.Split(string(content), "\n")
	if len(lines) < 2 || strings.TrimSpace(lines[0]) != frontmatterDelimiter {
		return record{}, &parseError{"missing YAML frontmatter"}
	}

	var frontmatterEnd int
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == frontmatterDelimiter {
			frontmatterEnd = i
			break
		}
	}
	if frontmatterEnd == 0 {
		return record{}, &parseError{"unclosed YAML frontmatter"}
	}

	yamlContent := strings.Join(lines[1:frontmatterEnd], "\n")
	var fm taskFrontmatter
	if err := yaml.Unmarshal([]byte(yamlContent), &fm); err != nil {
		return record{}, &parseError{"invalid YAML: " + err.Error()}
	}
	if strings.TrimSpace(fm.ID) == "" {
		return record{}, &parseError{"missing id"}
	}

	priority := task.NoPriority
	if fm.Priority != nil {
		priority = task.Priority(*fm.Priority)
		if !task.IsValidPriority(priority) {
			return record{}, &parseError{fmt.Sprintf("priority out of range: %d", *fm.Priority)}
		}
	}

	deadline, err := parseDeadline(fm.Deadline)
	if err != nil {
		return record{}, err
	}

	var description string
	if frontmatterEnd+1 < len(lines) {
		description = strings.TrimSpace(strings.Join(lines[frontmatterEnd+1:], "\n"))
	}

	return record{
		task: &task.Task{
			ID:          fm.ID,
			DependsOn:   fm.DependsOn,
			Priority:    priority,
			Deadline:    deadline,
			Description: description,
		},
		order: fm.Order,
	}, nil
}

// SerializeMarkdown converts a Task to markdown with YAML frontmatter. order
// records the task's position in the graph's insertion order.
func SerializeMarkdown(t *task.Task, order int) ([]byte, error) {
	fm := taskFrontmatter{
		ID:        t.ID,
		Order:     order,
		DependsOn: t.DependsOn,
	}
	if t.Priority.IsSet() {
		p := int(t.Priority)
		fm.Priority = &p
	}
	if t.Deadline.IsSet() {
		fm.Deadline = t.Deadline.String()
	}

	var buf bytes.Buffer
	buf.WriteString(frontmatterDelimiter + "\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fm); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	buf.WriteString(frontmatterDelimiter + "\n")

	if t.Description != "" {
		buf.WriteString("\n")
		buf.WriteString(t.Description)
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// parseError represents a parsing error.
type parseError struct {
	msg string
}

func (e *parseError) Error() string {
	return e.msg
}

// parseDeadline reads a stored YYYY-MM-DD date. Stored deadlines are not
// checked against the current date.
func parseDeadline(s string) (task.Deadline, error) {
	if s == "" {
		return task.NoDeadline, nil
	}
	var d task.Deadline
	var rest string
	n, _ := fmt.Sscanf(s, "%d-%d-%d%s", &d.Year, &d.Month, &d.Day, &rest)
	if n != 3 || d.Month < 1 || d.Month > 12 || d.Day < 1 || d.Day > 31 {
		return task.NoDeadline, &parseError{"invalid deadline: " + s}
	}
	return d, nil
}
