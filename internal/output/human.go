package output

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/abatilo/tasksched/internal/task"
)

//nolint:gochecknoglobals // color functions are stateless
var (
	idColor       = color.New(color.Bold, color.FgCyan).SprintFunc()
	priorityColor = color.New(color.FgYellow).SprintFunc()
	deadlineColor = color.New(color.FgMagenta).SprintFunc()
	dimColor      = color.New(color.Faint).SprintFunc()
	errorColor    = color.New(color.Bold, color.FgRed).SprintFunc()
	cycleColor    = color.New(color.FgRed).SprintFunc()
)

// HumanFormatter formats output for human-readable terminal display.
type HumanFormatter struct{}

// NewHumanFormatter creates a new HumanFormatter.
func NewHumanFormatter() *HumanFormatter {
	return &HumanFormatter{}
}

// FormatTask formats a single task for display.
func (f *HumanFormatter) FormatTask(t *task.Task) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "[%s]\n", idColor(t.ID))
	fmt.Fprintf(&sb, "  Priority: %s\n", priorityColor(t.Priority.String()))
	fmt.Fprintf(&sb, "  Deadline: %s\n", deadlineColor(t.Deadline.String()))
	if len(t.DependsOn) > 0 {
		fmt.Fprintf(&sb, "  Depends:  %s\n", strings.Join(t.DependsOn, ", "))
	}
	if t.Description != "" {
		sb.WriteString("\n")
		sb.WriteString(t.Description)
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatTaskList formats a list of tasks for display.
func (f *HumanFormatter) FormatTaskList(tasks []*task.Task) string {
	if len(tasks) == 0 {
		return "No tasks found.\n"
	}

	var sb strings.Builder
	for _, t := range tasks {
		sb.WriteString(f.formatTaskLine(t))
	}
	return sb.String()
}

// formatTaskLine formats a single task as a compact one-liner.
func (f *HumanFormatter) formatTaskLine(t *task.Task) string {
	deps := ""
	if len(t.DependsOn) > 0 {
		deps = dimColor(fmt.Sprintf(" [after: %s]", strings.Join(t.DependsOn, ", ")))
	}
	return fmt.Sprintf("%s %s [%s]%s\n",
		priorityColor(fmt.Sprintf("P%-2s", t.Priority.String())),
		deadlineColor(t.Deadline.String()),
		idColor(t.ID),
		deps)
}

// FormatOrder formats an ordering of tasks, one per line, with an optional
// annotation in brackets.
func (f *HumanFormatter) FormatOrder(title string, tasks []*task.Task, annotate func(*task.Task) string) string {
	if len(tasks) == 0 {
		return "No tasks to sort.\n"
	}

	var sb strings.Builder
	sb.WriteString(title + ":\n")
	for i, t := range tasks {
		fmt.Fprintf(&sb, "%3d. %s", i+1, idColor(t.ID))
		if annotate != nil {
			fmt.Fprintf(&sb, " [%s]", annotate(t))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatCycle formats a cycle detection result.
func (f *HumanFormatter) FormatCycle(found bool, path []string) string {
	if !found {
		return "No cycle detected.\n"
	}
	return fmt.Sprintf("Cycle detected: %s\n", cycleColor(strings.Join(path, " -> ")))
}

// FormatError formats an error for display.
func (f *HumanFormatter) FormatError(err error) string {
	return fmt.Sprintf("%s %s\n", errorColor("Error:"), err.Error())
}

// FormatMessage formats a simple message.
func (f *HumanFormatter) FormatMessage(msg string) string {
	return msg + "\n"
}

// FormatGraph formats a dependency graph as ASCII art.
func (f *HumanFormatter) FormatGraph(nodes []GraphNode) string {
	if len(nodes) == 0 {
		return "No tasks found.\n"
	}

	var sb strings.Builder
	for _, node := range nodes {
		f.formatGraphNode(&sb, node, "", true, true)
	}
	return sb.String()
}

func (f *HumanFormatter) formatGraphNode(sb *strings.Builder, node GraphNode, prefix string, isLast, isRoot bool) {
	connector := "├── "
	if isLast {
		connector = "└── "
	}
	if isRoot {
		connector = ""
	}

	suffix := ""
	switch {
	case node.Cycle:
		suffix = " " + cycleColor("(cycle)")
	case node.Repeat:
		suffix = " " + dimColor("(see above)")
	}
	fmt.Fprintf(sb, "%s%s[%s] %s%s\n", prefix, connector, idColor(node.Task.ID),
		priorityColor("P"+node.Task.Priority.String()), suffix)

	childPrefix := prefix
	if !isRoot {
		if isLast {
			childPrefix += "    "
		} else {
			childPrefix += "│   "
		}
	}

	for i, child := range node.Children {
		f.formatGraphNode(sb, child, childPrefix, i == len(node.Children)-1, false)
	}
}
