package output

import "github.com/abatilo/tasksched/internal/task"

// Formatter defines the interface for output formatting.
type Formatter interface {
	FormatTask(t *task.Task) string
	FormatTaskList(tasks []*task.Task) string
	FormatOrder(title string, tasks []*task.Task, annotate func(*task.Task) string) string
	FormatCycle(found bool, path []string) string
	FormatError(err error) string
	FormatMessage(msg string) string
	FormatGraph(nodes []GraphNode) string
}

// GraphNode represents a node in the dependency graph output.
type GraphNode struct {
	Task     *task.Task
	Children []GraphNode
	// Repeat marks a task already expanded elsewhere in the tree.
	Repeat bool
	// Cycle marks a back edge into the current path.
	Cycle bool
}
