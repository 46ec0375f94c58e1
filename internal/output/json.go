package output

import (
	"encoding/json"

	"github.com/abatilo/tasksched/internal/task"
)

// JSONFormatter formats output as JSON.
type JSONFormatter struct{}

// marshalJSON marshals a value to indented JSON with a trailing newline.
func marshalJSON(v any) string {
	data, _ := json.MarshalIndent(v, "", "  ")
	return string(data) + "\n"
}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// taskJSON is the JSON representation of a task.
type taskJSON struct {
	ID          string         `json:"id"`
	Priority    *int           `json:"priority"`
	Deadline    *task.Deadline `json:"deadline"`
	DependsOn   []string       `json:"depends_on"`
	Description string         `json:"description,omitempty"`
}

func toTaskJSON(t *task.Task) taskJSON {
	tj := taskJSON{
		ID:          t.ID,
		DependsOn:   t.DependsOn,
		Description: t.Description,
	}
	if tj.DependsOn == nil {
		tj.DependsOn = []string{}
	}
	if t.Priority.IsSet() {
		p := int(t.Priority)
		tj.Priority = &p
	}
	if t.Deadline.IsSet() {
		d := t.Deadline
		tj.Deadline = &d
	}
	return tj
}

func toTaskListJSON(tasks []*task.Task) []taskJSON {
	jsonTasks := make([]taskJSON, len(tasks))
	for i, t := range tasks {
		jsonTasks[i] = toTaskJSON(t)
	}
	return jsonTasks
}

// FormatTask formats a single task as JSON.
func (f *JSONFormatter) FormatTask(t *task.Task) string {
	return marshalJSON(toTaskJSON(t))
}

// FormatTaskList formats a list of tasks as JSON.
func (f *JSONFormatter) FormatTaskList(tasks []*task.Task) string {
	return marshalJSON(toTaskListJSON(tasks))
}

// orderJSON is the JSON representation of an ordering.
type orderJSON struct {
	Order string     `json:"order"`
	Tasks []taskJSON `json:"tasks"`
}

// FormatOrder formats an ordering as JSON. Annotations are omitted; the full
// task carries the same data.
func (f *JSONFormatter) FormatOrder(title string, tasks []*task.Task, _ func(*task.Task) string) string {
	return marshalJSON(orderJSON{Order: title, Tasks: toTaskListJSON(tasks)})
}

// cycleJSON is the JSON representation of a cycle check.
type cycleJSON struct {
	Cycle bool     `json:"cycle"`
	Path  []string `json:"path"`
}

// FormatCycle formats a cycle detection result as JSON.
func (f *JSONFormatter) FormatCycle(found bool, path []string) string {
	if path == nil {
		path = []string{}
	}
	return marshalJSON(cycleJSON{Cycle: found, Path: path})
}

// errorJSON is the JSON representation of an error.
type errorJSON struct {
	Error string `json:"error"`
}

// FormatError formats an error as JSON.
func (f *JSONFormatter) FormatError(err error) string {
	return marshalJSON(errorJSON{Error: err.Error()})
}

// messageJSON is the JSON representation of a message.
type messageJSON struct {
	Message string `json:"message"`
}

// FormatMessage formats a simple message as JSON.
func (f *JSONFormatter) FormatMessage(msg string) string {
	return marshalJSON(messageJSON{Message: msg})
}

// graphNodeJSON is the JSON representation of a graph node.
type graphNodeJSON struct {
	ID       string          `json:"id"`
	Priority *int            `json:"priority"`
	Repeat   bool            `json:"repeat,omitempty"`
	Cycle    bool            `json:"cycle,omitempty"`
	Children []graphNodeJSON `json:"children,omitempty"`
}

func toGraphNodeJSON(node GraphNode) graphNodeJSON {
	children := make([]graphNodeJSON, len(node.Children))
	for i, c := range node.Children {
		children[i] = toGraphNodeJSON(c)
	}
	return graphNodeJSON{
		ID:       node.Task.ID,
		Priority: toTaskJSON(node.Task).Priority,
		Repeat:   node.Repeat,
		Cycle:    node.Cycle,
		Children: children,
	}
}

// FormatGraph formats a dependency graph as JSON.
func (f *JSONFormatter) FormatGraph(nodes []GraphNode) string {
	jsonNodes := make([]graphNodeJSON, len(nodes))
	for i, n := range nodes {
		jsonNodes[i] = toGraphNodeJSON(n)
	}
	return marshalJSON(jsonNodes)
}
