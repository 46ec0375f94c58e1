// Package deps is the task dependency graph engine.
//
// A Graph owns both the per-task metadata and the directed edge set
// (dependency -> dependent). Every mutation goes through the Graph so the
// two stay in agreement: edge (a, b) exists iff b's DependsOn contains a.
//
// A Graph is not safe for concurrent use. Callers serialize mutations;
// read-only queries may share a Graph only while nothing mutates it.
package deps

import (
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	tserrors "github.com/abatilo/tasksched/internal/errors"
	"github.com/abatilo/tasksched/internal/task"
)

// Graph represents the tasks and the dependency relationships between them.
type Graph struct {
	tasks  map[string]*task.Task
	order  *orderedSet
	succ   map[string]*orderedSet
	pred   map[string]*orderedSet
	logger *zap.Logger
}

// Edge is a directed edge from a dependency to its dependent.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Snapshot is a read-only copy of the graph shape for rendering.
type Snapshot struct {
	Nodes []string `json:"nodes"`
	Edges []Edge   `json:"edges"`
}

// New creates an empty Graph. A nil logger disables logging.
func New(logger *zap.Logger) *Graph {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Graph{
		tasks:  make(map[string]*task.Task),
		order:  newOrderedSet(),
		succ:   make(map[string]*orderedSet),
		pred:   make(map[string]*orderedSet),
		logger: logger,
	}
}

// Restore rebuilds a Graph from persisted tasks. All nodes are inserted
// before any edge, so the input order does not matter and stored cycles
// survive the round trip.
func Restore(tasks []*task.Task, logger *zap.Logger) (*Graph, error) {
	g := New(logger)
	for _, t := range tasks {
		if isBlank(t.ID) {
			return nil, tserrors.EmptyNameError{}
		}
		if g.HasTask(t.ID) {
			return nil, tserrors.DuplicateTaskError{ID: t.ID}
		}
		c := t.Clone()
		c.DependsOn = nil
		g.insert(c)
	}
	for _, t := range tasks {
		for _, dep := range t.DependsOn {
			if !g.HasTask(dep) {
				return nil, tserrors.MissingDependencyError{Task: t.ID, Dependency: dep}
			}
			g.link(dep, t.ID)
		}
	}
	g.logger.Debug("graph restored",
		zap.Int("tasks", g.Len()),
		zap.Int("edges", g.EdgeCount()))
	return g, nil
}

// AddTask inserts a new task with an edge from each dependency to id.
// It fails without side effects if id is blank or taken, or if any
// dependency is unknown.
func (g *Graph) AddTask(
	id string,
	dependencies []string,
	priority task.Priority,
	deadline task.Deadline,
	description string,
) error {
	if isBlank(id) {
		return tserrors.EmptyNameError{}
	}
	if g.HasTask(id) {
		return tserrors.DuplicateTaskError{ID: id}
	}
	if err := g.checkDependencies(id, dependencies); err != nil {
		return err
	}

	g.insert(&task.Task{
		ID:          id,
		Priority:    priority,
		Deadline:    deadline,
		Description: description,
	})
	for _, dep := range dependencies {
		g.link(dep, id)
	}

	g.logger.Debug("task added",
		zap.String("task", id),
		zap.Strings("depends_on", g.pred[id].Items()))
	return nil
}

// GetTask returns a copy of the task with the given ID.
func (g *Graph) GetTask(id string) (*task.Task, error) {
	t, ok := g.tasks[id]
	if !ok {
		return nil, tserrors.TaskNotFoundError{ID: id}
	}
	return t.Clone(), nil
}

// HasTask reports whether a task with the given ID exists.
func (g *Graph) HasTask(id string) bool {
	_, ok := g.tasks[id]
	return ok
}

// Predecessors returns the direct dependencies of id.
func (g *Graph) Predecessors(id string) ([]string, error) {
	p, ok := g.pred[id]
	if !ok {
		return nil, tserrors.TaskNotFoundError{ID: id}
	}
	return p.Items(), nil
}

// Successors returns the direct dependents of id.
func (g *Graph) Successors(id string) ([]string, error) {
	s, ok := g.succ[id]
	if !ok {
		return nil, tserrors.TaskNotFoundError{ID: id}
	}
	return s.Items(), nil
}

// Len returns the number of tasks.
func (g *Graph) Len() int {
	return g.order.Len()
}

// EdgeCount returns the number of dependency edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, s := range g.succ {
		n += s.Len()
	}
	return n
}

// IDs returns all task IDs in insertion order.
func (g *Graph) IDs() []string {
	return g.order.Items()
}

// Tasks returns copies of all tasks in insertion order.
func (g *Graph) Tasks() []*task.Task {
	tasks := make([]*task.Task, 0, g.Len())
	for _, id := range g.order.items {
		tasks = append(tasks, g.tasks[id].Clone())
	}
	return tasks
}

// Snapshot returns the node list and edge list, both in insertion order.
func (g *Graph) Snapshot() Snapshot {
	snap := Snapshot{Nodes: g.IDs()}
	for _, id := range g.order.items {
		for _, to := range g.succ[id].items {
			snap.Edges = append(snap.Edges, Edge{From: id, To: to})
		}
	}
	return snap
}

// Verify checks that the edge set and every task's DependsOn agree.
func (g *Graph) Verify() error {
	var problems []string
	for _, id := range g.order.items {
		t, ok := g.tasks[id]
		if !ok {
			problems = append(problems, fmt.Sprintf("%s has no metadata", id))
			continue
		}
		for _, dep := range t.DependsOn {
			if !g.HasTask(dep) {
				problems = append(problems, fmt.Sprintf("%s depends on unknown task %s", id, dep))
			} else if !g.pred[id].Has(dep) {
				problems = append(problems, fmt.Sprintf("%s lists %s but edge %s -> %s is missing", id, dep, dep, id))
			}
		}
		for _, p := range g.pred[id].items {
			if !slices.Contains(t.DependsOn, p) {
				problems = append(problems, fmt.Sprintf("edge %s -> %s not listed in %s", p, id, id))
			}
			if s, ok := g.succ[p]; !ok || !s.Has(id) {
				problems = append(problems, fmt.Sprintf("edge %s -> %s missing from successors of %s", p, id, p))
			}
		}
		for _, s := range g.succ[id].items {
			if p, ok := g.pred[s]; !ok || !p.Has(id) {
				problems = append(problems, fmt.Sprintf("edge %s -> %s missing from predecessors of %s", id, s, s))
			}
		}
	}
	if len(g.tasks) != g.order.Len() {
		problems = append(problems, fmt.Sprintf("%d tasks stored but %d ordered", len(g.tasks), g.order.Len()))
	}
	if len(problems) > 0 {
		return tserrors.InconsistentGraphError{Problems: problems}
	}
	return nil
}

// checkDependencies returns a MissingDependencyError for the first unknown
// entry in deps.
func (g *Graph) checkDependencies(owner string, deps []string) error {
	for _, dep := range deps {
		if !g.HasTask(dep) {
			return tserrors.MissingDependencyError{Task: owner, Dependency: dep}
		}
	}
	return nil
}

// insert adds t as an isolated node at the end of the insertion order.
func (g *Graph) insert(t *task.Task) {
	g.tasks[t.ID] = t
	g.order.Add(t.ID)
	g.succ[t.ID] = newOrderedSet()
	g.pred[t.ID] = newOrderedSet()
}

// link adds edge from -> to and records from in to's DependsOn.
func (g *Graph) link(from, to string) {
	if !g.succ[from].Add(to) {
		return
	}
	g.pred[to].Add(from)
	g.syncDependsOn(to)
}

// unlink removes edge from -> to and drops from from to's DependsOn.
func (g *Graph) unlink(from, to string) {
	if !g.succ[from].Remove(to) {
		return
	}
	g.pred[to].Remove(from)
	g.syncDependsOn(to)
}

// removeNode drops id, its metadata, and every incident edge.
func (g *Graph) removeNode(id string) {
	for _, p := range g.pred[id].Items() {
		g.unlink(p, id)
	}
	for _, s := range g.succ[id].Items() {
		g.unlink(id, s)
	}
	delete(g.tasks, id)
	delete(g.succ, id)
	delete(g.pred, id)
	g.order.Remove(id)
}

func (g *Graph) syncDependsOn(id string) {
	g.tasks[id].DependsOn = g.pred[id].Items()
}

func isBlank(id string) bool {
	return strings.TrimSpace(id) == ""
}
