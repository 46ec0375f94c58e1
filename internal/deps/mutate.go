package deps

import (
	"slices"

	"go.uber.org/zap"

	tserrors "github.com/abatilo/tasksched/internal/errors"
	"github.com/abatilo/tasksched/internal/task"
)

// DeadlineAction selects what EditDeadline does.
type DeadlineAction int

const (
	// DeadlineKeep leaves the deadline unchanged.
	DeadlineKeep DeadlineAction = iota
	// DeadlineSet replaces the deadline with a concrete date.
	DeadlineSet
	// DeadlineClear reverts to task.NoDeadline.
	DeadlineClear
)

// DeadlineEdit is a deadline change request. Deadline is only read for
// DeadlineSet.
type DeadlineEdit struct {
	Action   DeadlineAction
	Deadline task.Deadline
}

// EditDependencies replaces the whole dependency set of id. Every new
// dependency is checked before any edge changes, so a failed call leaves
// the graph untouched. Cycles are not rejected here.
func (g *Graph) EditDependencies(id string, dependencies []string) error {
	if !g.HasTask(id) {
		return tserrors.TaskNotFoundError{ID: id}
	}
	if err := g.checkDependencies(id, dependencies); err != nil {
		return err
	}

	old := g.pred[id].Items()
	for _, p := range old {
		g.unlink(p, id)
	}
	for _, dep := range dependencies {
		g.link(dep, id)
	}

	g.logger.Debug("dependencies replaced",
		zap.String("task", id),
		zap.Strings("old", old),
		zap.Strings("new", g.pred[id].Items()))
	return nil
}

// DeleteTask removes id and bridges the gap it leaves: every predecessor
// gains an edge to every successor, so transitive ordering survives.
func (g *Graph) DeleteTask(id string) error {
	if !g.HasTask(id) {
		return tserrors.TaskNotFoundError{ID: id}
	}

	preds := g.pred[id].Items()
	succs := g.succ[id].Items()
	bridged := 0
	for _, s := range succs {
		if s == id {
			continue
		}
		for _, p := range preds {
			if p == id || g.succ[p].Has(s) {
				continue
			}
			g.link(p, s)
			bridged++
		}
	}
	g.removeNode(id)

	g.logger.Debug("task deleted",
		zap.String("task", id),
		zap.Int("bridged_edges", bridged))
	return nil
}

// RenameTask moves the task, its metadata, and all of its edges from oldID to
// newID. The task keeps its position in insertion order.
func (g *Graph) RenameTask(oldID, newID string) error {
	t, ok := g.tasks[oldID]
	if !ok {
		return tserrors.TaskNotFoundError{ID: oldID}
	}
	if isBlank(newID) {
		return tserrors.EmptyNameError{}
	}
	if newID == oldID {
		return nil
	}
	if g.HasTask(newID) {
		return tserrors.DuplicateTaskError{ID: newID}
	}

	succ, pred := g.succ[oldID], g.pred[oldID]
	delete(g.tasks, oldID)
	delete(g.succ, oldID)
	delete(g.pred, oldID)

	// A self-loop lives in the task's own sets.
	succ.Replace(oldID, newID)
	pred.Replace(oldID, newID)

	t.ID = newID
	g.tasks[newID] = t
	g.succ[newID] = succ
	g.pred[newID] = pred
	g.order.Replace(oldID, newID)

	for _, s := range succ.items {
		if s == newID {
			continue
		}
		g.pred[s].Replace(oldID, newID)
		g.syncDependsOn(s)
	}
	for _, p := range pred.items {
		if p == newID {
			continue
		}
		g.succ[p].Replace(oldID, newID)
	}
	g.syncDependsOn(newID)

	g.logger.Debug("task renamed",
		zap.String("old", oldID),
		zap.String("new", newID))
	return nil
}

// EditPriority stores a priority that the caller has already validated.
func (g *Graph) EditPriority(id string, priority task.Priority) error {
	t, ok := g.tasks[id]
	if !ok {
		return tserrors.TaskNotFoundError{ID: id}
	}
	t.Priority = priority
	g.logger.Debug("priority updated", zap.String("task", id), zap.Int("priority", int(priority)))
	return nil
}

// EditDescription replaces the task description.
func (g *Graph) EditDescription(id, description string) error {
	t, ok := g.tasks[id]
	if !ok {
		return tserrors.TaskNotFoundError{ID: id}
	}
	t.Description = description
	g.logger.Debug("description updated", zap.String("task", id))
	return nil
}

// SetDeadline gives the task a concrete deadline.
func (g *Graph) SetDeadline(id string, deadline task.Deadline) error {
	return g.EditDeadline(id, DeadlineEdit{Action: DeadlineSet, Deadline: deadline})
}

// ClearDeadline removes the task deadline.
func (g *Graph) ClearDeadline(id string) error {
	return g.EditDeadline(id, DeadlineEdit{Action: DeadlineClear})
}

// EditDeadline applies a set, clear, or keep action to the task deadline.
func (g *Graph) EditDeadline(id string, edit DeadlineEdit) error {
	t, ok := g.tasks[id]
	if !ok {
		return tserrors.TaskNotFoundError{ID: id}
	}
	switch edit.Action {
	case DeadlineSet:
		t.Deadline = edit.Deadline
	case DeadlineClear:
		t.Deadline = task.NoDeadline
	case DeadlineKeep:
		return nil
	}
	g.logger.Debug("deadline updated", zap.String("task", id), zap.Stringer("deadline", t.Deadline))
	return nil
}

// EditTask replaces oldID with a newly specified task. Tasks that depended on
// oldID now depend on the replacement. The old task's own dependencies are
// dropped, not carried over; the replacement gets exactly repl.DependsOn.
// repl.ID may equal oldID. The replacement is appended to insertion order.
func (g *Graph) EditTask(oldID string, repl task.Task) error {
	if !g.HasTask(oldID) {
		return tserrors.TaskNotFoundError{ID: oldID}
	}
	if isBlank(repl.ID) {
		return tserrors.EmptyNameError{}
	}
	if repl.ID != oldID && g.HasTask(repl.ID) {
		return tserrors.DuplicateTaskError{ID: repl.ID}
	}
	if err := g.checkDependencies(repl.ID, repl.DependsOn); err != nil {
		return err
	}

	dependents := g.succ[oldID].Items()
	dropped := g.pred[oldID].Items()
	g.removeNode(oldID)

	g.insert(&task.Task{
		ID:          repl.ID,
		Priority:    repl.Priority,
		Deadline:    repl.Deadline,
		Description: repl.Description,
	})
	for _, dep := range repl.DependsOn {
		// a dependency on the replaced task went away with it
		if dep == oldID {
			continue
		}
		g.link(dep, repl.ID)
	}
	for _, t := range dependents {
		if t == oldID {
			continue
		}
		g.link(repl.ID, t)
	}

	g.logger.Debug("task replaced",
		zap.String("old", oldID),
		zap.String("new", repl.ID),
		zap.Strings("dependents", dependents),
		zap.Strings("dropped_dependencies", slices.DeleteFunc(dropped, func(d string) bool {
			return g.pred[repl.ID].Has(d)
		})))
	return nil
}
