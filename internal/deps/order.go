package deps

import "sort"

// SortByPriority returns task IDs by priority, highest first. Tasks without a
// priority come last; equal priorities keep insertion order.
func (g *Graph) SortByPriority() []string {
	ids := g.order.Items()
	sort.SliceStable(ids, func(i, j int) bool {
		return g.tasks[ids[i]].Priority.SortKey() > g.tasks[ids[j]].Priority.SortKey()
	})
	return ids
}

// SortByDeadline returns task IDs by deadline, earliest first. Tasks without a
// deadline come last; equal deadlines keep insertion order.
func (g *Graph) SortByDeadline() []string {
	ids := g.order.Items()
	sort.SliceStable(ids, func(i, j int) bool {
		return g.tasks[ids[i]].Deadline.Compare(g.tasks[ids[j]].Deadline) < 0
	})
	return ids
}
