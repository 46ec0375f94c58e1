package deps

import "github.com/abatilo/tasksched/internal/output"

// BuildTree lays the graph out as a forest for display. Roots are tasks with
// no dependencies. A task reachable along several paths is expanded once and
// marked Repeat elsewhere; a back edge into the current path is marked Cycle.
// Tasks reachable only through a cycle get their own root entries.
func (g *Graph) BuildTree() []output.GraphNode {
	expanded := make(map[string]bool, g.Len())
	onPath := make(map[string]bool)

	var build func(id string) output.GraphNode
	build = func(id string) output.GraphNode {
		node := output.GraphNode{Task: g.tasks[id].Clone()}
		if onPath[id] {
			node.Cycle = true
			return node
		}
		if expanded[id] {
			node.Repeat = true
			return node
		}
		expanded[id] = true
		onPath[id] = true
		for _, s := range g.succ[id].items {
			node.Children = append(node.Children, build(s))
		}
		onPath[id] = false
		return node
	}

	var roots []output.GraphNode
	for _, id := range g.order.items {
		if g.pred[id].Len() == 0 {
			roots = append(roots, build(id))
		}
	}
	for _, id := range g.order.items {
		if !expanded[id] {
			roots = append(roots, build(id))
		}
	}
	return roots
}
