package deps

import "slices"

// TopologicalSort orders tasks so every dependency precedes its dependents.
// It reports false while the graph has a cycle. The order is the reverse DFS
// postorder, visiting roots in insertion order and successors in edge order,
// so independent subgraphs keep a stable relative order.
func (g *Graph) TopologicalSort() ([]string, bool) {
	if found, _ := g.DetectCycle(); found {
		return nil, false
	}

	visited := make(map[string]bool, g.Len())
	post := make([]string, 0, g.Len())

	for _, root := range g.order.items {
		if visited[root] {
			continue
		}
		visited[root] = true
		stack := []frame{{id: root}}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			succ := g.succ[top.id].items
			if top.next == len(succ) {
				post = append(post, top.id)
				stack = stack[:len(stack)-1]
				continue
			}
			next := succ[top.next]
			top.next++
			if !visited[next] {
				visited[next] = true
				stack = append(stack, frame{id: next})
			}
		}
	}

	slices.Reverse(post)
	return post, true
}
