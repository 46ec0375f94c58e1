package deps

// frame is one entry of the explicit DFS stack: a node and the index of the
// next successor to visit.
type frame struct {
	id   string
	next int
}

// DetectCycle walks the graph depth-first from every unvisited task in
// insertion order, following successors in edge order. On the first back edge
// u -> v it returns true and the path from the traversal root down to u,
// followed by v. The last element therefore closes the cycle and the one
// before it is where the back edge was found; the cycle itself is the suffix
// starting at the first occurrence of v.
func (g *Graph) DetectCycle() (bool, []string) {
	visited := make(map[string]bool, g.Len())
	onStack := make(map[string]bool)

	for _, root := range g.order.items {
		if visited[root] {
			continue
		}
		visited[root] = true
		onStack[root] = true
		stack := []frame{{id: root}}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			succ := g.succ[top.id].items
			if top.next == len(succ) {
				onStack[top.id] = false
				stack = stack[:len(stack)-1]
				continue
			}
			next := succ[top.next]
			top.next++

			if !visited[next] {
				visited[next] = true
				onStack[next] = true
				stack = append(stack, frame{id: next})
				continue
			}
			if onStack[next] {
				path := make([]string, 0, len(stack)+1)
				for _, f := range stack {
					path = append(path, f.id)
				}
				return true, append(path, next)
			}
		}
	}
	return false, nil
}

// Cycle returns only the closed cycle from a DetectCycle path: the suffix
// that starts and ends at the closing task.
func Cycle(path []string) []string {
	if len(path) == 0 {
		return nil
	}
	closing := path[len(path)-1]
	for i, id := range path[:len(path)-1] {
		if id == closing {
			return path[i:]
		}
	}
	return path
}
