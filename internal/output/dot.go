package output

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatDOT renders nodes and edges as a Graphviz digraph. Each edge is a
// [from, to] pair pointing from a dependency to its dependent.
func FormatDOT(nodes []string, edges [][2]string) string {
	var sb strings.Builder
	sb.WriteString("digraph tasks {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=box, style=filled, fillcolor=skyblue];\n")
	for _, n := range nodes {
		fmt.Fprintf(&sb, "  %s;\n", strconv.Quote(n))
	}
	for _, e := range edges {
		fmt.Fprintf(&sb, "  %s -> %s;\n", strconv.Quote(e[0]), strconv.Quote(e[1]))
	}
	sb.WriteString("}\n")
	return sb.String()
}
