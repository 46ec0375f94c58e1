package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abatilo/tasksched/internal/deps"
	tserrors "github.com/abatilo/tasksched/internal/errors"
	"github.com/abatilo/tasksched/internal/output"
	"github.com/abatilo/tasksched/internal/task"
)

func tasksByID(graph *deps.Graph, ids []string) []*task.Task {
	tasks := make([]*task.Task, len(ids))
	for i, id := range ids {
		tasks[i] = mustGet(graph, id)
	}
	return tasks
}

// cycleCmd implements 'tasksched cycle'.
func cycleCmd() *cobra.Command {
	var full bool
	cmd := &cobra.Command{
		Use:   "cycle",
		Short: "Report a dependency cycle, if any",
		Run: func(_ *cobra.Command, _ []string) {
			_, graph := loadGraph()
			found, path := graph.DetectCycle()
			if found && !full {
				path = deps.Cycle(path)
			}
			printOutput(formatter.FormatCycle(found, path))
		},
	}
	cmd.Flags().BoolVar(&full, "path", false, "Show the search path leading into the cycle")
	return cmd
}

// topoCmd implements 'tasksched topo'.
func topoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "topo",
		Short: "List tasks so every task comes after its dependencies",
		Run: func(_ *cobra.Command, _ []string) {
			_, graph := loadGraph()
			order, ok := graph.TopologicalSort()
			if !ok {
				_, path := graph.DetectCycle()
				printError(tserrors.CycleError{Path: deps.Cycle(path)})
			}
			printOutput(formatter.FormatOrder("Topological order", tasksByID(graph, order), nil))
		},
	}
}

// byPriorityCmd implements 'tasksched by-priority'.
func byPriorityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "by-priority",
		Short: "List tasks from highest to lowest priority",
		Run: func(_ *cobra.Command, _ []string) {
			_, graph := loadGraph()
			tasks := tasksByID(graph, graph.SortByPriority())
			printOutput(formatter.FormatOrder("By priority", tasks, func(t *task.Task) string {
				return "P" + t.Priority.String()
			}))
		},
	}
}

// byDeadlineCmd implements 'tasksched by-deadline'.
func byDeadlineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "by-deadline",
		Short: "List tasks from earliest to latest deadline",
		Run: func(_ *cobra.Command, _ []string) {
			_, graph := loadGraph()
			tasks := tasksByID(graph, graph.SortByDeadline())
			printOutput(formatter.FormatOrder("By deadline", tasks, func(t *task.Task) string {
				return t.Deadline.String()
			}))
		},
	}
}

// graphCmd implements 'tasksched graph'.
func graphCmd() *cobra.Command {
	var dot bool
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Display dependency graph",
		Run: func(_ *cobra.Command, _ []string) {
			_, graph := loadGraph()
			if dot {
				printOutput(dotGraph(graph))
				return
			}
			printOutput(formatter.FormatGraph(graph.BuildTree()))
		},
	}
	cmd.Flags().BoolVar(&dot, "dot", false, "Emit Graphviz DOT instead of a tree")
	return cmd
}

func dotGraph(graph *deps.Graph) string {
	snap := graph.Snapshot()
	edges := make([][2]string, len(snap.Edges))
	for i, e := range snap.Edges {
		edges[i] = [2]string{e.From, e.To}
	}
	return output.FormatDOT(snap.Nodes, edges)
}

// checkCmd implements 'tasksched check'.
func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify that stored dependencies are consistent",
		Run: func(_ *cobra.Command, _ []string) {
			_, graph := loadGraph()
			if err := graph.Verify(); err != nil {
				printError(err)
			}
			msg := fmt.Sprintf("OK: %d tasks, %d dependencies", graph.Len(), graph.EdgeCount())
			if found, path := graph.DetectCycle(); found {
				msg += fmt.Sprintf("; cycle: %s", strings.Join(deps.Cycle(path), " -> "))
			}
			printOutput(formatter.FormatMessage(msg))
		},
	}
}
