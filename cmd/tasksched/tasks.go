package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abatilo/tasksched/internal/deps"
	"github.com/abatilo/tasksched/internal/input"
	"github.com/abatilo/tasksched/internal/storage"
	"github.com/abatilo/tasksched/internal/task"
)

// taskFlags holds the optional task attributes shared by add and edit.
type taskFlags struct {
	dependencies string
	priority     string
	deadline     string
	description  string
}

func (f *taskFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.dependencies, "depends-on", "d", "", "Comma-separated dependency ids")
	cmd.Flags().StringVarP(&f.priority, "priority", "p", "", "Priority (integer 0-10)")
	cmd.Flags().StringVar(&f.deadline, "deadline", "", "Deadline (YYYY-MM-DD or YYYY/MM/DD, or 'none')")
	cmd.Flags().StringVar(&f.description, "description", "", "Task description")
}

// parsePriority treats an empty flag as no priority.
func parsePriority(s string) (task.Priority, error) {
	if s == "" {
		return task.NoPriority, nil
	}
	return input.ParsePriority(s)
}

// parseID trims the id and checks it can be stored.
func parseID(s string) (string, error) {
	id, err := input.ParseName(s)
	if err != nil {
		return "", err
	}
	if err = storage.ValidateID(id); err != nil {
		return "", err
	}
	return id, nil
}

func mustGet(graph *deps.Graph, id string) *task.Task {
	t, err := graph.GetTask(id)
	if err != nil {
		printError(err)
	}
	return t
}

// addCmd implements 'tasksched add'.
func addCmd() *cobra.Command {
	var flags taskFlags
	cmd := &cobra.Command{
		Use:   "add <id>",
		Short: "Add a new task",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			id, err := parseID(args[0])
			if err != nil {
				printError(err)
			}
			priority, err := parsePriority(flags.priority)
			if err != nil {
				printError(err)
			}
			deadline, err := input.ParseDeadline(flags.deadline, now())
			if err != nil {
				printError(err)
			}

			store, graph := loadGraph()
			err = graph.AddTask(id, input.ParseList(flags.dependencies), priority, deadline, flags.description)
			if err != nil {
				printError(err)
			}
			saveGraph(store, graph)
			printOutput(formatter.FormatTask(mustGet(graph, id)))
		},
	}
	flags.register(cmd)
	return cmd
}

// showCmd implements 'tasksched show'.
func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show task details",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			_, graph := loadGraph()
			printOutput(formatter.FormatTask(mustGet(graph, args[0])))
		},
	}
}

// listCmd implements 'tasksched list'.
func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tasks in insertion order",
		Run: func(_ *cobra.Command, _ []string) {
			_, graph := loadGraph()
			printOutput(formatter.FormatTaskList(graph.Tasks()))
		},
	}
}

// rmCmd implements 'tasksched rm'.
func rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a task, linking its dependencies to its dependents",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			store, graph := loadGraph()
			if err := graph.DeleteTask(args[0]); err != nil {
				printError(err)
			}
			saveGraph(store, graph)
			printOutput(formatter.FormatMessage(fmt.Sprintf("Removed task %s", args[0])))
		},
	}
}

// renameCmd implements 'tasksched rename'.
func renameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <old-id> <new-id>",
		Short: "Rename a task, keeping its edges and attributes",
		Args:  cobra.ExactArgs(2), //nolint:mnd // CLI takes 2 positional args
		Run: func(_ *cobra.Command, args []string) {
			newID, err := parseID(args[1])
			if err != nil {
				printError(err)
			}
			store, graph := loadGraph()
			if err = graph.RenameTask(args[0], newID); err != nil {
				printError(err)
			}
			saveGraph(store, graph)
			printOutput(formatter.FormatTask(mustGet(graph, newID)))
		},
	}
}

// depsCmd implements 'tasksched deps'.
func depsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deps <id> <comma-separated-ids>",
		Short: "Replace the dependencies of a task",
		Long: "Replace the full dependency set of a task. Pass an empty string to\n" +
			"clear it. Cycles are allowed here; use 'tasksched cycle' to find them.",
		Args: cobra.ExactArgs(2), //nolint:mnd // CLI takes 2 positional args
		Run: func(_ *cobra.Command, args []string) {
			store, graph := loadGraph()
			if err := graph.EditDependencies(args[0], input.ParseList(args[1])); err != nil {
				printError(err)
			}
			saveGraph(store, graph)
			printOutput(formatter.FormatTask(mustGet(graph, args[0])))
		},
	}
}

// priorityCmd implements 'tasksched priority'.
func priorityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "priority <id> <0-10>",
		Short: "Set the priority of a task",
		Args:  cobra.ExactArgs(2), //nolint:mnd // CLI takes 2 positional args
		Run: func(_ *cobra.Command, args []string) {
			priority, err := input.ParsePriority(args[1])
			if err != nil {
				printError(err)
			}
			store, graph := loadGraph()
			if err = graph.EditPriority(args[0], priority); err != nil {
				printError(err)
			}
			saveGraph(store, graph)
			printOutput(formatter.FormatTask(mustGet(graph, args[0])))
		},
	}
}

// describeCmd implements 'tasksched describe'.
func describeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <id> <text>",
		Short: "Set the description of a task",
		Args:  cobra.ExactArgs(2), //nolint:mnd // CLI takes 2 positional args
		Run: func(_ *cobra.Command, args []string) {
			store, graph := loadGraph()
			if err := graph.EditDescription(args[0], args[1]); err != nil {
				printError(err)
			}
			saveGraph(store, graph)
			printOutput(formatter.FormatTask(mustGet(graph, args[0])))
		},
	}
}

// deadlineCmd implements 'tasksched deadline'.
func deadlineCmd() *cobra.Command {
	var clearDeadline bool
	cmd := &cobra.Command{
		Use:   "deadline <id> [date]",
		Short: "Set or clear the deadline of a task",
		Args:  cobra.RangeArgs(1, 2), //nolint:mnd // id plus optional date
		Run: func(_ *cobra.Command, args []string) {
			edit, err := deadlineEdit(args[1:], clearDeadline)
			if err != nil {
				printError(err)
			}
			store, graph := loadGraph()
			if err = graph.EditDeadline(args[0], edit); err != nil {
				printError(err)
			}
			saveGraph(store, graph)
			printOutput(formatter.FormatTask(mustGet(graph, args[0])))
		},
	}
	cmd.Flags().BoolVar(&clearDeadline, "clear", false, "Remove the deadline")
	return cmd
}

// deadlineEdit turns the optional date argument and --clear into an edit.
func deadlineEdit(rest []string, clearDeadline bool) (deps.DeadlineEdit, error) {
	switch {
	case clearDeadline && len(rest) > 0:
		return deps.DeadlineEdit{}, errors.New("pass either a date or --clear, not both")
	case clearDeadline:
		return deps.DeadlineEdit{Action: deps.DeadlineClear}, nil
	case len(rest) == 0:
		return deps.DeadlineEdit{}, errors.New("a date or --clear is required")
	}
	d, err := input.ParseDeadline(rest[0], now())
	if err != nil {
		return deps.DeadlineEdit{}, err
	}
	if !d.IsSet() {
		return deps.DeadlineEdit{Action: deps.DeadlineClear}, nil
	}
	return deps.DeadlineEdit{Action: deps.DeadlineSet, Deadline: d}, nil
}

// editCmd implements 'tasksched edit'.
func editCmd() *cobra.Command {
	var flags taskFlags
	cmd := &cobra.Command{
		Use:   "edit <old-id> <new-id>",
		Short: "Replace a task with a new definition",
		Long: "Replace a task with a new definition. Dependents of the old task are\n" +
			"re-pointed at the new one. The replacement starts with no dependencies\n" +
			"unless -d is given; priority, deadline and description carry over\n" +
			"unless their flags are set.",
		Args: cobra.ExactArgs(2), //nolint:mnd // CLI takes 2 positional args
		Run: func(c *cobra.Command, args []string) {
			newID, err := parseID(args[1])
			if err != nil {
				printError(err)
			}
			store, graph := loadGraph()
			repl, err := replacement(mustGet(graph, args[0]), newID, &flags, c.Flags().Changed)
			if err != nil {
				printError(err)
			}
			if err = graph.EditTask(args[0], repl); err != nil {
				printError(err)
			}
			saveGraph(store, graph)
			printOutput(formatter.FormatTask(mustGet(graph, newID)))
		},
	}
	flags.register(cmd)
	return cmd
}

// replacement builds the task that edit installs in place of old.
func replacement(old *task.Task, newID string, flags *taskFlags, changed func(string) bool) (task.Task, error) {
	repl := task.Task{
		ID:          newID,
		DependsOn:   input.ParseList(flags.dependencies),
		Priority:    old.Priority,
		Deadline:    old.Deadline,
		Description: old.Description,
	}
	if changed("priority") {
		p, err := parsePriority(flags.priority)
		if err != nil {
			return task.Task{}, err
		}
		repl.Priority = p
	}
	if changed("deadline") {
		d, err := input.ParseDeadline(flags.deadline, now())
		if err != nil {
			return task.Task{}, err
		}
		repl.Deadline = d
	}
	if changed("description") {
		repl.Description = flags.description
	}
	return repl, nil
}
