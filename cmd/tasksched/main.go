package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/abatilo/tasksched/internal/config"
	"github.com/abatilo/tasksched/internal/deps"
	"github.com/abatilo/tasksched/internal/output"
	"github.com/abatilo/tasksched/internal/storage"
)

//nolint:gochecknoglobals // CLI flags and formatter are package-level by design
var (
	jsonOutput bool
	dirFlag    string
	formatter  output.Formatter = output.NewHumanFormatter()
	cfg        *config.Config
	logger     = zap.NewNop()
	now        = time.Now
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tasksched",
		Short: "A dependency-aware task scheduler",
		Long: "tasksched - Track tasks with dependencies, priorities and deadlines,\n" +
			"and order them topologically, by priority, or by deadline.",
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if jsonOutput {
				formatter = output.NewJSONFormatter()
			} else {
				formatter = output.NewHumanFormatter()
			}

			var err error
			cfg, err = config.Load()
			if err != nil {
				printError(err)
			}
			if cfg.NoColor() {
				color.NoColor = true
			}
			logger = initLogger(cfg.ZapLevel())
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = logger.Sync()
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&dirFlag, "dir", "", "Task directory (overrides TASKSCHED_DIR)")

	rootCmd.AddCommand(
		initCmd(),
		addCmd(),
		showCmd(),
		listCmd(),
		rmCmd(),
		renameCmd(),
		depsCmd(),
		priorityCmd(),
		describeCmd(),
		deadlineCmd(),
		editCmd(),
		cycleCmd(),
		topoCmd(),
		byPriorityCmd(),
		byDeadlineCmd(),
		graphCmd(),
		checkCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initLogger builds a production logger on stderr so stdout stays parseable.
func initLogger(level zapcore.Level) *zap.Logger {
	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = zap.NewAtomicLevelAt(level)
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapConfig.OutputPaths = []string{"stderr"}

	l, err := zapConfig.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	return l
}

// storeDir picks the task directory: --dir, then TASKSCHED_DIR, then the
// project-scoped default.
func storeDir(flag string, c *config.Config) string {
	if flag != "" {
		return flag
	}
	if c != nil {
		return c.Dir
	}
	return ""
}

func getStore() (*storage.Store, error) {
	if dir := storeDir(dirFlag, cfg); dir != "" {
		return storage.NewStoreWithPath(dir), nil
	}
	return storage.NewStore()
}

// loadGraph opens the store and rebuilds the graph from it.
func loadGraph() (*storage.Store, *deps.Graph) {
	store, err := getStore()
	if err != nil {
		printError(err)
	}
	tasks, err := store.Load()
	if err != nil {
		printError(err)
	}
	graph, err := deps.Restore(tasks, logger)
	if err != nil {
		printError(fmt.Errorf("failed to load tasks from %s: %w", store.BasePath(), err))
	}
	return store, graph
}

// saveGraph verifies the graph and writes it back.
func saveGraph(store *storage.Store, graph *deps.Graph) {
	if err := graph.Verify(); err != nil {
		printError(err)
	}
	if err := store.SaveAll(graph.Tasks()); err != nil {
		printError(err)
	}
	logger.Info("tasks saved",
		zap.String("dir", store.BasePath()),
		zap.Int("tasks", graph.Len()),
		zap.Int("edges", graph.EdgeCount()))
}

func printOutput(s string) {
	os.Stdout.WriteString(s) //nolint:gosec // stdout write errors are unrecoverable
}

func printError(err error) {
	os.Stdout.WriteString(formatter.FormatError(err)) //nolint:gosec // stdout write errors are unrecoverable
	os.Exit(1)
}

// initCmd implements 'tasksched init'.
func initCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the task directory",
		Run: func(_ *cobra.Command, _ []string) {
			store, err := getStore()
			if err != nil {
				printError(err)
			}
			if err = store.Init(force); err != nil {
				printError(err)
			}
			printOutput(formatter.FormatMessage(fmt.Sprintf("Initialized tasksched at %s", store.BasePath())))
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Reinitialize even if already exists")
	return cmd
}
