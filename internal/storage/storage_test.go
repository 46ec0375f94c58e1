//nolint:testpackage // Tests require internal access for thorough testing
package storage

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	tserrors "github.com/abatilo/tasksched/internal/errors"
	"github.com/abatilo/tasksched/internal/task"
)

func TestParseMarkdown(t *testing.T) {
	content := []byte(`---
id: build
order: 2
priority: 7
deadline: 2025-01-05
depends_on:
  - fetch
  - configure
---

Compile everything.
`)

	tk, err := ParseMarkdown(content)
	if err != nil {
		t.Fatalf("ParseMarkdown failed: %v", err)
	}

	if tk.ID != "build" {
		t.Errorf("ID = %q, want %q", tk.ID, "build")
	}
	if tk.Priority != 7 {
		t.Errorf("Priority = %d, want 7", tk.Priority)
	}
	if want := (task.Deadline{Year: 2025, Month: 1, Day: 5}); tk.Deadline != want {
		t.Errorf("Deadline = %v, want %v", tk.Deadline, want)
	}
	if !slices.Equal(tk.DependsOn, []string{"fetch", "configure"}) {
		t.Errorf("DependsOn = %v, want [fetch configure]", tk.DependsOn)
	}
	if tk.Description != "Compile everything." {
		t.Errorf("Description = %q, want %q", tk.Description, "Compile everything.")
	}
}

func TestParseMarkdownDefaults(t *testing.T) {
	tk, err := ParseMarkdown([]byte("---\nid: bare\n---\n"))
	if err != nil {
		t.Fatalf("ParseMarkdown failed: %v", err)
	}
	if tk.Priority != task.NoPriority {
		t.Errorf("Priority = %d, want NoPriority", tk.Priority)
	}
	if tk.Deadline.IsSet() {
		t.Errorf("Deadline = %v, want NoDeadline", tk.Deadline)
	}
	if len(tk.DependsOn) != 0 {
		t.Errorf("DependsOn = %v, want empty", tk.DependsOn)
	}
}

func TestParseMarkdownErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no frontmatter", "id: a\n"},
		{"unclosed frontmatter", "---\nid: a\n"},
		{"invalid yaml", "---\nid: [a\n---\n"},
		{"missing id", "---\norder: 1\n---\n"},
		{"priority out of range", "---\nid: a\npriority: 11\n---\n"},
		{"bad deadline", "---\nid: a\ndeadline: soon\n---\n"},
		{"deadline trailing text", "---\nid: a\ndeadline: 2025-01-05x\n---\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseMarkdown([]byte(tt.content)); err == nil {
				t.Errorf("ParseMarkdown(%q) succeeded, want error", tt.content)
			}
		})
	}
}

func TestSerializeMarkdown(t *testing.T) {
	tk := &task.Task{
		ID:          "build",
		DependsOn:   []string{"fetch"},
		Priority:    0,
		Deadline:    task.Deadline{Year: 2025, Month: 3, Day: 9},
		Description: "Description here",
	}

	data, err := SerializeMarkdown(tk, 4)
	if err != nil {
		t.Fatalf("SerializeMarkdown failed: %v", err)
	}
	if !strings.Contains(string(data), "priority: 0\n") {
		t.Errorf("SerializeMarkdown dropped a zero priority:\n%s", data)
	}

	rec, err := parseRecord(data)
	if err != nil {
		t.Fatalf("parseRecord failed: %v", err)
	}
	if rec.order != 4 {
		t.Errorf("Round-trip order = %d, want 4", rec.order)
	}
	parsed := rec.task
	if parsed.ID != tk.ID || parsed.Priority != tk.Priority || parsed.Deadline != tk.Deadline {
		t.Errorf("Round-trip = %+v, want %+v", parsed, tk)
	}
	if !slices.Equal(parsed.DependsOn, tk.DependsOn) {
		t.Errorf("Round-trip DependsOn = %v, want %v", parsed.DependsOn, tk.DependsOn)
	}
	if parsed.Description != tk.Description {
		t.Errorf("Round-trip Description = %q, want %q", parsed.Description, tk.Description)
	}
}

func TestSerializeMarkdownOmitsUnset(t *testing.T) {
	data, err := SerializeMarkdown(&task.Task{ID: "a", Priority: task.NoPriority}, 0)
	if err != nil {
		t.Fatalf("SerializeMarkdown failed: %v", err)
	}
	for _, key := range []string{"priority:", "deadline:", "depends_on:"} {
		if strings.Contains(string(data), key) {
			t.Errorf("SerializeMarkdown wrote %q for an unset field:\n%s", key, data)
		}
	}
}

func TestStoreOperations(t *testing.T) {
	basePath := filepath.Join(t.TempDir(), ".tasksched")
	store := NewStoreWithPath(basePath)

	if store.IsInitialized() {
		t.Error("Store should not be initialized yet")
	}
	if _, err := store.Load(); !errors.As(err, &tserrors.NotInitializedError{}) {
		t.Errorf("Load() before init error = %v, want NotInitializedError", err)
	}

	if err := store.Init(false); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if !store.IsInitialized() {
		t.Error("Store should be initialized")
	}
	if err := store.Init(false); !errors.As(err, &tserrors.AlreadyInitializedError{}) {
		t.Errorf("second Init error = %v, want AlreadyInitializedError", err)
	}
	if err := store.Init(true); err != nil {
		t.Errorf("forced Init failed: %v", err)
	}

	tasks := []*task.Task{
		{ID: "zeta", Priority: 3},
		{ID: "alpha", DependsOn: []string{"zeta"}, Priority: task.NoPriority},
		{ID: "mid", DependsOn: []string{"zeta", "alpha"}, Priority: 9},
	}
	if err := store.SaveAll(tasks); err != nil {
		t.Fatalf("SaveAll failed: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := ids(loaded); !slices.Equal(got, []string{"zeta", "alpha", "mid"}) {
		t.Errorf("Load order = %v, want [zeta alpha mid]", got)
	}
	if !slices.Equal(loaded[2].DependsOn, []string{"zeta", "alpha"}) {
		t.Errorf("DependsOn = %v, want [zeta alpha]", loaded[2].DependsOn)
	}

	// Dropping a task removes its file.
	if err := store.SaveAll(tasks[:2]); err != nil {
		t.Fatalf("SaveAll failed: %v", err)
	}
	if _, err := os.Stat(store.taskPath("mid")); !os.IsNotExist(err) {
		t.Errorf("stale file for mid still present: %v", err)
	}
	loaded, err = store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := ids(loaded); !slices.Equal(got, []string{"zeta", "alpha"}) {
		t.Errorf("Load after removal = %v, want [zeta alpha]", got)
	}
}

func TestSaveAllRejectsInvalidID(t *testing.T) {
	store := NewStoreWithPath(t.TempDir())
	tasks := []*task.Task{{ID: "ok"}, {ID: "a/b"}}

	err := store.SaveAll(tasks)
	var invalid tserrors.InvalidIDError
	if !errors.As(err, &invalid) {
		t.Fatalf("SaveAll error = %v, want InvalidIDError", err)
	}
	if invalid.ID != "a/b" {
		t.Errorf("InvalidIDError.ID = %q, want a/b", invalid.ID)
	}
	if _, err := os.Stat(store.taskPath("ok")); !os.IsNotExist(err) {
		t.Error("SaveAll wrote files before rejecting an invalid id")
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.md"), []byte("no frontmatter"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewStoreWithPath(dir).Load(); err == nil {
		t.Error("Load() succeeded with a malformed task file")
	}
}

func TestValidateID(t *testing.T) {
	tests := []struct {
		id      string
		wantErr bool
	}{
		{"build", false},
		{"build.v2", false},
		{"with space", false},
		{"a/b", true},
		{`a\b`, true},
		{".", true},
		{"..", true},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if err := ValidateID(tt.id); (err != nil) != tt.wantErr {
				t.Errorf("ValidateID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
		})
	}
}

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple path", "/Users/abatilo/myproject", "Users-abatilo-myproject"},
		{"path with spaces", "/Users/john doe/my project", "Users-john-doe-my-project"},
		{"path with special chars", "/home/user/my.project-v2", "home-user-my-project-v2"},
		{"root path", "/", ""},
		{"nested path", "/a/b/c/d/e", "a-b-c-d-e"},
		{"trailing slash", "/Users/abatilo/project/", "Users-abatilo-project"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizePath(tt.input); got != tt.want {
				t.Errorf("SanitizePath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFindProjectRoot(t *testing.T) {
	tmpDir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to resolve symlinks: %v", err)
	}

	repo := filepath.Join(tmpDir, "repo")
	grandchild := filepath.Join(repo, "child", "grandchild")
	if err = os.MkdirAll(grandchild, 0o755); err != nil {
		t.Fatalf("Failed to create directories: %v", err)
	}
	if err = os.Mkdir(filepath.Join(repo, ".git"), 0o755); err != nil {
		t.Fatalf("Failed to create .git: %v", err)
	}

	t.Run("finds .git in parent directory", func(t *testing.T) {
		oldWd, err := os.Getwd()
		if err != nil {
			t.Fatalf("Getwd() error = %v", err)
		}
		if err = os.Chdir(grandchild); err != nil {
			t.Fatalf("Chdir() error = %v", err)
		}
		t.Setenv("PWD", grandchild)
		t.Cleanup(func() { _ = os.Chdir(oldWd) })

		root, err := FindProjectRoot()
		if err != nil {
			t.Fatalf("FindProjectRoot() error = %v", err)
		}
		if root != repo {
			t.Errorf("FindProjectRoot() = %q, want %q", root, repo)
		}
	})

	t.Run("ignores a .git file", func(t *testing.T) {
		worktree := filepath.Join(tmpDir, "worktree")
		if err := os.Mkdir(worktree, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(worktree, ".git"), []byte("gitdir: x"), 0o644); err != nil {
			t.Fatal(err)
		}
		root, err := findProjectRoot(worktree)
		if err == nil && root == worktree {
			t.Errorf("findProjectRoot(%q) treated a .git file as a repository", worktree)
		}
	})

	t.Run("returns error at filesystem root", func(t *testing.T) {
		_, err := findProjectRoot(string(filepath.Separator))
		if err != nil && !errors.As(err, &tserrors.NotInRepoError{}) {
			t.Errorf("findProjectRoot(/) error = %v, want NotInRepoError", err)
		}
	})
}

func ids(tasks []*task.Task) []string {
	out := make([]string, len(tasks))
	for i, tk := range tasks {
		out[i] = tk.ID
	}
	return out
}
