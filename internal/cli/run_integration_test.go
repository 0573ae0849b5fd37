package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	stdruntime "runtime"
	"strings"
	"testing"
)

func TestRunCommandExecutesManifestTasks(t *testing.T) {
	if stdruntime.GOOS == "windows" {
		t.Skip("cli integration tests rely on /bin/sh")
	}

	dir := t.TempDir()
	manifest := filepath.Join(dir, "tasks.yaml")
	contents := `version: "1"
tasks:
  greet:
    command: ["/bin/sh", "-c", "echo hello"]
  quiet:
    command: ["/bin/sh", "-c", "exit 0"]
`
	if err := os.WriteFile(manifest, []byte(contents), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs([]string{"run", "-f", manifest, "--json"})

	if err := root.Execute(); err != nil {
		t.Fatalf("run command failed: %v (stderr %q)", err, errOut.String())
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected one record per task, got %d: %q", len(lines), out.String())
	}

	var first RunRecord
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("decode first record: %v", err)
	}
	if first.Task != "greet" {
		t.Fatalf("tasks not run in sorted order: %q", first.Task)
	}
	if first.Status != "success" {
		t.Fatalf("unexpected status: %q", first.Status)
	}
	if first.Stdout != "hello\n" {
		t.Fatalf("unexpected stdout: %q", first.Stdout)
	}
	if first.RunID == "" {
		t.Fatalf("run id missing from record")
	}
}

func TestRunCommandReportsFailures(t *testing.T) {
	if stdruntime.GOOS == "windows" {
		t.Skip("cli integration tests rely on /bin/sh")
	}

	dir := t.TempDir()
	manifest := filepath.Join(dir, "tasks.yaml")
	contents := `tasks:
  bad:
    command: ["/bin/sh", "-c", "echo broken >&2; exit 2"]
`
	if err := os.WriteFile(manifest, []byte(contents), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs([]string{"run", "-f", manifest})

	err := root.Execute()
	if err == nil {
		t.Fatalf("failing task reported success")
	}
	if !strings.Contains(err.Error(), "1 of 1 tasks failed") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunCommandUnknownTask(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "tasks.yaml")
	if err := os.WriteFile(manifest, []byte("tasks:\n  ok:\n    command: [\"true\"]\n"), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"run", "-f", manifest, "missing"})

	err := root.Execute()
	if err == nil {
		t.Fatalf("unknown task accepted")
	}
	if !strings.Contains(err.Error(), "unknown task missing") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestConfigLintCommand(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "tasks.yaml")
	if err := os.WriteFile(manifest, []byte("tasks:\n  ok:\n    command: [\"true\"]\n"), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"config", "lint", "-f", manifest})
	if err := root.Execute(); err != nil {
		t.Fatalf("lint of valid manifest failed: %v", err)
	}

	root = NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"config", "lint", "-f", filepath.Join(dir, "missing.yaml")})
	if err := root.Execute(); err == nil {
		t.Fatalf("lint of missing manifest succeeded")
	}
}
