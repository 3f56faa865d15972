package source

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher_DetectsChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graph.toml")
	if err := os.WriteFile(path, []byte("vertices = []\nedges = []\n"), 0o644); err != nil {
		t.Fatalf("failed to create graph file: %v", err)
	}

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(path, []byte("vertices = [1]\nedges = []\n"), 0o644); err != nil {
		t.Fatalf("failed to update graph file: %v", err)
	}

	select {
	case change := <-w.Changes:
		if change.Kind != ChangeModified {
			t.Errorf("expected ChangeModified, got %s", change.Kind)
		}
		if filepath.Base(change.File) != "graph.toml" {
			t.Errorf("unexpected file %q", change.File)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change event")
	}
}

func TestWatcher_DetectsRemoval(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graph.toml")
	if err := os.WriteFile(path, []byte("vertices = []\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}

	select {
	case change := <-w.Changes:
		if change.Kind != ChangeRemoved {
			t.Errorf("expected ChangeRemoved, got %s", change.Kind)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for removal event")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graph.toml")

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "notes.toml"), []byte("x = 1"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case change := <-w.Changes:
		t.Errorf("unexpected change event: %+v", change)
	case <-time.After(300 * time.Millisecond):
	}
}
