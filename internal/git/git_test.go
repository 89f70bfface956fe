package git

import (
	"os/exec"
	"path/filepath"
	"testing"
)

// gitAvailable skips the test when git is not on PATH.
func gitAvailable(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
}

func TestRepoRootOutsideRepo(t *testing.T) {
	gitAvailable(t)

	dir := t.TempDir()
	root, err := RepoRoot(dir)
	if err != nil {
		t.Fatalf("RepoRoot: %v", err)
	}
	if root != "" {
		t.Errorf("RepoRoot(%q) = %q, want empty", dir, root)
	}
	if IsRepo(dir) {
		t.Error("IsRepo returned true for a plain directory")
	}
}

func TestRepoRootInsideRepo(t *testing.T) {
	gitAvailable(t)

	dir := t.TempDir()
	if out, err := exec.Command("git", "-C", dir, "init").CombinedOutput(); err != nil {
		t.Skipf("git init failed: %v (%s)", err, out)
	}

	sub := filepath.Join(dir, "nested")
	if err := exec.Command("mkdir", "-p", sub).Run(); err != nil {
		t.Fatal(err)
	}

	root, err := RepoRoot(sub)
	if err != nil {
		t.Fatalf("RepoRoot: %v", err)
	}
	// Resolve symlinks on both sides (macOS /var vs /private/var).
	wantResolved, _ := filepath.EvalSymlinks(dir)
	gotResolved, _ := filepath.EvalSymlinks(root)
	if gotResolved != wantResolved {
		t.Errorf("RepoRoot = %q, want %q", gotResolved, wantResolved)
	}
	if !IsRepo(sub) {
		t.Error("IsRepo returned false inside a repository")
	}
}
