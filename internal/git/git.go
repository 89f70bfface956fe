// Package git provides Git probing used to locate likely project roots.
package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// RepoRoot returns the top-level directory of the git repository containing
// dir. Returns an empty string (and no error) when dir is not inside a
// repository, and an error only when git itself cannot be invoked.
func RepoRoot(dir string) (string, error) {
	cmd := exec.Command("git", "-C", dir, "rev-parse", "--show-toplevel")
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// rev-parse exits non-zero outside a work tree
			return "", nil
		}
		return "", errors.Wrap(err, "running git rev-parse")
	}

	root := strings.TrimSpace(string(out))
	if root == "" {
		return "", nil
	}
	return filepath.Clean(root), nil
}

// IsRepo returns true if dir is inside a git work tree. A git invocation
// failure is treated as "not a repository".
func IsRepo(dir string) bool {
	root, err := RepoRoot(dir)
	return err == nil && root != ""
}

// WorkingRoot returns the repository root for the current working directory,
// or an empty string when the cwd is unavailable or outside a repository.
func WorkingRoot() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	root, err := RepoRoot(cwd)
	if err != nil {
		return ""
	}
	return root
}
