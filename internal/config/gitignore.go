package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Quote store files and logs change on every run; a dotfiles checkout of the
// config directory should skip them.
const gitignoreContent = "# solarsizer: files rewritten on every quote or run\n" +
	quotesFileName + "\n" +
	quotesFileName + ".lock\n" +
	quotesFileName + ".tmp\n" +
	"*.log\n"

// GitignoreContent returns the .gitignore written by EnsureGitignore.
func GitignoreContent() string {
	return gitignoreContent
}

// EnsureGitignore writes dir/.gitignore unless something already occupies that
// path, and reports whether it wrote one.
func EnsureGitignore(dir string) (bool, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return false, fmt.Errorf("creating directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, ".gitignore")
	//nolint:gosec // Ignore files are shared with git and other users: 0644.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("creating %s: %w", path, err)
	}

	_, writeErr := f.WriteString(gitignoreContent)
	closeErr := f.Close()
	if err = errors.Join(writeErr, closeErr); err != nil {
		_ = os.Remove(path)
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}
