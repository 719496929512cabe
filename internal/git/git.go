package git

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/format/index"
)

// Status describes how a file relates to the enclosing repository.
type Status string

const (
	StatusTracked      Status = "tracked"
	StatusUntracked    Status = "untracked"
	StatusNoRepository Status = "no_repository"
)

// FileStatus reports whether path is staged in the index of the repository
// that contains dir. dir must exist; path may live anywhere below it.
func FileStatus(dir, path string) (Status, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return StatusNoRepository, nil
	}
	if err != nil {
		return "", fmt.Errorf("open repository: %w", err)
	}

	wt, err := repo.Worktree()
	if errors.Is(err, git.ErrIsBareRepository) {
		return StatusNoRepository, nil
	}
	if err != nil {
		return "", fmt.Errorf("open worktree: %w", err)
	}

	rel, err := filepath.Rel(realPath(wt.Filesystem.Root()), realPath(path))
	if err != nil {
		return "", fmt.Errorf("relativize %s: %w", path, err)
	}

	idx, err := repo.Storer.Index()
	if err != nil {
		return "", fmt.Errorf("read index: %w", err)
	}
	if _, err := idx.Entry(filepath.ToSlash(rel)); err != nil {
		if errors.Is(err, index.ErrEntryNotFound) {
			return StatusUntracked, nil
		}
		return "", fmt.Errorf("lookup %s: %w", rel, err)
	}
	return StatusTracked, nil
}

// realPath resolves symlinks where possible so temp dirs behind /private or
// similar compare equal.
func realPath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}
