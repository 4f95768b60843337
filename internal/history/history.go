// Package history reads the revision log of individual content documents
// from the git repository that holds the content tree. Documents change only
// by manual edits, so the git log is their complete lifecycle.
package history

import (
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"git.home.luguber.info/inful/contentkit/internal/cerrors"
)

// Revision is one recorded change of a document.
type Revision struct {
	Hash    string    `json:"hash"`
	Author  string    `json:"author"`
	Email   string    `json:"email"`
	When    time.Time `json:"when"`
	Summary string    `json:"summary"`
}

// ForPath returns the revisions that touched the given file, newest first.
// path may be absolute or relative to the current directory; the enclosing
// repository is discovered upward from it.
func ForPath(path string) ([]Revision, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	repo, err := git.PlainOpenWithOptions(filepath.Dir(abs), &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, cerrors.NotARepository(path)
		}
		return nil, cerrors.HistoryError(path, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, cerrors.HistoryError(path, err)
	}

	rel, err := filepath.Rel(wt.Filesystem.Root(), abs)
	if err != nil {
		return nil, cerrors.HistoryError(path, err)
	}
	rel = filepath.ToSlash(rel)

	iter, err := repo.Log(&git.LogOptions{FileName: &rel})
	if err != nil {
		return nil, cerrors.HistoryError(path, err)
	}
	defer iter.Close()

	var revisions []Revision
	err = iter.ForEach(func(c *object.Commit) error {
		revisions = append(revisions, Revision{
			Hash:    c.Hash.String(),
			Author:  c.Author.Name,
			Email:   c.Author.Email,
			When:    c.Author.When,
			Summary: summaryLine(c.Message),
		})
		return nil
	})
	if err != nil {
		return nil, cerrors.HistoryError(path, err)
	}
	return revisions, nil
}

func summaryLine(message string) string {
	if i := strings.IndexByte(message, '\n'); i >= 0 {
		return strings.TrimSpace(message[:i])
	}
	return strings.TrimSpace(message)
}
