package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

var (
	ErrNotGitRepo      = errors.New("not a git repository")
	ErrFFNotPossible   = errors.New("fast-forward not possible, local changes exist")
	ErrAlreadyUpToDate = errors.New("already up to date")
	ErrDirNotEmpty     = errors.New("config directory exists and is not a git repository")
	ErrInvalidURL      = errors.New("invalid git URL")
)

// SyncResult describes what SyncRepository did
type SyncResult struct {
	Cloned  bool
	Updated bool
	Commit  string
}

// SyncRepository clones url into dir, or fast-forwards dir when it already
// is a clone. progressWriter can be nil to disable progress output.
func SyncRepository(url, dir string, progressWriter io.Writer) (*SyncResult, error) {
	if IsGitRepo(dir) {
		err := updateRepo(dir, progressWriter)
		if errors.Is(err, ErrAlreadyUpToDate) {
			return &SyncResult{Commit: currentCommit(dir)}, nil
		}
		if err != nil {
			return nil, err
		}
		return &SyncResult{Updated: true, Commit: currentCommit(dir)}, nil
	}

	if err := ValidateGitURL(url); err != nil {
		return nil, err
	}

	// Refuse to clone over hand-written configuration
	if entries, err := os.ReadDir(dir); err == nil && len(entries) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrDirNotEmpty, dir)
	}

	_, err := git.PlainClone(dir, false, &git.CloneOptions{
		URL:      url,
		Progress: progressWriter,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to clone repository: %w", err)
	}

	return &SyncResult{Cloned: true, Commit: currentCommit(dir)}, nil
}

// updateRepo performs a fast-forward update on a clean clone
func updateRepo(repoPath string, progressWriter io.Writer) error {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotGitRepo, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}

	// Local edits to pkgmap.ini would be lost by the reset below
	status, err := worktree.Status()
	if err != nil {
		return fmt.Errorf("failed to get status: %w", err)
	}
	if !status.IsClean() {
		return ErrFFNotPossible
	}

	err = repo.Fetch(&git.FetchOptions{
		RemoteName: "origin",
		Progress:   progressWriter,
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("failed to fetch: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return fmt.Errorf("failed to get HEAD: %w", err)
	}

	remote, err := remoteBranch(repo, head.Name().Short())
	if err != nil {
		return err
	}

	if head.Hash() == remote.Hash() {
		return ErrAlreadyUpToDate
	}

	err = worktree.Reset(&git.ResetOptions{
		Commit: remote.Hash(),
		Mode:   git.HardReset,
	})
	if err != nil {
		return fmt.Errorf("failed to fast-forward: %w", err)
	}
	return nil
}

// remoteBranch finds the origin branch tracking branch, falling back to
// main and master
func remoteBranch(repo *git.Repository, branch string) (*plumbing.Reference, error) {
	var lastErr error
	for _, name := range []string{branch, "main", "master"} {
		ref, err := repo.Reference(plumbing.NewRemoteReferenceName("origin", name), true)
		if err == nil {
			return ref, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("failed to find remote branch: %w", lastErr)
}

// IsGitRepo checks if a directory is a git repository
func IsGitRepo(path string) bool {
	_, err := git.PlainOpen(path)
	return err == nil
}

func currentCommit(repoPath string) string {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return ""
	}
	head, err := repo.Head()
	if err != nil {
		return ""
	}
	return head.Hash().String()[:8]
}

// ValidateGitURL accepts https, ssh and git URLs plus local paths
func ValidateGitURL(url string) error {
	lower := strings.ToLower(url)
	for _, prefix := range []string{"https://", "git@", "git://", "ssh://", "file://", "/"} {
		if strings.HasPrefix(lower, prefix) {
			return nil
		}
	}
	return fmt.Errorf("%w: %q (must start with https://, git@, ssh://, git:// or be an absolute path)", ErrInvalidURL, url)
}
