// Package git reads version information from a local git repository so a
// versionCode and versionName can be derived from history instead of being
// maintained by hand.
package git

import (
	"errors"
	"fmt"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/MyCarrier-DevOps/go-gradlevariant/internal/schema"
	"github.com/MyCarrier-DevOps/go-gradlevariant/internal/variant"
	"github.com/MyCarrier-DevOps/go-gradlevariant/internal/version"
)

// DefaultVersionName is used when no release tag is reachable from HEAD.
const DefaultVersionName = "0.0.0"

// ErrNoCommits is returned when HEAD does not point at a commit.
var ErrNoCommits = errors.New("repository has no commits")

// Repository is a local git repository opened with go-git.
type Repository struct {
	repo    *gogit.Repository
	workDir string
}

// Open opens the git repository containing path. Parent directories are
// searched for a .git directory.
func Open(path string) (*Repository, error) {
	r, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening git repository at %s: %w", path, err)
	}

	workDir := path
	if wt, err := r.Worktree(); err == nil {
		workDir = wt.Filesystem.Root()
	}

	return &Repository{repo: r, workDir: filepath.Clean(workDir)}, nil
}

// WorkingDirectory returns the root of the worktree.
func (r *Repository) WorkingDirectory() string {
	return r.workDir
}

// Info summarizes the history of HEAD.
type Info struct {
	// CommitCount is the number of commits on HEAD's first-parent history.
	CommitCount int

	// LatestTag is the name of the highest version tag on that history,
	// or "" when there is none.
	LatestTag string

	// Version is the parsed LatestTag.
	Version version.Version
}

// Describe walks HEAD's first-parent history, counting commits and picking
// the highest tag that parses as a version.
func (r *Repository) Describe() (Info, error) {
	head, err := r.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return Info{}, ErrNoCommits
		}
		return Info{}, fmt.Errorf("getting HEAD: %w", err)
	}

	history, err := r.firstParentHistory(head.Hash())
	if err != nil {
		return Info{}, err
	}

	tags, err := r.versionTags()
	if err != nil {
		return Info{}, err
	}

	info := Info{CommitCount: len(history)}
	for _, t := range tags {
		if _, ok := history[t.commit]; !ok {
			continue
		}
		if info.LatestTag == "" || t.version.Compare(info.Version) > 0 {
			info.LatestTag = t.name
			info.Version = t.version
		}
	}
	return info, nil
}

// Layer returns the override layer carrying the derived versionCode and
// versionName.
func (i Info) Layer() variant.Values {
	code := max(i.CommitCount, 1)
	name := DefaultVersionName
	if i.LatestTag != "" {
		name = i.Version.String()
	}
	return variant.Values{
		schema.KeyVersionCode: code,
		schema.KeyVersionName: name,
	}
}

func (r *Repository) firstParentHistory(from plumbing.Hash) (map[plumbing.Hash]struct{}, error) {
	seen := make(map[plumbing.Hash]struct{})
	c, err := r.repo.CommitObject(from)
	if err != nil {
		return nil, fmt.Errorf("getting commit %s: %w", from, err)
	}
	for {
		seen[c.Hash] = struct{}{}
		if c.NumParents() == 0 {
			return seen, nil
		}
		c, err = c.Parent(0)
		if err != nil {
			return nil, fmt.Errorf("getting parent: %w", err)
		}
	}
}

type versionTag struct {
	name    string
	commit  plumbing.Hash
	version version.Version
}

func (r *Repository) versionTags() ([]versionTag, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	var tags []versionTag
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		v, ok := version.ParseTag(name)
		if !ok {
			return nil
		}
		commit, err := r.peel(ref.Hash())
		if err != nil {
			return nil // skip tags that do not point at commits
		}
		tags = append(tags, versionTag{name: name, commit: commit, version: v})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}
	return tags, nil
}

// peel resolves an annotated tag to the commit it points at. Lightweight
// tags already point at a commit.
func (r *Repository) peel(hash plumbing.Hash) (plumbing.Hash, error) {
	tag, err := r.repo.TagObject(hash)
	if err == nil {
		c, err := tag.Commit()
		if err != nil {
			return plumbing.ZeroHash, err
		}
		return c.Hash, nil
	}
	if !errors.Is(err, plumbing.ErrObjectNotFound) {
		return plumbing.ZeroHash, err
	}
	c, err := r.repo.CommitObject(hash)
	if err != nil {
		return plumbing.ZeroHash, err
	}
	return c.Hash, nil
}
