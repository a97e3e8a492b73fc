// Package gitref resolves the repository context a pipeline run is triggered
// from: event type, branch, tag, and commit SHA. CI environment variables win
// over local git detection so hosted runs see exactly what the platform saw.
package gitref

import (
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Context holds the resolved trigger inputs.
type Context struct {
	Event  string // raw event name, "" when not in CI
	Branch string
	Tag    string
	SHA    string
}

// Resolve builds a Context for the repository at rootDir.
// Precedence: GitLab CI env, GitHub Actions env, local git HEAD.
// Missing pieces stay empty; a non-repo directory is not an error.
func Resolve(rootDir string) Context {
	ctx := fromEnv()

	if ctx.Branch == "" || ctx.SHA == "" {
		local := fromRepo(rootDir)
		if ctx.Branch == "" {
			ctx.Branch = local.Branch
		}
		if ctx.Tag == "" {
			ctx.Tag = local.Tag
		}
		if ctx.SHA == "" {
			ctx.SHA = local.SHA
		}
	}

	return ctx
}

func fromEnv() Context {
	var ctx Context

	if os.Getenv("GITLAB_CI") == "true" {
		ctx.Event = os.Getenv("CI_PIPELINE_SOURCE")
		ctx.Branch = os.Getenv("CI_COMMIT_BRANCH")
		ctx.Tag = os.Getenv("CI_COMMIT_TAG")
		ctx.SHA = os.Getenv("CI_COMMIT_SHA")
		// Merge request pipelines carry the target branch separately.
		if target := os.Getenv("CI_MERGE_REQUEST_TARGET_BRANCH_NAME"); target != "" {
			ctx.Branch = target
		}
		return ctx
	}

	if os.Getenv("GITHUB_ACTIONS") == "true" {
		ctx.Event = os.Getenv("GITHUB_EVENT_NAME")
		ctx.SHA = os.Getenv("GITHUB_SHA")
		if target := os.Getenv("GITHUB_BASE_REF"); target != "" {
			ctx.Branch = target
		} else if os.Getenv("GITHUB_REF_TYPE") == "tag" {
			ctx.Tag = os.Getenv("GITHUB_REF_NAME")
		} else {
			ctx.Branch = os.Getenv("GITHUB_REF_NAME")
		}
		return ctx
	}

	return ctx
}

// fromRepo reads HEAD from the local repository. Detached HEAD on a tag
// resolves the tag name; otherwise only the SHA is filled.
func fromRepo(rootDir string) Context {
	var ctx Context

	repo, err := git.PlainOpen(rootDir)
	if err != nil {
		return ctx // not a git repo
	}

	head, err := repo.Head()
	if err != nil {
		return ctx // unborn HEAD
	}
	ctx.SHA = head.Hash().String()

	if head.Name().IsBranch() {
		ctx.Branch = head.Name().Short()
		return ctx
	}

	// Detached HEAD — check whether it sits exactly on a tag.
	tags, err := repo.Tags()
	if err != nil {
		return ctx
	}
	defer tags.Close()
	_ = tags.ForEach(func(ref *plumbing.Reference) error {
		if ref.Hash() == head.Hash() {
			ctx.Tag = ref.Name().Short()
		}
		return nil
	})

	return ctx
}
