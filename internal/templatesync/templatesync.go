// Package templatesync implements the sync-template operation
// (SPEC_FULL.md §B: the teacher's file/label/smyklot sync commands are
// adapted rather than deleted). Where the teacher synced a fixed file
// mapping across every repository in an organization via its own
// settings-sync config format (pkg/github/files.go), this package syncs
// a blueprint's declared template files across the repositories that
// blueprint matches (model.Blueprint, §C "approve-blueprints"), opening
// one pull request per repository exactly as the teacher did.
package templatesync

import (
	"context"
	"encoding/base64"

	"github.com/cockroachdb/errors"
	"github.com/google/go-github/v84/github"

	"github.com/otterdog-go/otterdog/pkg/logger"
)

// File is one template file to propagate: Content is applied verbatim at
// Dest in every target repository.
type File struct {
	Dest    string
	Content []byte
}

// Result tallies one repository's sync outcome.
type Result struct {
	Repo     string
	Skipped  bool
	PRNumber int
	PRURL    string
}

// Sync propagates files to repo on branch branchName, based off repo's
// default branch, opening or updating a pull request titled for the
// blueprint sync. baseBranch is the repository's default branch.
func Sync(ctx context.Context, log *logger.Logger, client *github.Client, org, repo, baseBranch, branchName string, files []File, prBody string) (Result, error) {
	result := Result{Repo: repo}

	baseRef, _, err := client.Git.GetRef(ctx, org, repo, "heads/"+baseBranch)
	if err != nil {
		return result, errors.Wrapf(err, "fetching base ref for %s/%s", org, repo)
	}

	baseSHA := baseRef.GetObject().GetSHA()

	if err := ensureBranch(ctx, log, client, org, repo, branchName, baseSHA); err != nil {
		return result, err
	}

	changed, err := commitFiles(ctx, log, client, org, repo, branchName, baseSHA, files)
	if err != nil {
		return result, err
	}

	if !changed {
		result.Skipped = true

		return result, nil
	}

	number, url, err := upsertPullRequest(ctx, log, client, org, repo, baseBranch, branchName, prBody)
	if err != nil {
		return result, err
	}

	result.PRNumber = number
	result.PRURL = url

	return result, nil
}

func ensureBranch(ctx context.Context, log *logger.Logger, client *github.Client, org, repo, branchName, baseSHA string) error {
	_, _, err := client.Git.GetRef(ctx, org, repo, "heads/"+branchName)
	if err == nil {
		return nil
	}

	log.Debug("creating sync branch", "org", org, "repo", repo, "branch", branchName)

	ref := github.CreateRef{
		Ref: "refs/heads/" + branchName,
		SHA: baseSHA,
	}

	_, _, err = client.Git.CreateRef(ctx, org, repo, ref)

	return errors.Wrapf(err, "creating branch %s on %s/%s", branchName, org, repo)
}

// commitFiles fetches the current content at each file's destination,
// skips files already at the desired content, and commits the rest as a
// single tree, mirroring the teacher's createGitCommit (pkg/github/files.go).
func commitFiles(ctx context.Context, log *logger.Logger, client *github.Client, org, repo, branchName, baseSHA string, files []File) (bool, error) {
	var entries []*github.TreeEntry

	for _, f := range files {
		current, _, _, err := client.Repositories.GetContents(ctx, org, repo, f.Dest, &github.RepositoryContentGetOptions{Ref: branchName})
		if err == nil && current != nil {
			existing, decodeErr := current.GetContent()
			if decodeErr == nil && existing == string(f.Content) {
				continue
			}
		}

		blob := &github.Blob{
			Content:  github.Ptr(base64.StdEncoding.EncodeToString(f.Content)),
			Encoding: github.Ptr("base64"),
		}

		createdBlob, _, err := client.Git.CreateBlob(ctx, org, repo, blob)
		if err != nil {
			return false, errors.Wrapf(err, "creating blob for %s", f.Dest)
		}

		entries = append(entries, &github.TreeEntry{
			Path: github.Ptr(f.Dest),
			Mode: github.Ptr("100644"),
			Type: github.Ptr("blob"),
			SHA:  createdBlob.SHA,
		})
	}

	if len(entries) == 0 {
		return false, nil
	}

	baseCommit, _, err := client.Git.GetCommit(ctx, org, repo, baseSHA)
	if err != nil {
		return false, errors.Wrap(err, "fetching base commit")
	}

	tree, _, err := client.Git.CreateTree(ctx, org, repo, baseCommit.GetTree().GetSHA(), entries)
	if err != nil {
		return false, errors.Wrap(err, "creating tree")
	}

	commit := &github.Commit{
		Message: github.Ptr("chore(sync-template): sync template files"),
		Tree:    tree,
		Parents: []*github.Commit{{SHA: github.Ptr(baseSHA)}},
	}

	newCommit, _, err := client.Git.CreateCommit(ctx, org, repo, commit, nil)
	if err != nil {
		return false, errors.Wrap(err, "creating commit")
	}

	log.Debug("updating sync branch ref", "org", org, "repo", repo, "sha", newCommit.GetSHA())

	updateRef := github.UpdateRef{
		SHA:   newCommit.GetSHA(),
		Force: github.Ptr(true),
	}

	_, _, err = client.Git.UpdateRef(ctx, org, repo, "heads/"+branchName, updateRef)

	return true, errors.Wrap(err, "updating branch ref")
}

func upsertPullRequest(ctx context.Context, log *logger.Logger, client *github.Client, org, repo, baseBranch, branchName, body string) (int, string, error) {
	open, _, err := client.PullRequests.List(ctx, org, repo, &github.PullRequestListOptions{
		State: "open",
		Head:  org + ":" + branchName,
	})
	if err != nil {
		return 0, "", errors.Wrap(err, "listing existing pull requests")
	}

	if len(open) > 0 {
		log.Info("sync-template: reusing open pull request", "org", org, "repo", repo, "pr", open[0].GetNumber())

		return open[0].GetNumber(), open[0].GetHTMLURL(), nil
	}

	pr, _, err := client.PullRequests.Create(ctx, org, repo, &github.NewPullRequest{
		Title: github.Ptr("chore(sync-template): sync template files"),
		Head:  github.Ptr(branchName),
		Base:  github.Ptr(baseBranch),
		Body:  github.Ptr(body),
	})
	if err != nil {
		return 0, "", errors.Wrap(err, "creating pull request")
	}

	log.Info("sync-template: opened pull request", "org", org, "repo", repo, "pr", pr.GetNumber())

	return pr.GetNumber(), pr.GetHTMLURL(), nil
}
