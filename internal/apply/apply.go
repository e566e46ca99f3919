// Package apply implements the patch applier (C5): it consumes the
// ordered []diff.LivePatch produced by internal/diff and dispatches each
// one to the provider facade (C1), respecting the delete_resources gate
// and --continue-on-error semantics (§4.5), and aggregating a result
// summary in the teacher's SettingsSyncResult style
// (pkg/github/results.go).
package apply

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/otterdog-go/otterdog/internal/diff"
	"github.com/otterdog-go/otterdog/pkg/logger"
)

// Dispatcher is implemented by the provider facade (C1): a single Apply
// method that carries out one LivePatch, whatever its entity kind. It is
// implemented by rest.Client, graphql.Client and
// provider.CompositeDispatcher.
type Dispatcher interface {
	Apply(ctx context.Context, patch diff.LivePatch) error
}

// Options controls apply's handling of destructive and partial-failure
// cases (§4.5, §6 CLI flags --delete-resources / --continue-on-error).
type Options struct {
	DeleteResources  bool
	ContinueOnError  bool
	DryRun           bool
}

// Result aggregates apply's outcome across every patch, mirroring the
// teacher's SettingsSyncResult fields (pkg/github/results.go).
type Result struct {
	Additions int
	Changes   int
	Deletions int
	Failures  []FailedPatch
}

// FailedPatch records one patch that could not be applied, for
// --continue-on-error reporting.
type FailedPatch struct {
	Patch diff.LivePatch
	Err   error
}

func (r *Result) HasFailures() bool { return len(r.Failures) > 0 }

// Run applies every patch in order, skipping REMOVE patches unless
// DeleteResources is set (§4.5: destructive operations are opt-in). When
// ContinueOnError is false, the first failure aborts the run immediately;
// otherwise every patch is attempted and failures are collected.
func Run(ctx context.Context, log *logger.Logger, d Dispatcher, patches []diff.LivePatch, opts Options) (*Result, error) {
	result := &Result{}

	for _, p := range patches {
		if p.Operation == diff.OpRemove && !opts.DeleteResources {
			log.Info("skipping delete, delete_resources disabled", "path", p.Path)

			continue
		}

		if opts.DryRun {
			countPatch(result, p)
			log.Info("dry-run: would apply patch", "operation", p.Operation.String(), "path", p.Path)

			continue
		}

		if err := d.Apply(ctx, p); err != nil {
			wrapped := errors.Wrapf(err, "applying patch %s %s", p.Operation, p.Path)

			if !opts.ContinueOnError {
				return result, wrapped
			}

			log.Error("patch failed, continuing", "path", p.Path, "error", err)
			result.Failures = append(result.Failures, FailedPatch{Patch: p, Err: wrapped})

			continue
		}

		countPatch(result, p)
		log.Info("applied patch", "operation", p.Operation.String(), "path", p.Path)
	}

	if result.HasFailures() {
		return result, errors.Newf("%d patch(es) failed to apply", len(result.Failures))
	}

	return result, nil
}

func countPatch(r *Result, p diff.LivePatch) {
	switch p.Operation {
	case diff.OpAdd:
		r.Additions++
	case diff.OpRemove:
		r.Deletions++
	case diff.OpChange:
		r.Changes++
	}
}
