package apply

import (
	"context"
	"errors"
	"testing"

	"github.com/otterdog-go/otterdog/internal/diff"
	"github.com/otterdog-go/otterdog/pkg/logger"
)

type fakeDispatcher struct {
	applied []diff.LivePatch
	failOn  string
}

func (f *fakeDispatcher) Apply(_ context.Context, p diff.LivePatch) error {
	if f.failOn != "" && p.Path == f.failOn {
		return errors.New("boom")
	}

	f.applied = append(f.applied, p)

	return nil
}

func testLog() *logger.Logger {
	return logger.New("error")
}

func TestRunSkipsDeletesByDefault(t *testing.T) {
	patches := []diff.LivePatch{
		{Operation: diff.OpAdd, Path: "repositories[a]"},
		{Operation: diff.OpRemove, Path: "repositories[b]"},
	}

	d := &fakeDispatcher{}

	result, err := Run(context.Background(), testLog(), d, patches, Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Additions != 1 || result.Deletions != 0 {
		t.Errorf("result = %+v, want 1 addition, 0 deletions", result)
	}

	if len(d.applied) != 1 {
		t.Errorf("dispatcher applied %d patches, want 1 (delete should be skipped)", len(d.applied))
	}
}

func TestRunAppliesDeletesWhenEnabled(t *testing.T) {
	patches := []diff.LivePatch{
		{Operation: diff.OpRemove, Path: "repositories[b]"},
	}

	d := &fakeDispatcher{}

	result, err := Run(context.Background(), testLog(), d, patches, Options{DeleteResources: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Deletions != 1 {
		t.Errorf("Deletions = %d, want 1", result.Deletions)
	}
}

func TestRunDryRunAppliesNothing(t *testing.T) {
	patches := []diff.LivePatch{
		{Operation: diff.OpAdd, Path: "repositories[a]"},
	}

	d := &fakeDispatcher{}

	result, err := Run(context.Background(), testLog(), d, patches, Options{DryRun: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Additions != 1 {
		t.Errorf("Additions = %d, want 1 (dry-run still counts)", result.Additions)
	}

	if len(d.applied) != 0 {
		t.Errorf("dispatcher applied %d patches during dry-run, want 0", len(d.applied))
	}
}

func TestRunAbortsOnFirstFailureByDefault(t *testing.T) {
	patches := []diff.LivePatch{
		{Operation: diff.OpAdd, Path: "repositories[a]"},
		{Operation: diff.OpAdd, Path: "repositories[b]"},
	}

	d := &fakeDispatcher{failOn: "repositories[a]"}

	result, err := Run(context.Background(), testLog(), d, patches, Options{})
	if err == nil {
		t.Fatal("expected error on first failing patch")
	}

	if result.Additions != 0 || len(d.applied) != 0 {
		t.Errorf("expected no patches applied after abort, got %+v", result)
	}
}

func TestRunContinuesOnErrorWhenEnabled(t *testing.T) {
	patches := []diff.LivePatch{
		{Operation: diff.OpAdd, Path: "repositories[a]"},
		{Operation: diff.OpAdd, Path: "repositories[b]"},
	}

	d := &fakeDispatcher{failOn: "repositories[a]"}

	result, err := Run(context.Background(), testLog(), d, patches, Options{ContinueOnError: true})
	if err == nil {
		t.Fatal("expected an aggregate error when failures occurred")
	}

	if result.Additions != 1 {
		t.Errorf("Additions = %d, want 1 (the non-failing patch)", result.Additions)
	}

	if !result.HasFailures() || len(result.Failures) != 1 {
		t.Errorf("Failures = %+v, want exactly one", result.Failures)
	}
}
