// Package evaluator runs the jsonnet evaluator that turns a per-
// organization declarative source file into the JSON document §3
// describes. The spec treats this format as opaque to the engine (§6:
// "Per-organization configuration file. Opaque to the engine; the
// evaluator returns JSON matching §3"), so this package shells out to an
// external `jsonnet` binary rather than embedding an interpreter: no Go
// jsonnet library appears anywhere in the retrieval pack, and the
// contract is already an external-process one by design.
package evaluator

import (
	"bytes"
	"context"
	"os/exec"

	"github.com/cockroachdb/errors"
)

// ErrEvaluationFailed wraps a non-zero exit from the jsonnet binary,
// carrying its stderr.
var ErrEvaluationFailed = errors.New("evaluator: jsonnet evaluation failed")

// Evaluator invokes an external jsonnet implementation to resolve one
// organization's declarative source into JSON.
type Evaluator struct {
	// Binary is the executable name or path, "jsonnet" by default.
	Binary string
	// ConfigDir is prepended to jsonnet's library search path (-J),
	// matching Defaults.Jsonnet.ConfigDir (§6).
	ConfigDir string
}

// New returns an Evaluator using binary (or "jsonnet" if empty).
func New(binary, configDir string) *Evaluator {
	if binary == "" {
		binary = "jsonnet"
	}

	return &Evaluator{Binary: binary, ConfigDir: configDir}
}

// Evaluate runs the jsonnet source at sourcePath with the given external
// variables (typically `orgName`, `githubId`) and returns the rendered
// JSON document.
func (e *Evaluator) Evaluate(ctx context.Context, sourcePath string, extVars map[string]string) ([]byte, error) {
	args := []string{}

	if e.ConfigDir != "" {
		args = append(args, "-J", e.ConfigDir)
	}

	for k, v := range extVars {
		args = append(args, "--ext-str", k+"="+v)
	}

	args = append(args, sourcePath)

	cmd := exec.CommandContext(ctx, e.Binary, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, errors.Wrapf(ErrEvaluationFailed, "%s: %s", err.Error(), stderr.String())
	}

	return stdout.Bytes(), nil
}
