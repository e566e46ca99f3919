// Package model defines the typed entities of §3: Organization and every
// resource it owns, directly or transitively. Each entity exposes the
// uniform surface described in §4.2 (C2): field-kind enumeration, model/
// provider constructors, validation, diff-relevant serialization, and
// get_model_objects() iteration used by both the validator (C6) and the
// import/render component (C8).
package model

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Severity classifies a validation finding (§4.6).
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Finding is one (severity, message) pair produced during validation.
type Finding struct {
	Severity Severity
	Message  string
	Path     string // dotted path to the offending entity, e.g. "repositories[foo].branch_protection_rules[main]"
}

func (f Finding) String() string {
	if f.Path == "" {
		return fmt.Sprintf("[%s] %s", f.Severity, f.Message)
	}

	return fmt.Sprintf("[%s] %s: %s", f.Severity, f.Path, f.Message)
}

// ValidationContext accumulates findings across an entire validation run
// (C6). A single context is threaded through the whole Organization tree.
type ValidationContext struct {
	Findings []Finding

	// plan identifies the GitHub billing plan of the organization being
	// validated; some invariants are plan-gated (e.g. ruleset
	// enforcement=evaluate requires "enterprise").
	Plan string

	// repoNames is the set of repository names declared in the same
	// Organization, used to validate ruleset include/exclude globs and
	// required_deployment_environments references.
	repoNames map[string]struct{}
	envNames  map[string]map[string]struct{} // repo -> environment names
}

// NewValidationContext creates a context for validating org against the
// given billing plan.
func NewValidationContext(plan string) *ValidationContext {
	return &ValidationContext{
		Plan:      plan,
		repoNames: make(map[string]struct{}),
		envNames:  make(map[string]map[string]struct{}),
	}
}

func (c *ValidationContext) registerRepo(name string) {
	c.repoNames[name] = struct{}{}
	if _, ok := c.envNames[name]; !ok {
		c.envNames[name] = make(map[string]struct{})
	}
}

func (c *ValidationContext) registerEnvironment(repo, env string) {
	if _, ok := c.envNames[repo]; !ok {
		c.envNames[repo] = make(map[string]struct{})
	}

	c.envNames[repo][env] = struct{}{}
}

// HasRepo reports whether a repository with the given name was declared.
func (c *ValidationContext) HasRepo(name string) bool {
	_, ok := c.repoNames[name]

	return ok
}

// HasEnvironment reports whether a repository declared the given environment.
func (c *ValidationContext) HasEnvironment(repo, env string) bool {
	envs, ok := c.envNames[repo]
	if !ok {
		return false
	}

	_, ok = envs[env]

	return ok
}

// Add records a finding at path.
func (c *ValidationContext) Add(severity Severity, path, format string, args ...any) {
	c.Findings = append(c.Findings, Finding{
		Severity: severity,
		Message:  fmt.Sprintf(format, args...),
		Path:     path,
	})
}

// Errors returns the findings at ERROR severity.
func (c *ValidationContext) Errors() []Finding {
	return c.filter(SeverityError)
}

// Warnings returns the findings at WARNING severity.
func (c *ValidationContext) Warnings() []Finding {
	return c.filter(SeverityWarning)
}

func (c *ValidationContext) filter(sev Severity) []Finding {
	var out []Finding

	for _, f := range c.Findings {
		if f.Severity == sev {
			out = append(out, f)
		}
	}

	return out
}

// HasErrors reports whether any ERROR-level finding was recorded. Per §4.6,
// any ERROR aborts apply/plan.
func (c *ValidationContext) HasErrors() bool {
	return len(c.Errors()) > 0
}

// ErrValidation is returned by the driver when a validation run produced
// one or more ERROR findings.
var ErrValidation = errors.New("organization failed validation")

// ModelObject is the uniform surface every managed entity implements
// (§4.2). Validate receives the parent entity (or nil for the
// Organization root) so cross-field invariants spanning parent/child can
// be checked (e.g. "private repositories forbid security-analysis
// blocks").
type ModelObject interface {
	// Key returns this entity's identity within its parent collection, or
	// "" if the entity is a keyless singleton (e.g. OrganizationSettings).
	Key() string
	// Validate appends findings to ctx. parent is the owning entity (or
	// nil at the Organization root).
	Validate(ctx *ValidationContext, parent ModelObject)
}

// Keyed is implemented by entities that additionally track prior keys
// under which they were known, for rename detection (§4.4 "Rename
// tracking"; §3 "Alias").
type Keyed interface {
	ModelObject
	// Aliases returns every key this entity was previously known under, in
	// addition to Key().
	Aliases() []string
}

// AllKeys returns Key() plus every alias, used when matching current
// entities against expected ones by primary key union aliases.
func AllKeys(k Keyed) []string {
	out := []string{k.Key()}

	return append(out, k.Aliases()...)
}

// ObjectWithParent pairs a ModelObject with its owning parent (or nil at
// the Organization root), as yielded by get_model_objects() (§4.2) for
// validator traversal (C6) and import/render (C8).
type ObjectWithParent struct {
	Object ModelObject
	Parent ModelObject
}
