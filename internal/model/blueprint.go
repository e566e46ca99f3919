package model

import (
	"path/filepath"

	"github.com/otterdog-go/otterdog/internal/value"
)

// Blueprint is a named template bundling include/exclude repository-name
// globs with default bypass actors and ruleset defaults, applied to newly
// created repositories matching the pattern (SPEC_FULL.md §C,
// "approve-blueprints" / "list-blueprints").
type Blueprint struct {
	Name               string // key
	IncludeRepoNames   []string
	ExcludeRepoNames   []string
	BypassActors       value.Value[[]BypassActor]
	DefaultRulesets    []string // names of org rulesets to apply
}

func (b *Blueprint) Key() string { return b.Name }

func (b *Blueprint) Validate(ctx *ValidationContext, _ ModelObject) {
	path := "blueprints[" + b.Name + "]"

	for _, pattern := range b.IncludeRepoNames {
		if !matchesAnyRepo(ctx, pattern) {
			ctx.Add(SeverityWarning, path, "include_repo_names pattern %q does not match any declared repository", pattern)
		}
	}

	for _, pattern := range b.ExcludeRepoNames {
		if !matchesAnyRepo(ctx, pattern) {
			ctx.Add(SeverityWarning, path, "exclude_repo_names pattern %q does not match any declared repository", pattern)
		}
	}
}

func matchesAnyRepo(ctx *ValidationContext, pattern string) bool {
	for name := range ctx.repoNames {
		if ok, err := filepath.Match(pattern, name); err == nil && ok {
			return true
		}
	}

	return false
}

// Matches reports whether repoName satisfies this blueprint's include/
// exclude globs.
func (b *Blueprint) Matches(repoName string) bool {
	included := len(b.IncludeRepoNames) == 0

	for _, pattern := range b.IncludeRepoNames {
		if ok, err := filepath.Match(pattern, repoName); err == nil && ok {
			included = true

			break
		}
	}

	if !included {
		return false
	}

	for _, pattern := range b.ExcludeRepoNames {
		if ok, err := filepath.Match(pattern, repoName); err == nil && ok {
			return false
		}
	}

	return true
}
