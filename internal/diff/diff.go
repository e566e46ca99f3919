// Package diff implements the three-way diff generator (C4): comparing an
// expected model.Organization against its live counterpart produces an
// ordered stream of LivePatch values describing exactly what apply (C5)
// must do to reconcile the two. Ordering is deterministic (§4.4) so two
// runs over identical inputs always produce an identical plan.
package diff

import (
	"sort"

	"github.com/otterdog-go/otterdog/internal/model"
)

// Operation classifies a LivePatch.
type Operation int

const (
	OpAdd Operation = iota
	OpRemove
	OpChange
)

func (o Operation) String() string {
	switch o {
	case OpAdd:
		return "ADD"
	case OpRemove:
		return "REMOVE"
	case OpChange:
		return "CHANGE"
	default:
		return "UNKNOWN"
	}
}

// FieldChange is one field's before/after pair within a CHANGE patch.
type FieldChange struct {
	From any
	To   any
}

// LivePatch is one unit of reconciliation work: create, delete, or update
// a single model object (§4.4). Path identifies the object for display
// and logging, mirroring model.Finding.Path's dotted notation.
type LivePatch struct {
	Operation Operation
	Path      string
	Object    model.ModelObject
	Parent    model.ModelObject
	Changes   map[string]FieldChange // populated only for OpChange

	// Forced marks an update that must be written even though no
	// comparable field differs, because the object carries at least one
	// opaque value.Value (a webhook/secret whose provider never echoes
	// the secret back) that can never be proven equal (§4.4 step 5,
	// §8 property 4).
	Forced bool
}

// Context threads the flags that change diff behavior without altering
// entity comparison logic itself.
type Context struct {
	// UpdateWebhooks, when true, forces every declared webhook to an
	// update patch regardless of comparable-field equality (teacher
	// concept: "opaque value always differs"; §4.4 step 5).
	UpdateWebhooks bool
	// UpdateSecrets does the same for secrets.
	UpdateSecrets bool
	// UpdateFilter restricts forced updates to entities whose Key()
	// matches one of these names; empty means "all".
	UpdateFilter map[string]struct{}
}

func (c Context) filterAllows(key string) bool {
	if len(c.UpdateFilter) == 0 {
		return true
	}

	_, ok := c.UpdateFilter[key]

	return ok
}

// Generate produces the full ordered patch list for reconciling live into
// the shape declared by expected (§4.4). Before comparing, it applies
// model.SuppressForArchived to every repository of both organizations and
// coerces each expected repository's workflow settings against expected's
// organization workflow settings (§4.4 steps 1 and 4); both inputs are
// modified in place.
func Generate(ctx Context, expected, live *model.Organization) []LivePatch {
	for _, org := range []*model.Organization{expected, live} {
		for _, r := range org.Repositories {
			model.SuppressForArchived(r)
		}
	}

	for _, r := range expected.Repositories {
		r.WorkflowSettings.CoerceForOrganization(&expected.WorkflowSettings)
	}

	var patches []LivePatch

	patches = append(patches, diffSingleton(&expected.Settings, &live.Settings, "settings")...)
	patches = append(patches, diffSingleton(&expected.WorkflowSettings, &live.WorkflowSettings, "workflow_settings")...)

	patches = append(patches, diffList(ctx, "custom_properties", keyedSlice(expected.CustomProperties), keyedSlice(live.CustomProperties), nil)...)
	patches = append(patches, diffList(ctx, "roles", keyedSlice(expected.Roles), keyedSlice(live.Roles), nil)...)
	patches = append(patches, diffList(ctx, "rulesets", keyedSlice(expected.Rulesets), keyedSlice(live.Rulesets), nil)...)
	patches = append(patches, diffList(ctx, "teams", keyedSlice(expected.Teams), keyedSlice(live.Teams), nil)...)
	patches = append(patches, diffList(ctx, "webhooks", keyedSlice(expected.Webhooks), keyedSlice(live.Webhooks), forcedKeyFn(ctx.UpdateWebhooks))...)
	patches = append(patches, diffList(ctx, "secrets", keyedSlice(expected.Secrets), keyedSlice(live.Secrets), forcedKeyFn(ctx.UpdateSecrets))...)
	patches = append(patches, diffList(ctx, "variables", keyedSlice(expected.Variables), keyedSlice(live.Variables), nil)...)

	patches = append(patches, diffRepositories(ctx, expected.Repositories, live.Repositories)...)

	return patches
}

func forcedKeyFn(enabled bool) func(string) bool {
	if !enabled {
		return nil
	}

	return func(string) bool { return true }
}

// diffRepositories matches expected/live repositories by name-union-alias
// (§4.2 step 3 rename tracking) before recursing into each one's owned
// collections in repository-internal order.
func diffRepositories(ctx Context, expected, live []*model.Repository) []LivePatch {
	var patches []LivePatch

	liveByName := make(map[string]*model.Repository, len(live))
	matchedLive := make(map[string]bool, len(live))

	for _, r := range live {
		liveByName[r.Name] = r
	}

	expectedNames := make([]string, 0, len(expected))
	expectedByName := make(map[string]*model.Repository, len(expected))

	for _, r := range expected {
		expectedNames = append(expectedNames, r.Name)
		expectedByName[r.Name] = r
	}

	sort.Strings(expectedNames)

	for _, name := range expectedNames {
		exp := expectedByName[name]

		var match *model.Repository

		for _, candidate := range exp.GetAllNames() {
			if l, ok := liveByName[candidate]; ok {
				match = l
				matchedLive[l.Name] = true

				break
			}
		}

		path := "repositories[" + name + "]"

		if match == nil {
			patches = append(patches, LivePatch{Operation: OpAdd, Path: path, Object: exp})

			continue
		}

		if match.Name != exp.Name {
			patches = append(patches, LivePatch{
				Operation: OpChange,
				Path:      path,
				Object:    exp,
				Changes:   map[string]FieldChange{"name": {From: match.Name, To: exp.Name}},
			})
		}

		patches = append(patches, diffRepositoryFields(exp, match)...)
		patches = append(patches, diffRepositoryChildren(ctx, exp, match)...)
	}

	liveNames := make([]string, 0, len(live))
	for _, r := range live {
		liveNames = append(liveNames, r.Name)
	}

	sort.Strings(liveNames)

	for _, name := range liveNames {
		if matchedLive[name] {
			continue
		}

		patches = append(patches, LivePatch{
			Operation: OpRemove,
			Path:      "repositories[" + name + "]",
			Object:    liveByName[name],
		})
	}

	return patches
}

func diffRepositoryFields(exp, live *model.Repository) []LivePatch {
	changes := diffStructFields(exp, live)
	if len(changes) == 0 {
		return nil
	}

	return []LivePatch{{
		Operation: OpChange,
		Path:      "repositories[" + exp.Name + "]",
		Object:    exp,
		Parent:    nil,
		Changes:   changes,
	}}
}

func diffRepositoryChildren(ctx Context, exp, live *model.Repository) []LivePatch {
	prefix := "repositories[" + exp.Name + "]."

	var patches []LivePatch

	patches = append(patches, diffList(ctx, prefix+"branch_protection_rules", keyedSlice(exp.BranchProtectionRules), keyedSlice(live.BranchProtectionRules), nil)...)
	patches = append(patches, diffList(ctx, prefix+"rulesets", keyedSlice(exp.Rulesets), keyedSlice(live.Rulesets), nil)...)
	patches = append(patches, diffList(ctx, prefix+"webhooks", keyedSlice(exp.Webhooks), keyedSlice(live.Webhooks), forcedKeyFn(ctx.UpdateWebhooks))...)
	patches = append(patches, diffList(ctx, prefix+"secrets", keyedSlice(exp.Secrets), keyedSlice(live.Secrets), forcedKeyFn(ctx.UpdateSecrets))...)
	patches = append(patches, diffList(ctx, prefix+"variables", keyedSlice(exp.Variables), keyedSlice(live.Variables), nil)...)
	patches = append(patches, diffList(ctx, prefix+"environments", keyedSlice(exp.Environments), keyedSlice(live.Environments), nil)...)
	patches = append(patches, diffList(ctx, prefix+"team_permissions", keyedSlice(exp.TeamPermissions), keyedSlice(live.TeamPermissions), nil)...)

	for _, e := range exp.Environments {
		var liveEnv *model.Environment

		for _, l := range live.Environments {
			if l.Name == e.Name {
				liveEnv = l

				break
			}
		}

		if liveEnv == nil {
			continue
		}

		envPrefix := prefix + "environments[" + e.Name + "]."
		patches = append(patches, diffList(ctx, envPrefix+"secrets", keyedSlice(e.Secrets), keyedSlice(liveEnv.Secrets), forcedKeyFn(ctx.UpdateSecrets))...)
		patches = append(patches, diffList(ctx, envPrefix+"variables", keyedSlice(e.Variables), keyedSlice(liveEnv.Variables), nil)...)
	}

	patches = append(patches, diffSingleton(&exp.WorkflowSettings, &live.WorkflowSettings, prefix+"workflow_settings")...)

	return patches
}
