package diff

import (
	"sort"

	"github.com/otterdog-go/otterdog/internal/model"
)

// keyedSlice upcasts a concrete slice of model entities (e.g.
// []*model.OrganizationWebhook) to the uniform []model.ModelObject shape
// diffList and diffSingleton operate on, mirroring generate_live_patch_of_list's
// generic element handling (§4.4).
func keyedSlice[T model.ModelObject](in []T) []model.ModelObject {
	out := make([]model.ModelObject, len(in))
	for i, v := range in {
		out[i] = v
	}

	return out
}

// diffSingleton compares a single keyless object (e.g. OrganizationSettings)
// present on both sides unconditionally: it is never added or removed,
// only changed.
func diffSingleton(expected, live model.ModelObject, path string) []LivePatch {
	changes := diffStructFields(expected, live)
	if len(changes) == 0 {
		return nil
	}

	return []LivePatch{{Operation: OpChange, Path: path, Object: expected, Changes: changes}}
}

// diffList matches expected against live objects by Key() union Aliases()
// (§4.2 step 3 rename tracking), producing ADD for unmatched expected
// items, REMOVE for unmatched live items, and CHANGE for matched items
// whose fields differ or whose key was forced to update. forced, if
// non-nil, is consulted by object Key() to force an update patch even
// when no comparable field differs (§4.4 step 5: webhooks/secrets whose
// opaque value can never be proven equal).
func diffList(ctx Context, pathPrefix string, expected, live []model.ModelObject, forced func(string) bool) []LivePatch {
	var patches []LivePatch

	liveByKey := make(map[string]model.ModelObject, len(live))
	for _, l := range live {
		liveByKey[l.Key()] = l
	}

	matchedLive := make(map[string]bool, len(live))

	expectedKeys := make([]string, 0, len(expected))
	expectedByKey := make(map[string]model.ModelObject, len(expected))

	for _, e := range expected {
		expectedKeys = append(expectedKeys, e.Key())
		expectedByKey[e.Key()] = e
	}

	sort.Strings(expectedKeys)

	for _, key := range expectedKeys {
		e := expectedByKey[key]

		var match model.ModelObject

		candidates := []string{key}
		if keyed, ok := e.(model.Keyed); ok {
			candidates = model.AllKeys(keyed)
		}

		for _, c := range candidates {
			if l, ok := liveByKey[c]; ok {
				match = l
				matchedLive[l.Key()] = true

				break
			}
		}

		path := pathPrefix + "[" + key + "]"

		if match == nil {
			patches = append(patches, LivePatch{Operation: OpAdd, Path: path, Object: e})

			continue
		}

		changes := diffStructFields(e, match)
		isForced := forced != nil && forced(key) && ctx.filterAllows(key) && !hasDummySecret(e)

		if match.Key() != key {
			if changes == nil {
				changes = map[string]FieldChange{}
			}

			changes["key"] = FieldChange{From: match.Key(), To: key}
		}

		forcedWithNoChanges := isForced && len(changes) == 0
		if forcedWithNoChanges {
			// No comparable field differs, but an opaque value.Value (e.g.
			// a secret/webhook's value) can never be proven equal, so the
			// object is rewritten wholesale. Populate Changes with a full
			// field snapshot so it still documents every writable field
			// (§8 property 5) instead of being empty.
			changes = diffAllFieldsForced(e, match)
		}

		if len(changes) > 0 || isForced {
			patches = append(patches, LivePatch{
				Operation: OpChange,
				Path:      path,
				Object:    e,
				Changes:   changes,
				Forced:    forcedWithNoChanges,
			})
		}
	}

	liveKeys := make([]string, 0, len(live))
	for _, l := range live {
		liveKeys = append(liveKeys, l.Key())
	}

	sort.Strings(liveKeys)

	for _, key := range liveKeys {
		if matchedLive[key] {
			continue
		}

		patches = append(patches, LivePatch{Operation: OpRemove, Path: pathPrefix + "[" + key + "]", Object: liveByKey[key]})
	}

	return patches
}

// hasDummySecret reports whether obj carries a dummy secret placeholder,
// which never drives a forced update.
func hasDummySecret(obj model.ModelObject) bool {
	switch o := obj.(type) {
	case interface{ HasDummyValue() bool }:
		return o.HasDummyValue()
	case interface{ HasDummySecret() bool }:
		return o.HasDummySecret()
	}

	return false
}
