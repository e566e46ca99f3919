// Package mapping implements the bidirectional, side-effect-free
// translation between internal/model entities and their GitHub provider
// JSON representations (§4.3, component C3). Every exported function here
// is pure: FromProviderX builds a model value from a provider object,
// ToProviderX builds the provider request body for a model value.
//
// The split mirrors the teacher's buildXFromConfig / computeXDiff pattern
// in pkg/github/settings.go and pkg/github/rulesets.go, generalized from
// one-directional sync functions into round-trippable pure mappers.
package mapping

import "github.com/otterdog-go/otterdog/internal/value"

// strPtr mirrors github.Ptr for the subset of scalar kinds mapping needs
// when building provider request bodies from value.Value fields.
func strPtr(v value.Value[string]) *string {
	if s, ok := v.Get(); ok {
		return &s
	}

	return nil
}

func boolPtr(v value.Value[bool]) *bool {
	if b, ok := v.Get(); ok {
		return &b
	}

	return nil
}

func setStr(s *string) value.Value[string] {
	if s == nil {
		return value.Value[string]{}
	}

	return value.Of(*s)
}

func setBool(b *bool) value.Value[bool] {
	if b == nil {
		return value.Value[bool]{}
	}

	return value.Of(*b)
}

func setStrSlice(s []string) value.Value[[]string] {
	if s == nil {
		return value.Value[[]string]{}
	}

	return value.Of(s)
}
