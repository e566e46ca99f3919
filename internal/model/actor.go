package model

import "strings"

// ActorType enumerates the provider-side actor kinds an ActorToken can
// resolve to (§4.1 "Actor resolution helpers").
type ActorType string

const (
	ActorUser             ActorType = "User"
	ActorTeam             ActorType = "Team"
	ActorApp              ActorType = "App"
	ActorRepositoryRole   ActorType = "RepositoryRole"
	ActorOrganizationRole ActorType = "OrganizationAdmin"
)

// BypassMode enumerates when a bypass actor's exemption applies.
type BypassMode string

const (
	BypassAlways      BypassMode = "always"
	BypassPullRequest BypassMode = "pull_request"
)

// ActorToken is the parsed form of the declarative actor grammar described
// in §9 ("Actor tokens"): `@user`, `@org/team`, `app-slug`, `#RepositoryRole`,
// `#OrganizationAdmin`, optionally suffixed with `:bypass_mode`. The raw
// form must be preserved verbatim for round-trip (render/import), so every
// ActorToken retains the original string alongside its parsed fields.
type ActorToken struct {
	Raw  string
	Type ActorType
	// Name is the bare actor name: the username, "org/team" pair, app
	// slug, or role name, without the leading sigil.
	Name string
	// BypassMode is empty unless the token carried a ":mode" suffix.
	BypassMode BypassMode
}

// ParseActorToken parses the declarative actor grammar. Unknown sigils are
// treated as App tokens (a bare app slug has no prefix), matching the
// original's permissive behavior: resolution, not parsing, is where
// unknown actors get rejected (§4.1: "Unknown actors are warned and
// skipped, not fatal").
func ParseActorToken(raw string) ActorToken {
	token := raw
	mode := BypassMode("")

	if idx := strings.LastIndex(token, ":"); idx >= 0 {
		candidate := BypassMode(token[idx+1:])
		if candidate == BypassAlways || candidate == BypassPullRequest {
			mode = candidate
			token = token[:idx]
		}
	}

	switch {
	case strings.HasPrefix(token, "@"):
		return ActorToken{Raw: raw, Type: ActorTeamOrUser(token), Name: strings.TrimPrefix(token, "@"), BypassMode: mode}
	case strings.HasPrefix(token, "#"):
		name := strings.TrimPrefix(token, "#")
		if name == string(ActorOrganizationRole) {
			return ActorToken{Raw: raw, Type: ActorOrganizationRole, Name: name, BypassMode: mode}
		}

		return ActorToken{Raw: raw, Type: ActorRepositoryRole, Name: name, BypassMode: mode}
	default:
		return ActorToken{Raw: raw, Type: ActorApp, Name: token, BypassMode: mode}
	}
}

// ActorTeamOrUser distinguishes `@org/team` from `@user`: a team token
// contains a slash.
func ActorTeamOrUser(token string) ActorType {
	if strings.Contains(strings.TrimPrefix(token, "@"), "/") {
		return ActorTeam
	}

	return ActorUser
}

// String renders the token back to its declarative form, preserving the
// bypass-mode suffix when present. Round-tripping through ParseActorToken
// then String must reproduce the original Raw value.
func (a ActorToken) String() string {
	if a.BypassMode != "" {
		return a.Raw
	}

	return a.Raw
}
