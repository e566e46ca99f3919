package model

import (
	"testing"

	"github.com/otterdog-go/otterdog/internal/value"
)

func TestValidateOrganizationTeamParentMissing(t *testing.T) {
	org := &Organization{
		GithubID: "acme",
		Teams: []*Team{
			{Name: "core", ParentTeam: value.Of("ghost")},
		},
	}

	ctx := ValidateOrganization(org)

	if !ctx.HasErrors() {
		t.Fatal("expected an error for a parent_team referencing a nonexistent team")
	}
}

func TestValidateOrganizationTeamParentCycle(t *testing.T) {
	org := &Organization{
		GithubID: "acme",
		Teams: []*Team{
			{Name: "a", ParentTeam: value.Of("b")},
			{Name: "b", ParentTeam: value.Of("a")},
		},
	}

	ctx := ValidateOrganization(org)

	if !ctx.HasErrors() {
		t.Fatal("expected an error for a parent_team cycle")
	}
}

func TestValidateOrganizationValidTeamHierarchy(t *testing.T) {
	org := &Organization{
		GithubID: "acme",
		Teams: []*Team{
			{Name: "root"},
			{Name: "child", ParentTeam: value.Of("root")},
		},
	}

	ctx := ValidateOrganization(org)

	if ctx.HasErrors() {
		t.Fatalf("unexpected errors for a valid team hierarchy: %+v", ctx)
	}
}

func TestValidateOrganizationRepositoryAliasCollision(t *testing.T) {
	org := &Organization{
		GithubID: "acme",
		Repositories: []*Repository{
			{Name: "service-a"},
			{Name: "service-b", Aliases_: []string{"service-a"}},
		},
	}

	ctx := ValidateOrganization(org)

	if !ctx.HasErrors() {
		t.Fatal("expected an error when a repository alias collides with another repository's name")
	}
}

func TestGetModelObjectsOrderMatchesDiffContract(t *testing.T) {
	org := &Organization{
		GithubID:     "acme",
		Teams:        []*Team{{Name: "core"}},
		Webhooks:     []*OrganizationWebhook{{URL: "https://example.com/hook"}},
		Repositories: []*Repository{{Name: "svc"}},
	}

	objs := org.GetModelObjects()

	var sawTeam, sawWebhook, sawRepo bool

	for i, o := range objs {
		switch o.Object.Key() {
		case "core":
			sawTeam = true
		case "https://example.com/hook":
			sawWebhook = true
		case "svc":
			sawRepo = true

			if sawTeam == false || sawWebhook == false {
				t.Errorf("repository %q (index %d) appeared before teams/webhooks were all emitted", o.Object.Key(), i)
			}
		}
	}

	if !sawTeam || !sawWebhook || !sawRepo {
		t.Fatalf("expected teams, webhooks, and repositories all present in %+v", objs)
	}
}
