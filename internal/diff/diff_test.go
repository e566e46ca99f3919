package diff

import (
	"testing"

	"github.com/otterdog-go/otterdog/internal/model"
	"github.com/otterdog-go/otterdog/internal/value"
)

func orgWithVariable(val string) *model.Organization {
	return &model.Organization{
		GithubID: "acme",
		Variables: []*model.OrganizationVariable{
			{
				Variable: model.Variable{Name: "BUILD_ENV", Value: value.Of(val)},
			},
		},
	}
}

func TestGenerateIdenticalOrgsProduceNoPatches(t *testing.T) {
	expected := orgWithVariable("prod")
	live := orgWithVariable("prod")

	patches := Generate(Context{}, expected, live)

	if len(patches) != 0 {
		t.Errorf("Generate() on identical orgs = %d patches, want 0: %+v", len(patches), patches)
	}
}

func TestGenerateDetectsVariableChange(t *testing.T) {
	expected := orgWithVariable("staging")
	live := orgWithVariable("prod")

	patches := Generate(Context{}, expected, live)

	if len(patches) != 1 {
		t.Fatalf("Generate() = %d patches, want 1: %+v", len(patches), patches)
	}

	if patches[0].Operation != OpChange {
		t.Errorf("Operation = %v, want OpChange", patches[0].Operation)
	}
}

func TestGenerateAddAndRemoveRepository(t *testing.T) {
	expected := &model.Organization{
		GithubID:     "acme",
		Repositories: []*model.Repository{{Name: "new-repo"}},
	}
	live := &model.Organization{
		GithubID:     "acme",
		Repositories: []*model.Repository{{Name: "old-repo"}},
	}

	patches := Generate(Context{}, expected, live)

	var adds, removes int

	for _, p := range patches {
		switch p.Operation {
		case OpAdd:
			adds++

			if p.Path != "repositories[new-repo]" {
				t.Errorf("unexpected add path %q", p.Path)
			}
		case OpRemove:
			removes++

			if p.Path != "repositories[old-repo]" {
				t.Errorf("unexpected remove path %q", p.Path)
			}
		}
	}

	if adds != 1 || removes != 1 {
		t.Errorf("got %d adds and %d removes, want 1 and 1: %+v", adds, removes, patches)
	}
}

func TestGenerateForcedUpdateWhenRequested(t *testing.T) {
	expected := orgWithVariable("prod")
	live := orgWithVariable("prod")

	expected.Secrets = []*model.OrganizationSecret{
		{Secret: model.Secret{Name: "TOKEN", Value: value.Of("env:ACME_TOKEN")}},
	}
	live.Secrets = []*model.OrganizationSecret{
		{Secret: model.Secret{Name: "TOKEN", Value: value.Of("****")}},
	}

	withoutForce := Generate(Context{}, expected, live)
	withForce := Generate(Context{UpdateSecrets: true}, expected, live)

	if len(withoutForce) != 0 {
		t.Fatalf("without UpdateSecrets, got %d patches, want 0: %+v", len(withoutForce), withoutForce)
	}

	if len(withForce) != 1 || !withForce[0].Forced {
		t.Fatalf("with UpdateSecrets, got %+v, want one forced patch", withForce)
	}
}
