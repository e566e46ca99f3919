package main

import (
	"context"
	"path/filepath"

	"github.com/otterdog-go/otterdog/internal/document"
	"github.com/otterdog-go/otterdog/internal/engineconfig"
	"github.com/otterdog-go/otterdog/internal/evaluator"
	"github.com/otterdog-go/otterdog/internal/model"
)

// loadExpected evaluates org's jsonnet source (§6) and decodes the
// resulting JSON into a model.Organization (C2/C3), the "expected" side
// of every diff/validate/show operation.
func loadExpected(ctx context.Context, cfg *engineconfig.Config, org engineconfig.Organization, suffix string) (*model.Organization, error) {
	eval := evaluator.New("", cfg.Defaults.Jsonnet.ConfigDir)

	name := org.GithubID + suffix + ".jsonnet"
	source := filepath.Join(cfg.Defaults.Jsonnet.ConfigDir, org.ConfigRepo, name)

	data, err := eval.Evaluate(ctx, source, map[string]string{
		"orgName":  org.Name,
		"githubId": org.GithubID,
	})
	if err != nil {
		return nil, err
	}

	var o model.Organization
	if err := document.Unmarshal(data, &o); err != nil {
		return nil, err
	}

	o.GithubID = org.GithubID

	return &o, nil
}
