package mapping

import (
	"github.com/google/go-github/v84/github"

	"github.com/otterdog-go/otterdog/internal/model"
	"github.com/otterdog-go/otterdog/internal/value"
)

// FromProviderRuleset builds the shared Ruleset projection from a
// github.RepositoryRuleset (the same wire shape GitHub uses for both
// organization- and repository-scoped rulesets; only the Conditions
// payload differs in which condition parameters are populated).
func FromProviderRuleset(rs *github.RepositoryRuleset) model.Ruleset {
	out := model.Ruleset{
		Name:        rs.Name,
		Target:      setStr((*string)(rs.Target)),
		Enforcement: value.Of(string(rs.Enforcement)),
	}

	out.Conditions = value.Of(fromProviderConditions(rs.Conditions))
	out.Rules = value.Of(fromProviderRules(rs.Rules))

	if len(rs.BypassActors) > 0 {
		actors := make([]model.BypassActor, 0, len(rs.BypassActors))

		for _, ba := range rs.BypassActors {
			actors = append(actors, model.BypassActor{
				Actor:      model.ParseActorToken(bypassActorToToken(ba)),
				BypassMode: model.BypassMode(ba.GetBypassMode()),
			})
		}

		out.BypassActors = value.Of(actors)
	}

	return out
}

// bypassActorToToken renders a github.BypassActor back into the actor
// token grammar of model.ParseActorToken (§9), chosen by actor type:
// @-prefixed for teams and other actors, the bare label for an app, and
// #OrganizationAdmin. The label from GetActorIDLabel is used as is; no
// numeric-ID-to-name lookup is made.
func bypassActorToToken(ba *github.BypassActor) string {
	switch ba.GetActorType() {
	case "Team":
		return "@" + ba.GetActorIDLabel()
	case "Integration":
		return ba.GetActorIDLabel()
	case "OrganizationAdmin":
		return "#OrganizationAdmin"
	default:
		return "@" + ba.GetActorIDLabel()
	}
}

func fromProviderConditions(c *github.RulesetConditions) model.RulesetConditions {
	var out model.RulesetConditions

	if c == nil {
		return out
	}

	if c.RefName != nil {
		out.RefName = value.Of(model.RefCondition{Include: c.RefName.Include, Exclude: c.RefName.Exclude})
	}

	if c.RepositoryName != nil {
		out.RepositoryName = value.Of(model.RefCondition{
			Include: c.RepositoryName.Include,
			Exclude: c.RepositoryName.Exclude,
		})
	}

	return out
}

func toProviderConditions(c model.RulesetConditions) *github.RulesetConditions {
	out := &github.RulesetConditions{}

	if ref, ok := c.RefName.Get(); ok {
		out.RefName = &github.RulesetRefConditionParameters{Include: ref.Include, Exclude: ref.Exclude}
	}

	if repo, ok := c.RepositoryName.Get(); ok {
		out.RepositoryName = &github.RulesetRepositoryNamesConditionParameters{Include: repo.Include, Exclude: repo.Exclude}
	}

	return out
}

func fromProviderRules(rules []*github.RepositoryRule) model.RulesetRules {
	var out model.RulesetRules

	for _, r := range rules {
		switch r.Type {
		case "deletion":
			out.Deletion = value.Of(true)
		case "creation":
			out.Creation = value.Of(true)
		case "update":
			out.Update = value.Of(true)
		case "required_linear_history":
			out.RequiredLinearHistory = value.Of(true)
		case "required_signatures":
			out.RequiredSignatures = value.Of(true)
		case "non_fast_forward":
			out.NonFastForward = value.Of(true)
		case "pull_request":
			if p := r.Parameter.PullRequestParameters; p != nil {
				out.PullRequest = value.Of(model.PullRequestRuleSettings{
					DismissStaleReviewsOnPush:      p.DismissStaleReviewsOnPush,
					RequireCodeOwnerReview:         p.RequireCodeOwnerReview,
					RequireLastPushApproval:        p.RequireLastPushApproval,
					RequiredReviewThreadResolution: p.RequiredReviewThreadResolution,
					RequiredApprovingReviewCount:   p.RequiredApprovingReviewCount,
				})
			}
		case "required_status_checks":
			if p := r.Parameter.RequiredStatusChecksParameters; p != nil {
				checks := make([]model.StatusCheck, 0, len(p.RequiredStatusChecks))

				for _, c := range p.RequiredStatusChecks {
					sc := model.StatusCheck{Context: c.Context}
					if c.IntegrationID != nil {
						sc.IntegrationID = value.Of(*c.IntegrationID)
					}

					checks = append(checks, sc)
				}

				out.RequiredStatusChecks = value.Of(model.StatusChecksRuleSettings{
					StrictRequiredStatusChecksPolicy: p.StrictRequiredStatusChecksPolicy,
					RequiredStatusChecks:             checks,
				})
			}
		case "required_deployments":
			if p := r.Parameter.RequiredDeploymentEnvironmentsParameters; p != nil {
				out.RequiredDeployments = value.Of(model.RequiredDeploymentsRuleSettings{
					RequiredDeploymentEnvironments: p.RequiredDeploymentEnvironments,
				})
			}
		case "code_scanning":
			if p := r.Parameter.CodeScanningParameters; p != nil {
				tools := make([]model.CodeScanningTool, 0, len(p.CodeScanningTools))

				for _, t := range p.CodeScanningTools {
					tools = append(tools, model.CodeScanningTool{
						Tool:                    t.Tool,
						AlertsThreshold:         t.AlertsThreshold,
						SecurityAlertsThreshold: t.SecurityAlertsThreshold,
					})
				}

				out.CodeScanning = value.Of(model.CodeScanningRuleSettings{CodeScanningTools: tools})
			}
		case "merge_queue":
			if p := r.Parameter.MergeQueueParameters; p != nil {
				out.MergeQueue = value.Of(model.MergeQueueRuleSettings{
					MergeMethod:                      string(p.MergeMethod),
					MinimumEntriesToMerge:             p.MinEntriesToMerge,
					MinimumEntriesToMergeWaitMinutes:  p.MinEntriesToMergeWaitMinutes,
					MaximumEntriesToMerge:             p.MaxEntriesToMerge,
					MaximumEntriesToMergeBatchSize:    p.MaxEntriesToMergeBatchSize,
					CheckResponseTimeoutMinutes:       p.GroupingStrategy,
				})
			}
		}
	}

	return out
}

// ToProviderRuleset renders m as a github.RepositoryRuleset request body.
// m.BypassActors is not included in the request body: bypass actors are
// neither resolved to numeric actor IDs nor sent.
func ToProviderRuleset(m model.Ruleset) *github.RepositoryRuleset {
	out := &github.RepositoryRuleset{
		Name:        m.Name,
		Enforcement: github.RulesetEnforcement(m.Enforcement.GetOr(string(model.RulesetDisabled))),
	}

	if target, ok := m.Target.Get(); ok {
		t := github.RulesetTarget(target)
		out.Target = &t
	}

	if cond, ok := m.Conditions.Get(); ok {
		out.Conditions = toProviderConditions(cond)
	}

	if rules, ok := m.Rules.Get(); ok {
		out.Rules = toProviderRules(rules)
	}

	return out
}

func toProviderRules(rules model.RulesetRules) []*github.RepositoryRule {
	var out []*github.RepositoryRule

	add := func(kind string, v value.Value[bool], build func() *github.RepositoryRule) {
		if b, ok := v.Get(); ok && b {
			out = append(out, build())
		}
	}

	add("deletion", rules.Deletion, func() *github.RepositoryRule { return &github.RepositoryRule{Type: "deletion"} })
	add("creation", rules.Creation, func() *github.RepositoryRule { return &github.RepositoryRule{Type: "creation"} })
	add("update", rules.Update, func() *github.RepositoryRule { return &github.RepositoryRule{Type: "update"} })
	add("required_linear_history", rules.RequiredLinearHistory, func() *github.RepositoryRule {
		return &github.RepositoryRule{Type: "required_linear_history"}
	})
	add("required_signatures", rules.RequiredSignatures, func() *github.RepositoryRule {
		return &github.RepositoryRule{Type: "required_signatures"}
	})
	add("non_fast_forward", rules.NonFastForward, func() *github.RepositoryRule {
		return &github.RepositoryRule{Type: "non_fast_forward"}
	})

	if pr, ok := rules.PullRequest.Get(); ok {
		out = append(out, &github.RepositoryRule{
			Type: "pull_request",
			Parameter: &github.RuleParameters{
				PullRequestParameters: &github.PullRequestRuleParameters{
					DismissStaleReviewsOnPush:      pr.DismissStaleReviewsOnPush,
					RequireCodeOwnerReview:         pr.RequireCodeOwnerReview,
					RequireLastPushApproval:        pr.RequireLastPushApproval,
					RequiredReviewThreadResolution: pr.RequiredReviewThreadResolution,
					RequiredApprovingReviewCount:   pr.RequiredApprovingReviewCount,
				},
			},
		})
	}

	if sc, ok := rules.RequiredStatusChecks.Get(); ok {
		checks := make([]*github.RuleRequiredStatusChecks, 0, len(sc.RequiredStatusChecks))

		for _, c := range sc.RequiredStatusChecks {
			entry := &github.RuleRequiredStatusChecks{Context: c.Context}
			if id, ok := c.IntegrationID.Get(); ok {
				entry.IntegrationID = &id
			}

			checks = append(checks, entry)
		}

		out = append(out, &github.RepositoryRule{
			Type: "required_status_checks",
			Parameter: &github.RuleParameters{
				RequiredStatusChecksParameters: &github.RequiredStatusChecksRuleParameters{
					StrictRequiredStatusChecksPolicy: sc.StrictRequiredStatusChecksPolicy,
					RequiredStatusChecks:             checks,
				},
			},
		})
	}

	if rd, ok := rules.RequiredDeployments.Get(); ok {
		out = append(out, &github.RepositoryRule{
			Type: "required_deployments",
			Parameter: &github.RuleParameters{
				RequiredDeploymentEnvironmentsParameters: &github.RequiredDeploymentEnvironmentsRuleParameters{
					RequiredDeploymentEnvironments: rd.RequiredDeploymentEnvironments,
				},
			},
		})
	}

	if cs, ok := rules.CodeScanning.Get(); ok {
		tools := make([]*github.RuleCodeScanningTool, 0, len(cs.CodeScanningTools))

		for _, t := range cs.CodeScanningTools {
			tools = append(tools, &github.RuleCodeScanningTool{
				Tool:                    t.Tool,
				AlertsThreshold:         t.AlertsThreshold,
				SecurityAlertsThreshold: t.SecurityAlertsThreshold,
			})
		}

		out = append(out, &github.RepositoryRule{
			Type:      "code_scanning",
			Parameter: &github.RuleParameters{CodeScanningParameters: &github.CodeScanningRuleParameters{CodeScanningTools: tools}},
		})
	}

	if mq, ok := rules.MergeQueue.Get(); ok {
		out = append(out, &github.RepositoryRule{
			Type: "merge_queue",
			Parameter: &github.RuleParameters{
				MergeQueueParameters: &github.MergeQueueRuleParameters{
					MergeMethod:                  github.MergeMethod(mq.MergeMethod),
					MinEntriesToMerge:            mq.MinimumEntriesToMerge,
					MinEntriesToMergeWaitMinutes: mq.MinimumEntriesToMergeWaitMinutes,
					MaxEntriesToMerge:            mq.MaximumEntriesToMerge,
					MaxEntriesToMergeBatchSize:   mq.MaximumEntriesToMergeBatchSize,
					GroupingStrategy:             mq.CheckResponseTimeoutMinutes,
				},
			},
		})
	}

	return out
}
