package model

import "github.com/otterdog-go/otterdog/internal/value"

// NotificationSetting mirrors GitHub's provider-side enum for team
// notifications (§4.3 "Team.privacy").
type NotificationSetting string

const (
	NotificationsEnabled  NotificationSetting = "notifications_enabled"
	NotificationsDisabled NotificationSetting = "notifications_disabled"
)

// Team is an organization team (§3).
type Team struct {
	Name         string // key
	Description  value.Value[string]
	Visible      value.Value[bool] // model `visible` <-> provider `closed` (inverted)
	Notifications value.Value[bool] // model bool <-> provider notification_setting enum
	Privacy      value.Value[string] // secret|closed (provider privacy, read-only derived)
	Members      value.Value[[]string]
	Maintainers  value.Value[[]string]
	ParentTeam   value.Value[string]
	SkipMembers  bool // model_only: when true, membership is never reconciled
}

func (t *Team) Key() string { return t.Name }

func (t *Team) Validate(ctx *ValidationContext, _ ModelObject) {
	path := "teams[" + t.Name + "]"

	if parent, ok := t.ParentTeam.Get(); ok && parent == t.Name {
		ctx.Add(SeverityError, path, "team cannot be its own parent")
	}
}
