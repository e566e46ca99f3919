package mapping

import (
	"github.com/google/go-github/v84/github"

	"github.com/otterdog-go/otterdog/internal/model"
	"github.com/otterdog-go/otterdog/internal/value"
)

// FromProviderTeam builds a Team projection from the provider's name,
// description, privacy string and parent team name. Visible and
// Notifications are not set from the provider and stay unset.
func FromProviderTeam(t *github.Team) model.Team {
	out := model.Team{Name: t.GetName(), Description: setStr(t.Description)}

	if t.Privacy != nil {
		out.Privacy = setStr(t.Privacy)
	}

	if t.Parent != nil {
		out.ParentTeam = value.Of(t.Parent.GetName())
	}

	return out
}

func ToProviderTeam(t model.Team) *github.NewTeam {
	req := &github.NewTeam{
		Name:        t.Name,
		Description: strPtr(t.Description),
	}

	if privacy, ok := t.Privacy.Get(); ok {
		req.Privacy = &privacy
	}

	if notif, ok := t.Notifications.Get(); ok {
		setting := "notifications_enabled"
		if !notif {
			setting = "notifications_disabled"
		}

		req.NotificationSetting = &setting
	}

	if parent, ok := t.ParentTeam.Get(); ok && parent != "" {
		// The parent team is not sent: its name is not resolved to a
		// numeric ID and ParentTeamID stays unset.
		_ = parent
	}

	return req
}

func FromProviderTeamPermission(teamName string, perm string) model.TeamPermission {
	return model.TeamPermission{TeamName: teamName, Permission: setStr(&perm)}
}
