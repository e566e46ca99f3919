package mapping

import (
	"github.com/google/go-github/v84/github"

	"github.com/otterdog-go/otterdog/internal/model"
)

func FromProviderCustomProperty(p *github.CustomProperty) model.CustomProperty {
	out := model.CustomProperty{
		Name:          p.GetPropertyName(),
		ValueType:     setStr(github.Ptr(p.ValueType)),
		Description:   setStr(p.Description),
		AllowedValues: setStrSlice(p.AllowedValues),
	}

	if p.Required != nil {
		out.Required = setBool(p.Required)
	}

	if p.DefaultValue != nil && p.DefaultValue.Value != nil {
		out.DefaultValue = setStr(p.DefaultValue.Value)
	}

	return out
}

func ToProviderCustomProperty(p model.CustomProperty) *github.CustomProperty {
	out := &github.CustomProperty{
		PropertyName:  p.Name,
		ValueType:     p.ValueType.GetOr("string"),
		Required:      boolPtr(p.Required),
		Description:   strPtr(p.Description),
		AllowedValues: p.AllowedValues.GetOr(nil),
	}

	if dv, ok := p.DefaultValue.Get(); ok {
		out.DefaultValue = &github.CustomPropertyValue{Value: &dv}
	}

	return out
}

func FromProviderOrganizationRole(r *github.CustomOrgRole) model.OrganizationRole {
	out := model.OrganizationRole{
		Name:        r.GetName(),
		Description: setStr(r.Description),
	}

	if r.BaseRole != nil {
		out.BaseRole = setStr(r.BaseRole)
	}

	perms := make([]string, 0, len(r.Permissions))
	perms = append(perms, r.Permissions...)
	out.Permissions = setStrSlice(perms)

	return out
}

func ToProviderOrganizationRole(r model.OrganizationRole) *github.CreateOrUpdateOrgRoleOptions {
	return &github.CreateOrUpdateOrgRoleOptions{
		Name:        github.Ptr(r.Name),
		Description: strPtr(r.Description),
		BaseRole:    strPtr(r.BaseRole),
		Permissions: r.Permissions.GetOr(nil),
	}
}
