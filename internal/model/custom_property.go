package model

import "github.com/otterdog-go/otterdog/internal/value"

// CustomPropertyType enumerates GitHub's custom-property value types.
type CustomPropertyType string

const (
	CustomPropertyString      CustomPropertyType = "string"
	CustomPropertySingleSelect CustomPropertyType = "single_select"
	CustomPropertyMultiSelect  CustomPropertyType = "multi_select"
	CustomPropertyTrueFalse    CustomPropertyType = "true_false"
)

// CustomProperty is an organization-level custom repository property
// schema entry (§3).
type CustomProperty struct {
	Name            string // key
	ValueType       value.Value[string]
	Required        value.Value[bool]
	DefaultValue    value.Value[string]
	AllowedValues   value.Value[[]string]
	Description     value.Value[string]
}

func (p *CustomProperty) Key() string { return p.Name }

func (p *CustomProperty) Validate(ctx *ValidationContext, _ ModelObject) {
	path := "custom_properties[" + p.Name + "]"

	vt, ok := p.ValueType.Get()
	if !ok {
		return
	}

	switch CustomPropertyType(vt) {
	case CustomPropertyString, CustomPropertySingleSelect, CustomPropertyMultiSelect, CustomPropertyTrueFalse:
	default:
		ctx.Add(SeverityError, path, "value_type %q is not a recognized custom property type", vt)
	}

	if vt == string(CustomPropertySingleSelect) || vt == string(CustomPropertyMultiSelect) {
		if allowed, ok := p.AllowedValues.Get(); !ok || len(allowed) == 0 {
			ctx.Add(SeverityError, path, "allowed_values required for %s properties", vt)
		}
	}
}
