package diff

import (
	"reflect"

	"github.com/otterdog-go/otterdog/internal/model"
)

// diffStructFields walks the exported fields of expected and live — which
// must be the same struct type, typically two *model.X values — comparing
// every field whose type exposes the value.Value[T] method set
// (IsUnset/IsSet/Get/Equal), recursing into embedded structs along the
// way. UNSET fields on the expected side are skipped entirely, matching
// §9's "never mentioned means never diffed" rule. A field holding a dummy
// secret placeholder (§8 property 4) is likewise excluded: it must never
// drive a CHANGE patch on its own. A field tagged `diff:"-"` (Secret.Value,
// Webhook.Secret) is excluded from comparison entirely: the live side never
// carries these opaque values back from the provider, so they can never be
// proven equal or different — they are written only under a forced update
// (Context.UpdateSecrets/UpdateWebhooks), never diffed field-by-field.
func diffStructFields(expected, live any) map[string]FieldChange {
	out := map[string]FieldChange{}

	ev := reflect.ValueOf(expected)
	lv := reflect.ValueOf(live)

	for ev.Kind() == reflect.Ptr {
		if ev.IsNil() {
			return out
		}

		ev = ev.Elem()
	}

	for lv.Kind() == reflect.Ptr {
		if lv.IsNil() {
			return out
		}

		lv = lv.Elem()
	}

	walkFields(ev, lv, out)

	return out
}

func walkFields(ev, lv reflect.Value, out map[string]FieldChange) {
	if ev.Kind() != reflect.Struct || lv.Kind() != reflect.Struct {
		return
	}

	t := ev.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		if tag, ok := field.Tag.Lookup("diff"); ok && tag == "-" {
			continue
		}

		name := fieldDiffName(field)
		ef := ev.Field(i)
		lf := lv.Field(i)

		if isValueType(ef.Type()) {
			changed, from, to, skip := compareValueField(ef, lf)
			if skip {
				continue
			}

			if changed {
				out[name] = FieldChange{From: from, To: to}
			}

			continue
		}

		if field.Anonymous && ef.Kind() == reflect.Struct {
			walkFields(ef, lf, out)
		}
	}
}

// isValueType reports whether t is a value.Value[T] instantiation, by
// checking for the method set's distinguishing shape rather than the
// exact generic identity (unavailable via reflect across instantiations).
func isValueType(t reflect.Type) bool {
	if t.Kind() != reflect.Struct {
		return false
	}

	_, hasIsSet := t.MethodByName("IsSet")
	_, hasGet := t.MethodByName("Get")
	_, hasEqual := t.MethodByName("Equal")

	return hasIsSet && hasGet && hasEqual
}

// compareValueField invokes the value.Value[T] method set reflectively.
// skip is true when the field should never participate in diffing: the
// expected side is Unset, or it carries a dummy secret placeholder.
func compareValueField(ef, lf reflect.Value) (changed bool, from, to any, skip bool) {
	isUnset := ef.MethodByName("IsUnset").Call(nil)[0].Bool()
	if isUnset {
		return false, nil, nil, true
	}

	getExp := ef.MethodByName("Get").Call(nil)
	expVal, expOK := getExp[0].Interface(), getExp[1].Bool()

	if expOK {
		if s, ok := expVal.(string); ok && model.IsDummySecret(s) {
			return false, nil, nil, true
		}
	}

	equal := ef.MethodByName("Equal").Call([]reflect.Value{lf})[0].Bool()
	if equal {
		return false, nil, nil, false
	}

	getLive := lf.MethodByName("Get").Call(nil)
	liveVal, liveOK := getLive[0].Interface(), getLive[1].Bool()

	var fromVal, toVal any
	if liveOK {
		fromVal = liveVal
	}

	if expOK {
		toVal = expVal
	}

	return true, fromVal, toVal, false
}

func fieldDiffName(f reflect.StructField) string {
	if tag, ok := f.Tag.Lookup("diff"); ok && tag != "" && tag != "-" {
		return tag
	}

	return f.Name
}

// diffAllFieldsForced builds a full field snapshot for a forced update
// (§8 property 5): every SET field on the expected side, including the
// diff:"-" opaque fields walkFields normally excludes, regardless of
// whether it can be proven to equal the live side. Used when a forced
// update rewrites an object whose comparable fields otherwise matched, so
// Changes still documents every writable field instead of being empty.
func diffAllFieldsForced(expected, live any) map[string]FieldChange {
	out := map[string]FieldChange{}

	ev := reflect.ValueOf(expected)
	lv := reflect.ValueOf(live)

	for ev.Kind() == reflect.Ptr {
		if ev.IsNil() {
			return out
		}

		ev = ev.Elem()
	}

	for lv.Kind() == reflect.Ptr {
		if lv.IsNil() {
			return out
		}

		lv = lv.Elem()
	}

	walkAllFields(ev, lv, out)

	return out
}

func walkAllFields(ev, lv reflect.Value, out map[string]FieldChange) {
	if ev.Kind() != reflect.Struct || lv.Kind() != reflect.Struct {
		return
	}

	t := ev.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		ef := ev.Field(i)
		lf := lv.Field(i)

		if isValueType(ef.Type()) {
			isUnset := ef.MethodByName("IsUnset").Call(nil)[0].Bool()
			if isUnset {
				continue
			}

			name := fieldDiffName(field)

			if tag, ok := field.Tag.Lookup("diff"); ok && tag == "-" {
				// Opaque field (e.g. Secret.Value, Webhook.Secret): the
				// provider never echoes it back, so it can never be shown
				// safely, but Changes should still note it was rewritten
				// under this forced update, without leaking its value into
				// plan output (§4.7).
				out[name] = FieldChange{From: redactedValue, To: redactedValue}

				continue
			}

			getExp := ef.MethodByName("Get").Call(nil)
			expVal, expOK := getExp[0].Interface(), getExp[1].Bool()

			getLive := lf.MethodByName("Get").Call(nil)
			liveVal, liveOK := getLive[0].Interface(), getLive[1].Bool()

			var fromVal, toVal any
			if liveOK {
				fromVal = liveVal
			}

			if expOK {
				toVal = expVal
			}

			out[name] = FieldChange{From: fromVal, To: toVal}

			continue
		}

		if field.Anonymous && ef.Kind() == reflect.Struct {
			walkAllFields(ef, lf, out)
		}
	}
}

// redactedValue stands in for an opaque field's actual value in a forced
// update's Changes map, so plan/apply output never exposes a secret or
// webhook signing value (§4.7) even though the field is still listed.
const redactedValue = "<redacted>"
