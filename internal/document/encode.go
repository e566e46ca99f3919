package document

import (
	"reflect"

	"github.com/cockroachdb/errors"
	"go.yaml.in/yaml/v4"
)

// Marshal renders obj (a pointer to, or a value of, a model struct) back
// into the declarative document's YAML form (§4.8 render/show), omitting
// every Unset field entirely and emitting `null` for explicit Null fields,
// the inverse of Unmarshal.
func Marshal(obj any) ([]byte, error) {
	tree, err := encodeToTree(reflect.ValueOf(obj))
	if err != nil {
		return nil, err
	}

	return yaml.Marshal(tree)
}

// ToTree exposes the same reflection walk Marshal uses, for callers (e.g.
// canonical-diff, local-plan) that want the intermediate map tree rather
// than a YAML byte string.
func ToTree(obj any) (map[string]any, error) {
	return encodeToTree(reflect.ValueOf(obj))
}

func encodeToTree(v reflect.Value) (map[string]any, error) {
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return map[string]any{}, nil
		}

		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return nil, errors.Newf("document: cannot encode %s", v.Kind())
	}

	out := map[string]any{}
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		fv := v.Field(i)

		if isValueType(fv.Type()) {
			key := fieldKey(field.Name)

			rendered, skip := encodeValueField(fv)
			if !skip {
				out[key] = rendered
			}

			continue
		}

		if field.Anonymous && fv.Kind() == reflect.Struct {
			embedded, err := encodeToTree(fv)
			if err != nil {
				return nil, err
			}

			for k, val := range embedded {
				out[k] = val
			}

			continue
		}

		if fv.Kind() == reflect.Slice && isStructElemKind(fv.Type().Elem()) {
			rendered, err := encodeSlice(fv)
			if err != nil {
				return nil, err
			}

			out[fieldKey(field.Name)] = rendered

			continue
		}

		out[fieldKey(field.Name)] = fv.Interface()
	}

	return out, nil
}

func isStructElemKind(t reflect.Type) bool {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	return t.Kind() == reflect.Struct
}

// encodeSlice renders a slice of model structs (or pointers to them),
// e.g. Organization.Repositories or Repository.Webhooks, element-wise.
func encodeSlice(fv reflect.Value) ([]any, error) {
	out := make([]any, 0, fv.Len())

	for i := 0; i < fv.Len(); i++ {
		elem, err := encodeToTree(fv.Index(i))
		if err != nil {
			return nil, err
		}

		out = append(out, elem)
	}

	return out, nil
}

// encodeValueField renders a value.Value[T] field: Unset is omitted
// entirely (skip=true), Null renders as nil, Set renders as the unwrapped
// value.
func encodeValueField(fv reflect.Value) (rendered any, skip bool) {
	isUnset := fv.MethodByName("IsUnset").Call(nil)[0].Bool()
	if isUnset {
		return nil, true
	}

	isNull := fv.MethodByName("IsNull").Call(nil)[0].Bool()
	if isNull {
		return nil, false
	}

	got := fv.MethodByName("Get").Call(nil)

	return got[0].Interface(), false
}
