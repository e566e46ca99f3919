// Package document implements the declarative (de)serialization layer
// (§6): the YAML document format every `internal/model.Organization` is
// read from and rendered back to. Decoding distinguishes a field's three
// states generically by reflecting over value.Value[T] fields the same
// way internal/diff's comparator does (method-set shape, not generic
// identity), so a field absent from the document is Unset, present with
// `null` is Null, and present with any other value is Set — matching §9
// without hand-writing a decoder per entity.
package document

import (
	"reflect"

	"github.com/cockroachdb/errors"
	"go.yaml.in/yaml/v4"
)

// ErrInvalidDocument is wrapped around any structural decode failure.
var ErrInvalidDocument = errors.New("document: invalid declarative document")

// Unmarshal parses data as YAML into a map tree and populates out (a
// pointer to a model struct) field by field, applying tri-state semantics
// to every value.Value[T] field it finds.
func Unmarshal(data []byte, out any) error {
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return errors.Wrap(ErrInvalidDocument, err.Error())
	}

	return decodeInto(tree, reflect.ValueOf(out))
}

// decodeInto walks target's exported fields, pulling each one's value out
// of tree by its derived key.
func decodeInto(tree map[string]any, target reflect.Value) error {
	for target.Kind() == reflect.Ptr {
		if target.IsNil() {
			return errors.New("document: nil target")
		}

		target = target.Elem()
	}

	if target.Kind() != reflect.Struct {
		return errors.Newf("document: cannot decode into %s", target.Kind())
	}

	t := target.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		fv := target.Field(i)

		if field.Anonymous && fv.Kind() == reflect.Struct && !isValueType(fv.Type()) {
			if err := decodeInto(tree, fv); err != nil {
				return err
			}

			continue
		}

		key := fieldKey(field.Name)

		raw, present := tree[key]

		if isValueType(fv.Type()) {
			if err := decodeValueField(fv, raw, present); err != nil {
				return errors.Wrapf(err, "field %q", key)
			}

			continue
		}

		if !present {
			continue
		}

		if fv.Kind() == reflect.Slice && isStructElemKind(fv.Type().Elem()) {
			if err := decodeSlice(fv, raw); err != nil {
				return errors.Wrapf(err, "field %q", key)
			}

			continue
		}

		if err := assignPlain(fv, raw); err != nil {
			return errors.Wrapf(err, "field %q", key)
		}
	}

	return nil
}

// isValueType mirrors internal/diff's detection of value.Value[T] by
// method-set shape.
func isValueType(t reflect.Type) bool {
	if t.Kind() != reflect.Struct {
		return false
	}

	_, hasIsSet := t.MethodByName("IsSet")
	_, hasGet := t.MethodByName("Get")
	_, hasEqual := t.MethodByName("Equal")

	return hasIsSet && hasGet && hasEqual
}

// decodeValueField sets fv (a value.Value[T]) to Unset/Null/Set according
// to whether the document mentioned the key at all, and if so whether it
// was explicitly null.
func decodeValueField(fv reflect.Value, raw any, present bool) error {
	if !present {
		return nil // zero value.Value[T] is already Unset
	}

	if raw == nil {
		setNull := fv.Addr().MethodByName("SetNull")
		if setNull.IsValid() {
			setNull.Call(nil)

			return nil
		}

		return errors.New("value type has no SetNull method")
	}

	inner := reflect.New(fv.Type().Field(1).Type).Elem() // v field, the wrapped T

	if err := remarshalInto(raw, inner); err != nil {
		return err
	}

	set := fv.Addr().MethodByName("SetValue")
	if !set.IsValid() {
		return errors.New("value type has no SetValue method")
	}

	set.Call([]reflect.Value{inner})

	return nil
}

// remarshalInto round-trips raw (already YAML-decoded into Go generic
// types: map[string]any, []any, string, int, bool, float64) through a YAML
// re-encode/decode into dst's concrete type, reusing yaml.v4's own
// conversion rules instead of hand-writing one per Go kind.
func remarshalInto(raw any, dst reflect.Value) error {
	bytes, err := yaml.Marshal(raw)
	if err != nil {
		return errors.Wrap(ErrInvalidDocument, err.Error())
	}

	return yaml.Unmarshal(bytes, dst.Addr().Interface())
}

func assignPlain(fv reflect.Value, raw any) error {
	return remarshalInto(raw, fv)
}

func isStructElemKind(t reflect.Type) bool {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	return t.Kind() == reflect.Struct
}

// decodeSlice populates fv (a slice of model structs or pointers to them)
// from raw, which must be a []any of map[string]any element trees.
func decodeSlice(fv reflect.Value, raw any) error {
	items, ok := raw.([]any)
	if !ok {
		if raw == nil {
			return nil
		}

		return errors.New("expected a list")
	}

	elemType := fv.Type().Elem()
	isPtr := elemType.Kind() == reflect.Ptr

	structType := elemType
	if isPtr {
		structType = elemType.Elem()
	}

	out := reflect.MakeSlice(fv.Type(), 0, len(items))

	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return errors.New("expected a mapping")
		}

		elemPtr := reflect.New(structType)
		if err := decodeInto(m, elemPtr); err != nil {
			return err
		}

		if isPtr {
			out = reflect.Append(out, elemPtr)
		} else {
			out = reflect.Append(out, elemPtr.Elem())
		}
	}

	fv.Set(out)

	return nil
}
