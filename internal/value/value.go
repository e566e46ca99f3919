// Package value implements the UNSET/null/set tri-state used for every
// field of every model entity (see §3 and §9 of the design: "UNSET vs.
// null"). UNSET means the declaration never mentioned the field and it
// must be excluded from diff entirely; null means the field was explicitly
// cleared; Set carries a real value.
package value

import (
	"encoding/json"

	"github.com/google/go-cmp/cmp"
)

// State identifies which of the three tri-state variants a Value holds.
type State int

const (
	// Unset is the zero value: the declarative source never mentioned the field.
	Unset State = iota
	// Null means the field was explicitly set to null.
	Null
	// Set means the field carries a real value.
	Set
)

func (s State) String() string {
	switch s {
	case Unset:
		return "unset"
	case Null:
		return "null"
	case Set:
		return "set"
	default:
		return "invalid"
	}
}

// Value is a tri-state field wrapper: unset, explicit null, or a concrete
// value of T. The zero Value[T]{} is Unset, so struct literals that omit a
// field behave correctly by default.
type Value[T any] struct {
	state State
	v     T
}

// Of wraps v as a Set value.
func Of[T any](v T) Value[T] {
	return Value[T]{state: Set, v: v}
}

// OfNull returns an explicit null value.
func OfNull[T any]() Value[T] {
	return Value[T]{state: Null}
}

// IsUnset reports whether the field was never mentioned by the declaration.
func (v Value[T]) IsUnset() bool { return v.state == Unset }

// IsNull reports whether the field was explicitly cleared.
func (v Value[T]) IsNull() bool { return v.state == Null }

// IsSet reports whether the field carries a concrete value.
func (v Value[T]) IsSet() bool { return v.state == Set }

// State returns the tri-state discriminator.
func (v Value[T]) State() State { return v.state }

// Get returns the concrete value and whether it was actually Set.
func (v Value[T]) Get() (T, bool) {
	return v.v, v.state == Set
}

// MustGet returns the concrete value, panicking if the Value is not Set.
// Callers must check IsSet (or use GetOr) at any boundary that accepts
// attacker- or user-controlled declarations.
func (v Value[T]) MustGet() T {
	if v.state != Set {
		panic("value: MustGet called on a Value that is not Set")
	}

	return v.v
}

// SetValue mutates v in place to Set(val), used by internal/document's
// reflection-based decoder, which only has a reflect.Value of the
// concrete instantiation to work with, not the generic constructor.
func (v *Value[T]) SetValue(val T) {
	v.state = Set
	v.v = val
}

// SetNull mutates v in place to an explicit null, for the same reason as
// SetValue.
func (v *Value[T]) SetNull() {
	v.state = Null
	var zero T
	v.v = zero
}

// GetOr returns the concrete value, or def if the Value is not Set.
func (v Value[T]) GetOr(def T) T {
	if v.state == Set {
		return v.v
	}

	return def
}

// Equal reports structural equality between two Values of the same type,
// treating Unset/Null/Set as part of the comparison. Used by the diff
// generator (C4) for field-wise comparison.
func (v Value[T]) Equal(other Value[T]) bool {
	if v.state != other.state {
		return false
	}

	if v.state != Set {
		return true
	}

	return cmp.Equal(v.v, other.v)
}

// MarshalJSON omits Unset fields entirely (handled by the caller skipping
// the field), renders Null as JSON null, and Set as the wrapped value.
// Struct-level (de)serialization in this engine goes through explicit
// mapping functions rather than encoding/json reflection, but Value
// implements the interface so ad-hoc JSON rendering (show/render) works.
func (v Value[T]) MarshalJSON() ([]byte, error) {
	switch v.state {
	case Null:
		return []byte("null"), nil
	case Set:
		return json.Marshal(v.v)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON sets state to Null on a JSON null, Set otherwise. There is
// no JSON representation of Unset; callers distinguish "field absent from
// the object" (Unset) from "field present with value null" (Null) before
// calling UnmarshalJSON, typically by checking map key presence first.
func (v *Value[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = OfNull[T]()

		return nil
	}

	var t T
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}

	*v = Of(t)

	return nil
}
