package value

import (
	"encoding/json"
	"testing"
)

func TestValueStates(t *testing.T) {
	tests := []struct {
		name    string
		v       Value[string]
		isUnset bool
		isNull  bool
		isSet   bool
	}{
		{name: "zero value is unset", v: Value[string]{}, isUnset: true},
		{name: "Of is set", v: Of("hello"), isSet: true},
		{name: "OfNull is null", v: OfNull[string](), isNull: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsUnset(); got != tt.isUnset {
				t.Errorf("IsUnset() = %v, want %v", got, tt.isUnset)
			}

			if got := tt.v.IsNull(); got != tt.isNull {
				t.Errorf("IsNull() = %v, want %v", got, tt.isNull)
			}

			if got := tt.v.IsSet(); got != tt.isSet {
				t.Errorf("IsSet() = %v, want %v", got, tt.isSet)
			}
		})
	}
}

func TestValueGet(t *testing.T) {
	v := Of(42)

	got, ok := v.Get()
	if !ok || got != 42 {
		t.Errorf("Get() = (%v, %v), want (42, true)", got, ok)
	}

	var unset Value[int]

	got, ok = unset.Get()
	if ok || got != 0 {
		t.Errorf("Get() on unset = (%v, %v), want (0, false)", got, ok)
	}
}

func TestValueGetOr(t *testing.T) {
	if got := Of(5).GetOr(99); got != 5 {
		t.Errorf("GetOr() = %d, want 5", got)
	}

	var unset Value[int]
	if got := unset.GetOr(99); got != 99 {
		t.Errorf("GetOr() on unset = %d, want 99", got)
	}
}

func TestValueSetValueAndSetNull(t *testing.T) {
	var v Value[int]

	v.SetValue(7)

	if !v.IsSet() {
		t.Fatal("expected Set after SetValue")
	}

	if got := v.MustGet(); got != 7 {
		t.Errorf("MustGet() = %d, want 7", got)
	}

	v.SetNull()

	if !v.IsNull() {
		t.Fatal("expected Null after SetNull")
	}
}

func TestValueEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Value[[]string]
		want bool
	}{
		{name: "both unset", a: Value[[]string]{}, b: Value[[]string]{}, want: true},
		{name: "unset vs null differ", a: Value[[]string]{}, b: OfNull[[]string](), want: false},
		{name: "equal slices", a: Of([]string{"a", "b"}), b: Of([]string{"a", "b"}), want: true},
		{name: "different slices", a: Of([]string{"a"}), b: Of([]string{"b"}), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValueJSONRoundTrip(t *testing.T) {
	v := Of("payload")

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	if string(data) != `"payload"` {
		t.Errorf("Marshal() = %s, want %q", data, "payload")
	}

	var decoded Value[string]
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if !decoded.Equal(v) {
		t.Errorf("round trip mismatch: got %+v, want %+v", decoded, v)
	}

	var nullValue Value[string]
	if err := json.Unmarshal([]byte("null"), &nullValue); err != nil {
		t.Fatalf("Unmarshal null: %v", err)
	}

	if !nullValue.IsNull() {
		t.Error("expected null after unmarshaling JSON null")
	}
}
