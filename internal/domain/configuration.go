package domain

import (
	"encoding/json"
	"fmt"
)

// ValueKind tags the union of configuration value types
type ValueKind int

const (
	ValueSelect ValueKind = iota
	ValueCheckbox
	ValueText
)

// Value is a single configuration entry: a chosen select value, a checkbox
// state, or free text for auxiliary fields. Keeping the kind explicit lets
// the accumulator and validators switch exhaustively instead of type-asserting
// an interface{}.
type Value struct {
	Kind    ValueKind
	Str     string
	Checked bool
}

// SelectValue returns a select-kind value
func SelectValue(choice string) Value {
	return Value{Kind: ValueSelect, Str: choice}
}

// CheckboxValue returns a checkbox-kind value
func CheckboxValue(checked bool) Value {
	return Value{Kind: ValueCheckbox, Checked: checked}
}

// TextValue returns a free-text value
func TextValue(text string) Value {
	return Value{Kind: ValueText, Str: text}
}

// MarshalJSON renders the value in wire form: selects and text as strings,
// checkboxes as booleans.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case ValueCheckbox:
		return json.Marshal(v.Checked)
	default:
		return json.Marshal(v.Str)
	}
}

// UnmarshalJSON accepts the wire form. Strings arrive untagged; they are
// stored as text and retagged against the service definition by
// pricing.Normalize when one is available.
func (v *Value) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*v = CheckboxValue(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = TextValue(s)
		return nil
	}
	return fmt.Errorf("configuration value must be a string or a boolean, got %s", string(data))
}

// Configuration maps option ids to the user's current values. Auxiliary
// free-text keys (websiteUrl, brief) are always permitted alongside option
// ids.
type Configuration map[string]Value

// Auxiliary configuration keys that never correspond to a service option
const (
	ConfigKeyWebsiteURL = "websiteUrl"
	ConfigKeyBrief      = "brief"
)

// AuxiliaryKey reports whether the key is one of the always-permitted
// free-text fields.
func AuxiliaryKey(key string) bool {
	return key == ConfigKeyWebsiteURL || key == ConfigKeyBrief
}

// Clone returns an independent copy of the configuration
func (c Configuration) Clone() Configuration {
	out := make(Configuration, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Change describes a single user interaction with one option
type Change struct {
	OptionID string
	Value    Value
}
