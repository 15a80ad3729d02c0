package domain

import (
	"encoding/json"
	"testing"
)

func TestValueWireForm(t *testing.T) {
	cfg := Configuration{
		"sections":    SelectValue("extended"),
		"copywriting": CheckboxValue(true),
		"brief":       TextValue("make it pop"),
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal raw: %v", err)
	}
	if raw["sections"] != "extended" {
		t.Errorf("select rendered as %v, want plain string", raw["sections"])
	}
	if raw["copywriting"] != true {
		t.Errorf("checkbox rendered as %v, want plain bool", raw["copywriting"])
	}
	if raw["brief"] != "make it pop" {
		t.Errorf("text rendered as %v, want plain string", raw["brief"])
	}
}

func TestValueUnmarshalTagging(t *testing.T) {
	var cfg Configuration
	if err := json.Unmarshal([]byte(`{"sections":"extended","copywriting":false}`), &cfg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	// Strings arrive untagged and land as text until normalized against a
	// service definition.
	if cfg["sections"].Kind != ValueText || cfg["sections"].Str != "extended" {
		t.Errorf("string value = %+v", cfg["sections"])
	}
	if cfg["copywriting"].Kind != ValueCheckbox || cfg["copywriting"].Checked {
		t.Errorf("bool value = %+v", cfg["copywriting"])
	}

	var v Value
	if err := json.Unmarshal([]byte(`42`), &v); err == nil {
		t.Error("expected error for numeric configuration value")
	}
}

func TestValidEmail(t *testing.T) {
	valid := []string{"ada@example.com", " ada@example.com ", "a.b+c@sub.domain.io"}
	invalid := []string{"", "ada", "ada@host", "@example.com", "ada@", "a b@example.com"}

	for _, e := range valid {
		if !ValidEmail(e) {
			t.Errorf("ValidEmail(%q) = false", e)
		}
	}
	for _, e := range invalid {
		if ValidEmail(e) {
			t.Errorf("ValidEmail(%q) = true", e)
		}
	}
}

func TestAuxiliaryKey(t *testing.T) {
	if !AuxiliaryKey("websiteUrl") || !AuxiliaryKey("brief") {
		t.Error("auxiliary keys not recognized")
	}
	if AuxiliaryKey("sections") {
		t.Error("option id treated as auxiliary")
	}
}
