package amo

import (
	"encoding/json"
	"testing"
)

func TestLocaleString_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		present bool
		locale  string
		want    string
		wantOK  bool
	}{
		{
			name:    "plain string matches any locale",
			input:   `"ublock-origin"`,
			present: true,
			locale:  "de",
			want:    "ublock-origin",
			wantOK:  true,
		},
		{
			name:    "locale map hit",
			input:   `{"en-US": "Block ads", "de": "Werbung blockieren"}`,
			present: true,
			locale:  "en-US",
			want:    "Block ads",
			wantOK:  true,
		},
		{
			name:    "locale map miss",
			input:   `{"fr": "Bloquer"}`,
			present: true,
			locale:  "en-US",
			wantOK:  false,
		},
		{
			name:    "locale map null value",
			input:   `{"en-US": null}`,
			present: true,
			locale:  "en-US",
			wantOK:  false,
		},
		{
			name:    "null is absent",
			input:   `null`,
			present: false,
			locale:  "en-US",
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ls LocaleString
			if err := json.Unmarshal([]byte(tt.input), &ls); err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tt.input, err)
			}
			if ls.Present() != tt.present {
				t.Errorf("Present() = %v, want %v", ls.Present(), tt.present)
			}
			got, ok := ls.Lookup(tt.locale)
			if ok != tt.wantOK {
				t.Fatalf("Lookup(%q) ok = %v, want %v", tt.locale, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("Lookup(%q) = %q, want %q", tt.locale, got, tt.want)
			}
		})
	}
}

func TestLocaleString_UnmarshalJSON_Invalid(t *testing.T) {
	var ls LocaleString
	if err := json.Unmarshal([]byte(`42`), &ls); err == nil {
		t.Error("expected error for numeric locale field")
	}
}

func TestAddon_UnmarshalJSON_PresenceDistinctions(t *testing.T) {
	input := `{
		"slug": "a-ext",
		"guid": "a@example.com",
		"status": "public",
		"default_locale": "en-US",
		"current_version": {
			"version": "1.0",
			"file": {
				"url": "https://example.org/a.xpi",
				"hash": "sha256:00",
				"status": "public",
				"permissions": []
			}
		},
		"tags": null
	}`

	var a Addon
	if err := json.Unmarshal([]byte(input), &a); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}

	file := a.CurrentVersion.File
	if file.Permissions == nil {
		t.Error("empty permissions list should be present, not nil")
	}
	if len(file.Permissions) != 0 {
		t.Errorf("permissions = %v, want empty", file.Permissions)
	}
	if file.HostPermissions != nil {
		t.Error("absent host_permissions should be nil")
	}
	if a.Tags != nil {
		t.Error("null tags should decode to nil")
	}
	if a.RequiresPayment != nil {
		t.Error("absent requires_payment should be nil")
	}
}
