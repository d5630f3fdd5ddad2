package catalog

import (
	"testing"

	"github.com/amoutil/amo-fetch/pkg/amo"
)

func addonWithStatuses(addonStatus, fileStatus string) *amo.Addon {
	return &amo.Addon{
		Status: addonStatus,
		CurrentVersion: &amo.Version{
			File: &amo.File{Status: fileStatus},
		},
	}
}

func TestEligible(t *testing.T) {
	tests := []struct {
		name  string
		addon *amo.Addon
		want  bool
	}{
		{"both public", addonWithStatuses("public", "public"), true},
		{"addon disabled", addonWithStatuses("disabled", "public"), false},
		{"file disabled", addonWithStatuses("public", "disabled"), false},
		{"both disabled", addonWithStatuses("disabled", "disabled"), false},
		{"addon status empty", addonWithStatuses("", "public"), false},
		{"no current version", &amo.Addon{Status: "public"}, false},
		{
			name:  "no file",
			addon: &amo.Addon{Status: "public", CurrentVersion: &amo.Version{}},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Eligible(tt.addon); got != tt.want {
				t.Errorf("Eligible() = %v, want %v", got, tt.want)
			}
		})
	}
}
