package eventform

import (
	"testing"

	"github.com/julianstephens/diario/internal/constants"
)

func TestDefaults(t *testing.T) {
	if got := Defaults("2024-3-5").Date; got != "2024-03-05" {
		t.Errorf("Defaults().Date = %q, want 2024-03-05", got)
	}
	if got := Defaults("garbage").Date; got != "" {
		t.Errorf("Defaults(garbage).Date = %q, want empty", got)
	}
}

func TestValidators(t *testing.T) {
	tests := []struct {
		name    string
		fn      func(string) error
		input   string
		wantErr bool
	}{
		{"date iso", ValidateDate, "2024-03-05", false},
		{"date key", ValidateDate, "2024-3-5", false},
		{"date empty", ValidateDate, " ", true},
		{"date invalid", ValidateDate, "2024-02-30", true},
		{"time empty", ValidateTime, "", false},
		{"time ok", ValidateTime, "09:30", false},
		{"time invalid", ValidateTime, "25:00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fn(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestEventTrimsFields(t *testing.T) {
	v := &Values{Time: " 10:00 ", Title: "  Dentista ", Description: " exames\n"}
	ev := v.Event()
	if ev.Time != "10:00" || ev.Title != "Dentista" || ev.Description != "exames" {
		t.Errorf("Event() = %+v", ev)
	}
}

func TestNewBuildsForm(t *testing.T) {
	for _, theme := range []constants.Theme{constants.ThemeLight, constants.ThemeDark} {
		if New(&Values{}, theme) == nil {
			t.Errorf("New(%s) returned nil", theme)
		}
	}
}
