package settingsform

import (
	"testing"
	"time"

	"github.com/julianstephens/diario/internal/backup"
	"github.com/julianstephens/diario/internal/constants"
)

func TestParseInterval(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"30000", 30000, false},
		{" 0 ", 0, false},
		{"-1", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseInterval(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseInterval(%q) = %d, %v", tt.in, got, err)
		}
	}
}

func TestIntervalValues(t *testing.T) {
	v := NewIntervalValues(30000)
	if v.Ms != "30000" {
		t.Errorf("Ms = %q", v.Ms)
	}
	v.Ms = "5000"
	if ms, err := v.Value(); err != nil || ms != 5000 {
		t.Errorf("Value() = %d, %v", ms, err)
	}
	if form := Interval(v, constants.ThemeDark); form == nil {
		t.Error("Interval returned nil")
	}
}

func TestRestoreDefaultsToNewest(t *testing.T) {
	backups := []backup.BackupInfo{
		{Path: "/b/diario-backup-2024-03-05.json", Date: time.Date(2024, time.March, 5, 0, 0, 0, 0, time.Local)},
		{Path: "/b/diario-backup-2024-03-01.json", Date: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.Local)},
	}
	v := &RestoreValues{}
	if form := Restore(v, backups, constants.ThemeLight); form == nil {
		t.Fatal("Restore returned nil")
	}
	if v.Path != backups[0].Path {
		t.Errorf("Path = %q, want newest backup", v.Path)
	}
	if v.Confirm {
		t.Error("restore confirmed before asking")
	}
}
