package backup

import (
	"path/filepath"
	"testing"
	"time"
)

func TestTargetName(t *testing.T) {
	start := time.Date(2026, 8, 31, 14, 5, 9, 0, time.Local)

	if got, want := targetName("CMDR-PC", start, true), "EliteDangerousBackup_CMDR-PC_20260831_140509.zip"; got != want {
		t.Errorf("zip name = %q, want %q", got, want)
	}
	if got, want := targetName("CMDR-PC", start, false), "EliteDangerousBackup_CMDR-PC_20260831_140509"; got != want {
		t.Errorf("mirror name = %q, want %q", got, want)
	}
}

func TestTargetName_SanitizesMachine(t *testing.T) {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.Local)
	got := targetName("my pc/о7", start, false)
	if want := "EliteDangerousBackup_my_pc__7_20260102_030405"; got != want {
		t.Errorf("sanitized name = %q, want %q", got, want)
	}
}

func TestBackupTarget_JoinsDestRoot(t *testing.T) {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.Local)
	got := backupTarget(filepath.Join("d", "usb"), "PC", start, true)
	want := filepath.Join("d", "usb", "EliteDangerousBackup_PC_20260102_030405.zip")
	if got != want {
		t.Errorf("backupTarget = %q, want %q", got, want)
	}
}

func TestParseTargetName(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantOK bool
	}{
		{"mirror", "EliteDangerousBackup_PC_20260831_140509", true},
		{"zip", "EliteDangerousBackup_PC_20260831_140509.zip", true},
		{"machine with underscores", "EliteDangerousBackup_my_old_pc_20260831_140509", true},
		{"wrong prefix", "SomethingElse_PC_20260831_140509", false},
		{"garbage timestamp", "EliteDangerousBackup_PC_notadate_badtime", false},
		{"too short", "EliteDangerousBackup_20260831", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, ok := parseTargetName(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("parseTargetName(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok {
				want := time.Date(2026, 8, 31, 14, 5, 9, 0, time.Local)
				if !ts.Equal(want) {
					t.Errorf("timestamp = %v, want %v", ts, want)
				}
			}
		})
	}
}

func TestSourceTag(t *testing.T) {
	tests := []struct {
		name string
		root string
		want string
	}{
		{"nested", filepath.Join("home", "A", "Data"), "A__Data"},
		{"other parent same leaf", filepath.Join("home", "B", "Data"), "B__Data"},
		{"top level", string(filepath.Separator) + "Data", "Data"},
		{"bare", "Data", "Data"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sourceTag(tt.root); got != tt.want {
				t.Errorf("sourceTag(%q) = %q, want %q", tt.root, got, tt.want)
			}
		})
	}
}
