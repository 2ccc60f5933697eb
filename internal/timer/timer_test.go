package timer

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTimerFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "backup.timer")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write timer file: %v", err)
	}
	return path
}

func TestParseFile(t *testing.T) {
	path := writeTimerFile(t, `# nightly backup
[Unit]
Description=Nightly database backup

[Timer]
OnCalendar=daily
Persistent=true
AccuracySec=1m
RandomizedDelaySec=30s
Unit=backup.service
`)

	cfg, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if cfg.FilePath != path {
		t.Errorf("FilePath = %q, want %q", cfg.FilePath, path)
	}
	if cfg.OnCalendar != "daily" {
		t.Errorf("OnCalendar = %q, want daily", cfg.OnCalendar)
	}
	if !cfg.Persistent {
		t.Error("Persistent should be true")
	}
	if cfg.AccuracySec != "1m" || cfg.RandomizedDelaySec != "30s" {
		t.Errorf("accuracy/delay wrong: %+v", cfg)
	}
	if cfg.Unit != "backup.service" {
		t.Errorf("Unit = %q, want backup.service (Timer section wins over Description)", cfg.Unit)
	}
}

func TestParseFileCaseInsensitiveKeysAndComments(t *testing.T) {
	path := writeTimerFile(t, `[timer]
; semicolon comment
ONCALENDAR = Mon *-*-* 00:00:00
persistent = yes
SomeUnknownKey=ignored
`)

	cfg, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if cfg.OnCalendar != "Mon *-*-* 00:00:00" {
		t.Errorf("OnCalendar = %q", cfg.OnCalendar)
	}
	if !cfg.Persistent {
		t.Error("Persistent should accept yes")
	}
}

func TestParseFileDescriptionFallback(t *testing.T) {
	path := writeTimerFile(t, `[Unit]
Description=certbot renewal

[Timer]
OnCalendar=*-*-* 00,12:00:00
`)

	cfg, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if cfg.Unit != "certbot renewal" {
		t.Errorf("Unit = %q, want description fallback", cfg.Unit)
	}
}

func TestParseFileMissing(t *testing.T) {
	if _, err := ParseFile(filepath.Join(t.TempDir(), "nope.timer")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
