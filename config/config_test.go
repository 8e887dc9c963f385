package config

import (
	"os"
	"testing"
)

func loadFromEnv(t *testing.T, env map[string]string) (*Config, error) {
	t.Helper()
	// Run from an empty directory so no stray config.yaml or .env is picked up.
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })

	for k, v := range env {
		t.Setenv(k, v)
	}
	return Load()
}

func TestLoadFromEnvironment(t *testing.T) {
	cfg, err := loadFromEnv(t, map[string]string{
		"SLACK_BOT_TOKEN":         "xoxb-test",
		"ARCHIVE_RECIPIENTUSERID": "U123",
		"ARCHIVE_TIMEZONE":        "UTC",
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BotToken != "xoxb-test" || cfg.RecipientUserID != "U123" {
		t.Errorf("cfg = %+v, want token and recipient from env", cfg)
	}
	if cfg.Location == nil || cfg.Location.String() != "UTC" {
		t.Errorf("Location = %v, want UTC", cfg.Location)
	}
	if cfg.PageLimit <= 0 {
		t.Errorf("PageLimit = %d, want a positive default", cfg.PageLimit)
	}
	if cfg.OutputDir == "" || cfg.MediaDir == "" || cfg.LedgerPath == "" {
		t.Errorf("cfg = %+v, want defaulted paths", cfg)
	}
}

func TestLoadRequiresToken(t *testing.T) {
	if _, err := loadFromEnv(t, map[string]string{
		"SLACK_BOT_TOKEN":         "",
		"ARCHIVE_RECIPIENTUSERID": "U123",
	}); err == nil {
		t.Fatal("Load succeeded without a bot token")
	}
}

func TestLoadRequiresRecipient(t *testing.T) {
	if _, err := loadFromEnv(t, map[string]string{
		"SLACK_BOT_TOKEN": "xoxb-test",
	}); err == nil {
		t.Fatal("Load succeeded without a recipient")
	}
}

func TestLoadRejectsBadTimezone(t *testing.T) {
	if _, err := loadFromEnv(t, map[string]string{
		"SLACK_BOT_TOKEN":         "xoxb-test",
		"ARCHIVE_RECIPIENTUSERID": "U123",
		"ARCHIVE_TIMEZONE":        "Not/AZone",
	}); err == nil {
		t.Fatal("Load accepted an invalid timezone")
	}
}
