package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds everything the archiver needs, loaded once at startup
// and passed explicitly into every component that needs it.
type Config struct {
	BotToken        string
	RecipientUserID string
	Timezone        string
	OutputDir       string
	MediaDir        string
	LedgerPath      string
	AdminChannelID  string
	RunAtStartup    bool
	PageLimit       int

	// Location is resolved from Timezone during Load.
	Location *time.Location
}

// Load reads configuration from a .env file (if present), config.yaml,
// and the environment, in that order. Environment variables override
// file settings. Returns an explicit Config; nothing else in the
// program reads viper directly.
func Load() (*Config, error) {
	// Load environment variables from .env, ignore if the file is absent.
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, skipping.")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("archive.timezone", "UTC")
	v.SetDefault("archive.outputDir", "archives")
	v.SetDefault("archive.mediaDir", "media")
	v.SetDefault("archive.ledgerPath", "data/archive_runs.db")
	v.SetDefault("archive.pageLimit", 200)
	v.SetDefault("bot.runAtStartup", false)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Printf("No config.yaml found, using environment variables and defaults.")
		} else {
			return nil, fmt.Errorf("fatal error reading config file: %w", err)
		}
	}

	cfg := &Config{
		BotToken:        v.GetString("SLACK_BOT_TOKEN"),
		RecipientUserID: v.GetString("archive.recipientUserId"),
		Timezone:        v.GetString("archive.timezone"),
		OutputDir:       v.GetString("archive.outputDir"),
		MediaDir:        v.GetString("archive.mediaDir"),
		LedgerPath:      v.GetString("archive.ledgerPath"),
		AdminChannelID:  v.GetString("bot.adminChannelId"),
		RunAtStartup:    v.GetBool("bot.runAtStartup"),
		PageLimit:       v.GetInt("archive.pageLimit"),
	}

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("no bot token provided: set SLACK_BOT_TOKEN in your .env or config file")
	}
	if cfg.RecipientUserID == "" {
		return nil, fmt.Errorf("no archive recipient provided: set archive.recipientUserId")
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid archive.timezone %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	return cfg, nil
}
