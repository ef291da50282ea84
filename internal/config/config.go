// Package config provides YAML-based configuration loading for Chalkline.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level Chalkline configuration, loaded from chalkline.yaml.
// Secrets (API keys, bot tokens) are never read from YAML; they come from the
// environment.
type Config struct {
	Assignment AssignmentConfig `yaml:"assignment"`
	Model      ModelConfig      `yaml:"model"`
	Server     ServerConfig     `yaml:"server"`
	Archive    ArchiveConfig    `yaml:"archive"`
	Notify     NotifyConfig     `yaml:"notify"`
}

// AssignmentConfig is the static assignment record for one tutoring session:
// who the student is, what they are working on, and how the tutor behaves.
type AssignmentConfig struct {
	StudentName    string `yaml:"student_name"`
	Title          string `yaml:"title"`
	Type           string `yaml:"type"`
	Instructions   string `yaml:"instructions"`
	TutorPrompt    string `yaml:"tutor_prompt"`
	OpeningMessage string `yaml:"opening_message"`
	NotionPageID   string `yaml:"notion_page_id"`
}

// ModelConfig selects the generative model and its per-call token budgets.
type ModelConfig struct {
	Name            string `yaml:"name"`
	StreamMaxTokens int32  `yaml:"stream_max_tokens"`
	AssessMaxTokens int32  `yaml:"assess_max_tokens"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// ArchiveConfig controls the local submission archive.
type ArchiveConfig struct {
	Path          string `yaml:"path"`           // sqlite file for the submission archive
	RetentionDays int    `yaml:"retention_days"` // 0 keeps submissions forever
	SweepSchedule string `yaml:"sweep_schedule"` // cron spec for the retention sweep
}

// NotifyConfig selects the chat platform notified on submission.
type NotifyConfig struct {
	Platform string `yaml:"platform"` // "slack", "discord", or empty for none
	Channel  string `yaml:"channel"`
}

// Load reads a YAML config file from path and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.Model.Name == "" {
		c.Model.Name = "gemini-2.0-flash"
	}
	if c.Model.StreamMaxTokens == 0 {
		c.Model.StreamMaxTokens = 1024
	}
	if c.Model.AssessMaxTokens == 0 {
		c.Model.AssessMaxTokens = 2048
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Archive.Path == "" {
		c.Archive.Path = "chalkline.db"
	}
	if c.Archive.SweepSchedule == "" && c.Archive.RetentionDays > 0 {
		c.Archive.SweepSchedule = "@daily"
	}
}

// validate checks that all required fields are present and consistent.
func (c *Config) validate() error {
	var errs []string
	if c.Assignment.StudentName == "" {
		errs = append(errs, "assignment.student_name is required")
	}
	if c.Assignment.Title == "" {
		errs = append(errs, "assignment.title is required")
	}
	if c.Assignment.TutorPrompt == "" {
		errs = append(errs, "assignment.tutor_prompt is required")
	}
	if c.Assignment.OpeningMessage == "" {
		errs = append(errs, "assignment.opening_message is required")
	}
	if c.Assignment.NotionPageID == "" {
		errs = append(errs, "assignment.notion_page_id is required")
	}
	switch c.Notify.Platform {
	case "", "slack", "discord":
	default:
		errs = append(errs, fmt.Sprintf("notify.platform %q must be slack, discord, or empty", c.Notify.Platform))
	}
	if c.Notify.Platform != "" && c.Notify.Channel == "" {
		errs = append(errs, "notify.channel is required when notify.platform is set")
	}
	if c.Archive.RetentionDays < 0 {
		errs = append(errs, "archive.retention_days must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
