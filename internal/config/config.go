// internal/config/config.go
//
// This package handles configuration and the .boardpack directory structure.
// Running boardpack in a directory creates a .boardpack/ folder there holding
// the config file, logs and captured leads.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	// ProjectDirName is the name of the directory we create in the working directory
	ProjectDirName = ".boardpack"

	defaultResetDelay      = 3 * time.Second
	defaultQueueSize       = 64
	defaultDeliveryTimeout = 10 * time.Second
)

const defaultProjectConfigYAML = `# boardpack configuration
version: 1

submission:
  # How long the confirmation label stays before the form clears itself.
  reset_delay: 3s
  # Regular expression an email must match. Empty uses the browser rule for
  # <input type=email>.
  email_pattern: ""

content:
  # YAML file replacing the bundled page copy. Relative to this directory's parent.
  path: ""

leads:
  queue_size: 64
  delivery_timeout: 10s
  # Append every lead to .boardpack/leads/leads.jsonl
  journal: true
  # Store every lead in .boardpack/leads/leads.db
  sqlite: true
  # POST every lead as JSON to this URL (mailing-list service).
  webhook_url: ""
`

// SubmissionConfig tunes the early-access form.
type SubmissionConfig struct {
	ResetDelay   time.Duration `yaml:"reset_delay"`
	EmailPattern string        `yaml:"email_pattern"`
}

// ContentConfig selects the page copy.
type ContentConfig struct {
	Path string `yaml:"path"`
}

// LeadsConfig selects where captured leads go.
type LeadsConfig struct {
	QueueSize       int           `yaml:"queue_size"`
	DeliveryTimeout time.Duration `yaml:"delivery_timeout"`
	Journal         bool          `yaml:"journal"`
	SQLite          bool          `yaml:"sqlite"`
	WebhookURL      string        `yaml:"webhook_url"`
}

// ProjectConfig models .boardpack/config.yaml.
type ProjectConfig struct {
	Version    int              `yaml:"version"`
	Submission SubmissionConfig `yaml:"submission"`
	Content    ContentConfig    `yaml:"content"`
	Leads      LeadsConfig      `yaml:"leads"`
}

// envOverrides are read after the file and win over it when set.
type envOverrides struct {
	ResetDelay   time.Duration `env:"BOARDPACK_RESET_DELAY"`
	EmailPattern string        `env:"BOARDPACK_EMAIL_PATTERN"`
	ContentPath  string        `env:"BOARDPACK_CONTENT"`
	WebhookURL   string        `env:"BOARDPACK_WEBHOOK_URL"`
	Journal      *bool         `env:"BOARDPACK_LEADS_JOURNAL"`
	SQLite       *bool         `env:"BOARDPACK_LEADS_SQLITE"`
}

// Config holds the runtime configuration for boardpack.
type Config struct {
	// ProjectDir is the directory boardpack was started from
	ProjectDir string

	// BoardpackDir is ProjectDir/.boardpack
	BoardpackDir string

	Project ProjectConfig
}

// InitDir creates the .boardpack directory structure in the given directory.
//
// Structure created:
// .boardpack/
// ├── config.yaml
// ├── logs/      <- boardpack.log
// └── leads/     <- leads.jsonl, leads.db
func InitDir(projectDir string) error {
	root := filepath.Join(projectDir, ProjectDirName)
	dirs := []string{
		filepath.Join(root, "logs"),
		filepath.Join(root, "leads"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return ensureProjectConfig(filepath.Join(root, "config.yaml"))
}

// NewConfig loads .boardpack/config.yaml (defaults when missing) and applies
// environment overrides.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir:   projectDir,
		BoardpackDir: filepath.Join(projectDir, ProjectDirName),
		Project:      defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LogsDir returns the path to the logs directory
func (c *Config) LogsDir() string {
	return filepath.Join(c.BoardpackDir, "logs")
}

// LeadsDir returns the path to the captured leads directory
func (c *Config) LeadsDir() string {
	return filepath.Join(c.BoardpackDir, "leads")
}

// JournalPath returns the JSON lines file leads are appended to.
func (c *Config) JournalPath() string {
	return filepath.Join(c.LeadsDir(), "leads.jsonl")
}

// DatabasePath returns the SQLite lead store.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.LeadsDir(), "leads.db")
}

// ProjectConfigPath returns the on-disk location for the config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.BoardpackDir, "config.yaml")
}

// ResetDelay returns the submission confirmation window.
func (c *Config) ResetDelay() time.Duration {
	return c.Project.Submission.ResetDelay
}

// EmailPattern returns the configured email rule ("" for the browser rule).
func (c *Config) EmailPattern() string {
	return c.Project.Submission.EmailPattern
}

// ContentPath returns the page override file ("" for the bundled page).
func (c *Config) ContentPath() string {
	return c.Project.Content.Path
}

// Leads returns the lead delivery settings.
func (c *Config) Leads() LeadsConfig {
	return c.Project.Leads
}

// SetContentPath points the page at an override file, resolved against the
// project directory.
func (c *Config) SetContentPath(path string) {
	c.Project.Content.Path = resolvePath(c.ProjectDir, path)
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	parsed := defaultProjectConfig()
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize(c.ProjectDir)
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return nil
}

func (c *Config) applyEnv() error {
	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return fmt.Errorf("config: parse env: %w", err)
	}
	pc := c.Project
	if overrides.ResetDelay != 0 {
		pc.Submission.ResetDelay = overrides.ResetDelay
	}
	if overrides.EmailPattern != "" {
		pc.Submission.EmailPattern = overrides.EmailPattern
	}
	if overrides.ContentPath != "" {
		pc.Content.Path = overrides.ContentPath
	}
	if overrides.WebhookURL != "" {
		pc.Leads.WebhookURL = overrides.WebhookURL
	}
	if overrides.Journal != nil {
		pc.Leads.Journal = *overrides.Journal
	}
	if overrides.SQLite != nil {
		pc.Leads.SQLite = *overrides.SQLite
	}
	pc.normalize(c.ProjectDir)
	if err := pc.validate(); err != nil {
		return fmt.Errorf("config: env: %w", err)
	}
	c.Project = pc
	return nil
}

func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Version: 1,
		Submission: SubmissionConfig{
			ResetDelay: defaultResetDelay,
		},
		Leads: LeadsConfig{
			QueueSize:       defaultQueueSize,
			DeliveryTimeout: defaultDeliveryTimeout,
			Journal:         true,
			SQLite:          true,
		},
	}
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if pc.Submission.ResetDelay == 0 {
		pc.Submission.ResetDelay = defaultResetDelay
	}
	if pc.Leads.QueueSize == 0 {
		pc.Leads.QueueSize = defaultQueueSize
	}
	if pc.Leads.DeliveryTimeout == 0 {
		pc.Leads.DeliveryTimeout = defaultDeliveryTimeout
	}
}

func (pc *ProjectConfig) normalize(base string) {
	pc.Submission.EmailPattern = strings.TrimSpace(pc.Submission.EmailPattern)
	pc.Content.Path = resolvePath(base, pc.Content.Path)
	pc.Leads.WebhookURL = strings.TrimSpace(pc.Leads.WebhookURL)
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if pc.Submission.ResetDelay <= 0 {
		return fmt.Errorf("submission.reset_delay must be positive")
	}
	if pc.Submission.EmailPattern != "" {
		if _, err := regexp.Compile(pc.Submission.EmailPattern); err != nil {
			return fmt.Errorf("submission.email_pattern: %w", err)
		}
	}
	if pc.Leads.QueueSize < 0 {
		return fmt.Errorf("leads.queue_size must not be negative")
	}
	if pc.Leads.DeliveryTimeout < 0 {
		return fmt.Errorf("leads.delivery_timeout must not be negative")
	}
	if url := pc.Leads.WebhookURL; url != "" &&
		!strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return fmt.Errorf("leads.webhook_url must be an http(s) URL")
	}
	return nil
}

func resolvePath(base, candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return ""
	}
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed)
	}
	return filepath.Clean(filepath.Join(base, trimmed))
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0o644)
}
