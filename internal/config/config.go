package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultTimeout bounds a single AI generation request.
const DefaultTimeout = 60 * time.Second

type Config struct {
	Provider string `yaml:"provider"`
	APIKey   string `yaml:"api_key,omitempty"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url,omitempty"`

	// Language is the editor's starting language: english or hindi.
	Language     string        `yaml:"language,omitempty"`
	DraftsPath   string        `yaml:"drafts_path,omitempty"`
	TemplatesDir string        `yaml:"templates_dir,omitempty"`
	Timeout      time.Duration `yaml:"timeout,omitempty"`
	LogLevel     string        `yaml:"log_level,omitempty"`

	Speech *SpeechConfig `yaml:"speech,omitempty"`
}

// SpeechConfig names an external transcription command. The literal
// argument "{lang}" is replaced by a BCP 47 tag such as hi-IN.
type SpeechConfig struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Provider: "gemini",
		Model:    "gemini-2.5-flash",
		Language: "english",
		Timeout:  DefaultTimeout,
	}
}

// ConfigDir honours PATRA_CONFIG_DIR before falling back to ~/.config/patra.
func ConfigDir() (string, error) {
	if dir := os.Getenv("PATRA_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "patra"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func Exists() bool {
	path, err := ConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Load returns nil, nil when no config file has been written yet.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// ResolveAPIKey picks the credential for a request: a key the user typed
// wins over the environment default.
func ResolveAPIKey(userKey, envDefault string) string {
	if k := strings.TrimSpace(userKey); k != "" {
		return k
	}
	return strings.TrimSpace(envDefault)
}

// EnvAPIKey reads the environment default for the configured provider.
// PATRA_API_KEY applies to every provider.
func (c *Config) EnvAPIKey() string {
	if k := os.Getenv("PATRA_API_KEY"); k != "" {
		return k
	}
	if p := GetProvider(c.Provider); p != nil && p.EnvVar != "" {
		return os.Getenv(p.EnvVar)
	}
	return ""
}

// EffectiveAPIKey is the key a provider should be built with.
func (c *Config) EffectiveAPIKey() string {
	return ResolveAPIKey(c.APIKey, c.EnvAPIKey())
}

func (c *Config) RequestTimeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}

// DraftsFile is where the draft list is persisted.
func (c *Config) DraftsFile() (string, error) {
	if c.DraftsPath != "" {
		return c.DraftsPath, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "drafts.json"), nil
}

// UserTemplatesDir holds extra templates loaded at startup.
func (c *Config) UserTemplatesDir() (string, error) {
	if c.TemplatesDir != "" {
		return c.TemplatesDir, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "templates"), nil
}

func (c *Config) LogFile() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "patra.log"), nil
}
