package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/svnlens/svnlens/domain"
)

const defaultTimeoutSeconds = 60

// Config is the top-level configuration for svnlens.
type Config struct {
	Executable     string       `yaml:"executable"`      // svn binary override; empty uses the per-OS default
	TimeoutSeconds int          `yaml:"timeout_seconds"` // per-invocation timeout; 0 disables
	LogLevel       string       `yaml:"log_level"`
	Proxy          *ProxyConfig `yaml:"proxy"`
	WorkingCopies  []string     `yaml:"working_copies"` // roots offered by the tree view on startup
}

// ProxyConfig describes an HTTP proxy for repository access.
type ProxyConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"` // inline or ${ENV_VAR}
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{TimeoutSeconds: defaultTimeoutSeconds}
}

// Load reads and parses a configuration file, expanding environment variable
// references in the proxy password.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	cfg := Default()
	if unmarshalErr := yaml.Unmarshal(data, cfg); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	if cfg.Proxy != nil {
		cfg.Proxy.Password = expandEnv(cfg.Proxy.Password)
	}

	if validateErr := validate(cfg); validateErr != nil {
		return nil, validateErr
	}

	return cfg, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".svnlens.yaml",
		".svnlens.yml",
		"svnlens.yaml",
		"svnlens.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// Timeout converts the configured timeout to a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ProxySettings converts the proxy section to the runner's settings type,
// or nil when no proxy is configured.
func (c *Config) ProxySettings() *domain.ProxySettings {
	if c.Proxy == nil || c.Proxy.Host == "" {
		return nil
	}
	return &domain.ProxySettings{
		Host:     c.Proxy.Host,
		Port:     c.Proxy.Port,
		Username: c.Proxy.Username,
		Password: c.Proxy.Password,
	}
}

// expandEnv resolves ${ENV_VAR} references.
func expandEnv(raw string) string {
	if raw == "" {
		return raw
	}
	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})
}

// validate checks for configuration values that cannot work.
func validate(cfg *Config) error {
	if cfg.TimeoutSeconds < 0 {
		return errors.New("timeout_seconds must not be negative")
	}
	if cfg.Proxy != nil && cfg.Proxy.Host != "" {
		if cfg.Proxy.Port <= 0 || cfg.Proxy.Port > 65535 {
			return fmt.Errorf("proxy.port %d is out of range", cfg.Proxy.Port)
		}
	}
	for i, wc := range cfg.WorkingCopies {
		if strings.TrimSpace(wc) == "" {
			return fmt.Errorf("working_copies[%d] must not be empty", i)
		}
	}
	return nil
}
