package config

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	appDirName = "SUTRAM"
	dataSubdir = "data"
	probeFile  = ".sutram_write_test"
)

type Config struct {
	Host     string `env:"HOST,      default=127.0.0.1"`
	Port     string `env:"PORT,      default=5000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Session SessionConfig
	Paths   PathsConfig
}

type SessionConfig struct {
	Secret         string        `env:"SESSION_SECRET"`
	RememberMeDays int           `env:"REMEMBER_ME_DAYS, default=7"`
	TTL            time.Duration `env:"SESSION_TTL,      default=12h"`

	// CookieSecure marks cookies Secure. Enable only when served over TLS.
	CookieSecure bool `env:"SESSION_COOKIE_SECURE, default=false"`

	// SecretGenerated is set when no secret was configured and a random one
	// was drawn for this process. Sessions then do not survive a restart.
	SecretGenerated bool
}

type PathsConfig struct {
	// DataDir holds the database. Empty means the first writable of the
	// executable's directory, the working directory and ~/SUTRAM, each
	// with a data/ subdirectory.
	DataDir string `env:"DATA_DIR"`
	// ResourceDir optionally overrides the embedded templates with files
	// from ResourceDir/templates.
	ResourceDir string `env:"RESOURCE_DIR"`
	DBFile      string `env:"DB_FILE, default=sutram.db"`
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// DBPath is the absolute path of the SQLite file.
func (c *Config) DBPath() string {
	return filepath.Join(c.Paths.DataDir, c.Paths.DBFile)
}

// RememberMe is the lifetime of a remembered session.
func (c *Config) RememberMe() time.Duration {
	return time.Duration(c.Session.RememberMeDays) * 24 * time.Hour
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig and
// resolves the data directory once.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith is Load with an explicit variable source.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if cfg.Port == "" {
		return nil, errors.New("config: PORT must not be empty")
	}
	if cfg.Session.RememberMeDays <= 0 {
		return nil, fmt.Errorf("config: REMEMBER_ME_DAYS must be positive, got %d", cfg.Session.RememberMeDays)
	}
	if cfg.Session.TTL <= 0 {
		return nil, fmt.Errorf("config: SESSION_TTL must be positive, got %s", cfg.Session.TTL)
	}

	if cfg.Session.Secret == "" {
		secret, err := randomSecret()
		if err != nil {
			return nil, fmt.Errorf("config: generate session secret: %w", err)
		}
		cfg.Session.Secret = secret
		cfg.Session.SecretGenerated = true
	}

	dataDir, err := resolveDataDir(cfg.Paths.DataDir, defaultBases())
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.Paths.DataDir = dataDir

	return &cfg, nil
}

func defaultBases() []string {
	var bases []string
	if exe, err := os.Executable(); err == nil {
		bases = append(bases, filepath.Dir(exe))
	}
	if wd, err := os.Getwd(); err == nil {
		bases = append(bases, wd)
	}
	if home, err := os.UserHomeDir(); err == nil {
		bases = append(bases, filepath.Join(home, appDirName))
	}
	return bases
}

// resolveDataDir returns explicit when set, creating it if needed. Otherwise
// it probes bases in order and returns data/ under the first writable one.
func resolveDataDir(explicit string, bases []string) (string, error) {
	if explicit != "" {
		if err := os.MkdirAll(explicit, 0o755); err != nil {
			return "", fmt.Errorf("create DATA_DIR: %w", err)
		}
		return filepath.Abs(explicit)
	}

	for _, base := range bases {
		dir := filepath.Join(base, dataSubdir)
		if writable(dir) {
			return filepath.Abs(dir)
		}
	}
	return "", fmt.Errorf("no writable data directory among %v", bases)
}

func writable(dir string) bool {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false
	}
	probe := filepath.Join(dir, probeFile)
	if err := os.WriteFile(probe, []byte("ok"), 0o600); err != nil {
		return false
	}
	_ = os.Remove(probe)
	return true
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
