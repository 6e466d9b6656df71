package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Filename is the config file at the root of a ledger directory.
const Filename = "tally.yaml"

// Storage backends.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config represents the top-level tally.yaml configuration.
type Config struct {
	Ledger  LedgerConfig  `yaml:"ledger"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Git     GitConfig     `yaml:"git"`
}

// LedgerConfig names the ledger.
type LedgerConfig struct {
	Name string `yaml:"name"`
}

// StorageConfig selects where the snapshot slot lives.
type StorageConfig struct {
	Backend    string      `yaml:"backend"`
	Key        string      `yaml:"key"`
	Dir        string      `yaml:"dir"`         // file backend, relative to the ledger dir
	SQLitePath string      `yaml:"sqlite_path"` // sqlite backend, relative to the ledger dir
	Redis      RedisConfig `yaml:"redis,omitempty"`
}

// RedisConfig holds the redis backend connection.
type RedisConfig struct {
	Addr      string `yaml:"addr"`
	Password  string `yaml:"password,omitempty"`
	DB        int    `yaml:"db"`
	Namespace string `yaml:"namespace"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a tally.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new ledger.
func Default() *Config {
	return &Config{
		Ledger: LedgerConfig{
			Name: "Personal",
		},
		Storage: StorageConfig{
			Backend:    BackendFile,
			Key:        "statements",
			Dir:        "data",
			SQLitePath: filepath.Join("data", "tally.db"),
			Redis: RedisConfig{
				Addr:      "localhost:6379",
				Namespace: "tally",
			},
		},
		Log: LogConfig{
			Level: "warn",
		},
		Git: GitConfig{
			AutoCommit:  false,
			AuthorName:  "Tally",
			AuthorEmail: "tally@localhost",
		},
	}
}

// LoadDir loads <dir>/tally.yaml (defaults if absent), then applies overrides
// from <dir>/.env and TALLY_* process environment variables, in that order.
func LoadDir(dir string) (*Config, error) {
	cfg, err := Load(filepath.Join(dir, Filename))
	if errors.Is(err, fs.ErrNotExist) {
		cfg = Default()
	} else if err != nil {
		return nil, err
	}

	env, err := godotenv.Read(filepath.Join(dir, ".env"))
	if errors.Is(err, fs.ErrNotExist) {
		env = map[string]string{}
	} else if err != nil {
		return nil, fmt.Errorf("reading .env: %w", err)
	}
	for _, kv := range os.Environ() {
		k, v, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(k, "TALLY_") {
			env[k] = v
		}
	}

	if err := cfg.ApplyEnv(env); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from TALLY_* variables.
func (c *Config) ApplyEnv(env map[string]string) error {
	str := map[string]*string{
		"TALLY_STORAGE_BACKEND": &c.Storage.Backend,
		"TALLY_STORAGE_KEY":     &c.Storage.Key,
		"TALLY_STORAGE_DIR":     &c.Storage.Dir,
		"TALLY_SQLITE_PATH":     &c.Storage.SQLitePath,
		"TALLY_REDIS_ADDR":      &c.Storage.Redis.Addr,
		"TALLY_REDIS_PASSWORD":  &c.Storage.Redis.Password,
		"TALLY_REDIS_NAMESPACE": &c.Storage.Redis.Namespace,
		"TALLY_LOG_LEVEL":       &c.Log.Level,
	}
	for k, dst := range str {
		if v, ok := env[k]; ok {
			*dst = v
		}
	}

	if v, ok := env["TALLY_REDIS_DB"]; ok {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing TALLY_REDIS_DB %q: %w", v, err)
		}
		c.Storage.Redis.DB = db
	}
	if v, ok := env["TALLY_GIT_AUTO_COMMIT"]; ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parsing TALLY_GIT_AUTO_COMMIT %q: %w", v, err)
		}
		c.Git.AutoCommit = b
	}
	return nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []string

	switch c.Storage.Backend {
	case BackendFile, BackendMemory, BackendSQLite, BackendRedis:
	default:
		errs = append(errs, fmt.Sprintf("unknown storage backend %q", c.Storage.Backend))
	}
	if strings.TrimSpace(c.Storage.Key) == "" {
		errs = append(errs, "storage key must not be empty")
	}
	if c.Storage.Backend == BackendRedis && c.Storage.Redis.Addr == "" {
		errs = append(errs, "redis backend needs an address")
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(errs, "; "))
	}
	return nil
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	return level, nil
}
