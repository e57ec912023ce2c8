package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/yungbote/account-inventory/internal/store"
)

const (
	configPathEnv     = "INVENTORY_CONFIG_PATH"
	defaultConfigFile = "config/config.yaml"
	defaultDataPath   = "data/accounts.json"
	defaultRedisKey   = "inventory:accounts"
)

// Duration accepts "5s"-style strings or integer nanoseconds.
type Duration struct {
	time.Duration
}

func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Duration(n), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("duration must be a string like \"5s\" or an int nanoseconds: %w", err)
	}
	return d, nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	dd, err := parseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = dd
	return nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a scalar", node.Line)
	}
	return d.UnmarshalText([]byte(node.Value))
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		d.Duration = 0
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		var u string
		if err := json.Unmarshal(b, &u); err != nil {
			return err
		}
		s = u
	}
	return d.UnmarshalText([]byte(s))
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

type HTTPConfig struct {
	Addr              string   `yaml:"addr" env:"INVENTORY_HTTP_ADDR"`
	ReadHeaderTimeout Duration `yaml:"read_header_timeout" env:"INVENTORY_HTTP_READ_HEADER_TIMEOUT"`
	IdleTimeout       Duration `yaml:"idle_timeout" env:"INVENTORY_HTTP_IDLE_TIMEOUT"`
	ShutdownTimeout   Duration `yaml:"shutdown_timeout" env:"INVENTORY_HTTP_SHUTDOWN_TIMEOUT"`
}

type SourceConfig struct {
	Kind store.Kind `yaml:"kind" env:"INVENTORY_SOURCE"`

	// file
	Path string `yaml:"path" env:"INVENTORY_DATA_PATH"`

	// gcs
	GCSURI string `yaml:"gcs_uri" env:"INVENTORY_GCS_URI"`

	// redis
	RedisAddr     string `yaml:"redis_addr" env:"INVENTORY_REDIS_ADDR"`
	RedisPassword string `yaml:"redis_password" env:"INVENTORY_REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db" env:"INVENTORY_REDIS_DB"`
	RedisKey      string `yaml:"redis_key" env:"INVENTORY_REDIS_KEY"`
}

type ObjectStorageConfig struct {
	Mode         string `yaml:"mode" env:"OBJECT_STORAGE_MODE"`
	EmulatorHost string `yaml:"emulator_host" env:"STORAGE_EMULATOR_HOST"`
}

type OtelConfig struct {
	Enabled     bool    `yaml:"enabled" env:"OTEL_ENABLED"`
	ServiceName string  `yaml:"service_name" env:"OTEL_SERVICE_NAME"`
	Endpoint    string  `yaml:"endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	Headers     string  `yaml:"headers" env:"OTEL_EXPORTER_OTLP_HEADERS"`
	Insecure    bool    `yaml:"insecure" env:"OTEL_EXPORTER_OTLP_INSECURE"`
	SampleRatio float64 `yaml:"sample_ratio" env:"OTEL_SAMPLER_RATIO"`
}

type Config struct {
	Env              string              `yaml:"env" env:"LOG_MODE"`
	HTTP             HTTPConfig          `yaml:"http"`
	Source           SourceConfig        `yaml:"source"`
	ObjectStorage    ObjectStorageConfig `yaml:"object_storage"`
	StrictDuplicates bool                `yaml:"strict_duplicates" env:"INVENTORY_STRICT_DUPLICATES"`
	Otel             OtelConfig          `yaml:"otel"`
}

func defaultConfig() *Config {
	return &Config{
		Env: "development",
		HTTP: HTTPConfig{
			Addr:              ":8000",
			ReadHeaderTimeout: Duration{Duration: 5 * time.Second},
			IdleTimeout:       Duration{Duration: 2 * time.Minute},
			ShutdownTimeout:   Duration{Duration: 15 * time.Second},
		},
		Source: SourceConfig{
			Kind:     store.KindFile,
			Path:     defaultDataPath,
			RedisKey: defaultRedisKey,
		},
		Otel: OtelConfig{
			SampleRatio: 0.1,
		},
	}
}

// LoadConfig layers defaults, the optional YAML file and environment
// overrides, then validates the result.
func LoadConfig() (*Config, error) {
	return loadConfig(strings.TrimSpace(os.Getenv(configPathEnv)))
}

func loadConfig(cfgPath string) (*Config, error) {
	cfg := defaultConfig()

	if cfgPath == "" {
		if wd, err := os.Getwd(); err == nil {
			p := filepath.Join(wd, defaultConfigFile)
			if _, err := os.Stat(p); err == nil {
				cfgPath = p
			}
		}
	}
	if cfgPath != "" {
		b, err := os.ReadFile(cfgPath)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgPath, err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	cfg.Env = strings.TrimSpace(cfg.Env)
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	cfg.HTTP.Addr = strings.TrimSpace(cfg.HTTP.Addr)
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8000"
	}
	if cfg.HTTP.ReadHeaderTimeout.Duration < 0 || cfg.HTTP.IdleTimeout.Duration < 0 {
		return errors.New("http timeouts must not be negative")
	}
	if cfg.HTTP.ShutdownTimeout.Duration <= 0 {
		cfg.HTTP.ShutdownTimeout = Duration{Duration: 15 * time.Second}
	}

	src := &cfg.Source
	src.Kind = store.Kind(strings.ToLower(strings.TrimSpace(string(src.Kind))))
	switch src.Kind {
	case "":
		src.Kind = store.KindFile
		fallthrough
	case store.KindFile:
		src.Path = strings.TrimSpace(src.Path)
		if src.Path == "" {
			src.Path = defaultDataPath
		}
	case store.KindGCS:
		src.GCSURI = strings.TrimSpace(src.GCSURI)
		if src.GCSURI == "" {
			return errors.New("source.gcs_uri is required when source.kind=gcs")
		}
	case store.KindRedis:
		src.RedisAddr = strings.TrimSpace(src.RedisAddr)
		if src.RedisAddr == "" {
			return errors.New("source.redis_addr is required when source.kind=redis")
		}
		if src.RedisDB < 0 {
			return fmt.Errorf("invalid source.redis_db=%d", src.RedisDB)
		}
		src.RedisKey = strings.TrimSpace(src.RedisKey)
		if src.RedisKey == "" {
			src.RedisKey = defaultRedisKey
		}
	default:
		return fmt.Errorf("invalid source.kind=%q (want file, gcs or redis)", src.Kind)
	}

	if cfg.Otel.SampleRatio < 0 || cfg.Otel.SampleRatio > 1 {
		return fmt.Errorf("invalid otel.sample_ratio=%v", cfg.Otel.SampleRatio)
	}
	return nil
}
