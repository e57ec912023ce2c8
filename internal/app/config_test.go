package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/yungbote/account-inventory/internal/store"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.HTTP.Addr != ":8000" {
		t.Fatalf("addr: want=%q got=%q", ":8000", cfg.HTTP.Addr)
	}
	if cfg.Source.Kind != store.KindFile || cfg.Source.Path != "data/accounts.json" {
		t.Fatalf("source: want=file:data/accounts.json got=%s:%s", cfg.Source.Kind, cfg.Source.Path)
	}
	if cfg.HTTP.ShutdownTimeout.Duration != 15*time.Second {
		t.Fatalf("shutdown timeout: want=15s got=%s", cfg.HTTP.ShutdownTimeout.Duration)
	}
}

func TestLoadConfigFileThenEnv(t *testing.T) {
	p := writeConfig(t, `
env: production
http:
  addr: ":9100"
  read_header_timeout: 2s
  idle_timeout: 30000000000
source:
  kind: redis
  redis_addr: localhost:6379
strict_duplicates: true
`)
	t.Setenv("INVENTORY_HTTP_ADDR", ":9200")
	t.Setenv("INVENTORY_REDIS_KEY", "accounts:v2")

	cfg, err := loadConfig(p)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Env != "production" {
		t.Fatalf("env: want=production got=%q", cfg.Env)
	}
	if cfg.HTTP.Addr != ":9200" {
		t.Fatalf("env override addr: want=%q got=%q", ":9200", cfg.HTTP.Addr)
	}
	if cfg.HTTP.ReadHeaderTimeout.Duration != 2*time.Second || cfg.HTTP.IdleTimeout.Duration != 30*time.Second {
		t.Fatalf("durations: got read_header=%s idle=%s", cfg.HTTP.ReadHeaderTimeout.Duration, cfg.HTTP.IdleTimeout.Duration)
	}
	if cfg.Source.Kind != store.KindRedis || cfg.Source.RedisKey != "accounts:v2" {
		t.Fatalf("source: got kind=%s key=%s", cfg.Source.Kind, cfg.Source.RedisKey)
	}
	if !cfg.StrictDuplicates {
		t.Fatalf("strict_duplicates: want=true")
	}
}

func TestLoadConfigEnvDuration(t *testing.T) {
	t.Setenv("INVENTORY_HTTP_SHUTDOWN_TIMEOUT", "3s")
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.HTTP.ShutdownTimeout.Duration != 3*time.Second {
		t.Fatalf("shutdown timeout: want=3s got=%s", cfg.HTTP.ShutdownTimeout.Duration)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	cases := map[string]string{
		"unknown kind":    "source:\n  kind: s3\n",
		"gcs without uri": "source:\n  kind: gcs\n",
		"redis no addr":   "source:\n  kind: redis\n",
		"bad ratio":       "otel:\n  sample_ratio: 2\n",
		"bad duration":    "http:\n  idle_timeout: soon\n",
	}
	for name, body := range cases {
		if _, err := loadConfig(writeConfig(t, body)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestDurationUnmarshalJSON(t *testing.T) {
	var d Duration
	if err := d.UnmarshalJSON([]byte(`"1m"`)); err != nil || d.Duration != time.Minute {
		t.Fatalf("string: want=1m got=%s err=%v", d.Duration, err)
	}
	if err := d.UnmarshalJSON([]byte(`1000`)); err != nil || d.Duration != time.Microsecond {
		t.Fatalf("int: want=1µs got=%s err=%v", d.Duration, err)
	}
	if err := d.UnmarshalJSON([]byte(`null`)); err != nil || d.Duration != 0 {
		t.Fatalf("null: want=0 got=%s err=%v", d.Duration, err)
	}
}
