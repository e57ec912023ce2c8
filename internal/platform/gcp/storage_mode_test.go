package gcp

import (
	"errors"
	"testing"
)

func TestResolveObjectStorageConfigDefaultGCS(t *testing.T) {
	cfg, err := ResolveObjectStorageConfig("", "")
	if err != nil {
		t.Fatalf("ResolveObjectStorageConfig: %v", err)
	}
	if cfg.Mode != ObjectStorageModeGCS {
		t.Fatalf("mode: want=%q got=%q", ObjectStorageModeGCS, cfg.Mode)
	}
	if cfg.CompatibilityFallback {
		t.Fatalf("compatibility fallback: want=false got=true")
	}
}

func TestResolveObjectStorageConfigExplicitEmulator(t *testing.T) {
	cfg, err := ResolveObjectStorageConfig("GCS_EMULATOR", "http://fake-gcs:4443")
	if err != nil {
		t.Fatalf("ResolveObjectStorageConfig: %v", err)
	}
	if cfg.Mode != ObjectStorageModeGCSEmulator {
		t.Fatalf("mode: want=%q got=%q", ObjectStorageModeGCSEmulator, cfg.Mode)
	}
	if cfg.ModeSource() != "explicit_or_default" {
		t.Fatalf("mode source: got=%q", cfg.ModeSource())
	}
}

func TestResolveObjectStorageConfigCompatibilityFallback(t *testing.T) {
	cfg, err := ResolveObjectStorageConfig("", "http://fake-gcs:4443")
	if err != nil {
		t.Fatalf("ResolveObjectStorageConfig: %v", err)
	}
	if cfg.Mode != ObjectStorageModeGCSEmulator {
		t.Fatalf("mode: want=%q got=%q", ObjectStorageModeGCSEmulator, cfg.Mode)
	}
	if !cfg.CompatibilityFallback {
		t.Fatalf("compatibility fallback: want=true got=false")
	}
}

func TestResolveObjectStorageConfigErrors(t *testing.T) {
	cases := []struct {
		name     string
		mode     string
		emulator string
		code     ObjectStorageConfigErrorCode
	}{
		{name: "invalid mode", mode: "s3", code: ObjectStorageConfigErrorInvalidMode},
		{name: "missing emulator host", mode: "gcs_emulator", code: ObjectStorageConfigErrorMissingEmulatorHost},
		{name: "invalid emulator host", mode: "gcs_emulator", emulator: "fake-gcs:4443", code: ObjectStorageConfigErrorInvalidEmulatorHost},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ResolveObjectStorageConfig(tc.mode, tc.emulator)
			var cfgErr *ObjectStorageConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ObjectStorageConfigError, got=%T %v", err, err)
			}
			if cfgErr.Code != tc.code {
				t.Fatalf("code: want=%q got=%q", tc.code, cfgErr.Code)
			}
		})
	}
}

func TestParseObjectURI(t *testing.T) {
	bucket, key, err := ParseObjectURI("gs://inventory-data/exports/accounts.json")
	if err != nil {
		t.Fatalf("ParseObjectURI: %v", err)
	}
	if bucket != "inventory-data" || key != "exports/accounts.json" {
		t.Fatalf("unexpected split: bucket=%q key=%q", bucket, key)
	}

	for _, bad := range []string{"", "s3://b/k", "gs://", "gs://bucket", "gs://bucket/", "gs:///key"} {
		if _, _, err := ParseObjectURI(bad); err == nil {
			t.Fatalf("ParseObjectURI(%q): expected error", bad)
		}
	}
}
