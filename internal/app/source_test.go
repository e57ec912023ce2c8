package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/yungbote/account-inventory/internal/platform/gcp"
	"github.com/yungbote/account-inventory/internal/platform/logger"
	"github.com/yungbote/account-inventory/internal/store"
)

type stubObjects struct{ closed bool }

func (s *stubObjects) Open(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewBufferString(`[{"accountNumber": 5}]`)), nil
}

func (s *stubObjects) Close() error {
	s.closed = true
	return nil
}

func withObjectReader(t *testing.T, fn func(context.Context, *logger.Logger, gcp.ObjectStorageConfig) (gcp.ObjectReader, error)) {
	t.Helper()
	prev := newObjectReader
	newObjectReader = fn
	t.Cleanup(func() { newObjectReader = prev })
}

func bootstrapCode(t *testing.T, err error) SourceBootstrapErrorCode {
	t.Helper()
	var got *SourceBootstrapError
	if !errors.As(err, &got) {
		t.Fatalf("expected SourceBootstrapError, got=%T (%v)", err, err)
	}
	return got.Code
}

func TestResolveSourceFile(t *testing.T) {
	cfg := defaultConfig()
	src, closer, err := resolveSource(context.Background(), logger.NewNop(), *cfg)
	if err != nil {
		t.Fatalf("resolveSource: %v", err)
	}
	if src.Describe() != "file:data/accounts.json" {
		t.Fatalf("describe: got=%q", src.Describe())
	}
	if err := closer(); err != nil {
		t.Fatalf("closer: %v", err)
	}
}

func TestResolveSourceGCS(t *testing.T) {
	objects := &stubObjects{}
	var gotMode gcp.ObjectStorageMode
	withObjectReader(t, func(ctx context.Context, log *logger.Logger, cfg gcp.ObjectStorageConfig) (gcp.ObjectReader, error) {
		gotMode = cfg.Mode
		return objects, nil
	})

	cfg := defaultConfig()
	cfg.Source.Kind = store.KindGCS
	cfg.Source.GCSURI = "gs://inventory/accounts.json"
	cfg.ObjectStorage.EmulatorHost = "http://localhost:4443"

	src, closer, err := resolveSource(context.Background(), logger.NewNop(), *cfg)
	if err != nil {
		t.Fatalf("resolveSource: %v", err)
	}
	if gotMode != gcp.ObjectStorageModeGCSEmulator {
		t.Fatalf("mode: want=%q got=%q", gcp.ObjectStorageModeGCSEmulator, gotMode)
	}
	raws, err := src.Load(context.Background())
	if err != nil || len(raws) != 1 {
		t.Fatalf("Load: want 1 record got=%d err=%v", len(raws), err)
	}
	if err := closer(); err != nil || !objects.closed {
		t.Fatalf("closer should close the object reader (err=%v)", err)
	}
}

func TestResolveSourceGCSErrors(t *testing.T) {
	cfg := defaultConfig()
	cfg.Source.Kind = store.KindGCS
	cfg.Source.GCSURI = "gs://inventory/accounts.json"
	cfg.ObjectStorage.Mode = "s3"
	_, _, err := resolveSource(context.Background(), logger.NewNop(), *cfg)
	if code := bootstrapCode(t, err); code != SourceBootstrapErrorStorageMode {
		t.Fatalf("bad mode: want=%q got=%q", SourceBootstrapErrorStorageMode, code)
	}

	withObjectReader(t, func(ctx context.Context, log *logger.Logger, cfg gcp.ObjectStorageConfig) (gcp.ObjectReader, error) {
		return nil, errors.New("no credentials")
	})
	cfg.ObjectStorage.Mode = "gcs"
	_, _, err = resolveSource(context.Background(), logger.NewNop(), *cfg)
	if code := bootstrapCode(t, err); code != SourceBootstrapErrorConnectFailed {
		t.Fatalf("connect: want=%q got=%q", SourceBootstrapErrorConnectFailed, code)
	}

	cfg.Source.GCSURI = "inventory/accounts.json"
	_, _, err = resolveSource(context.Background(), logger.NewNop(), *cfg)
	if code := bootstrapCode(t, err); code != SourceBootstrapErrorInvalidConfig {
		t.Fatalf("bad uri: want=%q got=%q", SourceBootstrapErrorInvalidConfig, code)
	}
}

func TestResolveSourceRedisUnreachable(t *testing.T) {
	cfg := defaultConfig()
	cfg.Source.Kind = store.KindRedis
	cfg.Source.RedisAddr = "127.0.0.1:1"

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, _, err := resolveSource(ctx, logger.NewNop(), *cfg)
	if code := bootstrapCode(t, err); code != SourceBootstrapErrorConnectFailed {
		t.Fatalf("redis: want=%q got=%q", SourceBootstrapErrorConnectFailed, code)
	}
}

func TestResolveSourceUnknownKind(t *testing.T) {
	cfg := defaultConfig()
	cfg.Source.Kind = store.Kind("ftp")
	_, closer, err := resolveSource(context.Background(), logger.NewNop(), *cfg)
	if code := bootstrapCode(t, err); code != SourceBootstrapErrorInvalidKind {
		t.Fatalf("kind: want=%q got=%q", SourceBootstrapErrorInvalidKind, code)
	}
	if closer == nil {
		t.Fatalf("closer must never be nil")
	}
}
