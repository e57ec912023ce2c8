package app

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/account-inventory/internal/platform/gcp"
	"github.com/yungbote/account-inventory/internal/platform/logger"
	"github.com/yungbote/account-inventory/internal/store"
)

var newObjectReader = gcp.NewObjectReader

type SourceBootstrapErrorCode string

const (
	SourceBootstrapErrorInvalidKind   SourceBootstrapErrorCode = "invalid_kind"
	SourceBootstrapErrorInvalidConfig SourceBootstrapErrorCode = "invalid_config"
	SourceBootstrapErrorStorageMode   SourceBootstrapErrorCode = "invalid_storage_mode"
	SourceBootstrapErrorConnectFailed SourceBootstrapErrorCode = "connect_failed"
)

type SourceBootstrapError struct {
	Code  SourceBootstrapErrorCode
	Kind  store.Kind
	Cause error
}

func (e *SourceBootstrapError) Error() string {
	if e == nil {
		return "account source bootstrap failed"
	}
	return fmt.Sprintf("account source bootstrap failed (code=%s kind=%q): %v", e.Code, e.Kind, e.Cause)
}

func (e *SourceBootstrapError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// resolveSource builds the configured source. The returned closer releases
// any client the source holds and is never nil.
func resolveSource(ctx context.Context, log *logger.Logger, cfg Config) (store.Source, func() error, error) {
	noop := func() error { return nil }
	kind := cfg.Source.Kind

	log.Info("Selecting account source", "kind", kind)

	switch kind {
	case store.KindFile:
		src, err := store.NewFileSource(cfg.Source.Path)
		if err != nil {
			return nil, noop, sourceError(log, SourceBootstrapErrorInvalidConfig, kind, err)
		}
		return src, noop, nil

	case store.KindGCS:
		storageCfg, err := gcp.ResolveObjectStorageConfig(cfg.ObjectStorage.Mode, cfg.ObjectStorage.EmulatorHost)
		if err != nil {
			return nil, noop, sourceError(log, SourceBootstrapErrorStorageMode, kind, err)
		}
		if _, _, err := gcp.ParseObjectURI(cfg.Source.GCSURI); err != nil {
			return nil, noop, sourceError(log, SourceBootstrapErrorInvalidConfig, kind, err)
		}
		objects, err := newObjectReader(ctx, log, storageCfg)
		if err != nil {
			return nil, noop, sourceError(log, classifyObjectStorageError(err), kind, err)
		}
		src, err := store.NewGCSSource(objects, cfg.Source.GCSURI)
		if err != nil {
			_ = objects.Close()
			return nil, noop, sourceError(log, SourceBootstrapErrorInvalidConfig, kind, err)
		}
		return src, objects.Close, nil

	case store.KindRedis:
		rdb := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Source.RedisAddr,
			Password: cfg.Source.RedisPassword,
			DB:       cfg.Source.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, noop, sourceError(log, SourceBootstrapErrorConnectFailed, kind, fmt.Errorf("redis ping %s: %w", cfg.Source.RedisAddr, err))
		}
		src, err := store.NewRedisSource(rdb, cfg.Source.RedisKey)
		if err != nil {
			_ = rdb.Close()
			return nil, noop, sourceError(log, SourceBootstrapErrorInvalidConfig, kind, err)
		}
		return src, rdb.Close, nil

	default:
		return nil, noop, sourceError(log, SourceBootstrapErrorInvalidKind, kind, fmt.Errorf("unsupported source kind %q", kind))
	}
}

func classifyObjectStorageError(err error) SourceBootstrapErrorCode {
	var cfgErr *gcp.ObjectStorageConfigError
	if errors.As(err, &cfgErr) {
		return SourceBootstrapErrorStorageMode
	}
	return SourceBootstrapErrorConnectFailed
}

func sourceError(log *logger.Logger, code SourceBootstrapErrorCode, kind store.Kind, cause error) error {
	err := &SourceBootstrapError{Code: code, Kind: kind, Cause: cause}
	log.Error("Account source bootstrap failed", "kind", kind, "error_code", code, "error", cause)
	return err
}
