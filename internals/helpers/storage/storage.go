package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"bisig_backend/internals/configs"
)

// Store persists uploaded objects under a key and knows their public URL.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
	Driver() string
}

// NewFromEnv picks the driver named by UPLOAD_DRIVER ("local" or "oss").
func NewFromEnv() (Store, error) {
	switch configs.UploadDriver {
	case "", "local":
		return NewLocalStore(configs.UploadDir, "/uploads"), nil
	case "oss":
		return NewOSSStoreFromEnv(configs.GetEnv("ALI_OSS_PREFIX", "bisig"))
	default:
		return nil, fmt.Errorf("unknown upload driver %q", configs.UploadDriver)
	}
}

// MustFromEnv falls back to the local driver when the configured one cannot start.
func MustFromEnv() Store {
	s, err := NewFromEnv()
	if err != nil {
		zap.L().Warn("storage driver unavailable, using local disk", zap.Error(err))
		return NewLocalStore(configs.UploadDir, "/uploads")
	}
	zap.L().Info("storage ready", zap.String("driver", s.Driver()))
	return s
}

// JoinKey joins non-empty path segments with "/".
func JoinKey(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.Trim(p, "/"); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "/")
}
