package storage

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"path/filepath"
	"time"

	"house-rent-api/internal/core/config"
)

// ImageStore abstracts where uploaded images live (local disk or MinIO).
type ImageStore interface {
	// Save writes one image and returns the stored filename.
	Save(ctx context.Context, originalName, contentType string, r io.Reader, size int64) (string, error)
	// Open returns a reader for a stored image.
	Open(ctx context.Context, filename string) (io.ReadCloser, error)
	// Delete removes a stored image. Missing files are not an error.
	Delete(ctx context.Context, filename string) error
}

// NewFromConfig 按 upload.backend 选择后端；所有进程必须走同一套
// 配置，否则写入和回放会落在不同的存储上
func NewFromConfig(cfg config.Upload) (ImageStore, error) {
	switch cfg.Backend {
	case "minio":
		return NewMinioStore(cfg.Minio)
	default:
		return NewLocalStore(cfg.Dir)
	}
}

// NewFilename 生成存储名：毫秒时间戳-随机数.扩展名。
// 冲突概率按可忽略处理，不做去重。
func NewFilename(originalName string) string {
	return fmt.Sprintf("%d-%d%s",
		time.Now().UnixMilli(),
		rand.Int63n(1_000_000_000),
		filepath.Ext(originalName),
	)
}
