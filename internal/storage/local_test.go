package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"house-rent-api/internal/core/config"
)

// 公共 API 和后台进程都用它选后端，两边必须选到同一个实现
func TestNewFromConfig_BackendSelection(t *testing.T) {
	s, err := NewFromConfig(config.Upload{Backend: "local", Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("local: %v", err)
	}
	if _, ok := s.(*LocalStore); !ok {
		t.Errorf("backend=local gave %T", s)
	}

	s, err = NewFromConfig(config.Upload{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("default: %v", err)
	}
	if _, ok := s.(*LocalStore); !ok {
		t.Errorf("empty backend gave %T", s)
	}

	s, err = NewFromConfig(config.Upload{
		Backend: "minio",
		Minio: config.Minio{
			Endpoint:  "127.0.0.1:9000",
			AccessKey: "ak",
			SecretKey: "sk",
			Bucket:    "images",
		},
	})
	if err != nil {
		t.Fatalf("minio: %v", err)
	}
	if _, ok := s.(*MinioStore); !ok {
		t.Errorf("backend=minio gave %T", s)
	}
}

func TestNewFilename_KeepsExtension(t *testing.T) {
	name := NewFilename("kitchen photo.JPG")
	if !strings.HasSuffix(name, ".JPG") {
		t.Errorf("extension lost: %s", name)
	}
	if strings.Contains(name, " ") {
		t.Errorf("original name must not leak into the stored name: %s", name)
	}
}

func TestLocalStore_SaveOpenDelete(t *testing.T) {
	s, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	name, err := s.Save(ctx, "a.png", "image/png", strings.NewReader("pixels"), 6)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasSuffix(name, ".png") {
		t.Errorf("stored name: %s", name)
	}

	rc, err := s.Open(ctx, name)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	b, _ := io.ReadAll(rc)
	rc.Close()
	if string(b) != "pixels" {
		t.Errorf("content mismatch: %q", b)
	}

	if err := s.Delete(ctx, name); err != nil {
		t.Fatalf("delete: %v", err)
	}
	// 重复删除不报错
	if err := s.Delete(ctx, name); err != nil {
		t.Errorf("second delete: %v", err)
	}
	if _, err := s.Open(ctx, name); err == nil {
		t.Error("open after delete must fail")
	}
}

func TestLocalStore_RejectsTraversal(t *testing.T) {
	s, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	for _, name := range []string{"../etc/passwd", "a/b.png", ""} {
		if _, err := s.Open(context.Background(), name); err == nil {
			t.Errorf("%q must be rejected", name)
		}
	}
}
