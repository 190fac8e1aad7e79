package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"house-rent-api/internal/core/auth"
	"house-rent-api/internal/core/config"
	"house-rent-api/internal/core/database"
	"house-rent-api/internal/core/logger"
	"house-rent-api/internal/core/server"
	"house-rent-api/internal/repo"
	"house-rent-api/internal/service"
	"house-rent-api/internal/storage"
	"house-rent-api/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	// DB 连接（失败直接 Fatal）
	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLHour) * time.Hour,
	}

	// 必须与 cmd/api 选到同一个后端，否则上传与回放各落一边
	images := mustOpenImageStore(cfg, log)

	userRepo := repo.NewUserRepo(db)
	propRepo := repo.NewPropertyRepo(db)
	catalogSvc := service.NewCatalogService(propRepo, nil, images)

	r := router.NewAdminEngine(router.AdminDeps{
		Log:            log,
		JWTer:          jwter,
		Users:          userRepo,
		Catalog:        catalogSvc,
		Images:         images,
		MaxImageFiles:  cfg.Upload.MaxFiles,
		MaxImageSizeMB: cfg.Upload.MaxSizeMB,
	})

	addr := server.Addr(cfg.App.Admin.Host, cfg.App.Admin.Port)
	srv := server.BuildServer(addr, r, 5*time.Second, 10*time.Second, 60*time.Second)

	host4human := cfg.App.Admin.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.Admin.Port)
	log.Info("back office starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("admin_v1", baseURL+"/admin/v1"),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("back office start FAILED", zap.Error(err))
		}
	}()
	log.Info("back office started SUCCESS")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("back office stopped gracefully")
}

func mustOpenImageStore(cfg *config.Config, l *zap.Logger) storage.ImageStore {
	s, err := storage.NewFromConfig(cfg.Upload)
	if err != nil {
		l.Fatal("image store open", zap.Error(err))
	}
	if ms, ok := s.(*storage.MinioStore); ok {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := ms.EnsureBucket(ctx); err != nil {
			l.Fatal("minio ensure bucket", zap.Error(err))
		}
		l.Info("image store: minio", zap.String("bucket", cfg.Upload.Minio.Bucket))
		return s
	}
	l.Info("image store: local", zap.String("dir", cfg.Upload.Dir))
	return s
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
