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
	"house-rent-api/internal/core/cache"
	"house-rent-api/internal/core/config"
	"house-rent-api/internal/core/database"
	"house-rent-api/internal/core/logger"
	"house-rent-api/internal/core/server"
	"house-rent-api/internal/domain"
	"house-rent-api/internal/repo"
	"house-rent-api/internal/service"
	"house-rent-api/internal/storage"
	"house-rent-api/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := newLogger(cfg)
	defer cleanup()

	// 数据库（失败会直接 Fatal）
	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(&domain.User{}, &domain.Property{}); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLHour) * time.Hour,
	}

	images := mustOpenImageStore(cfg, log)

	// 接口变量：不配 redis 就保持 nil 接口，service 里据此跳过缓存
	var c cache.ByteCache
	if cfg.Redis.Addr != "" {
		c = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		log.Info("redis cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	userRepo := repo.NewUserRepo(db)
	propRepo := repo.NewPropertyRepo(db)
	authSvc := service.NewAuthService(userRepo, jwter)
	catalogSvc := service.NewCatalogService(propRepo, c, images)

	// 默认管理员引导（配置留空则跳过）
	created, err := authSvc.EnsureAdmin(cfg.Bootstrap.AdminEmail, cfg.Bootstrap.AdminPassword)
	if err != nil {
		log.Fatal("bootstrap admin failed", zap.Error(err))
	}
	if created {
		log.Info("default admin created", zap.String("email", cfg.Bootstrap.AdminEmail))
	}

	r := router.NewAPIEngine(router.APIDeps{
		Log:            log,
		JWTer:          jwter,
		Auth:           authSvc,
		Catalog:        catalogSvc,
		Images:         images,
		MaxImageFiles:  cfg.Upload.MaxFiles,
		MaxImageSizeMB: cfg.Upload.MaxSizeMB,
	})

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("catalog api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("api", baseURL+"/api"),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("catalog api start FAILED", zap.Error(err))
		}
	}()
	log.Info("catalog api started SUCCESS")

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("catalog api stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, func()) {
	if cfg.Log.File != "" {
		return logger.NewWithRotate(cfg.Log.Level, cfg.Log.JSON, cfg.Log.File,
			cfg.Log.MaxSizeMB, cfg.Log.MaxBackups, cfg.Log.MaxAgeDays, cfg.Log.Compress)
	}
	return logger.New(cfg.Log.Level, cfg.Log.JSON)
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
