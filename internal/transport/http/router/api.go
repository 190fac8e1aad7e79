package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"house-rent-api/internal/core/auth"
	"house-rent-api/internal/service"
	"house-rent-api/internal/storage"
	mdw "house-rent-api/internal/transport/http/middleware"
	resp "house-rent-api/internal/transport/http/response"
)

type APIDeps struct {
	Log            *zap.Logger
	JWTer          *auth.JWTer
	Auth           *service.AuthService
	Catalog        *service.CatalogService
	Images         storage.ImageStore
	MaxImageFiles  int
	MaxImageSizeMB int
}

// NewAPIEngine 公共目录 + 认证 + 管理端挂同一个引擎
func NewAPIEngine(d APIDeps) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(64<<20),
		mdw.Timeout(30*time.Second),
		ginzap.CustomRecoveryWithZap(d.Log, true, func(c *gin.Context, err any) {
			resp.AbortMessage(c, http.StatusInternalServerError, "internal error")
		}),
		mdw.Metrics(),
		mdw.AccessLog(d.Log),
	)
	r.Use(cors.Default())

	// 健康检查 / 指标
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 上传的图片只读回放
	mountUploads(r, d.Images)

	api := r.Group("/api")

	mountAuthActions(api, d.Auth)
	mountCatalogActions(api, d.Catalog)

	// 管理端：三类失败在中间件里区分（401 缺 token / 401 无效 / 403 非管理员）
	admin := api.Group("/admin")
	admin.Use(mdw.AuthJWT(d.JWTer, true))
	mountAdminPropertyActions(admin, d.Catalog, d.Images, d.MaxImageFiles, d.MaxImageSizeMB)

	return r
}
