package router

import (
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"house-rent-api/internal/core/auth"
	"house-rent-api/internal/domain"
	"house-rent-api/internal/service"
	"house-rent-api/internal/storage"
	httpez "house-rent-api/internal/transport/http/ez"
	mdw "house-rent-api/internal/transport/http/middleware"
	resp "house-rent-api/internal/transport/http/response"
)

type AdminDeps struct {
	Log            *zap.Logger
	JWTer          *auth.JWTer
	Users          domain.UserRepository
	Catalog        *service.CatalogService
	Images         storage.ImageStore
	MaxImageFiles  int
	MaxImageSizeMB int
}

// NewAdminEngine 独立端口的后台引擎，统一要求 admin 身份
func NewAdminEngine(d AdminDeps) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(100, 200),
		mdw.ConcurrencyLimit(100),
		mdw.MaxBodyBytes(64<<20),
		mdw.Timeout(30*time.Second),
		ginzap.CustomRecoveryWithZap(d.Log, true, func(c *gin.Context, err any) {
			resp.AbortMessage(c, http.StatusInternalServerError, "internal error")
		}),
		mdw.Metrics(),
		mdw.AccessLog(d.Log),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })

	admin := r.Group("/admin/v1")
	admin.Use(mdw.AuthJWT(d.JWTer, true))

	mountAdminUserActions(admin, d.Users)
	mountAdminPropertyActions(admin, d.Catalog, d.Images, d.MaxImageFiles, d.MaxImageSizeMB)

	return r
}

func mountAdminUserActions(admin *gin.RouterGroup, users domain.UserRepository) {
	// --- GET /admin/v1/users  账号列表 ---
	type listQ struct {
		Offset int    `form:"offset,default=0"`
		Limit  int    `form:"limit,default=20"`
		Q      string `form:"q"` // 按 email 模糊搜
	}
	type row struct {
		ID        string    `json:"id"`
		Email     string    `json:"email"`
		IsAdmin   bool      `json:"isAdmin"`
		CreatedAt time.Time `json:"createdAt"`
	}
	type listOut struct {
		Total int64 `json:"total"`
		Items []row `json:"items"`
	}

	httpez.Register(admin, httpez.Action[listQ, listOut]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, in *listQ) (listOut, error) {
			if in.Limit <= 0 || in.Limit > 100 {
				in.Limit = 20
			}
			us, total, err := users.List(in.Offset, in.Limit, in.Q)
			if err != nil {
				return listOut{}, httpez.Internal("list users failed", err)
			}
			out := listOut{Total: total, Items: make([]row, 0, len(us))}
			for _, u := range us {
				out.Items = append(out.Items, row{
					ID: u.ID, Email: u.Email, IsAdmin: u.IsAdmin, CreatedAt: u.CreatedAt,
				})
			}
			return out, nil
		},
	})
}
