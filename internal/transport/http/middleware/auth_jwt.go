package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"house-rent-api/internal/core/auth"
	resp "house-rent-api/internal/transport/http/response"
)

// AuthJWT 三类失败必须可区分：缺 token 401、token 无效/过期 401、
// 已认证但非管理员 403。
func AuthJWT(j *auth.JWTer, requireAdmin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			resp.AbortMessage(c, http.StatusUnauthorized, "access token required")
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			resp.AbortMessage(c, http.StatusUnauthorized, "invalid token")
			return
		}
		if requireAdmin && !claims.Admin {
			resp.AbortMessage(c, http.StatusForbidden, "admin access required")
			return
		}
		c.Set("claims", claims)
		c.Set("userId", claims.UID)
		c.Set("isAdmin", claims.Admin)
		c.Next()
	}
}
