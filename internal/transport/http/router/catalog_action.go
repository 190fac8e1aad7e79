package router

import (
	"mime"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"house-rent-api/internal/domain"
	"house-rent-api/internal/service"
	"house-rent-api/internal/storage"
	httpez "house-rent-api/internal/transport/http/ez"
	resp "house-rent-api/internal/transport/http/response"
)

// parseFilter 解析查询参数；数字解析失败按“未提供”降级，不报错
func parseFilter(c *gin.Context) domain.PropertyFilter {
	return domain.PropertyFilter{
		Type:     c.Query("type"),
		MinPrice: intQuery(c, "minPrice"),
		MaxPrice: intQuery(c, "maxPrice"),
		Bedrooms: intQuery(c, "bedrooms"),
		Location: c.Query("location"),
		Search:   c.Query("search"),
	}
}

func intQuery(c *gin.Context, name string) *int {
	s := c.Query(name)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

func mountCatalogActions(api *gin.RouterGroup, svc *service.CatalogService) {
	api.GET("/properties", func(c *gin.Context) {
		props, err := svc.Search(parseFilter(c))
		if err != nil {
			httpez.WriteErr(c, err)
			return
		}
		if props == nil {
			props = []domain.Property{}
		}
		c.JSON(http.StatusOK, props)
	})

	api.GET("/properties/:id", func(c *gin.Context) {
		p, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			if err == domain.ErrNotFound {
				resp.Message(c, http.StatusNotFound, "property not found")
				return
			}
			httpez.WriteErr(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	})
}

// mountUploads 通过 ImageStore 回放图片，本地盘和 minio 走同一条路
func mountUploads(r *gin.Engine, store storage.ImageStore) {
	r.GET("/uploads/:filename", func(c *gin.Context) {
		name := c.Param("filename")
		rc, err := store.Open(c.Request.Context(), name)
		if err != nil {
			resp.Message(c, http.StatusNotFound, "image not found")
			return
		}
		defer rc.Close()

		ct := mime.TypeByExtension(filepath.Ext(name))
		if ct == "" {
			ct = "application/octet-stream"
		}
		c.DataFromReader(http.StatusOK, -1, ct, rc, nil)
	})
}
