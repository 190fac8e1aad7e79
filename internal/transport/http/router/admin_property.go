package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"house-rent-api/internal/domain"
	"house-rent-api/internal/service"
	"house-rent-api/internal/storage"
	httpez "house-rent-api/internal/transport/http/ez"
	resp "house-rent-api/internal/transport/http/response"
)

type propertyOut struct {
	Message  string           `json:"message"`
	Property *domain.Property `json:"property"`
}

// mountAdminPropertyActions 挂载房源管理接口；分组已由 AuthJWT(admin) 把门
func mountAdminPropertyActions(admin *gin.RouterGroup, svc *service.CatalogService, store storage.ImageStore, maxFiles, maxSizeMB int) {
	if maxFiles <= 0 {
		maxFiles = service.MaxImagesPerProperty
	}

	admin.GET("/properties", func(c *gin.Context) {
		props, err := svc.ListAll()
		if err != nil {
			httpez.WriteErr(c, err)
			return
		}
		if props == nil {
			props = []domain.Property{}
		}
		c.JSON(http.StatusOK, props)
	})

	admin.POST("/properties", func(c *gin.Context) {
		form, err := c.MultipartForm()
		if err != nil {
			resp.Message(c, http.StatusBadRequest, "invalid multipart form: "+err.Error())
			return
		}

		// 超过上限的附件在落盘前拒绝，不会出现 6 张图的记录
		files := form.File["images"]
		if len(files) > maxFiles {
			resp.Message(c, http.StatusBadRequest,
				fmt.Sprintf("at most %d images are allowed", maxFiles))
			return
		}
		if maxSizeMB > 0 {
			limit := int64(maxSizeMB) << 20
			for _, fh := range files {
				if fh.Size > limit {
					resp.Message(c, http.StatusBadRequest,
						fmt.Sprintf("image %s exceeds %dMB", fh.Filename, maxSizeMB))
					return
				}
			}
		}

		in, err := createInputFromForm(c)
		if err != nil {
			httpez.WriteErr(c, err)
			return
		}

		// 先存文件再建记录；建记录失败会留下孤儿文件，已知且接受
		for _, fh := range files {
			f, err := fh.Open()
			if err != nil {
				resp.Internal(c, "read upload failed", err)
				return
			}
			name, err := store.Save(c.Request.Context(), fh.Filename,
				fh.Header.Get("Content-Type"), f, fh.Size)
			f.Close()
			if err != nil {
				resp.Internal(c, "store image failed", err)
				return
			}
			in.Images = append(in.Images, name)
		}

		p, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			httpez.WriteErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, propertyOut{Message: "property created successfully", Property: p})
	})

	httpez.Register(admin, httpez.Action[domain.PropertyUpdate, propertyOut]{
		Method: http.MethodPut,
		Path:   "/properties/:id",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *domain.PropertyUpdate) (propertyOut, error) {
			p, err := svc.Update(c.Request.Context(), c.Param("id"), *in)
			if err != nil {
				if err == domain.ErrNotFound {
					return propertyOut{}, httpez.NotFound("property not found")
				}
				return propertyOut{}, err
			}
			return propertyOut{Message: "property updated successfully", Property: p}, nil
		},
	})

	httpez.Register(admin, httpez.Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/properties/:id",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
				if err == domain.ErrNotFound {
					return nil, httpez.NotFound("property not found")
				}
				return nil, err
			}
			return gin.H{"message": "property deleted successfully"}, nil
		},
	})
}

// createInputFromForm 表单字段转 CreateInput；数字字段转换失败报 400，
// 与 404/401/403 可区分
func createInputFromForm(c *gin.Context) (service.CreateInput, error) {
	in := service.CreateInput{
		Title:       strings.TrimSpace(c.PostForm("title")),
		Description: strings.TrimSpace(c.PostForm("description")),
		Location:    strings.TrimSpace(c.PostForm("location")),
		Type:        strings.TrimSpace(c.PostForm("type")),
	}

	var err error
	if in.Price, err = intForm(c, "price"); err != nil {
		return in, err
	}
	if in.Bedrooms, err = intForm(c, "bedrooms"); err != nil {
		return in, err
	}
	if in.Bathrooms, err = intForm(c, "bathrooms"); err != nil {
		return in, err
	}
	if in.Area, err = intForm(c, "area"); err != nil {
		return in, err
	}

	if raw := c.PostForm("amenities"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &in.Amenities); err != nil {
			return in, fmt.Errorf("%w: amenities must be a JSON string array", domain.ErrValidation)
		}
	}
	return in, nil
}

func intForm(c *gin.Context, name string) (int, error) {
	s := strings.TrimSpace(c.PostForm(name))
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", domain.ErrValidation, name)
	}
	return n, nil
}
