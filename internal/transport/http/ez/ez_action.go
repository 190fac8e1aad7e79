package ez

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"house-rent-api/internal/domain"
	resp "house-rent-api/internal/transport/http/response"
)

// 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"  // 从 JSON 绑定
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindNone  Binder = "none"  // 不绑定，自己从 c.Param / c.PostForm 取
)

// AErr 带 HTTP 状态的错误对象
type AErr struct {
	Status int
	Msg    string
	Err    error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func BadRequest(msg string) error   { return &AErr{Status: http.StatusBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Status: http.StatusUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &AErr{Status: http.StatusForbidden, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Status: http.StatusNotFound, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Status: http.StatusInternalServerError, Msg: msg, Err: err}
}

// WriteErr 统一错误出口：领域错误映射到对应状态码，
// 其余按 500 处理并带上错误明细。
func WriteErr(c *gin.Context, err error) {
	var ae *AErr
	if errors.As(err, &ae) {
		if ae.Status == http.StatusInternalServerError {
			resp.Internal(c, ae.Msg, ae.Err)
			return
		}
		resp.Message(c, ae.Status, ae.Error())
		return
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		resp.Message(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrValidation):
		resp.Message(c, http.StatusBadRequest, err.Error())
	default:
		resp.Internal(c, "server error", err)
	}
}

// Action 非 CRUD 一行注册：I 入参，O 出参
type Action[I any, O any] struct {
	Method   string // "GET" | "POST" | "PUT" | "DELETE"
	Path     string // 例："/auth/login"、"/properties/:id"
	Binder   Binder // 绑定方式
	OKStatus int    // 成功状态码，默认 200
	Handler  func(c *gin.Context, in *I) (O, error)
}

func Register[I any, O any](g *gin.RouterGroup, a Action[I, O]) {
	ok := a.OKStatus
	if ok == 0 {
		ok = http.StatusOK
	}
	h := func(c *gin.Context) {
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		default: // BindNone: 不绑定
		}
		if bindErr != nil {
			resp.Message(c, http.StatusBadRequest, bindErr.Error())
			return
		}

		out, err := a.Handler(c, &in)
		if err != nil {
			WriteErr(c, err)
			return
		}
		c.JSON(ok, out)
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		g.GET(a.Path, h)
	case http.MethodPut:
		g.PUT(a.Path, h)
	case http.MethodDelete:
		g.DELETE(a.Path, h)
	default: // 默认 POST
		g.POST(a.Path, h)
	}
}
