package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"house-rent-api/internal/domain"
	"house-rent-api/internal/service"
	httpez "house-rent-api/internal/transport/http/ez"
)

type credentialsIn struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

type userOut struct {
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

type authOut struct {
	Message string  `json:"message"`
	Token   string  `json:"token"`
	User    userOut `json:"user"`
}

func toUserOut(u *domain.User) userOut {
	return userOut{Email: u.Email, IsAdmin: u.IsAdmin}
}

func mountAuthActions(api *gin.RouterGroup, svc *service.AuthService) {
	httpez.Register(api, httpez.Action[credentialsIn, authOut]{
		Method:   http.MethodPost,
		Path:     "/auth/register",
		Binder:   httpez.BindJSON,
		OKStatus: http.StatusCreated,
		Handler: func(c *gin.Context, in *credentialsIn) (authOut, error) {
			u, tok, err := svc.Register(in.Email, in.Password)
			if err != nil {
				return authOut{}, err
			}
			return authOut{Message: "user created successfully", Token: tok, User: toUserOut(u)}, nil
		},
	})

	httpez.Register(api, httpez.Action[credentialsIn, authOut]{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *credentialsIn) (authOut, error) {
			u, tok, err := svc.Login(in.Email, in.Password)
			if err != nil {
				return authOut{}, err
			}
			return authOut{Message: "login successful", Token: tok, User: toUserOut(u)}, nil
		},
	})
}
