package service

import (
	"fmt"
	"strings"

	"house-rent-api/internal/core/auth"
	"house-rent-api/internal/domain"
	"house-rent-api/pkg/utils"
)

type AuthService struct {
	users domain.UserRepository
	jwter *auth.JWTer
}

func NewAuthService(users domain.UserRepository, jwter *auth.JWTer) *AuthService {
	return &AuthService{users: users, jwter: jwter}
}

// Register 注册新账号并直接签发令牌。重复邮箱返回 ErrEmailTaken。
func (s *AuthService) Register(email, password string) (*domain.User, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	existing, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", domain.ErrEmailTaken
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, "", err
	}
	u := &domain.User{
		ID:           utils.NewID(),
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      false,
	}
	if err := s.users.Create(u); err != nil {
		// 并发兜底：唯一索引兜住重复注册
		if isDupKey(err) {
			return nil, "", domain.ErrEmailTaken
		}
		return nil, "", err
	}

	tok, err := s.jwter.Issue(u.ID, u.Email, u.IsAdmin)
	if err != nil {
		return nil, "", err
	}
	return u, tok, nil
}

// Login 校验凭证并签发令牌。邮箱不存在与密码错误返回同一个
// ErrInvalidCredentials，不暴露账号是否存在。
func (s *AuthService) Login(email, password string) (*domain.User, string, error) {
	u, err := s.users.FindByEmail(strings.TrimSpace(email))
	if err != nil {
		return nil, "", err
	}
	if u == nil {
		return nil, "", domain.ErrInvalidCredentials
	}
	if !utils.CheckPassword(password, u.PasswordHash) {
		return nil, "", domain.ErrInvalidCredentials
	}
	tok, err := s.jwter.Issue(u.ID, u.Email, u.IsAdmin)
	if err != nil {
		return nil, "", err
	}
	return u, tok, nil
}

// EnsureAdmin 启动期引导默认管理员；已存在则不动。
// 这是系统里唯一能产生 isAdmin=true 账号的途径。
func (s *AuthService) EnsureAdmin(email, password string) (created bool, err error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return false, nil
	}
	existing, err := s.users.FindByEmail(email)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return false, err
	}
	u := &domain.User{
		ID:           utils.NewID(),
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      true,
	}
	if err := s.users.Create(u); err != nil {
		if isDupKey(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func isDupKey(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "duplicate key")
}
