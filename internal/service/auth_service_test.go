package service

import (
	"errors"
	"testing"
	"time"

	"house-rent-api/internal/core/auth"
	"house-rent-api/internal/domain"
)

// map 版用户仓库，给测试用
type mockUserRepo struct {
	users map[string]*domain.User // by id
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*domain.User)}
}

func (m *mockUserRepo) Create(u *domain.User) error {
	for _, ex := range m.users {
		if ex.Email == u.Email {
			return errors.New("duplicate key")
		}
	}
	cp := *u
	cp.CreatedAt = time.Now()
	m.users[u.ID] = &cp
	return nil
}

func (m *mockUserRepo) FindByID(id string) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserRepo) FindByEmail(email string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) List(offset, limit int, q string) ([]domain.User, int64, error) {
	var out []domain.User
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func testJWTer() *auth.JWTer {
	return &auth.JWTer{Secret: []byte("test-secret"), Issuer: "test", TTL: time.Hour}
}

func TestRegister_Success(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewAuthService(repo, testJWTer())

	u, tok, err := svc.Register("tenant@example.com", "password123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if tok == "" {
		t.Error("expected a token")
	}
	if u.IsAdmin {
		t.Error("registration must never grant admin")
	}
	if u.PasswordHash == "password123" || u.PasswordHash == "" {
		t.Error("password must be stored hashed")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewAuthService(repo, testJWTer())

	if _, _, err := svc.Register("tenant@example.com", "password123"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, _, err := svc.Register("tenant@example.com", "other")
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
	if len(repo.users) != 1 {
		t.Errorf("expected exactly one stored user, got %d", len(repo.users))
	}
}

func TestRegister_MissingFields(t *testing.T) {
	svc := NewAuthService(newMockUserRepo(), testJWTer())
	if _, _, err := svc.Register("", "pw"); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("empty email: got %v", err)
	}
	if _, _, err := svc.Register("a@b", ""); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("empty password: got %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewAuthService(repo, testJWTer())
	svc.Register("tenant@example.com", "password123")

	u, tok, err := svc.Login("tenant@example.com", "password123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if tok == "" || u.Email != "tenant@example.com" {
		t.Errorf("unexpected login result: %v %q", u, tok)
	}
}

// 未知邮箱和密码错误必须给同一个错误，不泄露账号是否存在
func TestLogin_UniformFailure(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewAuthService(repo, testJWTer())
	svc.Register("tenant@example.com", "password123")

	_, _, errUnknown := svc.Login("nobody@example.com", "password123")
	_, _, errWrongPw := svc.Login("tenant@example.com", "wrong")

	if !errors.Is(errUnknown, domain.ErrInvalidCredentials) {
		t.Errorf("unknown email: got %v", errUnknown)
	}
	if !errors.Is(errWrongPw, domain.ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v", errWrongPw)
	}
	if errUnknown.Error() != errWrongPw.Error() {
		t.Error("failure responses must be indistinguishable")
	}
}

func TestEnsureAdmin(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewAuthService(repo, testJWTer())

	created, err := svc.EnsureAdmin("admin@123", "12345678")
	if err != nil || !created {
		t.Fatalf("first ensure: created=%v err=%v", created, err)
	}
	u, _ := repo.FindByEmail("admin@123")
	if u == nil || !u.IsAdmin {
		t.Fatal("bootstrap admin must have the admin flag")
	}

	created, err = svc.EnsureAdmin("admin@123", "12345678")
	if err != nil || created {
		t.Errorf("second ensure must be a no-op: created=%v err=%v", created, err)
	}

	// 留空配置直接跳过
	created, err = svc.EnsureAdmin("", "")
	if err != nil || created {
		t.Errorf("blank config must skip bootstrap: created=%v err=%v", created, err)
	}
}
