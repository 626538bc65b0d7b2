package service

import (
	"errors"
	"testing"
	"time"

	"course_market_backend/internal/config"
	"course_market_backend/internal/model"
	"course_market_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:     "test-secret",
			ExpireTime: time.Hour,
		},
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	var stored *model.User
	users := &mockUserStore{
		CreateFn: func(user *model.User) error {
			stored = user
			return nil
		},
	}
	svc := NewAuthService(users, testAuthConfig())

	err := svc.Register(&model.User{Username: "bob", Email: "bob@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if stored.Password == "secret1" {
		t.Error("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret1")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := NewAuthService(&mockUserStore{}, testAuthConfig())

	cases := []*model.User{
		{Username: "", Email: "a@b.c", Password: "secret1"},
		{Username: "bob", Email: "", Password: "secret1"},
		{Username: "bob", Email: "a@b.c", Password: "short"},
	}
	for _, u := range cases {
		if err := svc.Register(u); !errors.Is(err, util.ErrValidation) {
			t.Errorf("user %+v: err = %v, want ErrValidation", u, err)
		}
	}
}

func TestLoginRoundTrip(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.DefaultCost)
	users := &mockUserStore{
		FindByUsernameFn: func(username string) (*model.User, error) {
			u := &model.User{Username: "bob", Password: string(hash), FirstName: "Bob", LastName: "Yu"}
			u.ID = 7
			return u, nil
		},
	}
	svc := NewAuthService(users, testAuthConfig())

	token, user, err := svc.Login("bob", "secret1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.Username != "bob" {
		t.Errorf("username = %q, want bob", user.Username)
	}

	claims, err := util.ParseJWT(token, "test-secret")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.UserID != 7 || claims.Username != "bob" || claims.FirstName != "Bob" || claims.LastName != "Yu" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.DefaultCost)
	users := &mockUserStore{
		FindByUsernameFn: func(username string) (*model.User, error) {
			return &model.User{Username: "bob", Password: string(hash)}, nil
		},
	}
	svc := NewAuthService(users, testAuthConfig())

	if _, _, err := svc.Login("bob", "wrong"); !errors.Is(err, util.ErrInvalidCredential) {
		t.Fatalf("err = %v, want ErrInvalidCredential", err)
	}
}

// 未知用户和错误密码返回同一个错误，不暴露用户是否存在。
func TestLoginUnknownUser(t *testing.T) {
	users := &mockUserStore{
		FindByUsernameFn: func(username string) (*model.User, error) { return nil, util.ErrUserNotFound },
	}
	svc := NewAuthService(users, testAuthConfig())

	if _, _, err := svc.Login("ghost", "whatever"); !errors.Is(err, util.ErrInvalidCredential) {
		t.Fatalf("err = %v, want ErrInvalidCredential", err)
	}
}
