package service

import (
	"course_market_backend/internal/config"
	"course_market_backend/internal/model"
	"course_market_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	Users UserStore
	Cfg   *config.Config
}

func NewAuthService(users UserStore, cfg *config.Config) *AuthService {
	return &AuthService{
		Users: users,
		Cfg:   cfg,
	}
}

func (s *AuthService) Register(user *model.User) error {
	if user.Username == "" || user.Email == "" || len(user.Password) < 6 {
		return util.ErrValidation
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashedPassword)
	return s.Users.Create(user)
}

// Login 校验凭证并签发携带 username/firstName/lastName 的 JWT。
func (s *AuthService) Login(username, password string) (string, *model.User, error) {
	user, err := s.Users.FindByUsername(username)
	if err != nil {
		return "", nil, util.ErrInvalidCredential
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, util.ErrInvalidCredential
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	return token, user, err
}

// Refresh 用仍有效的令牌换取延后过期的新令牌，无吊销列表。
func (s *AuthService) Refresh(claims *util.Claims) (string, error) {
	return util.RefreshJWT(claims, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
}
