package service

import (
	"errors"
	"regexp"
	"strings"

	"Relief_Hub/internal/model"
	"Relief_Hub/internal/pkg"
	"Relief_Hub/internal/repository/mysql"
	"Relief_Hub/internal/repository/redis"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrMissingFields      = errors.New("all fields are required")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

var emailRe = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

type AuthService struct {
	repo     *mysql.UserRepository
	rSession *redis.SessionRepository
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{
		repo:     &mysql.UserRepository{DB: db},
		rSession: &redis.SessionRepository{},
	}
}

// Register 注册：邮箱小写去空格后判重，只存 bcrypt 摘要
func (s *AuthService) Register(name, email, phone, password string) (uint64, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	phone = strings.TrimSpace(phone)

	if name == "" || email == "" || phone == "" || password == "" {
		return 0, ErrMissingFields
	}
	if len(password) < 6 {
		return 0, ErrWeakPassword
	}
	if !emailRe.MatchString(email) {
		return 0, ErrInvalidEmail
	}

	if _, err := s.repo.FindByEmail(email); err == nil {
		return 0, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(user); err != nil {
		// 唯一索引兜底并发注册
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, ErrEmailTaken
		}
		return 0, err
	}
	return user.ID, nil
}

// Login 校验口令后签发 token 对，access 写入 redis 作为唯一在线会话
func (s *AuthService) Login(email, password string) (*model.User, *pkg.Pair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, nil, ErrMissingFields
	}

	user, err := s.repo.FindByEmail(email)
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, ErrInvalidCredentials
	}

	token, err := pkg.GeneratePair(user.ID)
	if err != nil {
		return nil, nil, err
	}
	if err = s.rSession.AddUserToken(user.ID, token.AccessToken); err != nil {
		return nil, nil, err
	}
	return user, token, nil
}

func (s *AuthService) Logout(usrID uint64) error {
	return s.rSession.DeleteUserToken(usrID)
}

// Refresh 换发 token 对，同时覆盖 redis 里的在线会话
func (s *AuthService) Refresh(refreshToken string) (*pkg.Pair, error) {
	claims, err := pkg.ParseRefresh(refreshToken)
	if err != nil {
		return nil, err
	}
	token, err := pkg.GeneratePair(claims.UserID)
	if err != nil {
		return nil, err
	}
	if err = s.rSession.AddUserToken(claims.UserID, token.AccessToken); err != nil {
		return nil, err
	}
	return token, nil
}
