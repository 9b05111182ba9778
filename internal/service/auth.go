package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"gorm.io/gorm"

	"github.com/Specialized-Platform-Development/spd-mobile-app/internal/hash"
	"github.com/Specialized-Platform-Development/spd-mobile-app/internal/logging"
	"github.com/Specialized-Platform-Development/spd-mobile-app/internal/models"
	"github.com/Specialized-Platform-Development/spd-mobile-app/internal/repo"
	"github.com/Specialized-Platform-Development/spd-mobile-app/internal/tokens"
)

var (
	ErrValidation         = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserAlreadyExists  = repo.ErrUserAlreadyExists
)

// dummyHash is compared against when the email is unknown so that login
// latency does not reveal whether an account exists.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
	TokenTTL  time.Duration
}

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// validPassword is the one place the password policy lives: at least eight
// characters, at least one letter and one digit.
func validPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var letter, digit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return letter && digit
}

func validEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && strings.Contains(email[at:], ".")
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || !validEmail(email) || !validPassword(password) {
		l.Warn("register_failed", "status", 400, "reason", "validation")
		return nil, ErrValidation
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_failed", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := &models.User{
		Email:        email,
		Name:         name,
		PasswordHash: pwHash,
	}
	if err := s.Repo.CreateUserIfNotExists(ctx, user); err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExists) {
			l.Warn("register_failed", "status", 409, "reason", "email already registered")
			return nil, ErrUserAlreadyExists
		}
		l.Error("register_failed", "status", 500, "error", err)
		return nil, err
	}

	l.Info("register_successful", "user_id", user.ID)
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			hash.CheckPassword(dummyHash, password)
			l.Warn("login_failed", "status", 401, "reason", "invalid credentials")
			return nil, ErrInvalidCredentials
		}
		l.Error("login_failed", "status", 500, "error", err)
		return nil, err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "status", 401, "reason", "invalid credentials")
		return nil, ErrInvalidCredentials
	}

	token, exp, err := tokens.Mint(user, s.JWTSecret, s.TokenTTL)
	if err != nil {
		l.Error("login_failed", "status", 500, "error", err)
		return nil, err
	}

	l.Info("login_successful", "user_id", user.ID)
	return &LoginResult{Token: token, ExpiresAt: exp}, nil
}

// Verify resolves a bearer token to an identity. It is a pure function of the
// token and the signing secret: no database access, no side effects.
func (s *AuthService) Verify(ctx context.Context, token string) (*tokens.Identity, error) {
	return tokens.ParseIdentity(token, s.JWTSecret)
}

func (s *AuthService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.Repo.GetUserByID(ctx, id)
}
