package adminauth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/cafev2/storefront-backend/pkg/auth"
	"github.com/cafev2/storefront-backend/pkg/config"
	"github.com/cafev2/storefront-backend/pkg/db/models"
	pkgerrors "github.com/cafev2/storefront-backend/pkg/errors"
	"github.com/cafev2/storefront-backend/pkg/logger"
	"github.com/cafev2/storefront-backend/pkg/security"
)

// Session is a successful login result.
type Session struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

type adminLoader interface {
	GetByEmail(ctx context.Context, email string) (*models.AdminUser, error)
}

// Service authenticates admins.
type Service interface {
	Login(ctx context.Context, email, password string) (Session, error)
}

type service struct {
	repo   adminLoader
	logg   *logger.Logger
	jwtCfg config.JWTConfig
	clock  func() time.Time
}

// NewService builds an admin auth service.
func NewService(repo adminLoader, logg *logger.Logger, jwtCfg config.JWTConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("admin repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:   repo,
		logg:   logg,
		jwtCfg: jwtCfg,
		clock:  time.Now,
	}, nil
}

// Login verifies credentials and mints a session token. Unknown emails
// and wrong passwords return the same error so the login form leaks
// nothing about which admin accounts exist.
func (s *service) Login(ctx context.Context, email, password string) (Session, error) {
	if email == "" || password == "" {
		return Session{}, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	admin, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Session{}, invalidCredentials()
		}
		return Session{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load admin user")
	}

	ok, err := security.VerifyPassword(password, admin.PasswordHash)
	if err != nil {
		s.logg.Error(ctx, "verifying admin password failed", err)
		return Session{}, invalidCredentials()
	}
	if !ok {
		return Session{}, invalidCredentials()
	}

	now := s.clock()
	token, err := auth.MintAdminToken(s.jwtCfg, now, auth.AdminTokenPayload{
		AdminID: admin.ID,
		Email:   admin.Email,
	})
	if err != nil {
		return Session{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint session token")
	}

	return Session{
		Token:     token,
		Email:     admin.Email,
		ExpiresAt: now.Add(time.Duration(s.jwtCfg.ExpirationMinutes) * time.Minute),
	}, nil
}

func invalidCredentials() error {
	return pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")
}
