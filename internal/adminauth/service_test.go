package adminauth

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cafev2/storefront-backend/pkg/auth"
	"github.com/cafev2/storefront-backend/pkg/config"
	"github.com/cafev2/storefront-backend/pkg/db/models"
	pkgerrors "github.com/cafev2/storefront-backend/pkg/errors"
	"github.com/cafev2/storefront-backend/pkg/logger"
	"github.com/cafev2/storefront-backend/pkg/security"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: &bytes.Buffer{}})
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "storefront-test",
		ExpirationMinutes: 60,
	}
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8 * 1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

type stubAdmins struct {
	admin *models.AdminUser
}

func (s *stubAdmins) GetByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	if s.admin == nil || s.admin.Email != email {
		return nil, gorm.ErrRecordNotFound
	}
	copy := *s.admin
	return &copy, nil
}

func seedAdmin(t *testing.T, password string) *models.AdminUser {
	t.Helper()
	hash, err := security.HashPassword(password, testPasswordConfig())
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	return &models.AdminUser{
		ID:           uuid.New(),
		Email:        "admin@cafev2.in",
		PasswordHash: hash,
	}
}

func newTestService(t *testing.T, admins *stubAdmins) Service {
	t.Helper()
	svc, err := NewService(admins, testLogger(), testJWTConfig())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	t.Parallel()

	admin := seedAdmin(t, "correct horse battery staple")
	svc := newTestService(t, &stubAdmins{admin: admin})

	session, err := svc.Login(context.Background(), "admin@cafev2.in", "correct horse battery staple")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.Email != "admin@cafev2.in" {
		t.Fatalf("unexpected session email %q", session.Email)
	}

	claims, err := auth.ParseAdminToken(testJWTConfig(), session.Token)
	if err != nil {
		t.Fatalf("token must parse back: %v", err)
	}
	if claims.AdminID != admin.ID {
		t.Fatalf("token carries wrong admin id: %s", claims.AdminID)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	t.Parallel()

	admin := seedAdmin(t, "correct horse battery staple")
	svc := newTestService(t, &stubAdmins{admin: admin})

	_, err := svc.Login(context.Background(), "admin@cafev2.in", "guess")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoginUnknownEmailLooksIdentical(t *testing.T) {
	t.Parallel()

	admin := seedAdmin(t, "correct horse battery staple")
	svc := newTestService(t, &stubAdmins{admin: admin})

	_, knownErr := svc.Login(context.Background(), "admin@cafev2.in", "guess")
	_, unknownErr := svc.Login(context.Background(), "nobody@cafev2.in", "guess")

	if knownErr == nil || unknownErr == nil {
		t.Fatal("both attempts must fail")
	}
	if knownErr.Error() != unknownErr.Error() {
		t.Fatalf("errors must not distinguish accounts: %q vs %q", knownErr, unknownErr)
	}
}

func TestLoginRequiresCredentials(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubAdmins{})

	_, err := svc.Login(context.Background(), "", "")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error: %v", err)
	}
}
