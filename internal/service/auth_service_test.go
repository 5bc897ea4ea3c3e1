package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/planejacasar/wedding-backend/internal/domain"
	"github.com/planejacasar/wedding-backend/pkg/auth"
	"github.com/planejacasar/wedding-backend/pkg/config"
)

type memResetRepo struct {
	tokens map[string]string // token hash -> user id
}

func newMemResetRepo() *memResetRepo {
	return &memResetRepo{tokens: map[string]string{}}
}

func (r *memResetRepo) Create(_ context.Context, userID, tokenHash string, _ time.Time) error {
	r.tokens[tokenHash] = userID
	return nil
}

func (r *memResetRepo) DeleteExpired(_ context.Context) (int64, error) {
	return 0, nil
}

type captureMailer struct {
	sent     int
	toEmail  string
	resetURL string
}

func (m *captureMailer) SendPasswordResetEmail(toEmail, _, resetURL, _ string) error {
	m.sent++
	m.toEmail = toEmail
	m.resetURL = resetURL
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:      "test-secret",
			AccessTokenTTL: time.Hour,
			ResetTokenTTL:  2 * time.Hour,
		},
		Email: config.EmailConfig{
			FrontendURL: "http://localhost:5173",
		},
	}
}

func newAuthFixture() (*memUserRepo, *memResetRepo, *captureMailer, AuthService) {
	userRepo := newMemUserRepo()
	resetRepo := newMemResetRepo()
	mail := &captureMailer{}
	svc := NewAuthService(userRepo, resetRepo, mail, &nopPublisher{}, testConfig())
	return userRepo, resetRepo, mail, svc
}

func TestRegisterAndLogin(t *testing.T) {
	_, _, _, svc := newAuthFixture()

	res, err := svc.Register(context.Background(), &domain.RegisterRequest{
		Name:            "Ana",
		Email:           "  Ana@Example.com ",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if res.User.Email != "ana@example.com" {
		t.Errorf("email = %q, want normalized lowercase", res.User.Email)
	}
	if res.User.PasswordHash == "secret123" || res.User.PasswordHash == "" {
		t.Error("password stored without hashing")
	}

	claims, err := auth.Parse(res.Token, "test-secret")
	if err != nil {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims.UserID != res.User.ID {
		t.Errorf("token user id = %q, want %q", claims.UserID, res.User.ID)
	}

	login, err := svc.Login(context.Background(), &domain.LoginRequest{
		Email:    "ana@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if login.User.ID != res.User.ID {
		t.Errorf("login user = %q, want %q", login.User.ID, res.User.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	_, _, _, svc := newAuthFixture()

	req := domain.RegisterRequest{
		Name:            "Ana",
		Email:           "ana@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	}
	if _, err := svc.Register(context.Background(), &req); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Register(context.Background(), &req); !errors.Is(err, domain.ErrEmailExists) {
		t.Fatalf("err = %v, want ErrEmailExists", err)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	_, _, _, svc := newAuthFixture()

	if _, err := svc.Register(context.Background(), &domain.RegisterRequest{
		Name:            "Ana",
		Email:           "ana@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Wrong password and unknown email must be indistinguishable.
	_, err := svc.Login(context.Background(), &domain.LoginRequest{Email: "ana@example.com", Password: "wrong1"})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v, want ErrInvalidCredentials", err)
	}
	_, err = svc.Login(context.Background(), &domain.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("unknown email err = %v, want ErrInvalidCredentials", err)
	}
}

func TestForgotPassword(t *testing.T) {
	userRepo, resetRepo, mail, svc := newAuthFixture()
	userRepo.add("user-1", "Ana", "ana@example.com")

	if err := svc.ForgotPassword(context.Background(), &domain.ForgotPasswordRequest{Email: "ana@example.com"}); err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}
	if mail.sent != 1 || mail.toEmail != "ana@example.com" {
		t.Fatalf("mail = %+v, want one email to ana@example.com", mail)
	}
	if !strings.Contains(mail.resetURL, "http://localhost:5173/reset-password?token=") {
		t.Errorf("resetURL = %q, want a frontend reset link", mail.resetURL)
	}
	if len(resetRepo.tokens) != 1 {
		t.Errorf("stored %d tokens, want 1", len(resetRepo.tokens))
	}
	// The raw token must not be stored verbatim.
	rawToken := strings.TrimPrefix(mail.resetURL, "http://localhost:5173/reset-password?token=")
	if _, ok := resetRepo.tokens[rawToken]; ok {
		t.Error("raw token stored instead of its hash")
	}
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	_, resetRepo, mail, svc := newAuthFixture()

	if err := svc.ForgotPassword(context.Background(), &domain.ForgotPasswordRequest{Email: "nobody@example.com"}); err != nil {
		t.Fatalf("ForgotPassword: %v (must not leak account existence)", err)
	}
	if mail.sent != 0 || len(resetRepo.tokens) != 0 {
		t.Error("unknown email produced a token or an email")
	}
}

func TestResetPasswordNotImplemented(t *testing.T) {
	_, _, _, svc := newAuthFixture()

	err := svc.ResetPassword(context.Background(), &domain.ResetPasswordRequest{
		Token:       "abc",
		NewPassword: "secret123",
	})
	if !errors.Is(err, domain.ErrNotImplemented) {
		t.Fatalf("err = %v, want ErrNotImplemented", err)
	}
}
