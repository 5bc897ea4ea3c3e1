package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/planejacasar/wedding-backend/internal/domain"
	"github.com/planejacasar/wedding-backend/internal/platform/mailer"
	"github.com/planejacasar/wedding-backend/internal/repo/postgres"
	"github.com/planejacasar/wedding-backend/pkg/auth"
	"github.com/planejacasar/wedding-backend/pkg/config"
	"github.com/planejacasar/wedding-backend/pkg/events"
	"github.com/planejacasar/wedding-backend/pkg/logger"
)

type AuthService interface {
	Register(ctx context.Context, req *domain.RegisterRequest) (*domain.LoginResponse, error)
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error)
	Me(ctx context.Context, userID string) (*domain.User, error)
	ForgotPassword(ctx context.Context, req *domain.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req *domain.ResetPasswordRequest) error
}

type authService struct {
	userRepo  postgres.UserRepository
	resetRepo postgres.PasswordResetRepository
	mail      mailer.Service
	eventBus  events.Publisher
	cfg       *config.Config
}

func NewAuthService(
	userRepo postgres.UserRepository,
	resetRepo postgres.PasswordResetRepository,
	mail mailer.Service,
	eventBus events.Publisher,
	cfg *config.Config,
) AuthService {
	return &authService{
		userRepo:  userRepo,
		resetRepo: resetRepo,
		mail:      mail,
		eventBus:  eventBus,
		cfg:       cfg,
	}
}

func (s *authService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.LoginResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := argon2id.CreateHash(req.Password, argon2id.DefaultParams)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(ctx, req.Name, req.Email, hash, req.Phone)
	if err != nil {
		return nil, err
	}

	token, err := auth.NewAccessToken(user.ID, user.Email, s.cfg.Auth.JWTSecret, s.cfg.Auth.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	evt := events.UserRegisteredEvent{
		UserID:    user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
	if err := s.eventBus.Publish(ctx, events.UserRegistered, evt); err != nil {
		logger.ErrorContext(ctx, "failed to publish user registered", "error", err, "user_id", user.ID)
	}

	return &domain.LoginResponse{Token: token, User: user}, nil
}

func (s *authService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}

	match, err := argon2id.ComparePasswordAndHash(req.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !match {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := auth.NewAccessToken(user.ID, user.Email, s.cfg.Auth.JWTSecret, s.cfg.Auth.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &domain.LoginResponse{Token: token, User: user}, nil
}

func (s *authService) Me(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// ForgotPassword always reports success to the caller; whether an account
// exists for the email must not be observable.
func (s *authService) ForgotPassword(ctx context.Context, req *domain.ForgotPasswordRequest) error {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return err
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if user == nil {
		logger.InfoContext(ctx, "password reset requested for unknown email")
		return nil
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	token := hex.EncodeToString(raw)
	tokenHash := fmt.Sprintf("%x", sha256.Sum256([]byte(token)))

	expiresAt := time.Now().Add(s.cfg.Auth.ResetTokenTTL)
	if err := s.resetRepo.Create(ctx, user.ID, tokenHash, expiresAt); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.cfg.Email.FrontendURL, token)
	if err := s.mail.SendPasswordResetEmail(user.Email, user.Name, resetURL, token); err != nil {
		logger.ErrorContext(ctx, "failed to send reset email", "error", err, "user_id", user.ID)
	}

	return nil
}

// ResetPassword is not wired up yet; the frontend flow ends at the email.
// TODO: look up the emailed token hash in password_resets and rehash the
// password once the frontend screen exists.
func (s *authService) ResetPassword(ctx context.Context, req *domain.ResetPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return domain.ErrNotImplemented
}
