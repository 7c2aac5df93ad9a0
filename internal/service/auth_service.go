package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tigersos/tigersos-api/internal/domain"
	"github.com/tigersos/tigersos-api/internal/mailer"
	"github.com/tigersos/tigersos-api/internal/recovery"
	"github.com/tigersos/tigersos-api/internal/repository"
	"github.com/tigersos/tigersos-api/pkg/auth"
	"github.com/tigersos/tigersos-api/pkg/config"
	"github.com/tigersos/tigersos-api/pkg/events"
	"github.com/tigersos/tigersos-api/pkg/logger"
)

// bcryptCost matches the salt rounds used by every credential already in
// the database.
const bcryptCost = 10

type AuthService interface {
	Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, req *domain.ResetPasswordConfirmRequest) error
}

type authService struct {
	userRepo repository.UserRepository
	registry *recovery.Registry
	mailer   mailer.Service
	eventBus events.Publisher
	config   *config.Config
}

func NewAuthService(
	userRepo repository.UserRepository,
	registry *recovery.Registry,
	mailer mailer.Service,
	eventBus events.Publisher,
	config *config.Config,
) AuthService {
	return &authService{
		userRepo: userRepo,
		registry: registry,
		mailer:   mailer,
		eventBus: eventBus,
		config:   config,
	}
}

func (s *authService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &domain.User{
		Role:         domain.RoleUser,
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		FullName:     req.FullName,
		Phone:        req.Phone,
		Location:     req.Location,
		BloodType:    req.BloodType,
		Allergies:    req.Allergies,
		Gender:       req.Gender,
	}
	if req.BirthDate != nil {
		u.BirthDate = *req.BirthDate
	}

	user, err := s.userRepo.Create(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.eventBus.Publish(ctx, events.UserRegistered, events.UserRegisteredEvent{
		UserID:    user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		CreatedAt: user.CreatedAt,
	}); err != nil {
		logger.WarnContext(ctx, "Failed to publish user.registered event", "error", err, "user_id", user.ID)
	}

	if err := s.mailer.SendWelcome(user.Email, user.FullName); err != nil {
		logger.WarnContext(ctx, "Failed to send welcome email", "error", err, "user_id", user.ID)
		// Registration already succeeded
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := auth.NewAccessToken(user.ID, user.Role, s.config.Auth.JWTSecret, s.config.Auth.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create access token: %w", err)
	}

	return &domain.LoginResponse{
		Token:     token,
		ExpiresIn: int64(s.config.Auth.AccessTokenTTL.Seconds()),
		User:      user.ToUserInfo(),
	}, nil
}

// RequestPasswordReset starts the recovery flow. The outcome visible to the
// caller is identical whether or not the email belongs to an account; the
// code only travels through the mailer.
func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil
	}

	code, expires := s.registry.Request(email)

	logger.InfoContext(ctx, "Recovery code issued", "user_id", user.ID, "expires_at", expires.Format(time.RFC3339))

	if err := s.mailer.SendRecoveryCode(user.Email, user.FullName, code); err != nil {
		logger.ErrorContext(ctx, "Failed to send recovery email", "error", err, "user_id", user.ID)
		// Keep the response uniform; the user can re-request
	}

	return nil
}

func (s *authService) ConfirmPasswordReset(ctx context.Context, req *domain.ResetPasswordConfirmRequest) error {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return err
	}

	if err := s.registry.Verify(req.Email, req.Code); err != nil {
		return err
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return domain.ErrNotFound
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, string(passwordHash)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.registry.Delete(req.Email)
	return nil
}
