package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tigersos/tigersos-api/internal/domain"
	"github.com/tigersos/tigersos-api/internal/repository"
	"github.com/tigersos/tigersos-api/pkg/events"
	"github.com/tigersos/tigersos-api/pkg/logger"
)

type AdminService interface {
	Dashboard(ctx context.Context) (*domain.DashboardStats, error)
	ListUsers(ctx context.Context) ([]domain.AdminUserSummary, error)
	GetUser(ctx context.Context, id string) (*domain.UserWithContacts, error)
	PromoteToAdmin(ctx context.Context, id string) (*domain.User, error)
	CreateAdmin(ctx context.Context, req *domain.CreateAdminRequest) (*domain.User, error)
	GetSettings(ctx context.Context) (domain.Settings, error)
	UpdateSettings(ctx context.Context, s domain.Settings) error
}

type adminService struct {
	userRepo     repository.UserRepository
	contactRepo  repository.ContactRepository
	alertRepo    repository.AlertRepository
	settingsRepo repository.SettingsRepository
	eventBus     events.Publisher
}

func NewAdminService(
	userRepo repository.UserRepository,
	contactRepo repository.ContactRepository,
	alertRepo repository.AlertRepository,
	settingsRepo repository.SettingsRepository,
	eventBus events.Publisher,
) AdminService {
	return &adminService{
		userRepo:     userRepo,
		contactRepo:  contactRepo,
		alertRepo:    alertRepo,
		settingsRepo: settingsRepo,
		eventBus:     eventBus,
	}
}

func (s *adminService) Dashboard(ctx context.Context) (*domain.DashboardStats, error) {
	totalUsers, err := s.userRepo.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	withContacts, err := s.userRepo.CountUsersWithContacts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users with contacts: %w", err)
	}

	activeAlerts, err := s.alertRepo.CountActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count active alerts: %w", err)
	}

	return &domain.DashboardStats{
		TotalUsers:           totalUsers,
		UsersWithContacts:    withContacts,
		UsersWithoutContacts: totalUsers - withContacts,
		ActiveAlerts:         activeAlerts,
	}, nil
}

func (s *adminService) ListUsers(ctx context.Context) ([]domain.AdminUserSummary, error) {
	users, err := s.userRepo.ListSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if users == nil {
		users = []domain.AdminUserSummary{}
	}
	return users, nil
}

func (s *adminService) GetUser(ctx context.Context, id string) (*domain.UserWithContacts, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}

	contacts, err := s.contactRepo.ListByUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	if contacts == nil {
		contacts = []domain.EmergencyContact{}
	}

	return &domain.UserWithContacts{User: *user, EmergencyContacts: contacts}, nil
}

func (s *adminService) PromoteToAdmin(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}

	if err := s.userRepo.UpdateRole(ctx, id, domain.RoleAdmin); err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	user.Role = domain.RoleAdmin

	if err := s.eventBus.Publish(ctx, events.UserPromoted, events.UserPromotedEvent{
		UserID:     user.ID,
		PromotedAt: time.Now(),
	}); err != nil {
		logger.WarnContext(ctx, "Failed to publish user.promoted event", "error", err, "user_id", user.ID)
	}

	return user, nil
}

func (s *adminService) CreateAdmin(ctx context.Context, req *domain.CreateAdminRequest) (*domain.User, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	existing, err = s.userRepo.FindByPhone(ctx, req.Phone)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing phone: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrPhoneTaken
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(ctx, &domain.User{
		Role:         domain.RoleAdmin,
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		FullName:     req.FullName,
		Phone:        req.Phone,
		Location:     domain.DefaultLocation,
		Allergies:    []string{},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	return user, nil
}

func (s *adminService) GetSettings(ctx context.Context) (domain.Settings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

func (s *adminService) UpdateSettings(ctx context.Context, settings domain.Settings) error {
	if settings.MaxEmergencyContacts <= 0 {
		return domain.Invalid("max emergency contacts must be positive")
	}
	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	return nil
}
