package service

import (
	"context"
	"fmt"
	"time"

	"github.com/tigersos/tigersos-api/internal/domain"
	"github.com/tigersos/tigersos-api/internal/repository"
	"github.com/tigersos/tigersos-api/pkg/events"
	"github.com/tigersos/tigersos-api/pkg/logger"
)

type AlertService interface {
	Create(ctx context.Context, req *domain.CreateAlertRequest) (*domain.Alert, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Alert, error)
	ListAll(ctx context.Context) ([]domain.AlertWithUser, error)
	UpdateStatus(ctx context.Context, alertID string, req *domain.UpdateAlertRequest) (*domain.Alert, error)
}

type alertService struct {
	alertRepo repository.AlertRepository
	userRepo  repository.UserRepository
	eventBus  events.Publisher
}

func NewAlertService(alertRepo repository.AlertRepository, userRepo repository.UserRepository, eventBus events.Publisher) AlertService {
	return &alertService{
		alertRepo: alertRepo,
		userRepo:  userRepo,
		eventBus:  eventBus,
	}
}

func (s *alertService) Create(ctx context.Context, req *domain.CreateAlertRequest) (*domain.Alert, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}

	alert, err := s.alertRepo.Create(ctx, &domain.Alert{
		UserID:   req.UserID,
		Location: req.Location,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create alert: %w", err)
	}

	if err := s.eventBus.Publish(ctx, events.AlertCreated, events.AlertCreatedEvent{
		AlertID:   alert.ID,
		UserID:    alert.UserID,
		Location:  alert.Location,
		CreatedAt: alert.Timestamp,
	}); err != nil {
		logger.WarnContext(ctx, "Failed to publish alert.created event", "error", err, "alert_id", alert.ID)
	}

	return alert, nil
}

func (s *alertService) ListByUser(ctx context.Context, userID string) ([]domain.Alert, error) {
	alerts, err := s.alertRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	if alerts == nil {
		alerts = []domain.Alert{}
	}
	return alerts, nil
}

func (s *alertService) ListAll(ctx context.Context) ([]domain.AlertWithUser, error) {
	alerts, err := s.alertRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	if alerts == nil {
		alerts = []domain.AlertWithUser{}
	}
	return alerts, nil
}

// UpdateStatus transitions an alert. Re-resolving an already-resolved alert
// overwrites the resolution stamps; the lifecycle is deliberately unguarded.
func (s *alertService) UpdateStatus(ctx context.Context, alertID string, req *domain.UpdateAlertRequest) (*domain.Alert, error) {
	existing, err := s.alertRepo.FindByID(ctx, alertID)
	if err != nil {
		return nil, fmt.Errorf("failed to find alert: %w", err)
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}

	statusStr := req.Status
	if statusStr == "" {
		statusStr = string(domain.AlertResolved)
	}
	status, ok := domain.ParseAlertStatus(statusStr)
	if !ok {
		return nil, domain.Invalid("invalid alert status: " + statusStr)
	}

	var (
		resolvedAt *time.Time
		resolvedBy string
	)
	if status == domain.AlertResolved {
		now := time.Now()
		resolvedAt = &now
		resolvedBy = req.ResolvedBy
	}

	alert, err := s.alertRepo.UpdateStatus(ctx, alertID, status, resolvedAt, resolvedBy)
	if err != nil {
		return nil, fmt.Errorf("failed to update alert: %w", err)
	}
	if alert == nil {
		return nil, domain.ErrNotFound
	}

	if err := s.eventBus.Publish(ctx, events.AlertUpdated, events.AlertUpdatedEvent{
		AlertID:    alert.ID,
		UserID:     alert.UserID,
		Status:     string(alert.Status),
		ResolvedBy: alert.ResolvedBy,
		ResolvedAt: alert.ResolvedAt,
	}); err != nil {
		logger.WarnContext(ctx, "Failed to publish alert.updated event", "error", err, "alert_id", alert.ID)
	}

	return alert, nil
}
