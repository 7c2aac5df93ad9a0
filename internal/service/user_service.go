package service

import (
	"context"
	"fmt"

	"github.com/tigersos/tigersos-api/internal/domain"
	"github.com/tigersos/tigersos-api/internal/repository"
)

type UserService interface {
	GetProfile(ctx context.Context, id string) (*domain.UserWithContacts, error)
	UpdateProfile(ctx context.Context, id string, req *domain.UpdateUserRequest) (*domain.User, error)
	AddContact(ctx context.Context, req *domain.AddContactRequest) (*domain.EmergencyContact, error)
	UpdateContact(ctx context.Context, userID string, req *domain.UpdateContactRequest) (*domain.EmergencyContact, error)
}

type userService struct {
	userRepo    repository.UserRepository
	contactRepo repository.ContactRepository
}

func NewUserService(userRepo repository.UserRepository, contactRepo repository.ContactRepository) UserService {
	return &userService{
		userRepo:    userRepo,
		contactRepo: contactRepo,
	}
}

func (s *userService) GetProfile(ctx context.Context, id string) (*domain.UserWithContacts, error) {
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

func (s *userService) UpdateProfile(ctx context.Context, id string, req *domain.UpdateUserRequest) (*domain.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.UpdateProfile(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (s *userService) AddContact(ctx context.Context, req *domain.AddContactRequest) (*domain.EmergencyContact, error) {
	req.Normalize()
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

	taken, err := s.contactRepo.PhoneExists(ctx, req.UserID, req.Phone, "")
	if err != nil {
		return nil, fmt.Errorf("failed to check contact phone: %w", err)
	}
	if taken {
		return nil, domain.ErrContactPhoneTaken
	}

	count, err := s.contactRepo.CountByUser(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to count contacts: %w", err)
	}
	if count >= domain.MaxEmergencyContacts {
		return nil, domain.Invalid(fmt.Sprintf("maximum of %d emergency contacts reached", domain.MaxEmergencyContacts))
	}

	contact, err := s.contactRepo.Add(ctx, &domain.EmergencyContact{
		UserID:       req.UserID,
		Name:         req.Name,
		Phone:        req.Phone,
		IsTutor:      req.IsTutor,
		Relationship: req.Relationship,
		Message:      req.Message,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add contact: %w", err)
	}
	return contact, nil
}

func (s *userService) UpdateContact(ctx context.Context, userID string, req *domain.UpdateContactRequest) (*domain.EmergencyContact, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}

	existing, err := s.contactRepo.FindByID(ctx, userID, req.ContactID)
	if err != nil {
		return nil, fmt.Errorf("failed to find contact: %w", err)
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}

	taken, err := s.contactRepo.PhoneExists(ctx, userID, req.Phone, req.ContactID)
	if err != nil {
		return nil, fmt.Errorf("failed to check contact phone: %w", err)
	}
	if taken {
		return nil, domain.ErrContactPhoneTaken
	}

	contact, err := s.contactRepo.Update(ctx, userID, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}
	if contact == nil {
		return nil, domain.ErrNotFound
	}
	return contact, nil
}
