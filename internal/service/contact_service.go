package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prperemyshlev/contacts-api/internal/domain"
	"github.com/prperemyshlev/contacts-api/internal/dto"
	"github.com/prperemyshlev/contacts-api/internal/repository"
	"github.com/prperemyshlev/contacts-api/internal/utils"
)

// contactService implements ContactService interface
type contactService struct {
	contactRepo repository.ContactRepository
}

// NewContactService creates a new contact service
func NewContactService(contactRepo repository.ContactRepository) ContactService {
	return &contactService{contactRepo: contactRepo}
}

// Create adds a contact to the owner's address book
func (s *contactService) Create(ctx context.Context, ownerID string, req *dto.ContactRequest) (*domain.Contact, error) {
	contact, err := contactFromRequest(ownerID, req)
	if err != nil {
		return nil, err
	}

	err = s.contactRepo.Create(ctx, contact)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateContact) {
			return nil, ErrContactExists
		}
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	return contact, nil
}

// Get retrieves one of the owner's contacts
func (s *contactService) Get(ctx context.Context, ownerID, id string) (*domain.Contact, error) {
	// Reject malformed ids before they reach the uuid column.
	if uuid.Validate(id) != nil {
		return nil, ErrContactNotFound
	}

	contact, err := s.contactRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}

	return contact, nil
}

// List returns all of the owner's contacts
func (s *contactService) List(ctx context.Context, ownerID string) ([]*domain.Contact, error) {
	contacts, err := s.contactRepo.List(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	return contacts, nil
}

// Update replaces the fields of one of the owner's contacts
func (s *contactService) Update(ctx context.Context, ownerID, id string, req *dto.ContactRequest) (*domain.Contact, error) {
	if uuid.Validate(id) != nil {
		return nil, ErrContactNotFound
	}

	contact, err := contactFromRequest(ownerID, req)
	if err != nil {
		return nil, err
	}
	contact.ID = id

	err = s.contactRepo.Update(ctx, ownerID, contact)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrContactNotFound
		}
		if errors.Is(err, repository.ErrDuplicateContact) {
			return nil, ErrContactExists
		}
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}

	return contact, nil
}

// Delete removes one of the owner's contacts
func (s *contactService) Delete(ctx context.Context, ownerID, id string) error {
	if uuid.Validate(id) != nil {
		return ErrContactNotFound
	}

	err := s.contactRepo.Delete(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrContactNotFound
		}
		return fmt.Errorf("failed to delete contact: %w", err)
	}

	return nil
}

// UpcomingBirthdays returns the owner's contacts whose birthday falls within
// the next days calendar days, today included.
func (s *contactService) UpcomingBirthdays(ctx context.Context, ownerID string, days int) ([]*domain.Contact, error) {
	contacts, err := s.contactRepo.List(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	today := time.Now().UTC()
	upcoming := make([]*domain.Contact, 0)
	for _, contact := range contacts {
		if contact.HasBirthdayWithin(today, days) {
			upcoming = append(upcoming, contact)
		}
	}

	return upcoming, nil
}

func contactFromRequest(ownerID string, req *dto.ContactRequest) (*domain.Contact, error) {
	// Binding already enforced the format; a parse failure here means the
	// request skipped validation.
	birthday, err := time.Parse("2006-01-02", req.Birthday)
	if err != nil {
		return nil, fmt.Errorf("invalid birthday %q: %w", req.Birthday, err)
	}

	return &domain.Contact{
		UserID:    ownerID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     utils.SanitizeEmail(req.Email),
		Phone:     req.Phone,
		Birthday:  birthday,
		Address:   req.Address,
	}, nil
}
