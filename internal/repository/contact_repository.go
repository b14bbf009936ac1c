package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/prperemyshlev/contacts-api/internal/domain"
	"github.com/prperemyshlev/contacts-api/pkg/database"
)

const contactColumns = "id, user_id, first_name, last_name, email, phone, birthday, address, created_at, updated_at"

// contactRepository implements ContactRepository backed by PostgreSQL.
// Every query is scoped to the owning user; a contact owned by someone else
// looks exactly like a missing one.
type contactRepository struct {
	db *database.Postgres
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *database.Postgres) ContactRepository {
	return &contactRepository{db: db}
}

// Create inserts a new contact for its owner. Email and phone are unique
// inside the owner's address book.
func (r *contactRepository) Create(ctx context.Context, contact *domain.Contact) error {
	query := `
		INSERT INTO contacts (id, user_id, first_name, last_name, email, phone, birthday, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	if contact.ID == "" {
		contact.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = now
	}
	if contact.UpdatedAt.IsZero() {
		contact.UpdatedAt = now
	}

	_, err := r.db.DB.ExecContext(ctx, query,
		contact.ID,
		contact.UserID,
		contact.FirstName,
		contact.LastName,
		contact.Email,
		contact.Phone,
		contact.Birthday,
		contact.Address,
		contact.CreatedAt,
		contact.UpdatedAt,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return fmt.Errorf("contact with this email or phone already exists: %w", ErrDuplicateContact)
			}
		}
		return fmt.Errorf("failed to create contact: %w", errors.Join(ErrStoreUnavailable, err))
	}

	return nil
}

// GetByID retrieves a contact by id within the owner's address book.
func (r *contactRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.Contact, error) {
	query := fmt.Sprintf(`SELECT %s FROM contacts WHERE id = $1 AND user_id = $2`, contactColumns)

	contact, err := scanContact(r.db.DB.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("contact with id %s not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get contact: %w", errors.Join(ErrStoreUnavailable, err))
	}

	return contact, nil
}

// List returns all contacts of the owner in insertion order.
func (r *contactRepository) List(ctx context.Context, ownerID string) ([]*domain.Contact, error) {
	query := fmt.Sprintf(`SELECT %s FROM contacts WHERE user_id = $1 ORDER BY created_at, id`, contactColumns)

	rows, err := r.db.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", errors.Join(ErrStoreUnavailable, err))
	}
	defer rows.Close()

	var contacts []*domain.Contact
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", errors.Join(ErrStoreUnavailable, err))
		}
		contacts = append(contacts, contact)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contacts: %w", errors.Join(ErrStoreUnavailable, err))
	}

	return contacts, nil
}

// Update rewrites the mutable fields of a contact owned by ownerID.
func (r *contactRepository) Update(ctx context.Context, ownerID string, contact *domain.Contact) error {
	query := fmt.Sprintf(`
		UPDATE contacts
		SET first_name = $3, last_name = $4, email = $5, phone = $6, birthday = $7, address = $8, updated_at = $9
		WHERE id = $1 AND user_id = $2
		RETURNING %s
	`, contactColumns)

	updated, err := scanContact(r.db.DB.QueryRowContext(ctx, query,
		contact.ID,
		ownerID,
		contact.FirstName,
		contact.LastName,
		contact.Email,
		contact.Phone,
		contact.Birthday,
		contact.Address,
		time.Now().UTC(),
	))

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("contact with id %s not found: %w", contact.ID, ErrNotFound)
		}
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return fmt.Errorf("contact with this email or phone already exists: %w", ErrDuplicateContact)
			}
		}
		return fmt.Errorf("failed to update contact: %w", errors.Join(ErrStoreUnavailable, err))
	}

	*contact = *updated
	return nil
}

// Delete removes a contact owned by ownerID.
func (r *contactRepository) Delete(ctx context.Context, ownerID, id string) error {
	query := `DELETE FROM contacts WHERE id = $1 AND user_id = $2`

	result, err := r.db.DB.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", errors.Join(ErrStoreUnavailable, err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", errors.Join(ErrStoreUnavailable, err))
	}

	if rowsAffected == 0 {
		return fmt.Errorf("contact with id %s not found: %w", id, ErrNotFound)
	}

	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanContact(row scanner) (*domain.Contact, error) {
	contact := &domain.Contact{}

	err := row.Scan(
		&contact.ID,
		&contact.UserID,
		&contact.FirstName,
		&contact.LastName,
		&contact.Email,
		&contact.Phone,
		&contact.Birthday,
		&contact.Address,
		&contact.CreatedAt,
		&contact.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return contact, nil
}
