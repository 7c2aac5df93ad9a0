package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tigersos/tigersos-api/internal/domain"
)

type ContactRepository interface {
	Add(ctx context.Context, c *domain.EmergencyContact) (*domain.EmergencyContact, error)
	Update(ctx context.Context, userID string, req *domain.UpdateContactRequest) (*domain.EmergencyContact, error)
	FindByID(ctx context.Context, userID, contactID string) (*domain.EmergencyContact, error)
	ListByUser(ctx context.Context, userID string) ([]domain.EmergencyContact, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	PhoneExists(ctx context.Context, userID, phone, excludeContactID string) (bool, error)
}

type contactRepository struct {
	pool *pgxpool.Pool
}

func NewContactRepository(pool *pgxpool.Pool) ContactRepository {
	return &contactRepository{pool: pool}
}

const contactCols = `id, user_id, name, phone, is_tutor, relationship, custom_message, created_at`

func scanContact(row pgx.Row) (*domain.EmergencyContact, error) {
	var c domain.EmergencyContact
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Phone, &c.IsTutor, &c.Relationship, &c.Message, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *contactRepository) Add(ctx context.Context, c *domain.EmergencyContact) (*domain.EmergencyContact, error) {
	const q = `
		INSERT INTO emergency_contacts (id, user_id, name, phone, is_tutor, relationship, custom_message)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + contactCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanContact(r.pool.QueryRow(ctx, q,
		uuid.NewString(), c.UserID, c.Name, c.Phone, c.IsTutor, c.Relationship, c.Message,
	))
}

func (r *contactRepository) Update(ctx context.Context, userID string, req *domain.UpdateContactRequest) (*domain.EmergencyContact, error) {
	const q = `
		UPDATE emergency_contacts
		SET name = $3, phone = $4, is_tutor = $5, relationship = $6, custom_message = $7
		WHERE id = $2 AND user_id = $1
		RETURNING ` + contactCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	c, err := scanContact(r.pool.QueryRow(ctx, q,
		userID, req.ContactID, req.Name, req.Phone, req.IsTutor, req.Relationship, req.Message,
	))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return c, err
}

func (r *contactRepository) FindByID(ctx context.Context, userID, contactID string) (*domain.EmergencyContact, error) {
	const q = `SELECT ` + contactCols + ` FROM emergency_contacts WHERE id = $2 AND user_id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	c, err := scanContact(r.pool.QueryRow(ctx, q, userID, contactID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return c, err
}

func (r *contactRepository) ListByUser(ctx context.Context, userID string) ([]domain.EmergencyContact, error) {
	const q = `SELECT ` + contactCols + ` FROM emergency_contacts WHERE user_id = $1 ORDER BY created_at`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []domain.EmergencyContact
	for rows.Next() {
		var c domain.EmergencyContact
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Phone, &c.IsTutor, &c.Relationship, &c.Message, &c.CreatedAt); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}

	return contacts, rows.Err()
}

func (r *contactRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	const q = `SELECT count(*) FROM emergency_contacts WHERE user_id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var n int
	err := r.pool.QueryRow(ctx, q, userID).Scan(&n)
	return n, err
}

func (r *contactRepository) PhoneExists(ctx context.Context, userID, phone, excludeContactID string) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM emergency_contacts
			WHERE user_id = $1 AND phone = $2 AND ($3 = '' OR id::text <> $3)
		)`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var exists bool
	err := r.pool.QueryRow(ctx, q, userID, phone, excludeContactID).Scan(&exists)
	return exists, err
}
