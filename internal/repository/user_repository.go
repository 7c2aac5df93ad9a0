package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tigersos/tigersos-api/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByPhone(ctx context.Context, phone string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, req *domain.UpdateUserRequest) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateRole(ctx context.Context, id, role string) error
	ListSummaries(ctx context.Context) ([]domain.AdminUserSummary, error)
	CountUsers(ctx context.Context) (int64, error)
	CountUsersWithContacts(ctx context.Context) (int64, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userCols = `id, role, email, password_hash, full_name, phone, birth_date, location, blood_type, allergies, gender, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u     domain.User
		birth *time.Time
	)
	err := row.Scan(
		&u.ID, &u.Role, &u.Email, &u.PasswordHash, &u.FullName, &u.Phone,
		&birth, &u.Location, &u.BloodType, &u.Allergies, &u.Gender,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if birth != nil {
		u.BirthDate = *birth
	}
	return &u, nil
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	const q = `
		INSERT INTO users (id, role, email, password_hash, full_name, phone, birth_date, location, blood_type, allergies, gender)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + userCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var birth *time.Time
	if !u.BirthDate.IsZero() {
		birth = &u.BirthDate
	}
	allergies := u.Allergies
	if allergies == nil {
		allergies = []string{}
	}

	return scanUser(r.pool.QueryRow(ctx, q,
		uuid.NewString(), u.Role, u.Email, u.PasswordHash, u.FullName, u.Phone,
		birth, u.Location, u.BloodType, allergies, u.Gender,
	))
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	const q = `SELECT ` + userCols + ` FROM users WHERE email = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	u, err := scanUser(r.pool.QueryRow(ctx, q, email))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return u, err
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	const q = `SELECT ` + userCols + ` FROM users WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	u, err := scanUser(r.pool.QueryRow(ctx, q, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return u, err
}

func (r *userRepository) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	const q = `SELECT ` + userCols + ` FROM users WHERE phone = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	u, err := scanUser(r.pool.QueryRow(ctx, q, phone))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return u, err
}

func (r *userRepository) UpdateProfile(ctx context.Context, id string, req *domain.UpdateUserRequest) (*domain.User, error) {
	const q = `
		UPDATE users
		SET full_name = $2, phone = $3, location = $4, updated_at = now()
		WHERE id = $1
		RETURNING ` + userCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	u, err := scanUser(r.pool.QueryRow(ctx, q, id, req.FullName, req.Phone, req.Location))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return u, err
}

func (r *userRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	const q = `UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	result, err := r.pool.Exec(ctx, q, id, passwordHash)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) UpdateRole(ctx context.Context, id, role string) error {
	const q = `UPDATE users SET role = $2, updated_at = now() WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	result, err := r.pool.Exec(ctx, q, id, role)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) ListSummaries(ctx context.Context) ([]domain.AdminUserSummary, error) {
	const q = `
		SELECT u.id, u.full_name, u.email, u.phone, u.blood_type, u.created_at,
		       count(c.id) AS contacts
		FROM users u
		LEFT JOIN emergency_contacts c ON c.user_id = u.id
		GROUP BY u.id
		ORDER BY u.created_at DESC`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.AdminUserSummary
	for rows.Next() {
		var s domain.AdminUserSummary
		if err := rows.Scan(&s.ID, &s.FullName, &s.Email, &s.Phone, &s.BloodType, &s.CreatedAt, &s.ContactsCount); err != nil {
			return nil, err
		}
		users = append(users, s)
	}

	return users, rows.Err()
}

func (r *userRepository) CountUsers(ctx context.Context) (int64, error) {
	const q = `SELECT count(*) FROM users`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var n int64
	err := r.pool.QueryRow(ctx, q).Scan(&n)
	return n, err
}

func (r *userRepository) CountUsersWithContacts(ctx context.Context) (int64, error) {
	const q = `SELECT count(DISTINCT user_id) FROM emergency_contacts`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var n int64
	err := r.pool.QueryRow(ctx, q).Scan(&n)
	return n, err
}
