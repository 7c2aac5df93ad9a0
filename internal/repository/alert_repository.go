package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tigersos/tigersos-api/internal/domain"
)

type AlertRepository interface {
	Create(ctx context.Context, a *domain.Alert) (*domain.Alert, error)
	FindByID(ctx context.Context, id string) (*domain.Alert, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Alert, error)
	ListAll(ctx context.Context) ([]domain.AlertWithUser, error)
	UpdateStatus(ctx context.Context, id string, status domain.AlertStatus, resolvedAt *time.Time, resolvedBy string) (*domain.Alert, error)
	CountActive(ctx context.Context) (int64, error)
}

type alertRepository struct {
	pool *pgxpool.Pool
}

func NewAlertRepository(pool *pgxpool.Pool) AlertRepository {
	return &alertRepository{pool: pool}
}

const alertCols = `id, user_id, created_at, location, status, resolved_at, resolved_by`

func scanAlert(row pgx.Row) (*domain.Alert, error) {
	var (
		a          domain.Alert
		location   *string
		resolvedBy *string
	)
	err := row.Scan(&a.ID, &a.UserID, &a.Timestamp, &location, &a.Status, &a.ResolvedAt, &resolvedBy)
	if err != nil {
		return nil, err
	}
	if location != nil {
		a.Location = *location
	}
	if resolvedBy != nil {
		a.ResolvedBy = *resolvedBy
	}
	return &a, nil
}

func (r *alertRepository) Create(ctx context.Context, a *domain.Alert) (*domain.Alert, error) {
	const q = `
		INSERT INTO alerts (id, user_id, location, status)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + alertCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var location *string
	if a.Location != "" {
		location = &a.Location
	}

	return scanAlert(r.pool.QueryRow(ctx, q, uuid.NewString(), a.UserID, location, domain.AlertActive))
}

func (r *alertRepository) FindByID(ctx context.Context, id string) (*domain.Alert, error) {
	const q = `SELECT ` + alertCols + ` FROM alerts WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	a, err := scanAlert(r.pool.QueryRow(ctx, q, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return a, err
}

func (r *alertRepository) ListByUser(ctx context.Context, userID string) ([]domain.Alert, error) {
	const q = `SELECT ` + alertCols + ` FROM alerts WHERE user_id = $1 ORDER BY created_at DESC`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []domain.Alert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, *a)
	}

	return alerts, rows.Err()
}

func (r *alertRepository) ListAll(ctx context.Context) ([]domain.AlertWithUser, error) {
	const q = `
		SELECT a.id, a.user_id, a.created_at, a.location, a.status, a.resolved_at, a.resolved_by,
		       u.full_name, u.email, u.phone
		FROM alerts a
		JOIN users u ON u.id = a.user_id
		ORDER BY a.created_at DESC`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []domain.AlertWithUser
	for rows.Next() {
		var (
			a          domain.AlertWithUser
			location   *string
			resolvedBy *string
		)
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.Timestamp, &location, &a.Status, &a.ResolvedAt, &resolvedBy,
			&a.UserFullName, &a.UserEmail, &a.UserPhone,
		); err != nil {
			return nil, err
		}
		if location != nil {
			a.Location = *location
		}
		if resolvedBy != nil {
			a.ResolvedBy = *resolvedBy
		}
		alerts = append(alerts, a)
	}

	return alerts, rows.Err()
}

func (r *alertRepository) UpdateStatus(ctx context.Context, id string, status domain.AlertStatus, resolvedAt *time.Time, resolvedBy string) (*domain.Alert, error) {
	const q = `
		UPDATE alerts
		SET status = $2,
		    resolved_at = COALESCE($3, resolved_at),
		    resolved_by = COALESCE($4, resolved_by)
		WHERE id = $1
		RETURNING ` + alertCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var by *string
	if resolvedBy != "" {
		by = &resolvedBy
	}

	a, err := scanAlert(r.pool.QueryRow(ctx, q, id, status, resolvedAt, by))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return a, err
}

func (r *alertRepository) CountActive(ctx context.Context) (int64, error) {
	const q = `SELECT count(*) FROM alerts WHERE status = 'active'`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var n int64
	err := r.pool.QueryRow(ctx, q).Scan(&n)
	return n, err
}
