package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tigersos/tigersos-api/internal/domain"
)

// SettingsRepository persists the single application settings document.
type SettingsRepository interface {
	Get(ctx context.Context) (domain.Settings, error)
	Update(ctx context.Context, s domain.Settings) error
}

type settingsRepository struct {
	pool *pgxpool.Pool
}

func NewSettingsRepository(pool *pgxpool.Pool) SettingsRepository {
	return &settingsRepository{pool: pool}
}

func (r *settingsRepository) Get(ctx context.Context) (domain.Settings, error) {
	const q = `SELECT data FROM app_settings WHERE id = 1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var s domain.Settings
	err := r.pool.QueryRow(ctx, q).Scan(&s)
	if err == pgx.ErrNoRows {
		return domain.DefaultSettings(), nil
	}
	return s, err
}

func (r *settingsRepository) Update(ctx context.Context, s domain.Settings) error {
	const q = `
		INSERT INTO app_settings (id, data, updated_at)
		VALUES (1, $1, now())
		ON CONFLICT (id) DO UPDATE SET data = $1, updated_at = now()`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.pool.Exec(ctx, q, s)
	return err
}
