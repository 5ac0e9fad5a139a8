package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"service-tracking/internal/apperr"
	"service-tracking/internal/domain"
)

// CourierRepo represents courier repository.
type CourierRepo struct{ db *pgxpool.Pool }

// NewCourierRepo creates a new CourierRepo.
func NewCourierRepo(db *pgxpool.Pool) *CourierRepo { return &CourierRepo{db: db} }

// GetCourier - returns courier by its ID.
func (r *CourierRepo) GetCourier(ctx context.Context, id string) (*domain.Courier, error) {
	return getCourier(ctx, r.db, `WHERE id = $1`, id)
}

// UpsertCourier creates the courier or overwrites its name and status.
func (r *CourierRepo) UpsertCourier(ctx context.Context, c domain.Courier) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO couriers (id, name, status, updated_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (id) DO UPDATE
        SET name = EXCLUDED.name, status = EXCLUDED.status, updated_at = EXCLUDED.updated_at
    `, c.ID, c.Name, string(c.Status), c.UpdatedAt)
	if err != nil {
		return wrap(err, "upsert courier %s", c.ID)
	}
	return nil
}

// SetCourierStatus - update courier status outside a transaction.
func (r *CourierRepo) SetCourierStatus(ctx context.Context, id string, status domain.CourierStatus) error {
	return setCourierStatus(ctx, r.db, id, status)
}

func getCourier(ctx context.Context, q querier, where string, args ...any) (*domain.Courier, error) {
	var (
		c      domain.Courier
		status string
	)
	err := q.QueryRow(ctx, `SELECT id, name, status, updated_at FROM couriers `+where, args...).
		Scan(&c.ID, &c.Name, &status, &c.UpdatedAt)
	if err != nil {
		return nil, wrap(err, "get courier %v", args[0])
	}
	c.Status = domain.CourierStatus(status)
	c.UpdatedAt = c.UpdatedAt.UTC()
	return &c, nil
}

func setCourierStatus(ctx context.Context, q querier, id string, status domain.CourierStatus) error {
	ct, err := q.Exec(ctx, `
        UPDATE couriers
        SET status = $2, updated_at = now()
        WHERE id = $1
    `, id, string(status))
	if err != nil {
		return wrap(err, "update courier status %s", id)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("courier %s: %w", id, apperr.ErrNotFound)
	}
	return nil
}
