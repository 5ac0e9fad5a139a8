package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"service-tracking/internal/pricing"
)

// ZoneRepo persists the zone table edited by admins.
type ZoneRepo struct{ db *pgxpool.Pool }

// NewZoneRepo creates a new ZoneRepo.
func NewZoneRepo(db *pgxpool.Pool) *ZoneRepo { return &ZoneRepo{db: db} }

// ListZones returns the stored table in its configured order. An empty result means
// no table was stored yet.
func (r *ZoneRepo) ListZones(ctx context.Context) ([]pricing.Zone, error) {
	rows, err := r.db.Query(ctx, `
        SELECT name, min_km, max_km, open_ended, base_fee::text, per_km_rate::text, active
        FROM delivery_zones
        ORDER BY position
    `)
	if err != nil {
		return nil, wrap(err, "list zones")
	}
	defer rows.Close()

	var out []pricing.Zone
	for rows.Next() {
		var (
			z          pricing.Zone
			base, rate string
		)
		if err := rows.Scan(&z.Name, &z.MinKm, &z.MaxKm, &z.OpenEnded, &base, &rate, &z.Active); err != nil {
			return nil, wrap(err, "scan zone")
		}
		if z.BaseFee, err = decimal.NewFromString(base); err != nil {
			return nil, fmt.Errorf("zone %q base fee: %w", z.Name, err)
		}
		if z.PerKmRate, err = decimal.NewFromString(rate); err != nil {
			return nil, fmt.Errorf("zone %q per-km rate: %w", z.Name, err)
		}
		out = append(out, z)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(err, "list zones")
	}
	return out, nil
}

// ReplaceZones swaps the whole stored table in one transaction. Callers validate first.
func (r *ZoneRepo) ReplaceZones(ctx context.Context, zones []pricing.Zone) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM delivery_zones`); err != nil {
			return wrap(err, "clear zones")
		}
		for i, z := range zones {
			maxKm := z.MaxKm
			if z.OpenEnded {
				maxKm = 0
			}
			_, err := tx.Exec(ctx, `
                INSERT INTO delivery_zones (position, name, min_km, max_km, open_ended, base_fee, per_km_rate, active)
                VALUES ($1, $2, $3, $4, $5, $6::numeric, $7::numeric, $8)
            `, i, z.Name, z.MinKm, maxKm, z.OpenEnded, z.BaseFee.String(), z.PerKmRate.String(), z.Active)
			if err != nil {
				return wrap(err, "insert zone %q", z.Name)
			}
		}
		return nil
	})
}
