package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"service-tracking/internal/apperr"
	"service-tracking/internal/domain"
	"service-tracking/internal/ports/deliverytx"
)

const deliveryColumns = `
    id, order_id, customer_id, store_id, COALESCE(courier_id, ''),
    pickup_lat, pickup_lon, dropoff_lat, dropoff_lon,
    status, agreed_fee::text, quoted_fee::text, zone_name, distance_km,
    created_at, assigned_at, en_route_pickup_at, picked_up_at, en_route_delivery_at,
    delivered_at, cancelled_at, cancel_reason, version`

var liveStatuses = []string{
	string(domain.StatusAssigned),
	string(domain.StatusEnRoutePickup),
	string(domain.StatusPickedUp),
	string(domain.StatusEnRouteDelivery),
}

// DeliveryRepo represents delivery repository.
type DeliveryRepo struct {
	db *pgxpool.Pool
}

// NewDeliveryRepo creates a new DeliveryRepo.
func NewDeliveryRepo(db *pgxpool.Pool) *DeliveryRepo {
	return &DeliveryRepo{db: db}
}

// WithTx opens a transaction and executes fn within it.
func (r *DeliveryRepo) WithTx(ctx context.Context, fn func(tx deliverytx.Repository) error) (err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return wrap(err, "begin tx")
	}

	// отменяем в случае паники
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(&TxRepo{tx: tx}); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback tx: %w (original error: %s)", rbErr, err.Error())
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return wrap(err, "commit tx")
	}
	return nil
}

// CreateDelivery inserts a new delivery. A second delivery for the same order is a conflict.
func (r *DeliveryRepo) CreateDelivery(ctx context.Context, d *domain.Delivery) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO deliveries (
            id, order_id, customer_id, store_id, courier_id,
            pickup_lat, pickup_lon, dropoff_lat, dropoff_lon,
            status, agreed_fee, quoted_fee, zone_name, distance_km,
            created_at, version
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11::numeric, $12::numeric, $13, $14, $15, $16)
    `,
		d.ID, d.OrderID, d.CustomerID, d.StoreID, nullString(d.CourierID),
		d.Pickup.Lat, d.Pickup.Lon, d.Dropoff.Lat, d.Dropoff.Lon,
		string(d.Status), decimalArg(d.AgreedFee), decimalArg(d.QuotedFee), d.ZoneName, d.DistanceKm,
		d.CreatedAt, d.Version,
	)
	if err != nil {
		return wrap(err, "insert delivery for order %q", d.OrderID)
	}
	return nil
}

// GetDelivery returns a delivery by id.
func (r *DeliveryRepo) GetDelivery(ctx context.Context, id string) (*domain.Delivery, error) {
	return getDelivery(ctx, r.db, `WHERE id = $1`, id)
}

// GetDeliveryByOrderID returns the delivery created for an order.
func (r *DeliveryRepo) GetDeliveryByOrderID(ctx context.Context, orderID string) (*domain.Delivery, error) {
	return getDelivery(ctx, r.db, `WHERE order_id = $1`, orderID)
}

// ListLive returns deliveries a courier is currently working on.
func (r *DeliveryRepo) ListLive(ctx context.Context) ([]*domain.Delivery, error) {
	return listDeliveries(ctx, r.db, `WHERE status = ANY($1) ORDER BY assigned_at`, liveStatuses)
}

// ListLiveByCourier returns live deliveries assigned to courierID.
func (r *DeliveryRepo) ListLiveByCourier(ctx context.Context, courierID string) ([]*domain.Delivery, error) {
	return listDeliveries(ctx, r.db, `WHERE status = ANY($1) AND courier_id = $2 ORDER BY assigned_at`, liveStatuses, courierID)
}

// TxRepo represents transaction repository.
type TxRepo struct {
	tx pgx.Tx
}

// GetDeliveryForUpdate - locks and returns a delivery.
func (r *TxRepo) GetDeliveryForUpdate(ctx context.Context, id string) (*domain.Delivery, error) {
	return getDelivery(ctx, r.tx, `WHERE id = $1 FOR UPDATE`, id)
}

// GetCourierForUpdate - locks and returns a courier.
func (r *TxRepo) GetCourierForUpdate(ctx context.Context, id string) (*domain.Courier, error) {
	return getCourier(ctx, r.tx, `WHERE id = $1 FOR UPDATE`, id)
}

// SaveDelivery - writes the mutable part of a delivery guarded by its version.
func (r *TxRepo) SaveDelivery(ctx context.Context, d *domain.Delivery) error {
	return saveDelivery(ctx, r.tx, d)
}

// SetCourierStatus - update courier status.
func (r *TxRepo) SetCourierStatus(ctx context.Context, id string, status domain.CourierStatus) error {
	return setCourierStatus(ctx, r.tx, id, status)
}

func saveDelivery(ctx context.Context, q querier, d *domain.Delivery) error {
	ct, err := q.Exec(ctx, `
        UPDATE deliveries SET
            courier_id           = $2,
            status               = $3,
            agreed_fee           = $4::numeric,
            zone_name            = $5,
            distance_km          = $6,
            assigned_at          = $7,
            en_route_pickup_at   = $8,
            picked_up_at         = $9,
            en_route_delivery_at = $10,
            delivered_at         = $11,
            cancelled_at         = $12,
            cancel_reason        = $13,
            version              = $14
        WHERE id = $1 AND version = $14 - 1
    `,
		d.ID, nullString(d.CourierID), string(d.Status), decimalArg(d.AgreedFee), d.ZoneName, d.DistanceKm,
		d.AssignedAt, d.EnRoutePickupAt, d.PickedUpAt, d.EnRouteDeliveryAt, d.DeliveredAt, d.CancelledAt,
		d.CancelReason, d.Version,
	)
	if err != nil {
		return wrap(err, "save delivery %s", d.ID)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("save delivery %s at version %d: %w", d.ID, d.Version, apperr.ErrConflict)
	}
	return nil
}

func getDelivery(ctx context.Context, q querier, where string, args ...any) (*domain.Delivery, error) {
	d, err := scanDelivery(q.QueryRow(ctx, `SELECT `+deliveryColumns+` FROM deliveries `+where, args...))
	if err != nil {
		return nil, wrap(err, "get delivery %v", args[0])
	}
	return d, nil
}

func listDeliveries(ctx context.Context, q querier, where string, args ...any) ([]*domain.Delivery, error) {
	rows, err := q.Query(ctx, `SELECT `+deliveryColumns+` FROM deliveries `+where, args...)
	if err != nil {
		return nil, wrap(err, "list deliveries")
	}
	defer rows.Close()

	var out []*domain.Delivery
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, wrap(err, "scan delivery")
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(err, "list deliveries")
	}
	return out, nil
}

func scanDelivery(row pgx.Row) (*domain.Delivery, error) {
	var (
		d                 domain.Delivery
		status            string
		agreed, quoted    *string
		created           time.Time
		assigned, enPick  *time.Time
		picked, enDrop    *time.Time
		delivered, cancel *time.Time
	)
	err := row.Scan(
		&d.ID, &d.OrderID, &d.CustomerID, &d.StoreID, &d.CourierID,
		&d.Pickup.Lat, &d.Pickup.Lon, &d.Dropoff.Lat, &d.Dropoff.Lon,
		&status, &agreed, &quoted, &d.ZoneName, &d.DistanceKm,
		&created, &assigned, &enPick, &picked, &enDrop,
		&delivered, &cancel, &d.CancelReason, &d.Version,
	)
	if err != nil {
		return nil, err
	}

	d.Status = domain.DeliveryStatus(status)
	if d.AgreedFee, err = parseDecimal(agreed); err != nil {
		return nil, err
	}
	if d.QuotedFee, err = parseDecimal(quoted); err != nil {
		return nil, err
	}
	d.CreatedAt = created.UTC()
	d.AssignedAt = utc(assigned)
	d.EnRoutePickupAt = utc(enPick)
	d.PickedUpAt = utc(picked)
	d.EnRouteDeliveryAt = utc(enDrop)
	d.DeliveredAt = utc(delivered)
	d.CancelledAt = utc(cancel)
	return &d, nil
}

func parseDecimal(s *string) (decimal.NullDecimal, error) {
	if s == nil {
		return decimal.NullDecimal{}, nil
	}
	v, err := decimal.NewFromString(*s)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("parse numeric %q: %w", *s, err)
	}
	return decimal.NewNullDecimal(v), nil
}

func decimalArg(d decimal.NullDecimal) any {
	if !d.Valid {
		return nil
	}
	return d.Decimal.String()
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
