package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"service-tracking/internal/domain"
)

// EventRepo stores the status audit trail and location breadcrumbs.
type EventRepo struct{ db *pgxpool.Pool }

// NewEventRepo creates a new EventRepo.
func NewEventRepo(db *pgxpool.Pool) *EventRepo { return &EventRepo{db: db} }

// AppendStatusEvent appends to the audit trail. Replaying the same event id is a no-op.
func (r *EventRepo) AppendStatusEvent(ctx context.Context, ev domain.StatusEvent) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO delivery_status_events (id, delivery_id, from_status, to_status, actor_id, actor_role, description, override, at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        ON CONFLICT (id) DO NOTHING
    `, ev.ID, ev.DeliveryID, string(ev.From), string(ev.To), ev.ActorID, string(ev.ActorRole), ev.Description, ev.Override, ev.At)
	if err != nil {
		return wrap(err, "append status event %s", ev.ID)
	}
	return nil
}

// ListStatusEvents returns the audit trail of a delivery in order.
func (r *EventRepo) ListStatusEvents(ctx context.Context, deliveryID string) ([]domain.StatusEvent, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, delivery_id, from_status, to_status, actor_id, actor_role, description, override, at
        FROM delivery_status_events
        WHERE delivery_id = $1
        ORDER BY at, id
    `, deliveryID)
	if err != nil {
		return nil, wrap(err, "list status events %s", deliveryID)
	}
	defer rows.Close()

	var out []domain.StatusEvent
	for rows.Next() {
		var (
			ev             domain.StatusEvent
			from, to, role string
		)
		if err := rows.Scan(&ev.ID, &ev.DeliveryID, &from, &to, &ev.ActorID, &role, &ev.Description, &ev.Override, &ev.At); err != nil {
			return nil, wrap(err, "scan status event")
		}
		ev.From = domain.DeliveryStatus(from)
		ev.To = domain.DeliveryStatus(to)
		ev.ActorRole = domain.Role(role)
		ev.At = ev.At.UTC()
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(err, "list status events %s", deliveryID)
	}
	return out, nil
}

// AppendBreadcrumb stores one sampled courier position.
func (r *EventRepo) AppendBreadcrumb(ctx context.Context, s domain.LocationSample) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO delivery_breadcrumbs (delivery_id, courier_id, lat, lon, heading, captured_at, received_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `, s.DeliveryID, s.CourierID, s.Position.Lat, s.Position.Lon, s.Heading, s.CapturedAt, s.ReceivedAt)
	if err != nil {
		return wrap(err, "append breadcrumb for %s", s.DeliveryID)
	}
	return nil
}

// CountBreadcrumbs returns how many breadcrumbs a delivery has.
func (r *EventRepo) CountBreadcrumbs(ctx context.Context, deliveryID string) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM delivery_breadcrumbs WHERE delivery_id = $1`, deliveryID).Scan(&n); err != nil {
		return 0, wrap(err, "count breadcrumbs %s", deliveryID)
	}
	return n, nil
}
