// Package lifecycle validates and applies delivery status transitions.
package lifecycle

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"service-tracking/internal/apperr"
	"service-tracking/internal/domain"
)

// ErrInvalidTransition is returned for any transition outside the table. The delivery
// is left untouched.
var ErrInvalidTransition = apperr.NewKind("invalid transition", "invalid_transition", apperr.ErrConflict)

// ErrActorNotAllowed is returned when the transition exists but the caller may not trigger it.
var ErrActorNotAllowed = apperr.NewKind("actor may not trigger this transition", apperr.CodeUnauthorized, apperr.ErrUnauthorized)

// Request asks for a transition to To.
type Request struct {
	To            domain.DeliveryStatus
	Actor         domain.Identity
	Description   string
	AdminOverride bool
}

type edge struct {
	from domain.DeliveryStatus
	to   domain.DeliveryStatus
}

type rule struct {
	trigger  string
	allowed  func(domain.Identity, *domain.Delivery) bool
	override bool
	// ready, when set, is a precondition on the delivery itself.
	ready func(*domain.Delivery) bool
}

func admin(id domain.Identity, _ *domain.Delivery) bool { return id.Role == domain.RoleAdmin }

func assignedCourier(id domain.Identity, d *domain.Delivery) bool {
	return id.Role == domain.RoleCourier && d.CourierID != "" && id.UserID == d.CourierID
}

func owningCustomer(id domain.Identity, d *domain.Delivery) bool {
	return id.Role == domain.RoleCustomer && d.CustomerID != "" && id.UserID == d.CustomerID
}

// courierAndFee holds once the courier and agreed fee are set on the delivery; assignment
// writes them together with the status.
func courierAndFee(d *domain.Delivery) bool {
	return d.CourierID != "" && d.AgreedFee.Valid
}

func anyOf(fns ...func(domain.Identity, *domain.Delivery) bool) func(domain.Identity, *domain.Delivery) bool {
	return func(id domain.Identity, d *domain.Delivery) bool {
		for _, fn := range fns {
			if fn(id, d) {
				return true
			}
		}
		return false
	}
}

var table = map[edge]rule{
	{domain.StatusPending, domain.StatusAssigned}: {
		trigger: "courier accepts", allowed: anyOf(assignedCourier, admin), ready: courierAndFee,
	},
	{domain.StatusPending, domain.StatusCancelled}: {
		trigger: "customer or admin cancels before assignment", allowed: anyOf(owningCustomer, admin),
	},
	{domain.StatusAssigned, domain.StatusEnRoutePickup}: {
		trigger: "courier starts navigation to store", allowed: anyOf(assignedCourier, admin),
	},
	{domain.StatusAssigned, domain.StatusCancelled}: {
		trigger: "courier or admin cancels", allowed: anyOf(assignedCourier, admin),
	},
	{domain.StatusEnRoutePickup, domain.StatusPickedUp}: {
		trigger: "courier confirms pickup", allowed: anyOf(assignedCourier, admin),
	},
	{domain.StatusEnRoutePickup, domain.StatusCancelled}: {
		trigger: "cancel before pickup", allowed: anyOf(assignedCourier, owningCustomer, admin),
	},
	{domain.StatusPickedUp, domain.StatusEnRouteDelivery}: {
		trigger: "courier starts navigation to customer", allowed: anyOf(assignedCourier, admin),
	},
	{domain.StatusPickedUp, domain.StatusCancelled}: {
		trigger: "forced cancel after pickup", allowed: admin, override: true,
	},
	{domain.StatusEnRouteDelivery, domain.StatusDelivered}: {
		trigger: "courier confirms drop-off", allowed: anyOf(assignedCourier, admin),
	},
	{domain.StatusEnRouteDelivery, domain.StatusCancelled}: {
		trigger: "exceptional cancel after pickup", allowed: admin, override: true,
	},
}

// Allowed reports whether from → to is in the transition table, ignoring actors.
func Allowed(from, to domain.DeliveryStatus) bool {
	_, ok := table[edge{from, to}]
	return ok
}

// Machine applies transitions to deliveries.
type Machine struct {
	now   func() time.Time
	newID func() string
}

// New returns a Machine stamping transitions with now. A nil now uses UTC wall time.
func New(now func() time.Time) *Machine {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Machine{now: now, newID: uuid.NewString}
}

// Apply moves d to req.To in place.
//
// changed is false for an idempotent retry of the transition that produced the current
// status; no event is produced then. On error d is not modified.
func (m *Machine) Apply(d *domain.Delivery, req Request) (ev domain.StatusEvent, changed bool, err error) {
	if d == nil {
		return domain.StatusEvent{}, false, fmt.Errorf("%w: nil delivery", apperr.ErrInvalid)
	}
	if !req.To.Valid() {
		return domain.StatusEvent{}, false, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, req.To)
	}

	if req.To == d.Status {
		if !m.retryAllowed(d, req.Actor) {
			return domain.StatusEvent{}, false, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, d.Status, req.To)
		}
		return domain.StatusEvent{}, false, nil
	}

	r, ok := table[edge{d.Status, req.To}]
	if !ok {
		return domain.StatusEvent{}, false, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, d.Status, req.To)
	}
	if r.override && !req.AdminOverride {
		return domain.StatusEvent{}, false, fmt.Errorf("%w: %s -> %s requires admin override", ErrInvalidTransition, d.Status, req.To)
	}
	if !r.allowed(req.Actor, d) {
		return domain.StatusEvent{}, false, fmt.Errorf("%w: %s (%s)", ErrActorNotAllowed, r.trigger, req.Actor.Role)
	}
	if r.ready != nil && !r.ready(d) {
		return domain.StatusEvent{}, false, fmt.Errorf("%w: %s -> %s needs a courier and an agreed fee", ErrInvalidTransition, d.Status, req.To)
	}

	at := m.stampTime(d)
	from := d.Status
	d.Status = req.To
	stamp(d, req.To, at)
	if req.To == domain.StatusCancelled {
		d.CancelReason = req.Description
	}
	d.Version++

	return domain.StatusEvent{
		ID:          m.newID(),
		DeliveryID:  d.ID,
		From:        from,
		To:          req.To,
		ActorID:     req.Actor.UserID,
		ActorRole:   req.Actor.Role,
		Description: req.Description,
		Override:    r.override,
		At:          at,
	}, true, nil
}

// retryAllowed accepts a duplicate only from someone who could have made one of the
// transitions leading into the current status.
func (m *Machine) retryAllowed(d *domain.Delivery, actor domain.Identity) bool {
	for e, r := range table {
		if e.to == d.Status && r.allowed(actor, d) {
			return true
		}
	}
	return false
}

// stampTime keeps lifecycle timestamps non-decreasing even if the clock steps back.
func (m *Machine) stampTime(d *domain.Delivery) time.Time {
	at := m.now()
	for _, prev := range []*time.Time{
		d.AssignedAt, d.EnRoutePickupAt, d.PickedUpAt, d.EnRouteDeliveryAt, d.DeliveredAt, d.CancelledAt,
	} {
		if prev != nil && prev.After(at) {
			at = *prev
		}
	}
	if d.CreatedAt.After(at) {
		at = d.CreatedAt
	}
	return at
}

func stamp(d *domain.Delivery, to domain.DeliveryStatus, at time.Time) {
	t := at
	switch to {
	case domain.StatusAssigned:
		d.AssignedAt = &t
	case domain.StatusEnRoutePickup:
		d.EnRoutePickupAt = &t
	case domain.StatusPickedUp:
		d.PickedUpAt = &t
	case domain.StatusEnRouteDelivery:
		d.EnRouteDeliveryAt = &t
	case domain.StatusDelivered:
		d.DeliveredAt = &t
	case domain.StatusCancelled:
		d.CancelledAt = &t
	}
}
