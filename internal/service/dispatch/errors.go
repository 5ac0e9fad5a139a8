package dispatch

import "service-tracking/internal/apperr"

var (
	// ErrAlreadyAssigned is returned by Assign when the delivery left pending.
	ErrAlreadyAssigned = apperr.NewKind("delivery already assigned", "already_assigned", apperr.ErrConflict)
	// ErrCourierUnavailable is returned by Assign when the courier is busy or paused.
	ErrCourierUnavailable = apperr.NewKind("courier unavailable", "courier_unavailable", apperr.ErrConflict)
)
