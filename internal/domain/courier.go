package domain

import "time"

// CourierStatus is the availability of a courier for new assignments.
type CourierStatus string

// Courier availability states.
const (
	CourierAvailable CourierStatus = "available"
	CourierBusy      CourierStatus = "busy"
	CourierPaused    CourierStatus = "paused"
)

var allowedCourierStatuses = [...]CourierStatus{CourierAvailable, CourierBusy, CourierPaused}

// Valid reports whether s is a known courier status.
func (s CourierStatus) Valid() bool {
	for _, v := range allowedCourierStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Courier mirrors the availability of an account managed by the account service.
type Courier struct {
	ID        string
	Name      string
	Status    CourierStatus
	UpdatedAt time.Time
}
