package orders

import (
	"time"

	"github.com/shopspring/decimal"

	"service-tracking/internal/geo"
)

// Event is a single order event. Pickup and Dropoff are geocoded by the order service
// and only present on "created".
type Event struct {
	OrderID    string
	Status     string
	CustomerID string
	StoreID    string
	Pickup     *geo.Point
	Dropoff    *geo.Point
	QuotedFee  decimal.NullDecimal
	Reason     string
	CreatedAt  time.Time
}
