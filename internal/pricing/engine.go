package pricing

import (
	"sync/atomic"

	"service-tracking/internal/geo"
)

// Engine serves quotes from the current table and swaps tables atomically on admin edits.
type Engine struct {
	table atomic.Pointer[Table]
}

// NewEngine returns an Engine loaded with zones.
func NewEngine(zones []Zone) (*Engine, error) {
	t, err := NewTable(zones)
	if err != nil {
		return nil, err
	}
	e := &Engine{}
	e.table.Store(t)
	return e, nil
}

// Replace installs zones if they form a valid table. On error the current table stays.
func (e *Engine) Replace(zones []Zone) error {
	t, err := NewTable(zones)
	if err != nil {
		return err
	}
	e.table.Store(t)
	return nil
}

// Current returns the table in effect.
func (e *Engine) Current() *Table {
	return e.table.Load()
}

// FeeFor prices a distance with the current table.
func (e *Engine) FeeFor(km float64) (Quote, error) {
	return e.Current().FeeFor(km)
}

// QuotePoints prices the straight-line distance between pickup and dropoff.
func (e *Engine) QuotePoints(pickup, dropoff geo.Point) (Quote, error) {
	if err := pickup.Validate(); err != nil {
		return Quote{}, err
	}
	if err := dropoff.Validate(); err != nil {
		return Quote{}, err
	}
	return e.FeeFor(geo.DistanceKm(pickup, dropoff))
}
