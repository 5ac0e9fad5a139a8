package pricing

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"service-tracking/internal/apperr"
)

// ErrNoZoneForDistance means the distance is outside every active zone. Callers report it
// as "out of delivery range".
var ErrNoZoneForDistance = apperr.NewKind("out of delivery range", "out_of_range", apperr.ErrInvalid)

// Quote is the fee for one distance.
type Quote struct {
	Fee        decimal.Decimal `json:"fee"`
	Zone       Zone            `json:"zone"`
	DistanceKm float64         `json:"distanceKm"`
}

// Table is an immutable, validated zone set.
type Table struct {
	all    []Zone
	active []Zone
}

// NewTable validates zones and builds a lookup table.
func NewTable(zones []Zone) (*Table, error) {
	active, err := ValidateZones(zones)
	if err != nil {
		return nil, err
	}
	all := make([]Zone, len(zones))
	copy(all, zones)
	return &Table{all: all, active: active}, nil
}

// Zones returns a copy of every configured zone, active or not, in configuration order.
func (t *Table) Zones() []Zone {
	out := make([]Zone, len(t.all))
	copy(out, t.all)
	return out
}

// MaxKm is the exclusive upper bound of the table; +Inf when the top band is open-ended.
func (t *Table) MaxKm() float64 {
	return t.active[len(t.active)-1].Upper()
}

// FeeFor prices km as BaseFee + PerKmRate*km in the band containing it, rounded half up
// to MinorDigits. A distance on a boundary belongs to the upper band.
func (t *Table) FeeFor(km float64) (Quote, error) {
	if math.IsNaN(km) || math.IsInf(km, 0) || km < 0 {
		return Quote{}, fmt.Errorf("%w: distance %v km", ErrNoZoneForDistance, km)
	}

	i := sort.Search(len(t.active), func(i int) bool { return km < t.active[i].Upper() })
	if i == len(t.active) || !t.active[i].Contains(km) {
		return Quote{}, fmt.Errorf("%w: %.3f km exceeds %.3f km", ErrNoZoneForDistance, km, t.MaxKm())
	}

	z := t.active[i]
	fee := z.BaseFee.Add(z.PerKmRate.Mul(decimal.NewFromFloat(km))).Round(MinorDigits)
	return Quote{Fee: fee, Zone: z, DistanceKm: km}, nil
}
