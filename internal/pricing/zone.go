// Package pricing maps delivery distances onto priced zones.
package pricing

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"service-tracking/internal/apperr"
)

// MinorDigits is the currency minor-unit precision fees are rounded to.
const MinorDigits int32 = 2

// Zone is a priced distance band covering [MinKm, MaxKm).
type Zone struct {
	Name      string          `json:"name"`
	MinKm     float64         `json:"minKm"`
	MaxKm     float64         `json:"maxKm"`
	BaseFee   decimal.Decimal `json:"baseFee"`
	PerKmRate decimal.Decimal `json:"perKmRate"`
	Active    bool            `json:"active"`
	// OpenEnded marks the top band as unbounded; MaxKm is ignored then.
	OpenEnded bool `json:"openEnded,omitempty"`
}

// Upper returns the exclusive upper bound of the band.
func (z Zone) Upper() float64 {
	if z.OpenEnded {
		return math.Inf(1)
	}
	return z.MaxKm
}

// Contains reports whether km falls in [MinKm, Upper()).
func (z Zone) Contains(km float64) bool {
	return km >= z.MinKm && km < z.Upper()
}

func (z Zone) validate() error {
	switch {
	case z.Name == "":
		return fmt.Errorf("%w: zone name is empty", apperr.ErrConfiguration)
	case math.IsNaN(z.MinKm) || math.IsInf(z.MinKm, 0) || z.MinKm < 0:
		return fmt.Errorf("%w: zone %q: min_km must be a finite non-negative number", apperr.ErrConfiguration, z.Name)
	case !z.OpenEnded && (math.IsNaN(z.MaxKm) || math.IsInf(z.MaxKm, 0)):
		return fmt.Errorf("%w: zone %q: max_km must be finite unless open_ended is set", apperr.ErrConfiguration, z.Name)
	case !z.OpenEnded && z.MinKm >= z.MaxKm:
		return fmt.Errorf("%w: zone %q: min_km %.3f must be below max_km %.3f", apperr.ErrConfiguration, z.Name, z.MinKm, z.MaxKm)
	case z.BaseFee.IsNegative():
		return fmt.Errorf("%w: zone %q: negative base fee", apperr.ErrConfiguration, z.Name)
	case z.PerKmRate.IsNegative():
		return fmt.Errorf("%w: zone %q: negative per-km rate", apperr.ErrConfiguration, z.Name)
	}
	return nil
}

// ValidateZones checks every zone and that the active ones partition [0, top) without
// gaps or overlaps, where top is +Inf for an open-ended last band. It returns the active
// zones ordered by MinKm.
func ValidateZones(zones []Zone) ([]Zone, error) {
	if len(zones) == 0 {
		return nil, fmt.Errorf("%w: no zones configured", apperr.ErrConfiguration)
	}

	seen := make(map[string]struct{}, len(zones))
	active := make([]Zone, 0, len(zones))
	for _, z := range zones {
		if err := z.validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[z.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate zone name %q", apperr.ErrConfiguration, z.Name)
		}
		seen[z.Name] = struct{}{}
		if z.Active {
			active = append(active, z)
		}
	}
	if len(active) == 0 {
		return nil, fmt.Errorf("%w: no active zone", apperr.ErrConfiguration)
	}

	sort.SliceStable(active, func(i, j int) bool { return active[i].MinKm < active[j].MinKm })

	if active[0].MinKm != 0 {
		return nil, fmt.Errorf("%w: gap: first active zone %q starts at %.3f km, not 0",
			apperr.ErrConfiguration, active[0].Name, active[0].MinKm)
	}
	for i := 1; i < len(active); i++ {
		prev, cur := active[i-1], active[i]
		if prev.OpenEnded {
			return nil, fmt.Errorf("%w: overlap: open-ended zone %q is followed by %q",
				apperr.ErrConfiguration, prev.Name, cur.Name)
		}
		switch {
		case cur.MinKm < prev.MaxKm:
			return nil, fmt.Errorf("%w: overlap: %q [%.3f, %.3f) and %q [%.3f, ...)",
				apperr.ErrConfiguration, prev.Name, prev.MinKm, prev.MaxKm, cur.Name, cur.MinKm)
		case cur.MinKm > prev.MaxKm:
			return nil, fmt.Errorf("%w: gap: [%.3f, %.3f) between %q and %q",
				apperr.ErrConfiguration, prev.MaxKm, cur.MinKm, prev.Name, cur.Name)
		}
	}
	return active, nil
}
