package dispatch

import (
	"context"
	"fmt"

	"service-tracking/internal/apperr"
	"service-tracking/internal/domain"
	"service-tracking/internal/logx"
	"service-tracking/internal/pricing"
)

// Zones returns the zone table in effect, active and inactive.
func (c *Coordinator) Zones() []pricing.Zone {
	return c.engine.Current().Zones()
}

// ReplaceZones validates, stores and then installs a new fee table. An invalid table
// is rejected and the current one stays in effect.
func (c *Coordinator) ReplaceZones(ctx context.Context, zones []pricing.Zone, actor domain.Identity) error {
	if actor.Role != domain.RoleAdmin {
		return fmt.Errorf("%w: only admins edit zones", apperr.ErrUnauthorized)
	}
	if _, err := pricing.ValidateZones(zones); err != nil {
		return err
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	c.zonesMu.Lock()
	defer c.zonesMu.Unlock()
	err := c.retrier.Do(ctx, "replace_zones", func(ctx context.Context) error {
		return c.zones.ReplaceZones(ctx, zones)
	})
	if err != nil {
		return err
	}
	if err := c.engine.Replace(zones); err != nil {
		return err
	}

	c.logger.Info("zone table replaced",
		logx.String("event", "zones_replaced"),
		logx.String("actor_id", actor.UserID),
		logx.Int("zones", len(zones)),
	)
	return nil
}

// RestoreLive reopens tracking for deliveries that were in flight when the process
// stopped. It returns how many were restored.
func (c *Coordinator) RestoreLive(ctx context.Context) (int, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	live, err := c.deliveries.ListLive(ctx)
	if err != nil {
		return 0, err
	}
	for _, d := range live {
		c.StartSession(d)
	}
	c.logger.Info("live deliveries restored", logx.Int("count", len(live)))
	return len(live), nil
}

// LoadZones returns the stored fee table, seeding the store with fallback when it is
// empty. The result is validated.
func LoadZones(ctx context.Context, repo ZoneRepository, fallback []pricing.Zone) ([]pricing.Zone, error) {
	zones, err := repo.ListZones(ctx)
	if err != nil {
		return nil, err
	}
	if len(zones) == 0 {
		if len(fallback) == 0 {
			return nil, fmt.Errorf("%w: no zones stored and no zones file", apperr.ErrConfiguration)
		}
		if _, err := pricing.ValidateZones(fallback); err != nil {
			return nil, err
		}
		if err := repo.ReplaceZones(ctx, fallback); err != nil {
			return nil, err
		}
		zones = fallback
	}
	if _, err := pricing.ValidateZones(zones); err != nil {
		return nil, err
	}
	return zones, nil
}
