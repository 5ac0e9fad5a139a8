package pricing

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"service-tracking/internal/apperr"
)

type zoneEntry struct {
	Name      string          `mapstructure:"name"`
	MinKm     float64         `mapstructure:"min_km"`
	MaxKm     float64         `mapstructure:"max_km"`
	BaseFee   decimal.Decimal `mapstructure:"base_fee"`
	PerKmRate decimal.Decimal `mapstructure:"per_km_rate"`
	Active    *bool           `mapstructure:"active"`
	OpenEnded bool            `mapstructure:"open_ended"`
}

// LoadZonesFile reads a zone table from a YAML, JSON or TOML file with a top-level
// "zones" list. Zones without an explicit "active" key are active. The result is
// validated before it is returned.
func LoadZonesFile(path string) ([]Zone, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%w: read zones file %s: %v", apperr.ErrConfiguration, path, err)
	}

	var entries []zoneEntry
	hook := viper.DecoderConfigOption(func(c *mapstructure.DecoderConfig) {
		c.DecodeHook = mapstructure.ComposeDecodeHookFunc(c.DecodeHook, decimalHook)
		c.ErrorUnused = true
	})
	if err := v.UnmarshalKey("zones", &entries, hook); err != nil {
		return nil, fmt.Errorf("%w: decode zones file %s: %v", apperr.ErrConfiguration, path, err)
	}

	zones := make([]Zone, 0, len(entries))
	for _, e := range entries {
		active := true
		if e.Active != nil {
			active = *e.Active
		}
		zones = append(zones, Zone{
			Name:      e.Name,
			MinKm:     e.MinKm,
			MaxKm:     e.MaxKm,
			BaseFee:   e.BaseFee,
			PerKmRate: e.PerKmRate,
			Active:    active,
			OpenEnded: e.OpenEnded,
		})
	}
	if _, err := ValidateZones(zones); err != nil {
		return nil, fmt.Errorf("zones file %s: %w", path, err)
	}
	return zones, nil
}

var decimalType = reflect.TypeOf(decimal.Decimal{})

// decimalHook parses money from strings as well as numbers. Strings are preferred in
// files since they are exact.
func decimalHook(from, to reflect.Type, data any) (any, error) {
	if to != decimalType {
		return data, nil
	}
	switch from.Kind() {
	case reflect.String:
		return decimal.NewFromString(data.(string))
	case reflect.Float32, reflect.Float64:
		return decimal.NewFromFloat(cast.ToFloat64(data)), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return decimal.NewFromInt(cast.ToInt64(data)), nil
	default:
		return nil, fmt.Errorf("cannot decode %s into a decimal", from)
	}
}
