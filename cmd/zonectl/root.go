package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"service-tracking/internal/geo"
	"service-tracking/internal/pricing"
)

const zonesKey = "zones"

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("zonectl")
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "zonectl",
		Short:         "Fee zone table and polyline tooling for service-tracking",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String(zonesKey, "", "zone table file (yaml, json or toml); env ZONECTL_ZONES")
	_ = v.BindPFlag(zonesKey, root.PersistentFlags().Lookup(zonesKey))

	root.AddCommand(
		newValidateCmd(v),
		newQuoteCmd(v),
		newEncodeCmd(),
		newDecodeCmd(),
	)
	return root
}

func loadZones(v *viper.Viper) ([]pricing.Zone, error) {
	path := v.GetString(zonesKey)
	if path == "" {
		return nil, errors.New("no zone table: pass --zones or set ZONECTL_ZONES")
	}
	return pricing.LoadZonesFile(path)
}

func newValidateCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check that the active zones partition the distance range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			zones, err := loadZones(v)
			if err != nil {
				return err
			}
			table, err := pricing.NewTable(zones)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tFROM KM\tTO KM\tBASE\tPER KM\tACTIVE")
			for _, z := range table.Zones() {
				to := strconv.FormatFloat(z.MaxKm, 'f', -1, 64)
				if z.OpenEnded {
					to = "∞"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%t\n",
					z.Name, strconv.FormatFloat(z.MinKm, 'f', -1, 64), to,
					z.BaseFee.StringFixed(pricing.MinorDigits), z.PerKmRate.StringFixed(pricing.MinorDigits), z.Active)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d zones\n", len(zones))
			return nil
		},
	}
}

func newQuoteCmd(v *viper.Viper) *cobra.Command {
	var (
		km       float64
		from, to string
	)
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price a distance (--km) or a pair of points (--from, --to)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			zones, err := loadZones(v)
			if err != nil {
				return err
			}
			engine, err := pricing.NewEngine(zones)
			if err != nil {
				return err
			}

			var q pricing.Quote
			switch {
			case from != "" || to != "":
				a, err := parsePoint(from)
				if err != nil {
					return fmt.Errorf("--from: %w", err)
				}
				b, err := parsePoint(to)
				if err != nil {
					return fmt.Errorf("--to: %w", err)
				}
				q, err = engine.QuotePoints(a, b)
				if err != nil {
					return err
				}
			case cmd.Flags().Changed("km"):
				q, err = engine.FeeFor(km)
				if err != nil {
					return err
				}
			default:
				return errors.New("pass --km or --from and --to")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "distance %.3f km, zone %s, fee %s\n",
				q.DistanceKm, q.Zone.Name, q.Fee.StringFixed(pricing.MinorDigits))
			return nil
		},
	}
	cmd.Flags().Float64Var(&km, "km", 0, "distance in km")
	cmd.Flags().StringVar(&from, "from", "", "pickup as lat,lon")
	cmd.Flags().StringVar(&to, "to", "", "dropoff as lat,lon")
	return cmd
}

func newEncodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode lat,lon [lat,lon...]",
		Short: "Encode points as a 5-decimal polyline",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			points := make([]geo.Point, 0, len(args))
			for _, a := range args {
				p, err := parsePoint(a)
				if err != nil {
					return err
				}
				points = append(points, p)
			}
			fmt.Fprintln(cmd.OutOrStdout(), geo.EncodePolyline(points))
			return nil
		},
	}
}

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode POLYLINE",
		Short: "Decode a polyline and print its points, length and bounds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			points, err := geo.DecodePolyline(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, p := range points {
				fmt.Fprintf(out, "%d\t%.5f,%.5f\n", i, p.Lat, p.Lon)
			}
			fmt.Fprintf(out, "length %.3f km\n", geo.PathLengthKm(points))
			if c, ok := geo.Centroid(points); ok {
				fmt.Fprintf(out, "centroid %.5f,%.5f\n", c.Lat, c.Lon)
			}
			return nil
		},
	}
}

func parsePoint(s string) (geo.Point, error) {
	lat, lon, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return geo.Point{}, fmt.Errorf("point %q: want lat,lon", s)
	}
	la, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return geo.Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	lo, err := strconv.ParseFloat(strings.TrimSpace(lon), 64)
	if err != nil {
		return geo.Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	p := geo.Point{Lat: la, Lon: lo}
	return p, p.Validate()
}
