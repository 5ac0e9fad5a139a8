// Package geo holds the pure geographic helpers used for pricing and tracking.
package geo

import (
	"fmt"
	"math"

	"service-tracking/internal/apperr"
)

// EarthRadiusKm is the mean Earth radius used by DistanceKm.
const EarthRadiusKm = 6371.0

// Point is a WGS84 latitude/longitude pair in degrees.
type Point struct {
	Lat float64 `json:"latitude"`
	Lon float64 `json:"longitude"`
}

// Validate rejects non-finite or out-of-range coordinates.
func (p Point) Validate() error {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lon) || math.IsInf(p.Lat, 0) || math.IsInf(p.Lon, 0) {
		return fmt.Errorf("%w: coordinates must be finite", apperr.ErrInvalid)
	}
	if p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("%w: latitude %v out of range", apperr.ErrInvalid, p.Lat)
	}
	if p.Lon < -180 || p.Lon > 180 {
		return fmt.Errorf("%w: longitude %v out of range", apperr.ErrInvalid, p.Lon)
	}
	return nil
}

// DistanceKm returns the haversine great-circle distance between a and b.
func DistanceKm(a, b Point) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLat := lat2 - lat1
	dLon := radians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	// rounding can push h a hair above 1 for antipodal points
	h = math.Min(1, h)
	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(h))
}

// PathLengthKm sums DistanceKm over consecutive points.
func PathLengthKm(points []Point) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		total += DistanceKm(points[i-1], points[i])
	}
	return total
}

// Box is an axis-aligned bounding box.
type Box struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

// Contains reports whether p lies inside the box, edges included.
func (b Box) Contains(p Point) bool {
	return p.Lat >= b.Min.Lat && p.Lat <= b.Max.Lat && p.Lon >= b.Min.Lon && p.Lon <= b.Max.Lon
}

// Bounds returns the smallest box containing every point. ok is false for an empty input.
func Bounds(points []Point) (box Box, ok bool) {
	if len(points) == 0 {
		return Box{}, false
	}
	box = Box{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		box.Min.Lat = math.Min(box.Min.Lat, p.Lat)
		box.Min.Lon = math.Min(box.Min.Lon, p.Lon)
		box.Max.Lat = math.Max(box.Max.Lat, p.Lat)
		box.Max.Lon = math.Max(box.Max.Lon, p.Lon)
	}
	return box, true
}

// Centroid returns the arithmetic mean of the points. Good enough for city-scale
// paths; it does not handle the antimeridian.
func Centroid(points []Point) (Point, bool) {
	if len(points) == 0 {
		return Point{}, false
	}
	var c Point
	for _, p := range points {
		c.Lat += p.Lat
		c.Lon += p.Lon
	}
	n := float64(len(points))
	return Point{Lat: c.Lat / n, Lon: c.Lon / n}, true
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
