package geo

import (
	"fmt"
	"math"
	"strings"

	"service-tracking/internal/apperr"
)

const polylinePrecision = 1e5

// ErrMalformedPolyline is returned for encoded polylines that cannot be decoded.
var ErrMalformedPolyline = apperr.NewKind("malformed polyline", apperr.CodeInvalid, apperr.ErrInvalid)

// DecodePolyline decodes a 5-decimal encoded polyline. An empty input yields no points.
func DecodePolyline(encoded string) ([]Point, error) {
	if encoded == "" {
		return nil, nil
	}

	points := make([]Point, 0, len(encoded)/4)
	var lat, lon int64
	for i := 0; i < len(encoded); {
		dLat, next, err := decodeValue(encoded, i)
		if err != nil {
			return nil, err
		}
		if next >= len(encoded) {
			return nil, fmt.Errorf("%w: latitude at offset %d has no longitude", ErrMalformedPolyline, i)
		}
		dLon, next, err := decodeValue(encoded, next)
		if err != nil {
			return nil, err
		}
		i = next

		lat += dLat
		lon += dLon
		points = append(points, Point{
			Lat: float64(lat) / polylinePrecision,
			Lon: float64(lon) / polylinePrecision,
		})
	}

	if len(points) == 0 {
		return nil, fmt.Errorf("%w: no points decoded", ErrMalformedPolyline)
	}
	return points, nil
}

// decodeValue reads one zig-zag varint starting at offset i.
func decodeValue(s string, i int) (value int64, next int, err error) {
	var result int64
	var shift uint
	for {
		if i >= len(s) {
			return 0, 0, fmt.Errorf("%w: truncated codeword at offset %d", ErrMalformedPolyline, i)
		}
		b := int64(s[i]) - 63
		if b < 0 || b > 63 {
			return 0, 0, fmt.Errorf("%w: invalid byte %q at offset %d", ErrMalformedPolyline, s[i], i)
		}
		i++
		result |= (b & 0x1f) << shift
		shift += 5
		if b < 0x20 {
			break
		}
		// 32-bit values never need more than 7 chunks
		if shift > 35 {
			return 0, 0, fmt.Errorf("%w: codeword too long at offset %d", ErrMalformedPolyline, i)
		}
	}
	if result&1 != 0 {
		return ^(result >> 1), i, nil
	}
	return result >> 1, i, nil
}

// EncodePolyline encodes points with 5-decimal precision.
func EncodePolyline(points []Point) string {
	var sb strings.Builder
	var prevLat, prevLon int64
	for _, p := range points {
		lat := int64(math.Round(p.Lat * polylinePrecision))
		lon := int64(math.Round(p.Lon * polylinePrecision))
		encodeValue(&sb, lat-prevLat)
		encodeValue(&sb, lon-prevLon)
		prevLat, prevLon = lat, lon
	}
	return sb.String()
}

func encodeValue(sb *strings.Builder, v int64) {
	u := v << 1
	if v < 0 {
		u = ^u
	}
	for u >= 0x20 {
		sb.WriteByte(byte((0x20 | (u & 0x1f)) + 63))
		u >>= 5
	}
	sb.WriteByte(byte(u + 63))
}
