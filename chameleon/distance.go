package chameleon

import "math"

// EarthRadiusKm is the mean Earth radius used by HaversineMetric.
const EarthRadiusKm = 6371.0

const degreesToRadians = math.Pi / 180.0

// Point is a geo-located record. Index is the point's position in the slice
// passed to Run and addresses its row and column in every graph.
type Point struct {
	Index int
	// X and Y are planar (projected) coordinates used for splitting.
	X, Y float64
	// Lat and Lng are the original geographic coordinates in degrees.
	Lat, Lng float64
	// Label is the ground-truth group. It names clusters and is never used
	// for clustering decisions.
	Label string
}

// DistanceMetric computes a symmetric, non-negative distance between two
// points that is zero only for coincident points.
type DistanceMetric interface {
	Distance(a, b Point) float64
}

// DistanceFunc adapts a plain function into a DistanceMetric.
type DistanceFunc func(a, b Point) float64

func (f DistanceFunc) Distance(a, b Point) float64 { return f(a, b) }

// HaversineMetric computes the great-circle distance in kilometers between
// the geographic coordinates of two points.
type HaversineMetric struct{}

func (HaversineMetric) Distance(a, b Point) float64 {
	return Haversine(a.Lat, a.Lng, b.Lat, b.Lng)
}

// Haversine returns the great-circle distance in kilometers between two
// latitude/longitude pairs given in degrees.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * degreesToRadians
	dLng := (lng2 - lng1) * degreesToRadians
	phi1 := lat1 * degreesToRadians
	phi2 := lat2 * degreesToRadians

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	a := sinLat*sinLat + sinLng*sinLng*math.Cos(phi1)*math.Cos(phi2)
	a = math.Min(1, math.Max(0, a))
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return c * EarthRadiusKm
}
