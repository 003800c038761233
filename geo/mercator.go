package geo

import "math"

// Map dimensions of the Mercator projection. X spans [0, MapWidth] and Y is
// centered on MapHeight/2 at the equator.
const (
	MapWidth  = 2000.0
	MapHeight = 1000.0
)

// MaxLatitude is the latitude at which the projection is clipped. Beyond it
// Y grows without bound.
const MaxLatitude = 85.05112878

// LongitudeToX projects a longitude in degrees onto the map's x axis.
func LongitudeToX(lng float64) float64 {
	return (lng + 180) * (MapWidth / 360)
}

// LatitudeToY projects a latitude in degrees onto the map's y axis. North is
// up, so Y decreases as latitude increases.
func LatitudeToY(lat float64) float64 {
	lat = math.Max(-MaxLatitude, math.Min(MaxLatitude, lat))
	rad := lat * math.Pi / 180
	mercN := math.Log(math.Tan(math.Pi/4 + rad/2))
	return MapHeight/2 - MapWidth*mercN/(2*math.Pi)
}

// Project returns the planar coordinates of a latitude/longitude pair.
func Project(lat, lng float64) (x, y float64) {
	return LongitudeToX(lng), LatitudeToY(lat)
}
