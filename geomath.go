package bikeinfra

import (
	"math"

	"github.com/paulmach/orb"
)

const (
	pi180    = math.Pi / 180.0
	pi180Rev = 180.0 / math.Pi
)

// degreesToRadians deg = r * pi / 180
func degreesToRadians(d float64) float64 {
	return d * pi180
}

// radiansTodegrees r = deg  * 180 / pi
func radiansTodegrees(d float64) float64 {
	return d * pi180Rev
}

// findCentroid returns center point for given set of points (on sphere)
func findCentroid(points []orb.Point) orb.Point {
	totalPoints := len(points)
	if totalPoints == 1 {
		return points[0]
	}
	x, y, z := 0.0, 0.0, 0.0
	for i := 0; i < totalPoints; i++ {
		longitude := degreesToRadians(points[i].Lon())
		latitude := degreesToRadians(points[i].Lat())
		c1 := math.Cos(latitude)
		x += c1 * math.Cos(longitude)
		y += c1 * math.Sin(longitude)
		z += math.Sin(latitude)
	}

	x /= float64(totalPoints)
	y /= float64(totalPoints)
	z /= float64(totalPoints)

	centralLongitude := math.Atan2(y, x)
	centralSquareRoot := math.Sqrt(x*x + y*y)
	centralLatitude := math.Atan2(z, centralSquareRoot)

	return orb.Point{radiansTodegrees(centralLongitude), radiansTodegrees(centralLatitude)}
}

// ringCentroid returns centroid of the polygon outer ring. Closing point is not counted twice
func ringCentroid(ring orb.Ring) (orb.Point, bool) {
	points := []orb.Point(ring)
	if len(points) > 1 && points[0] == points[len(points)-1] {
		points = points[:len(points)-1]
	}
	if len(points) == 0 {
		return orb.Point{}, false
	}
	return findCentroid(points), true
}

// asLineString returns line representation of the geometry if there is one
func asLineString(geom orb.Geometry) (orb.LineString, bool) {
	switch g := geom.(type) {
	case orb.LineString:
		return g, len(g) >= 2
	case orb.Ring:
		return orb.LineString(g), len(g) >= 2
	case orb.Polygon:
		if len(g) == 0 {
			return nil, false
		}
		return orb.LineString(g[0]), len(g[0]) >= 2
	default:
		return nil, false
	}
}

// asPolygon returns polygon representation of the geometry if there is one
func asPolygon(geom orb.Geometry) (orb.Polygon, bool) {
	switch g := geom.(type) {
	case orb.Polygon:
		return g, len(g) > 0 && len(g[0]) >= 4
	case orb.Ring:
		return orb.Polygon{g}, len(g) >= 4
	default:
		return nil, false
	}
}
