package geosnap

// Projects an arbitrary point onto the nearest segment of the active route
// network. Works in raw coordinate-degree space, not geodesic distance: at
// fleet scale (tens of vehicles, hundreds of segments) a flat scan over all
// segments is cheap enough for interactive use, so there is no spatial index.

// DefaultToleranceDeg2 is the maximum squared degree distance at which a
// candidate still counts as "on the road network" (roughly tens of meters
// at the operating latitude).
const DefaultToleranceDeg2 = 3e-5

type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Path is one route's geometry in visiting order: the precomputed polyline
// when one exists, otherwise the stop coordinates themselves.
type Path struct {
	VehicleID int
	Points    []Point
}

// Result is an accepted snap: the projected position, the owning vehicle
// and the squared degree distance from the candidate.
type Result struct {
	Point     Point
	VehicleID int
	Dist2     float64
}

// Snap finds the closest point on any segment of any path to the candidate.
// The candidate is accepted only when the minimum squared distance is
// strictly below tolerance; a candidate exactly at the tolerance is
// rejected. Rejection mutates nothing; the caller reports invalid placement.
func Snap(candidate Point, paths []Path, tolerance float64) (Result, bool) {
	best := Result{Dist2: -1}

	for _, path := range paths {
		for i := 0; i+1 < len(path.Points); i++ {
			proj, d2 := closestOnSegment(candidate, path.Points[i], path.Points[i+1])
			if best.Dist2 < 0 || d2 < best.Dist2 {
				best = Result{Point: proj, VehicleID: path.VehicleID, Dist2: d2}
			}
		}
	}

	if best.Dist2 < 0 || best.Dist2 >= tolerance {
		return Result{}, false
	}
	return best, true
}

// closestOnSegment returns the nearest point to p on the segment a-b and
// the squared distance to it. The projection parameter is clamped to [0,1]
// so the result lies on the segment, never on its infinite extension.
func closestOnSegment(p, a, b Point) (Point, float64) {
	dLat := b.Lat - a.Lat
	dLon := b.Lon - a.Lon

	segLen2 := dLat*dLat + dLon*dLon
	if segLen2 == 0 {
		// Degenerate segment: both endpoints coincide.
		return a, dist2(p, a)
	}

	t := ((p.Lat-a.Lat)*dLat + (p.Lon-a.Lon)*dLon) / segLen2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	proj := Point{Lat: a.Lat + t*dLat, Lon: a.Lon + t*dLon}
	return proj, dist2(p, proj)
}

func dist2(p, q Point) float64 {
	dLat := p.Lat - q.Lat
	dLon := p.Lon - q.Lon
	return dLat*dLat + dLon*dLon
}
