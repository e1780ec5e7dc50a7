package geosnap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClosestOnSegmentPerpendicular(t *testing.T) {
	a := Point{Lat: 0, Lon: 0}
	b := Point{Lat: 10, Lon: 0}

	proj, d2 := closestOnSegment(Point{Lat: 5, Lon: 5}, a, b)
	assert.Equal(t, Point{Lat: 5, Lon: 0}, proj)
	assert.InDelta(t, 25.0, d2, 1e-12)
}

func TestClosestOnSegmentClampsToEndpoint(t *testing.T) {
	a := Point{Lat: 0, Lon: 0}
	b := Point{Lat: 10, Lon: 0}

	// Beyond the start: clamped to a, not extrapolated.
	proj, d2 := closestOnSegment(Point{Lat: -5, Lon: 0}, a, b)
	assert.Equal(t, a, proj)
	assert.InDelta(t, 25.0, d2, 1e-12)

	// Beyond the end: clamped to b.
	proj, _ = closestOnSegment(Point{Lat: 12, Lon: 1}, a, b)
	assert.Equal(t, b, proj)
}

func TestClosestOnSegmentDegenerate(t *testing.T) {
	a := Point{Lat: 3, Lon: 3}
	proj, d2 := closestOnSegment(Point{Lat: 3, Lon: 4}, a, a)
	assert.Equal(t, a, proj)
	assert.InDelta(t, 1.0, d2, 1e-12)
}

func TestSnapAcceptsNearbyPoint(t *testing.T) {
	paths := []Path{
		{VehicleID: 0, Points: []Point{{-33.90, 151.00}, {-33.90, 151.10}}},
		{VehicleID: 1, Points: []Point{{-34.00, 151.00}, {-34.00, 151.10}}},
	}

	// 0.001 degrees off vehicle 1's segment: d2 = 1e-6 < 3e-5.
	res, ok := Snap(Point{Lat: -34.001, Lon: 151.05}, paths, DefaultToleranceDeg2)
	require.True(t, ok)
	assert.Equal(t, 1, res.VehicleID)
	assert.InDelta(t, -34.00, res.Point.Lat, 1e-9)
	assert.InDelta(t, 151.05, res.Point.Lon, 1e-9)
	assert.InDelta(t, 1e-6, res.Dist2, 1e-12)
}

func TestSnapRejectsOffRoutePoint(t *testing.T) {
	paths := []Path{
		{VehicleID: 0, Points: []Point{{-33.90, 151.00}, {-33.90, 151.10}}},
	}

	_, ok := Snap(Point{Lat: -33.80, Lon: 151.05}, paths, DefaultToleranceDeg2)
	assert.False(t, ok)
}

func TestSnapToleranceBoundaryRejects(t *testing.T) {
	paths := []Path{
		{VehicleID: 0, Points: []Point{{0, 0}, {0, 1}}},
	}

	candidate := Point{Lat: 0.002, Lon: 0.5}
	_, d2 := closestOnSegment(candidate, paths[0].Points[0], paths[0].Points[1])

	// A squared distance exactly at the tolerance is rejected.
	_, ok := Snap(candidate, paths, d2)
	assert.False(t, ok)

	// Strictly inside accepts.
	res, ok := Snap(candidate, paths, d2*1.001)
	require.True(t, ok)
	assert.Equal(t, d2, res.Dist2)
}

func TestSnapNoPaths(t *testing.T) {
	_, ok := Snap(Point{}, nil, DefaultToleranceDeg2)
	assert.False(t, ok)
}
