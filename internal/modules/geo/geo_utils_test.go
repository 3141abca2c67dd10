package geo

import (
	"math"
	"testing"

	"cloudpicker/internal/types"
)

func TestDistance_KnownDistances(t *testing.T) {
	tests := []struct {
		name      string
		a, b      types.Coordinate
		wantKm    float64
		tolerance float64
	}{
		{
			name:      "same point",
			a:         types.Coordinate{Latitude: 25.033, Longitude: 121.565},
			b:         types.Coordinate{Latitude: 25.033, Longitude: 121.565},
			wantKm:    0,
			tolerance: 0,
		},
		{
			name:      "London to Paris (~343.5km)",
			a:         types.Coordinate{Latitude: 51.5074, Longitude: -0.1278},
			b:         types.Coordinate{Latitude: 48.8566, Longitude: 2.3522},
			wantKm:    343.5,
			tolerance: 0.5,
		},
		{
			name:      "New York to Los Angeles (~3936km)",
			a:         types.Coordinate{Latitude: 40.7128, Longitude: -74.0060},
			b:         types.Coordinate{Latitude: 34.0522, Longitude: -118.2437},
			wantKm:    3935.6,
			tolerance: 1,
		},
		{
			name:      "antipodal on the equator",
			a:         types.Coordinate{Latitude: 0, Longitude: 0},
			b:         types.Coordinate{Latitude: 0, Longitude: 180},
			wantKm:    20014.1,
			tolerance: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.a, tt.b)
			if math.Abs(got-tt.wantKm) > tt.tolerance {
				t.Errorf("Distance() = %f, want %f (±%f)", got, tt.wantKm, tt.tolerance)
			}
		})
	}
}

func TestDistance_LondonParisFixture(t *testing.T) {
	d := Distance(
		types.Coordinate{Latitude: 51.5074, Longitude: -0.1278},
		types.Coordinate{Latitude: 48.8566, Longitude: 2.3522},
	)
	if d < 343 || d > 344 {
		t.Errorf("London-Paris = %f, want within [343, 344]", d)
	}
}

func TestDistance_Symmetry(t *testing.T) {
	a := types.Coordinate{Latitude: 25.0, Longitude: 121.0}
	b := types.Coordinate{Latitude: 26.0, Longitude: 122.0}
	d1 := Distance(a, b)
	d2 := Distance(b, a)
	if math.Abs(d1-d2) > 1e-9 {
		t.Errorf("distance is not symmetric: %f vs %f", d1, d2)
	}
}

func TestDistance_FiniteNonNegativeOverGrid(t *testing.T) {
	for lat1 := -90.0; lat1 <= 90; lat1 += 22.5 {
		for lon1 := -180.0; lon1 <= 180; lon1 += 45 {
			for lat2 := -90.0; lat2 <= 90; lat2 += 30 {
				for lon2 := -180.0; lon2 <= 180; lon2 += 60 {
					a := types.Coordinate{Latitude: lat1, Longitude: lon1}
					b := types.Coordinate{Latitude: lat2, Longitude: lon2}
					d := Distance(a, b)
					if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
						t.Fatalf("Distance(%v, %v) = %f", a, b, d)
					}
					if math.Abs(d-Distance(b, a)) > 1e-6 {
						t.Fatalf("asymmetric at %v, %v", a, b)
					}
				}
			}
		}
	}
}

func TestDistance_IdenticalPointsAreExactlyZero(t *testing.T) {
	points := []types.Coordinate{
		{Latitude: 0, Longitude: 0},
		{Latitude: 90, Longitude: 180},
		{Latitude: -33.8688, Longitude: 151.2093},
		{Latitude: 59.3293, Longitude: 18.0686},
	}
	for _, p := range points {
		if d := Distance(p, p); d != 0 {
			t.Errorf("Distance(%v, %v) = %v, want 0", p, p, d)
		}
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		c    types.Coordinate
		want bool
	}{
		{types.Coordinate{Latitude: 0, Longitude: 0}, true},
		{types.Coordinate{Latitude: 90, Longitude: -180}, true},
		{types.Coordinate{Latitude: 90.1, Longitude: 0}, false},
		{types.Coordinate{Latitude: 0, Longitude: 181}, false},
		{types.Coordinate{Latitude: math.NaN(), Longitude: 0}, false},
	}
	for _, tt := range tests {
		if got := Valid(tt.c); got != tt.want {
			t.Errorf("Valid(%v) = %v, want %v", tt.c, got, tt.want)
		}
	}
}
