// Package position resolves the user position from an external provider.
// A position arrives at most once; until then it is absent.
package position

import (
	"context"
	"errors"
	"fmt"

	"googlemaps.github.io/maps"

	"cloudpicker/internal/modules/geo"
	"cloudpicker/internal/types"
)

// ErrUnavailable means the provider cannot produce a position (denied,
// unsupported or not configured).
var ErrUnavailable = errors.New("position unavailable")

type Source interface {
	Locate(ctx context.Context) (types.Coordinate, error)
}

// StaticSource always yields the same coordinate.
type StaticSource types.Coordinate

func (s StaticSource) Locate(ctx context.Context) (types.Coordinate, error) {
	c := types.Coordinate(s)
	if !geo.Valid(c) {
		return types.Coordinate{}, fmt.Errorf("%w: static coordinate out of range", ErrUnavailable)
	}
	return c, nil
}

// NoSource never yields a position.
type NoSource struct{}

func (NoSource) Locate(ctx context.Context) (types.Coordinate, error) {
	return types.Coordinate{}, ErrUnavailable
}

// geolocator is the slice of *maps.Client we use.
type geolocator interface {
	Geolocate(ctx context.Context, r *maps.GeolocationRequest) (*maps.GeolocationResult, error)
}

// GoogleSource asks the Google Maps Geolocation API where the caller is,
// based on its IP address.
type GoogleSource struct {
	client geolocator
}

func NewGoogleSource(apiKey string) (*GoogleSource, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GoogleSource{client: client}, nil
}

func (s *GoogleSource) Locate(ctx context.Context) (types.Coordinate, error) {
	res, err := s.client.Geolocate(ctx, &maps.GeolocationRequest{ConsiderIP: true})
	if err != nil {
		return types.Coordinate{}, fmt.Errorf("geolocation api error: %w", err)
	}
	return types.Coordinate{Latitude: res.Location.Lat, Longitude: res.Location.Lng}, nil
}
