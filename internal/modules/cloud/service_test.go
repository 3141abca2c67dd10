package cloud

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAivenSource_FetchClouds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/clouds", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"clouds":[
			{"cloud_name":"aws-eu-west-1","cloud_description":"Europe, Ireland","geo_latitude":53.0,"geo_longitude":-8.0,"geo_region":"europe","provider":"aws"},
			{"cloud_name":"google-us-east1","cloud_description":"United States, South Carolina","geo_latitude":33.8,"geo_longitude":-81.1}
		]}`)
	}))
	defer srv.Close()

	clouds, err := NewAivenSource(srv.URL+"/", srv.Client()).FetchClouds(context.Background())
	require.NoError(t, err)
	require.Len(t, clouds, 2)
	assert.Equal(t, Cloud{Name: "aws-eu-west-1", Description: "Europe, Ireland", Latitude: 53, Longitude: -8}, clouds[0])
	assert.Equal(t, "google", clouds[1].Provider())
}

func TestAivenSource_Non200IsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewAivenSource(srv.URL, srv.Client()).FetchClouds(context.Background())
	assert.Error(t, err)
}

func TestAivenSource_MissingCloudsField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	_, err := NewAivenSource(srv.URL, srv.Client()).FetchClouds(context.Background())
	assert.Error(t, err)
}

func TestService_LoadOnce(t *testing.T) {
	calls := 0
	src := SourceFunc(func(ctx context.Context) ([]Cloud, error) {
		calls++
		return fixture(), nil
	})
	var snapshotted []Cloud
	sink := SnapshotSinkFunc(func(ctx context.Context, clouds []Cloud) error {
		snapshotted = clouds
		return nil
	})
	svc := NewService(src, sink)

	require.NoError(t, svc.Load(context.Background()))
	require.NoError(t, svc.Load(context.Background()))
	assert.Equal(t, 1, calls)
	assert.Len(t, snapshotted, 4)

	cat, err := svc.Catalog()
	require.NoError(t, err)
	assert.Equal(t, 4, cat.Len())
}

func TestService_LoadFailureSurfacesDataFetchError(t *testing.T) {
	fail := true
	src := SourceFunc(func(ctx context.Context) ([]Cloud, error) {
		if fail {
			return nil, errors.New("connection refused")
		}
		return fixture(), nil
	})
	svc := NewService(src)

	err := svc.Load(context.Background())
	assert.ErrorIs(t, err, ErrDataFetch)

	_, err = svc.Catalog()
	assert.ErrorIs(t, err, ErrDataFetch)

	fail = false
	require.NoError(t, svc.Load(context.Background()))
	_, err = svc.Catalog()
	assert.NoError(t, err)
}

func TestService_CatalogBeforeLoad(t *testing.T) {
	svc := NewService(SourceFunc(func(ctx context.Context) ([]Cloud, error) { return nil, nil }))
	_, err := svc.Catalog()
	assert.ErrorIs(t, err, ErrDataFetch)
}

func TestService_SnapshotFailureDoesNotFailLoad(t *testing.T) {
	svc := NewService(
		SourceFunc(func(ctx context.Context) ([]Cloud, error) { return fixture(), nil }),
		SnapshotSinkFunc(func(ctx context.Context, clouds []Cloud) error { return errors.New("disk full") }),
	)
	assert.NoError(t, svc.Load(context.Background()))
}

type invalidatingSource struct {
	err         error
	invalidated int
}

func (s *invalidatingSource) FetchClouds(context.Context) ([]Cloud, error) {
	if s.err != nil {
		return nil, s.err
	}
	return fixture(), nil
}

func (s *invalidatingSource) Invalidate(context.Context) error {
	s.invalidated++
	return nil
}

func TestService_FailedLoadInvalidatesSource(t *testing.T) {
	src := &invalidatingSource{err: errors.New("bad payload")}
	svc := NewService(src)

	require.ErrorIs(t, svc.Load(context.Background()), ErrDataFetch)
	assert.Equal(t, 1, src.invalidated)

	src.err = nil
	require.NoError(t, svc.Load(context.Background()))
	assert.Equal(t, 1, src.invalidated)
}
