package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"cloudpicker/internal/http/handlers"
	"cloudpicker/internal/modules/cloud"
)

type liveFunc func(ctx context.Context) ([]cloud.Cloud, error)

func (f liveFunc) FetchLive(ctx context.Context) ([]cloud.Cloud, error) { return f(ctx) }

func serveClouds(l handlers.LiveLister) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/clouds", handlers.NewCloudHandler(l).List)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/clouds", nil))
	return w
}

func TestCloudList(t *testing.T) {
	w := serveClouds(liveFunc(func(context.Context) ([]cloud.Cloud, error) {
		return fixture[:1], nil
	}))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"cloud_name":"aws-eu-west-2","cloud_description":"London","geo_latitude":51.5,"geo_longitude":-0.12}]`, w.Body.String())
}

func TestCloudList_Empty(t *testing.T) {
	w := serveClouds(liveFunc(func(context.Context) ([]cloud.Cloud, error) { return nil, nil }))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestCloudList_UpstreamDown(t *testing.T) {
	w := serveClouds(liveFunc(func(context.Context) ([]cloud.Cloud, error) {
		return nil, errors.New("timeout")
	}))
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.JSONEq(t, `{"error":"unable to load data"}`, w.Body.String())
}
