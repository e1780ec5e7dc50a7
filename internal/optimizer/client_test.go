package optimizer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptimizeSendsAvoidPoint(t *testing.T) {
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/optimize", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"routes":[{"vehicle_id":0,"steps":[{"name":"ANSTO","tier":0,"arrival_time_min":0}]}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	routes, err := c.Optimize(context.Background(), &AvoidPoint{Lat: -33.93, Lon: 151.08})
	require.NoError(t, err)
	require.Len(t, routes, 1)
	assert.Equal(t, 0, routes[0].VehicleID)

	avoid, ok := gotBody["avoid_point"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, -33.93, avoid["lat"])
	assert.Equal(t, 151.08, avoid["lon"])
}

func TestOptimizeOmitsAvoidPointWhenNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, present := body["avoid_point"]
		assert.False(t, present)

		w.Write([]byte(`{"routes":[{"vehicle_id":0}]}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Optimize(context.Background(), nil)
	require.NoError(t, err)
}

func TestOptimizeRetriesTransientFailure(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "solver busy", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"routes":[{"vehicle_id":2}]}`))
	}))
	defer srv.Close()

	routes, err := NewClient(srv.URL).Optimize(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, routes[0].VehicleID)
	assert.Equal(t, int32(3), calls.Load())
}

func TestOptimizeDoesNotRetryClientError(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Optimize(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestOptimizeEmptyResultIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"routes":[]}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Optimize(context.Background(), nil)
	assert.Error(t, err)
}
