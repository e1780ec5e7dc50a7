package refdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchDecodesFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"name":"ANSTO","lat":-34.05,"lon":150.98,"tier":0,"type":"Source"},
			{"name":"St George","lat":-33.97,"lon":151.13,"tier":1,"type":"Metro"}
		]`))
	}))
	defer srv.Close()

	hospitals, err := Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Len(t, hospitals, 2)
	assert.Equal(t, "ANSTO", hospitals[0].Name)
	assert.Equal(t, 0, hospitals[0].Tier)
	assert.Equal(t, -33.97, hospitals[1].Lat)
}

func TestFetchEmptyFeedIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := Fetch(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestFetchNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := Fetch(context.Background(), srv.URL)
	assert.ErrorContains(t, err, "502")
}
