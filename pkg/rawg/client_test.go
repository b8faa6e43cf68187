package rawg

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResponse = `{
  "count": 1,
  "results": [{
    "id": 3498,
    "name": "Grand Theft Auto V",
    "background_image": "https://media.rawg.io/gta5.jpg",
    "rating": 4.47,
    "released": "2013-09-17",
    "platforms": [{"platform": {"name": "PC"}}, {"platform": {"name": "PlayStation 5"}}],
    "genres": [{"name": "Action"}]
  }]
}`

func TestClient_SearchGames(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/games", r.URL.Path)
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL + "/", APIKey: "k-123", PageSize: 5})
	games, err := client.SearchGames(context.Background(), url.Values{"search": {"gta"}})
	require.NoError(t, err)

	assert.Equal(t, "k-123", gotQuery.Get("key"))
	assert.Equal(t, "gta", gotQuery.Get("search"))
	assert.Equal(t, "5", gotQuery.Get("page_size"))

	require.Len(t, games, 1)
	assert.Equal(t, 3498, games[0].ID)
	assert.Equal(t, "Grand Theft Auto V", games[0].Name)
	assert.Equal(t, "PlayStation 5", games[0].Platforms[1].Platform.Name)
	assert.Equal(t, "Action", games[0].Genres[0].Name)
}

func TestClient_MissingKeyMakesNoRequest(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	_, err := client.SearchGames(context.Background(), url.Values{"search": {"zelda"}})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestClient_UpstreamStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"bad key"}`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, APIKey: "bad"})
	_, err := client.SearchGames(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestClient_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, APIKey: "k", FailureThreshold: 2, OpenTimeout: time.Minute})
	for i := 0; i < 2; i++ {
		_, err := client.SearchGames(context.Background(), nil)
		require.Error(t, err)
	}

	_, err := client.SearchGames(context.Background(), nil)
	assert.True(t, errors.Is(err, gobreaker.ErrOpenState))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}
