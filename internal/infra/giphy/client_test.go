package giphy

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_RequiresKey(t *testing.T) {
	_, err := NewClient(Config{})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestClient_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("api_key"))
		assert.Equal(t, "perro", r.URL.Query().Get("q"))
		assert.Equal(t, "3", r.URL.Query().Get("limit"))
		assert.Equal(t, "es", r.URL.Query().Get("lang"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[
			{"id":"a","title":"dog","images":{"original":{"url":"https://media.example/a.gif","width":"480","height":"270"}}},
			{"id":"b","title":"broken","images":{"original":{"url":""}}}
		]}`))
	}))
	defer srv.Close()

	c, err := NewClient(Config{APIKey: "secret", BaseURL: srv.URL + "/", Lang: "es", Limit: 3, Timeout: time.Second})
	require.NoError(t, err)

	gifs, err := c.Search(context.Background(), " perro ")
	require.NoError(t, err)
	require.Len(t, gifs, 1)
	assert.Equal(t, "a", gifs[0].ID)
	assert.Equal(t, "https://media.example/a.gif", gifs[0].URL)
	assert.Equal(t, 480, gifs[0].Width)
	assert.Equal(t, 270, gifs[0].Height)
}

func TestClient_SearchEmptyQuery(t *testing.T) {
	c, err := NewClient(Config{APIKey: "secret", BaseURL: "http://127.0.0.1:0"})
	require.NoError(t, err)

	gifs, err := c.Search(context.Background(), "   ")
	assert.NoError(t, err)
	assert.Nil(t, gifs)
}

func TestClient_SearchStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid key", http.StatusForbidden)
	}))
	defer srv.Close()

	c, err := NewClient(Config{APIKey: "bad", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = c.Search(context.Background(), "perro")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestClient_SearchCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	c, err := NewClient(Config{APIKey: "secret", BaseURL: srv.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = c.Search(ctx, "perro")
	assert.Error(t, err)
}
