package source

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	cfg := Config{}
	require.NoError(t, cfg.Validate())

	assert.Equal(t, DefaultURL, cfg.URL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.NotEmpty(t, cfg.UserAgent)

	bad := Config{Timeout: -time.Second}
	assert.Error(t, bad.Validate())
}

func TestFetch_Success(t *testing.T) {
	var gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"metadata": {"formatVersion": "2.0"}, "cards": [{"id": 1, "simpleName": "a"}, {"id": 2}]}`))
	}))
	defer server.Close()

	f, err := NewFetcher(Config{URL: server.URL, UserAgent: "test-agent"})
	require.NoError(t, err)

	ds, err := f.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "test-agent", gotAgent)
	require.Len(t, ds.Cards, 2)
	assert.Equal(t, "a", ds.Cards[0]["simpleName"])
	assert.Equal(t, json.Number("2"), ds.Cards[1]["id"])
}

func TestFetch_NonSuccessStatus(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusInternalServerError, http.StatusForbidden} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", status)
		}))

		f, err := NewFetcher(Config{URL: server.URL})
		require.NoError(t, err)

		_, err = f.Fetch(context.Background())
		server.Close()

		var fetchErr *FetchError
		require.True(t, errors.As(err, &fetchErr), "status %d", status)
		assert.Equal(t, status, fetchErr.StatusCode)
	}
}

func TestFetch_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	f, err := NewFetcher(Config{URL: url})
	require.NoError(t, err)

	_, err = f.Fetch(context.Background())

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Zero(t, fetchErr.StatusCode)
	assert.Contains(t, err.Error(), url)
}

func TestFetch_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	f, err := NewFetcher(Config{URL: server.URL, Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	_, err = f.Fetch(context.Background())

	var fetchErr *FetchError
	assert.True(t, errors.As(err, &fetchErr))
}

func TestFetch_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"cards": [`))
	}))
	defer server.Close()

	f, err := NewFetcher(Config{URL: server.URL})
	require.NoError(t, err)

	_, err = f.Fetch(context.Background())

	var parseErr *ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestDecode(t *testing.T) {
	testCases := []struct {
		name    string
		body    string
		wantErr bool
		wantLen int
	}{
		{name: "empty cards", body: `{"cards": []}`, wantLen: 0},
		{name: "missing cards", body: `{"sets": {}}`, wantErr: true},
		{name: "null cards", body: `{"cards": null}`, wantErr: true},
		{name: "not json", body: `<html>`, wantErr: true},
		{name: "cards not a list", body: `{"cards": {"a": 1}}`, wantErr: true},
		{name: "trailing markup", body: `{"cards": [{"simpleName": "a"}]} <html>oops</html>`, wantErr: true},
		{name: "second document", body: `{"cards": []} {"cards": []}`, wantErr: true},
		{name: "stray brace", body: `{"cards": []}}`, wantErr: true},
		{name: "trailing whitespace", body: "{\"cards\": [{\"simpleName\": \"a\"}]}\n\t ", wantLen: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ds, err := Decode([]byte(tc.body))
			if tc.wantErr {
				var parseErr *ParseError
				assert.True(t, errors.As(err, &parseErr))
				return
			}
			require.NoError(t, err)
			assert.Len(t, ds.Cards, tc.wantLen)
		})
	}
}
