package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/damon-houk/ecb-currency-exchange/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feedBody = `<?xml version="1.0" encoding="UTF-8"?>
<gesmes:Envelope xmlns:gesmes="http://www.gesmes.org/xml/2002-08-01" xmlns="http://www.ecb.int/vocabulary/2002-08-01/eurofxref">
	<Cube><Cube time='2024-01-01'><Cube currency='USD' rate='1.1'/></Cube></Cube>
</gesmes:Envelope>`

func newTestClient(url string) *ECBFeedClient {
	return NewECBFeedClient(url, nil, logger.NewJSONLogger(&strings.Builder{}, logger.DebugLevel))
}

func TestFetchFeed(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/eurofxref-daily.xml", r.URL.Path)
		assert.Equal(t, "application/xml", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "text/xml")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(feedBody))
	}))
	defer server.Close()

	client := newTestClient(server.URL + "/eurofxref-daily.xml")

	body, err := client.FetchFeed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, feedBody, string(body))
	assert.Equal(t, int32(1), hits.Load())
}

func TestFetchFeedErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(strings.Repeat("x", 1000)))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FetchFeed(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Less(t, len(err.Error()), 400)
}

func TestFetchFeedDoesNotRetry(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FetchFeed(context.Background())
	assert.Error(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestFetchFeedEmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FetchFeed(context.Background())
	assert.Error(t, err)
}

func TestFetchFeedUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newTestClient(url).FetchFeed(context.Background())
	assert.Error(t, err)
}

func TestFetchFeedHonoursContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newTestClient(server.URL).FetchFeed(ctx)
	assert.Error(t, err)
}

func TestNewECBFeedClientDefaults(t *testing.T) {
	client := NewECBFeedClient("", nil, nil)
	assert.Equal(t, DefaultFeedURL, client.feedURL)
	assert.Equal(t, 10*time.Second, client.httpClient.Timeout)
	assert.NotNil(t, client.logger)
}

func TestFetchFeedRejectsOversizedDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(strings.Repeat("x", maxFeedSize+1)))
	}))
	defer server.Close()

	body, err := newTestClient(server.URL).FetchFeed(context.Background())
	require.Error(t, err)
	assert.Nil(t, body)
	assert.Contains(t, err.Error(), "exceeds limit")
}

func TestFetchFeedAcceptsDocumentAtLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(strings.Repeat("x", maxFeedSize)))
	}))
	defer server.Close()

	body, err := newTestClient(server.URL).FetchFeed(context.Background())
	require.NoError(t, err)
	assert.Len(t, body, maxFeedSize)
}
