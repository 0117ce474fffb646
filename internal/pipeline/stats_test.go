package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsClient_Lookup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/p/num/100", r.URL.Path)
		// uHunt answers with text/plain; the client forces JSON decoding
		w.Header().Set("Content-Type", "text/plain")
		_, _ = fmt.Fprint(w, `{"pid":36,"num":100,"title":"The 3n + 1 problem","dacu":80000,"rtl":3000}`)
	}))
	defer server.Close()

	client := NewStatsClient(5*time.Second, "test-agent", "", "")
	stats, err := client.Lookup(context.Background(), server.URL+"/api/p/num/100")
	require.NoError(t, err)
	assert.Equal(t, "The 3n + 1 problem", stats.Title)
	assert.Equal(t, 3000, stats.TimeLimitMillis)
}

func TestStatsClient_EmptyRecord(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	client := NewStatsClient(5*time.Second, "test-agent", "", "")
	_, err := client.Lookup(context.Background(), server.URL)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestStatsClient_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewStatsClient(5*time.Second, "test-agent", "", "")
	_, err := client.Lookup(context.Background(), server.URL)

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, http.StatusInternalServerError, fe.StatusCode)
}
