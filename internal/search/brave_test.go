package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ObiAU/prospectpulse/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTimeout = 5 * time.Second

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient("test-key", testTimeout)
	client.baseURL = server.URL

	return client, server
}

func TestSearch_EmptyQueryFailsWithoutOutboundCall(t *testing.T) {
	calls := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
	})

	_, err := client.Search(context.Background(), "")

	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "query", validationErr.Field)
	assert.Zero(t, calls)
}

func TestSearch_MissingCredential(t *testing.T) {
	client := NewClient("", testTimeout)

	_, err := client.Search(context.Background(), "acme")

	var configErr *apperrors.ConfigurationError
	require.ErrorAs(t, err, &configErr)
}

func TestSearch_UpstreamErrorCarriesStatusAndBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("rate limited"))
	})

	_, err := client.Search(context.Background(), "acme")

	var upstreamErr *apperrors.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, http.StatusTooManyRequests, upstreamErr.StatusCode)
	assert.Contains(t, upstreamErr.Body, "rate limited")
}

func TestSearch_FixedPolicyParameters(t *testing.T) {
	var query map[string]string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = map[string]string{
			"q":           r.URL.Query().Get("q"),
			"count":       r.URL.Query().Get("count"),
			"freshness":   r.URL.Query().Get("freshness"),
			"country":     r.URL.Query().Get("country"),
			"search_lang": r.URL.Query().Get("search_lang"),
		}
		assert.Equal(t, "test-key", r.Header.Get("X-Subscription-Token"))
		_, _ = w.Write([]byte(`{"web":{"results":[]}}`))
	})

	resp, err := client.Search(context.Background(), "acme funding")
	require.NoError(t, err)

	assert.Equal(t, "acme funding", query["q"])
	assert.Equal(t, "10", query["count"])
	assert.Equal(t, "pw", query["freshness"])
	assert.Equal(t, "us", query["country"])
	assert.Equal(t, "en", query["search_lang"])
	assert.Equal(t, "acme funding", resp.Query)
	assert.Zero(t, resp.Total)
}

func TestSearch_NormalizationDefaults(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"web":{"results":[
			{"url":"https://example.com/a"},
			{"title":"Acme raises $50M","url":"https://example.com/b","description":"Series B","age":"2 days ago","meta_url":{"favicon":"https://example.com/fav.ico"}},
			{"title":"Dated","url":"https://example.com/c","page_age":"2025-08-20T00:00:00"}
		]}}`))
	})

	resp, err := client.Search(context.Background(), "acme")
	require.NoError(t, err)
	require.Len(t, resp.Results, 3)

	assert.Equal(t, "No title", resp.Results[0].Title)
	assert.Equal(t, "No description", resp.Results[0].Description)
	assert.Equal(t, "Recent", resp.Results[0].Published)
	assert.Empty(t, resp.Results[0].Favicon)

	assert.Equal(t, "Acme raises $50M", resp.Results[1].Title)
	assert.Equal(t, "2 days ago", resp.Results[1].Published)
	assert.Equal(t, "https://example.com/fav.ico", resp.Results[1].Favicon)

	// age label wins over page_age; page_age fills in when age is absent
	assert.Equal(t, "2025-08-20T00:00:00", resp.Results[2].Published)
}

func TestSearch_RepeatedQueriesAreIdempotent(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"web":{"results":[{"title":"hit","url":"https://example.com","description":"d","age":"1 day ago"}]}}`))
	})

	first, err := client.Search(context.Background(), "acme")
	require.NoError(t, err)

	second, err := client.Search(context.Background(), "acme")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSearch_CapsResultCount(t *testing.T) {
	body := `{"web":{"results":[`
	for i := 0; i < 12; i++ {
		if i > 0 {
			body += ","
		}
		body += `{"title":"hit","url":"https://example.com"}`
	}
	body += `]}}`

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	})

	resp, err := client.Search(context.Background(), "acme")
	require.NoError(t, err)
	assert.Len(t, resp.Results, maxResults)
	assert.Equal(t, maxResults, resp.Total)
}
