package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const employersBody = `{
	"success": true,
	"status": "OK",
	"response": {
		"attributionURL": "https://www.glassdoor.com/Reviews/acme-reviews-SRCH_KE0,4.htm",
		"currentPageNumber": 1,
		"totalNumberOfPages": 1,
		"totalRecordCount": 2,
		"employers": [
			{"id": 42, "name": "Acme", "website": "www.acme.com", "overallRating": "3.9", "numberOfRatings": 120},
			{"id": 43, "name": "Acme Labs", "overallRating": 4.1}
		]
	}
}`

type recordedRequest struct {
	path  string
	query url.Values
	agent string
}

func newTestServer(t *testing.T, status int, body string) (*httptest.Server, *[]recordedRequest) {
	t.Helper()

	var (
		mu       sync.Mutex
		requests []recordedRequest
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requests = append(requests, recordedRequest{path: r.URL.Path, query: r.URL.Query(), agent: r.UserAgent()})
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if body != "" {
			_, _ = w.Write([]byte(body))
		}
	}))
	t.Cleanup(server.Close)
	return server, &requests
}

func newTestClient(t *testing.T, endpoint string, creds ...Credential) *Client {
	t.Helper()
	if len(creds) == 0 {
		creds = []Credential{{PartnerID: 134530, Key: "test-key"}}
	}
	pool, err := NewCredentialPool(creds)
	require.NoError(t, err)

	client := NewClient(ClientConfig{Endpoint: endpoint, RequestTimeout: 5 * time.Second}, pool)
	t.Cleanup(client.Close)
	return client
}

func TestClient_SearchEmployers_OK(t *testing.T) {
	server, requests := newTestServer(t, http.StatusOK, employersBody)
	client := newTestClient(t, server.URL)

	employers, err := client.SearchEmployers(context.Background(), "acme & co")
	require.NoError(t, err)
	require.Len(t, employers, 2)

	assert.Equal(t, 42, employers[0].ID)
	assert.Equal(t, "Acme", employers[0].Name)
	assert.Equal(t, NumberOf("3.9"), employers[0].OverallRating)
	assert.Equal(t, NumberOf("120"), employers[0].NumberOfRatings)
	assert.False(t, employers[0].RecommendToFriendRating.Valid)
	assert.Equal(t, NumberOf("4.1"), employers[1].OverallRating)

	require.Len(t, *requests, 1)
	got := (*requests)[0]
	assert.Equal(t, "/api.htm", got.path)
	assert.Equal(t, "134530", got.query.Get("t.p"))
	assert.Equal(t, "test-key", got.query.Get("t.k"))
	assert.Equal(t, "json", got.query.Get("format"))
	assert.Equal(t, "1", got.query.Get("v"))
	assert.Equal(t, "employers", got.query.Get("action"))
	assert.Equal(t, "acme & co", got.query.Get("q"))
	assert.Equal(t, "Mozilla/5.0", got.agent)
}

func TestClient_SearchEmployers_EmptyName(t *testing.T) {
	server, requests := newTestServer(t, http.StatusOK, employersBody)
	client := newTestClient(t, server.URL)

	employers, err := client.SearchEmployers(context.Background(), "")
	assert.NoError(t, err)
	assert.Empty(t, employers)
	assert.Empty(t, *requests)
	assert.Zero(t, client.Stats().TotalRequests)
}

func TestClient_SearchEmployers_NoResults(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"not found", http.StatusNotFound, ""},
		{"no content", http.StatusNoContent, ""},
		{"null employers", http.StatusOK, `{"success":true,"response":{"employers":null}}`},
		{"missing response", http.StatusOK, `{"success":true}`},
		{"empty body", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, requests := newTestServer(t, tt.status, tt.body)
			client := newTestClient(t, server.URL)

			employers, err := client.SearchEmployers(context.Background(), "acme")
			assert.NoError(t, err)
			assert.Empty(t, employers)
			assert.Len(t, *requests, 1)
			assert.Equal(t, uint64(1), client.Stats().EmptyResponses)
		})
	}
}

func TestClient_SearchEmployers_UnexpectedStatus(t *testing.T) {
	server, _ := newTestServer(t, http.StatusInternalServerError, "boom")
	client := newTestClient(t, server.URL)

	_, err := client.SearchEmployers(context.Background(), "acme")

	var respErr *UnexpectedResponseError
	require.True(t, errors.As(err, &respErr))
	assert.Equal(t, http.StatusInternalServerError, respErr.StatusCode)
	assert.Equal(t, uint64(1), client.Stats().FailedRequests)
}

func TestClient_SearchEmployers_MalformedBody(t *testing.T) {
	server, _ := newTestServer(t, http.StatusOK, "{not json")
	client := newTestClient(t, server.URL)

	_, err := client.SearchEmployers(context.Background(), "acme")

	var respErr *UnexpectedResponseError
	require.True(t, errors.As(err, &respErr))
	assert.Equal(t, http.StatusOK, respErr.StatusCode)
	assert.Error(t, respErr.Cause)
}

func TestClient_SearchEmployers_TransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	endpoint := server.URL
	server.Close()

	client := newTestClient(t, endpoint)
	_, err := client.SearchEmployers(context.Background(), "acme")

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Error(t, transportErr.Unwrap())
}

func TestClient_SearchEmployers_CanceledContext(t *testing.T) {
	server, requests := newTestServer(t, http.StatusOK, employersBody)
	client := newTestClient(t, server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.SearchEmployers(ctx, "acme")

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, *requests)
}

func TestClient_SearchEmployers_RotatesCredentials(t *testing.T) {
	server, requests := newTestServer(t, http.StatusOK, employersBody)
	client := newTestClient(t, server.URL,
		Credential{PartnerID: 1, Key: "a"},
		Credential{PartnerID: 2, Key: "b"},
	)

	for i := 0; i < 3; i++ {
		_, err := client.SearchEmployers(context.Background(), "acme")
		require.NoError(t, err)
	}

	require.Len(t, *requests, 3)
	assert.Equal(t, "a", (*requests)[0].query.Get("t.k"))
	assert.Equal(t, "b", (*requests)[1].query.Get("t.k"))
	assert.Equal(t, "a", (*requests)[2].query.Get("t.k"))
}

func TestClient_SearchEmployers_LimitsInFlight(t *testing.T) {
	server, requests := newTestServer(t, http.StatusOK, employersBody)
	pool, err := NewCredentialPool([]Credential{{PartnerID: 1, Key: "a"}})
	require.NoError(t, err)

	client := NewClient(ClientConfig{Endpoint: server.URL, MaxInFlight: 1}, pool)
	defer client.Close()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := client.SearchEmployers(context.Background(), "acme")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Len(t, *requests, 4)
	stats := client.Stats()
	require.NotNil(t, stats.Limiter)
	assert.Equal(t, 1, stats.Limiter.MaxConcurrent)
	assert.Equal(t, 0, stats.Limiter.CurrentActive)
	assert.Equal(t, int64(4), stats.Limiter.TotalAcquires)
}
