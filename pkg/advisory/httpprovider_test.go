package advisory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPProviderRecommend(t *testing.T) {
	var received Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"trainNo":32242,"trainName":"SEALDAH - DURONTO EXPRESS","action":"Hold","text":"Hold it","kpis":{"punctualityImpact":"Medium","throughputImpact":"Medium","avgDelay":"5-12 min"}}]`))
	}))
	defer server.Close()

	provider := NewHTTPProvider(server.URL)
	recommendations, err := provider.Recommend(context.Background(), sealdahRequest(t, 32242, CauseAccident))
	require.NoError(t, err)

	assert.Equal(t, 32242, received.DisruptionTrainID)
	assert.Equal(t, CauseAccident, received.Cause)
	assert.Len(t, received.Trains, 7)

	require.Len(t, recommendations, 1)
	assert.Equal(t, ActionHold, recommendations[0].Action)
	assert.Equal(t, "5-12 min", recommendations[0].KPIs.AvgDelay)
}

func TestHTTPProviderErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := NewHTTPProvider(server.URL).Recommend(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrProviderFailure)
}

func TestHTTPProviderMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"a list"`))
	}))
	defer server.Close()

	_, err := NewHTTPProvider(server.URL).Recommend(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrProviderFailure)
}

func TestHTTPProviderTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	provider := NewHTTPProvider(server.URL)
	provider.Client.Timeout = 50 * time.Millisecond

	_, err := provider.Recommend(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrProviderFailure)
}

func TestHTTPProviderUnreachable(t *testing.T) {
	_, err := NewHTTPProvider("http://127.0.0.1:1/ai/recommend").Recommend(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrProviderFailure)
}
