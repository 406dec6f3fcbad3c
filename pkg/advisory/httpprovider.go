package advisory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultProviderTimeout = 10 * time.Second

// HTTPProvider forwards requests to an external recommendation service
type HTTPProvider struct {
	URL    string
	Client *http.Client
}

func NewHTTPProvider(url string) *HTTPProvider {
	return &HTTPProvider{
		URL:    url,
		Client: &http.Client{Timeout: defaultProviderTimeout},
	}
}

func (p *HTTPProvider) Recommend(ctx context.Context, request Request) ([]Recommendation, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderFailure, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderFailure, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: provider returned %s", ErrProviderFailure, resp.Status)
	}

	var recommendations []Recommendation
	if err := json.NewDecoder(resp.Body).Decode(&recommendations); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrProviderFailure, err)
	}

	return recommendations, nil
}
