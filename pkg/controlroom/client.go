package controlroom

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/travigo/controlroom/pkg/advisory"
	"github.com/travigo/controlroom/pkg/timetable"
)

// Client talks to the control room web API
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type scheduleResponse struct {
	Data struct {
		Trains []*timetable.LiveTrainView `json:"trains"`
	} `json:"data"`
}

type recommendResponse struct {
	Success         bool                      `json:"success"`
	Recommendations []advisory.Recommendation `json:"recommendations"`
	Error           string                    `json:"error"`
}

func (c *Client) Schedule(ctx context.Context) ([]*timetable.LiveTrainView, error) {
	var response scheduleResponse
	if err := c.do(ctx, http.MethodGet, "/api/schedule", nil, &response); err != nil {
		return nil, err
	}

	return response.Data.Trains, nil
}

func (c *Client) Recommend(ctx context.Context, trainNo int, cause string) ([]advisory.Recommendation, error) {
	request := map[string]any{
		"disruptionTrainId": trainNo,
		"cause":             cause,
	}

	var response recommendResponse
	err := c.do(ctx, http.MethodPost, "/api/ai/recommend", request, &response)
	if err != nil && response.Error == "" {
		return nil, err
	}
	if !response.Success {
		return nil, fmt.Errorf("%w: %s", advisory.ErrProviderFailure, response.Error)
	}

	return response.Recommendations, nil
}

func (c *Client) do(ctx context.Context, method string, path string, body any, target any) error {
	var payload bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&payload).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, &payload)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	decodeErr := json.NewDecoder(resp.Body).Decode(target)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s %s returned %s", method, path, resp.Status)
	}
	if decodeErr != nil {
		return fmt.Errorf("decoding response: %w", decodeErr)
	}

	return nil
}
