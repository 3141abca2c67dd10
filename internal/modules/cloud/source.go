package cloud

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Source returns the full ordered list of clouds.
type Source interface {
	FetchClouds(ctx context.Context) ([]Cloud, error)
}

// SourceFunc adapts a plain function to Source.
type SourceFunc func(ctx context.Context) ([]Cloud, error)

func (f SourceFunc) FetchClouds(ctx context.Context) ([]Cloud, error) {
	return f(ctx)
}

// DefaultUpstreamURL is the public Aiven clouds API.
const DefaultUpstreamURL = "https://api.aiven.io"

// aivenResponse is the shape of GET /v1/clouds. Only the fields we keep are
// decoded.
type aivenResponse struct {
	Clouds []Cloud `json:"clouds"`
}

// AivenSource fetches clouds from the Aiven public API.
type AivenSource struct {
	baseURL string
	client  *http.Client
}

func NewAivenSource(baseURL string, client *http.Client) *AivenSource {
	if baseURL == "" {
		baseURL = DefaultUpstreamURL
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &AivenSource{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (s *AivenSource) FetchClouds(ctx context.Context) ([]Cloud, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/v1/clouds", nil)
	if err != nil {
		return nil, fmt.Errorf("building clouds request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching clouds: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching clouds: unexpected status %d", resp.StatusCode)
	}

	var body aivenResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding clouds response: %w", err)
	}
	if body.Clouds == nil {
		return nil, fmt.Errorf("decoding clouds response: missing clouds field")
	}
	return body.Clouds, nil
}
