package client

import (
	"context"
	"fmt"
	"net/http"

	"incident-hub/model"
)

// IncidentsClient calls the incidents service on behalf of an
// already-authenticated caller, forwarding the caller's bearer header
// unchanged.
type IncidentsClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewIncidentsClient(baseURL string) *IncidentsClient {
	return &IncidentsClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// ListIncidents fetches a page of incidents.
func (c *IncidentsClient) ListIncidents(ctx context.Context, bearer string, limit, offset int) ([]*model.Incident, error) {
	url := fmt.Sprintf("%s/incidents?limit=%d&offset=%d", c.baseURL, limit, offset)
	resp, err := do(ctx, c.httpClient, http.MethodGet, url, bearer, nil)
	if err != nil {
		return nil, err
	}

	var incidents []*model.Incident
	if err := decode(resp, &incidents); err != nil {
		return nil, err
	}
	return incidents, nil
}
