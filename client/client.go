package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTimeout = 5 * time.Second

// do performs one downstream call on behalf of the original caller. The
// bearer argument is the inbound Authorization header value, forwarded
// byte-for-byte: this client never decodes, re-signs or substitutes the
// token, so the downstream service verifies the original subject and expiry
// itself.
func do(ctx context.Context, httpClient *http.Client, method, url, bearer string, body interface{}) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownstreamUnavailable, err)
	}
	return resp, nil
}

// decode maps the response status and unmarshals the body on success.
// 401/403 from a downstream becomes ErrDownstreamRejected.
func decode(resp *http.Response, target interface{}) error {
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrDownstreamRejected
	case resp.StatusCode == http.StatusNotFound:
		return ErrUserMissing
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("downstream returned status %d", resp.StatusCode)
	}

	if target == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("failed to decode downstream response: %w", err)
	}
	return nil
}
