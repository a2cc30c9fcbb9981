package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/oklog/ulid/v2"
)

// apiClient talks to one tenant of the ledger API.
type apiClient struct {
	http    *http.Client
	baseURL string
	tenant  string
	token   string
	idemKey string
}

func newAPIClient(opts *options) *apiClient {
	return &apiClient{
		http:    &http.Client{Timeout: opts.Timeout},
		baseURL: strings.TrimRight(opts.URL, "/"),
		tenant:  opts.Tenant,
		token:   opts.Token,
		idemKey: opts.IdempotencyKey,
	}
}

// apiError is a non-2xx answer from the server.
type apiError struct {
	Status  int
	Class   string `json:"error"`
	Message string `json:"message"`
}

func (e *apiError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s (HTTP %d)", e.Class, e.Status)
	}
	return fmt.Sprintf("%s: %s (HTTP %d)", e.Class, e.Message, e.Status)
}

// do sends body as JSON to the tenant-scoped path and decodes the response
// into out when both are non-nil.
func (c *apiClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if c.tenant == "" {
		return fmt.Errorf("tenant is required: pass --tenant or set VCLEDGER_TENANT")
	}

	target := c.baseURL + "/api/v1/tenants/" + url.PathEscape(c.tenant) + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if method == http.MethodPost || method == http.MethodDelete {
		// Rerunning a command with the same --idempotency-key replays the
		// first answer instead of moving coins twice.
		key := c.idemKey
		if key == "" {
			key = idempotencyKey()
		}
		req.Header.Set("Idempotency-Key", key)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &apiError{Status: resp.StatusCode}
		if json.Unmarshal(raw, apiErr) != nil || apiErr.Class == "" {
			apiErr.Class = strings.TrimSpace(string(raw))
		}
		return apiErr
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}

var idempotencyKey = func() string {
	return "cli-" + ulid.Make().String()
}
