// Package api talks to the Trace-Aid backend. It exposes a small read
// surface (current user, organization, cases, billing history) plus the
// draft save endpoint the autosave coordinator writes through.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Client is the backend surface the TUI consumes.
type Client interface {
	CurrentUser(ctx context.Context) (User, error)
	Organization(ctx context.Context) (Organization, error)
	ListCases(ctx context.Context) ([]Case, error)
	GetCase(ctx context.Context, id string) (Case, error)
	// GetCaseDraft returns the stored working copy for a case. The second
	// return is false when no draft has been saved yet.
	GetCaseDraft(ctx context.Context, caseID string) (CaseDraft, bool, error)
	SaveCaseDraft(ctx context.Context, draft CaseDraft) error
	BillingHistory(ctx context.Context) ([]Invoice, error)
}

// Error is a non-2xx backend response.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.Status)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Message)
}

// HTTPClient implements Client against the Trace-Aid REST API.
type HTTPClient struct {
	client  *http.Client
	baseURL string
	token   string
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates a client for the given base URL, authenticating
// every request with the bearer token.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		client:  &http.Client{Timeout: 15 * time.Second},
		baseURL: baseURL,
		token:   token,
	}
}

// CurrentUser fetches the authenticated account.
func (c *HTTPClient) CurrentUser(ctx context.Context) (User, error) {
	var user User
	if err := c.get(ctx, "/api/v1/me", &user); err != nil {
		return User{}, fmt.Errorf("failed to fetch current user: %w", err)
	}
	return user, nil
}

// Organization fetches the user's tenant.
func (c *HTTPClient) Organization(ctx context.Context) (Organization, error) {
	var org Organization
	if err := c.get(ctx, "/api/v1/organization", &org); err != nil {
		return Organization{}, fmt.Errorf("failed to fetch organization: %w", err)
	}
	return org, nil
}

// ListCases fetches the cases visible to the user.
func (c *HTTPClient) ListCases(ctx context.Context) ([]Case, error) {
	var resp struct {
		Cases []Case `json:"cases"`
	}
	if err := c.get(ctx, "/api/v1/cases", &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch cases: %w", err)
	}
	return resp.Cases, nil
}

// GetCase fetches one case by ID.
func (c *HTTPClient) GetCase(ctx context.Context, id string) (Case, error) {
	var cs Case
	if err := c.get(ctx, "/api/v1/cases/"+id, &cs); err != nil {
		return Case{}, fmt.Errorf("failed to fetch case %s: %w", id, err)
	}
	return cs, nil
}

// GetCaseDraft fetches the stored working copy for a case. A 404 means no
// draft exists, reported through the found flag rather than as an error.
func (c *HTTPClient) GetCaseDraft(ctx context.Context, caseID string) (CaseDraft, bool, error) {
	var draft CaseDraft
	err := c.get(ctx, "/api/v1/cases/"+caseID+"/draft", &draft)
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return CaseDraft{}, false, nil
		}
		return CaseDraft{}, false, fmt.Errorf("failed to fetch draft for case %s: %w", caseID, err)
	}
	return draft, true, nil
}

// SaveCaseDraft stores the working copy for its case.
func (c *HTTPClient) SaveCaseDraft(ctx context.Context, draft CaseDraft) error {
	if draft.CaseID == "" {
		return fmt.Errorf("draft has no case ID")
	}
	if err := c.put(ctx, "/api/v1/cases/"+draft.CaseID+"/draft", draft); err != nil {
		return fmt.Errorf("failed to save draft for case %s: %w", draft.CaseID, err)
	}
	return nil
}

// BillingHistory fetches the organization's invoices, newest first.
func (c *HTTPClient) BillingHistory(ctx context.Context) ([]Invoice, error) {
	var resp struct {
		Invoices []Invoice `json:"invoices"`
	}
	if err := c.get(ctx, "/api/v1/billing/invoices", &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch billing history: %w", err)
	}
	return resp.Invoices, nil
}

func (c *HTTPClient) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *HTTPClient) put(ctx context.Context, path string, in any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, nil)
}

func (c *HTTPClient) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{Status: resp.StatusCode}
		var payload struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
			apiErr.Message = payload.Error
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
