package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/luggify/internal/client/models"
	"github.com/dmitrijs2005/luggify/internal/common"
)

// maxErrorBody caps how much of a failed response is kept in ServerError.
const maxErrorBody = 4 << 10

// HTTPClient implements Client over the backend's REST/JSON API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	ownerID string
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client. The timeout passed to
// NewHTTPClient is applied to it.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// WithOwnerID adds the owner id header to every request.
func WithOwnerID(ownerID string) Option {
	return func(c *HTTPClient) { c.ownerID = ownerID }
}

// NewHTTPClient returns a client for the backend rooted at baseURL. A zero
// timeout leaves the request deadline to the caller's context.
func NewHTTPClient(baseURL string, timeout time.Duration, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: invalid server address %q", common.ErrValidation, baseURL)
	}

	c := &HTTPClient{
		baseURL: strings.TrimRight(u.String(), "/"),
		http:    &http.Client{},
	}
	for _, o := range opts {
		o(c)
	}
	c.http.Timeout = timeout
	return c, nil
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/", nil, nil)
}

func (c *HTTPClient) SearchCities(ctx context.Context, prefix string) ([]models.City, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return nil, fmt.Errorf("%w: city prefix is empty", common.ErrValidation)
	}

	q := url.Values{"namePrefix": []string{prefix}}
	cities := make([]models.City, 0)
	if err := c.do(ctx, http.MethodGet, "/geo/cities-autocomplete?"+q.Encode(), nil, &cities); err != nil {
		return nil, err
	}
	return cities, nil
}

func (c *HTTPClient) Generate(ctx context.Context, req models.PackingRequest) (*models.Checklist, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return c.checklist(ctx, http.MethodPost, "/generate-packing-list", req)
}

func (c *HTTPClient) FetchChecklist(ctx context.Context, slug string) (*models.Checklist, error) {
	p, err := slugPath(slug, "")
	if err != nil {
		return nil, err
	}
	return c.checklist(ctx, http.MethodGet, p, nil)
}

func (c *HTTPClient) PatchState(ctx context.Context, slug string, state models.StateUpdate) (*models.Checklist, error) {
	p, err := slugPath(slug, "/state")
	if err != nil {
		return nil, err
	}
	return c.checklist(ctx, http.MethodPatch, p, state)
}

// DeleteChecklist treats 404 as success: the checklist is gone either way.
func (c *HTTPClient) DeleteChecklist(ctx context.Context, slug string) error {
	p, err := slugPath(slug, "")
	if err != nil {
		return err
	}
	err = c.do(ctx, http.MethodDelete, p, nil, nil)
	if errors.Is(err, common.ErrNotFound) {
		return nil
	}
	return err
}

func (c *HTTPClient) ListChecklists(ctx context.Context, ownerID string) ([]models.Checklist, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, fmt.Errorf("%w: owner id is empty", common.ErrValidation)
	}

	list := make([]models.Checklist, 0)
	if err := c.do(ctx, http.MethodGet, "/tg-checklists/"+url.PathEscape(ownerID), nil, &list); err != nil {
		return nil, err
	}
	for i := range list {
		list[i].NeedsSync = false
	}
	return list, nil
}

func (c *HTTPClient) SaveOwned(ctx context.Context, req models.SaveRequest) (*models.Checklist, error) {
	if strings.TrimSpace(req.OwnerID) == "" {
		return nil, fmt.Errorf("%w: owner id is empty", common.ErrValidation)
	}
	return c.checklist(ctx, http.MethodPost, "/save-tg-checklist", req)
}

func (c *HTTPClient) checklist(ctx context.Context, method, path string, body any) (*models.Checklist, error) {
	var out models.Checklist
	if err := c.do(ctx, method, path, body, &out); err != nil {
		return nil, err
	}
	out.NeedsSync = false
	return &out, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: encode request: %w", common.ErrValidation, err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("%w: build request: %w", common.ErrValidation, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.ownerID != "" {
		req.Header.Set(common.OwnerIDHeaderName, c.ownerID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return c.mapError(method, path, err)
	}
	defer resp.Body.Close()

	if err := c.mapStatus(method, path, resp); err != nil {
		return err
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s %s: decode response: %w", common.ErrServer, method, path, err)
	}
	return nil
}

// mapError classifies transport failures. Everything that prevented a
// response from arriving, timeouts and cancellations included, is a network
// error; the cause stays reachable through errors.Is.
func (c *HTTPClient) mapError(method, path string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s %s: %w", common.ErrNetwork, method, path, err)
}

func (c *HTTPClient) mapStatus(method, path string, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s %s: %w", method, path, common.ErrNotFound)
	}
	return fmt.Errorf("%s %s: %w", method, path, &ServerError{
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(b)),
	})
}

func slugPath(slug, suffix string) (string, error) {
	if strings.TrimSpace(slug) == "" {
		return "", fmt.Errorf("%w: slug is empty", common.ErrValidation)
	}
	return "/checklist/" + url.PathEscape(slug) + suffix, nil
}
