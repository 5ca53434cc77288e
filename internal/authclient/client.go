package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"golang.org/x/sync/singleflight"
)

// Client performs requests against the rental-management API, attaching
// the current access token and recovering from a single expired-token
// failure per call: one refresh, one retry, never more.
type Client struct {
	http       *http.Client
	store      TokenStore
	refreshURL string
	sfg        singleflight.Group // collapses concurrent refreshes into one
}

func New(httpClient *http.Client, store TokenStore, refreshURL string) *Client {
	return &Client{
		http:       httpClient,
		store:      store,
		refreshURL: refreshURL,
	}
}

// Request describes one outbound call. JSON, when non-nil, is encoded as
// the body with an application/json content type. Body is sent as-is with
// the caller's own Content-Type header (multipart uploads set their own
// boundary), and wins over JSON if both are set.
type Request struct {
	Method string
	URL    string
	Header http.Header
	JSON   interface{}
	Body   []byte
}

// Do issues the request with a bearer token from the store. A 401
// response triggers exactly one refresh and one reissue of the original
// request; whatever the retry returns is handed back unchanged, so a
// second 401 never loops back into another refresh. Non-401 statuses,
// including other errors, are returned unmodified.
func (c *Client) Do(ctx context.Context, req Request) (*http.Response, error) {
	pair, err := c.store.Get(ctx)
	if err != nil || pair.Access == "" {
		return nil, ErrUnauthenticated
	}

	payload, contentType, err := encodeBody(req)
	if err != nil {
		return nil, err
	}

	resp, err := c.send(ctx, req, payload, contentType, pair.Access)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	newAccess, refreshErr := c.refreshAccessToken(ctx)
	if refreshErr != nil {
		// Best effort is spent. The caller sees the original 401 and
		// treats it as session-expired.
		return resp, nil
	}

	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	return c.send(ctx, req, payload, contentType, newAccess)
}

// Get is a convenience wrapper for authenticated GETs.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	return c.Do(ctx, Request{Method: http.MethodGet, URL: url})
}

// PostJSON is a convenience wrapper for authenticated JSON POSTs.
func (c *Client) PostJSON(ctx context.Context, url string, payload interface{}) (*http.Response, error) {
	return c.Do(ctx, Request{Method: http.MethodPost, URL: url, JSON: payload})
}

func encodeBody(req Request) ([]byte, string, error) {
	if req.Body != nil {
		return req.Body, "", nil
	}
	if req.JSON != nil {
		data, err := json.Marshal(req.JSON)
		if err != nil {
			return nil, "", fmt.Errorf("marshal request body failed: %w", err)
		}
		return data, "application/json", nil
	}
	return nil, "", nil
}

func (c *Client) send(ctx context.Context, req Request, payload []byte, contentType, access string) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("build request failed: %w", err)
	}

	for key, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("Authorization", "Bearer "+access)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", req.URL, err)
	}
	return resp, nil
}

// refreshAccessToken exchanges the stored refresh token for a new access
// token. Concurrent callers share a single in-flight exchange. The
// procedure never retries: any failure clears the stored pair and the
// session is over.
func (c *Client) refreshAccessToken(ctx context.Context) (string, error) {
	v, err, _ := c.sfg.Do("refresh", func() (interface{}, error) {
		return c.doRefresh(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *Client) doRefresh(ctx context.Context) (string, error) {
	pair, err := c.store.Get(ctx)
	if err != nil || pair.Refresh == "" {
		return "", ErrNoToken
	}

	body, err := json.Marshal(map[string]string{"refresh": pair.Refresh})
	if err != nil {
		return "", fmt.Errorf("marshal refresh body failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.refreshURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build refresh request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.clearTokens(ctx)
		return "", fmt.Errorf("refresh request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.clearTokens(ctx)
		return "", fmt.Errorf("refresh rejected with status %d: %w", resp.StatusCode, ErrNoToken)
	}

	var parsed struct {
		Access string `json:"access"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil || parsed.Access == "" {
		c.clearTokens(ctx)
		return "", fmt.Errorf("refresh response missing access token: %w", ErrNoToken)
	}

	if err := c.store.SetAccess(ctx, parsed.Access); err != nil {
		return "", fmt.Errorf("persist refreshed token failed: %w", err)
	}
	return parsed.Access, nil
}

func (c *Client) clearTokens(ctx context.Context) {
	if err := c.store.Clear(ctx); err != nil {
		log.Printf("token store clear error: %v", err)
	}
}
