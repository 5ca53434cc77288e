package rentalapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/rentfront/gateway/internal/authclient"
	"github.com/rentfront/gateway/internal/domain"
)

// Client is the typed surface over the remote rental-management REST
// API. Authenticated calls go through the token-refreshing HTTP client
// and a circuit breaker; login goes out on the plain transport since no
// token exists yet.
type Client struct {
	auth    *authclient.Client
	plain   *http.Client
	tokens  authclient.TokenStore
	baseURL string
	breaker *gobreaker.CircuitBreaker[*http.Response]
}

func New(auth *authclient.Client, plain *http.Client, tokens authclient.TokenStore, baseURL string) *Client {
	settings := gobreaker.Settings{
		Name:    "rental-api",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
	}
	return &Client{
		auth:    auth,
		plain:   plain,
		tokens:  tokens,
		baseURL: baseURL,
		breaker: gobreaker.NewCircuitBreaker[*http.Response](settings),
	}
}

// RefreshURL builds the token-refresh endpoint for a given API base.
func RefreshURL(baseURL string) string {
	return baseURL + "/api/auth/refresh"
}

type Product struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	DailyRate         float64 `json:"daily_rate"`
	AvailableQuantity int     `json:"available_quantity"`
	ImageURL          string  `json:"image_url"`
}

type loginResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Login exchanges credentials for a token pair and stores it. This is
// the only call that creates tokens; everything else consumes them.
func (c *Client) Login(ctx context.Context, email, password string) error {
	payload, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return fmt.Errorf("marshal login body failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/login", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build login request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.plain.Do(req)
	if err != nil {
		return fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}

	var parsed loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("decode login response failed: %w", err)
	}
	if parsed.Access == "" || parsed.Refresh == "" {
		return fmt.Errorf("login response missing tokens")
	}

	return c.tokens.Set(ctx, authclient.TokenPair{Access: parsed.Access, Refresh: parsed.Refresh})
}

// Logout drops the stored token pair. The remote API is stateless about
// access tokens, so there is nothing to revoke server-side.
func (c *Client) Logout(ctx context.Context) error {
	return c.tokens.Clear(ctx)
}

// Products fetches the rental catalog.
func (c *Client) Products(ctx context.Context) ([]Product, error) {
	resp, err := c.execute(ctx, authclient.Request{
		Method: http.MethodGet,
		URL:    c.baseURL + "/api/products",
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var products []Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("decode products response failed: %w", err)
	}
	return products, nil
}

// PlaceOrder submits the finished checkout to the platform. Used as the
// checkout flow's completion action.
func (c *Client) PlaceOrder(ctx context.Context, order domain.Order) error {
	resp, err := c.execute(ctx, authclient.Request{
		Method: http.MethodPost,
		URL:    c.baseURL + "/api/orders",
		JSON:   order,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return apiError(resp)
	}
	return nil
}

func (c *Client) execute(ctx context.Context, req authclient.Request) (*http.Response, error) {
	return c.breaker.Execute(func() (*http.Response, error) {
		return c.auth.Do(ctx, req)
	})
}

// apiError turns a non-success response into an error carrying the
// status and the API's message when one is present. Bodies are not
// interpreted beyond that.
func apiError(resp *http.Response) error {
	var parsed struct {
		Error string `json:"error"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err := json.Unmarshal(data, &parsed); err == nil && parsed.Error != "" {
		return fmt.Errorf("rental api returned %d: %s", resp.StatusCode, parsed.Error)
	}
	return fmt.Errorf("rental api returned %d", resp.StatusCode)
}
