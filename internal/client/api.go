package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Specialized-Platform-Development/spd-mobile-app/internal/models"
	"github.com/Specialized-Platform-Development/spd-mobile-app/internal/service"
)

// requestTimeout bounds every call; a request still in flight after this is
// abandoned and surfaced as ErrNetwork, never retried silently.
const requestTimeout = 10 * time.Second

var (
	ErrNetwork      = errors.New("server unreachable")
	ErrUnauthorized = errors.New("not signed in")
	ErrNotFound     = errors.New("not found")
	ErrServer       = errors.New("server error")
	ErrRejected     = errors.New("request rejected")
)

// Client talks to the marketplace API. The session manager is an explicit
// dependency: each outgoing request asks it for the current token, so there
// is no global state to mutate.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *SessionManager
}

func NewClient(baseURL string, session *SessionManager) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		session: session,
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []string        `json:"errors"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&reqBody).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	// A missing token is not an error here: the request goes out
	// unauthenticated and the server decides.
	token := c.session.Token()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%w: unreadable response", ErrServer)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		// Only a rejected credential invalidates the session; a 401 on an
		// unauthenticated request (e.g. failed login) leaves it alone.
		if token != "" {
			if changed, err := c.session.Invalidate(); err == nil && changed {
				return fmt.Errorf("%w: session expired, please log in again", ErrUnauthorized)
			}
		}
		return fmt.Errorf("%w: %s", ErrUnauthorized, env.Message)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, env.Message)
	case resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", ErrServer, env.Message)
	case !env.Success:
		msg := env.Message
		for _, e := range env.Errors {
			msg += "; " + e
		}
		return fmt.Errorf("%w: %s", ErrRejected, msg)
	}

	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%w: unexpected response shape", ErrServer)
		}
	}
	return nil
}

func (c *Client) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	var user models.User
	req := map[string]string{"name": name, "email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login authenticates and persists the returned token. The token is durable
// before Login returns, so callers may navigate away immediately.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var res service.LoginResult
	req := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, &res); err != nil {
		return err
	}
	if res.Token == "" {
		return fmt.Errorf("%w: empty token", ErrServer)
	}
	return c.session.SetToken(res.Token)
}

// Me fetches the authenticated profile; the first success upgrades an
// optimistically restored session to verified.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/api/users/me", nil, &user); err != nil {
		return nil, err
	}
	c.session.MarkVerified()
	return &user, nil
}

func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) Product(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, http.MethodGet, "/api/products/"+id, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) SearchProducts(ctx context.Context, query string) ([]models.Product, error) {
	var products []models.Product
	if err := c.do(ctx, http.MethodGet, "/api/products/search?q="+url.QueryEscape(query), nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}
