package shopsdk

import (
	"net/http"
	"strings"
	"time"
)

// DefaultHTTPTimeout bounds every request made through a Client built with
// NewClient.
const DefaultHTTPTimeout = 10 * time.Second

// Client talks to the storefront API. It covers the anonymous endpoints;
// WithToken returns an AuthClient for everything that needs a session.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client for the storefront at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: DefaultHTTPTimeout,
		},
	}
}

// AuthClient issues requests as the holder of a session token.
type AuthClient struct {
	client *Client
	token  string
}

// WithToken returns an AuthClient that sends token as its bearer token.
func (c *Client) WithToken(token string) *AuthClient {
	return &AuthClient{client: c, token: token}
}

// Token returns the bearer token the client sends.
func (a *AuthClient) Token() string { return a.token }
