package shopsdk

import (
	"context"
	"net/http"
)

// SignIn posts to /api/users/signin. Leave TwoFactorToken empty on the first
// round; when the response has Require2FA set, repeat the call with it.
func (c *Client) SignIn(ctx context.Context, req SignInRequest) (SignInResponse, error) {
	body, headers, err := jsonBody(req)
	if err != nil {
		return SignInResponse{}, err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/api/users/signin", body, headers)
	if err != nil {
		return SignInResponse{}, err
	}

	var out SignInResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return SignInResponse{}, err
	}
	return out, nil
}

// VerifyTwoFactor answers the challenge opened by the last SignIn for
// req.Email.
func (c *Client) VerifyTwoFactor(ctx context.Context, req VerifyTwoFactorRequest) (Session, error) {
	body, headers, err := jsonBody(req)
	if err != nil {
		return Session{}, err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/api/users/verify-2fa", body, headers)
	if err != nil {
		return Session{}, err
	}

	var out Session
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return Session{}, err
	}
	return out, nil
}

// SignUp creates a regular account and returns its session.
func (c *Client) SignUp(ctx context.Context, req SignUpRequest) (Session, error) {
	return c.createAccount(ctx, "/api/users/signup", req, nil)
}

// Bootstrap creates the first admin account using the server's bootstrap
// token.
func (c *Client) Bootstrap(ctx context.Context, bootstrapToken string, req SignUpRequest) (Session, error) {
	return c.createAccount(ctx, "/api/bootstrap", req, map[string]string{"X-Bootstrap-Token": bootstrapToken})
}

func (c *Client) createAccount(ctx context.Context, path string, req SignUpRequest, extra map[string]string) (Session, error) {
	body, headers, err := jsonBody(req)
	if err != nil {
		return Session{}, err
	}
	for k, v := range extra {
		headers[k] = v
	}

	resp, err := c.doRequest(ctx, http.MethodPost, path, body, headers)
	if err != nil {
		return Session{}, err
	}

	var out Session
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return Session{}, err
	}
	return out, nil
}
