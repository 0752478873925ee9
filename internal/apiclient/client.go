// Package apiclient is a thin REST client for the enhancement, profile and
// password endpoints. Every response body decodes into types.APIResponse.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jonathan/cv-builder/internal/types"
)

// DefaultUserAgent is sent on every request.
const DefaultUserAgent = "cvbuilder/1.0"

// maxBody bounds how much of a response is read.
const maxBody = 10 << 20

// Options configures a Client.
type Options struct {
	// Token is sent as a bearer token when set.
	Token string
	// Timeout bounds each request. Zero means no timeout.
	Timeout    time.Duration
	HTTPClient *http.Client
	UserAgent  string
}

// Client talks to the cvbuilder API.
type Client struct {
	baseURL *url.URL
	token   string
	http    *http.Client
	ua      string
}

// New creates a client for baseURL.
func New(baseURL string, opts Options) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid API base URL %q", baseURL)
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	return &Client{baseURL: u, token: opts.Token, http: hc, ua: ua}, nil
}

// WithToken returns a copy of the client using token.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// EnhanceCV posts the draft to the enhancement endpoint. A non-success
// envelope is returned as is, not as an error.
func (c *Client) EnhanceCV(ctx context.Context, req *types.EnhanceRequest) (*types.APIResponse, error) {
	return c.do(ctx, http.MethodPost, "/v1/cv/enhance", req)
}

// GetProfile fetches the signed-in user's profile.
func (c *Client) GetProfile(ctx context.Context) (*types.Profile, error) {
	resp, err := c.do(ctx, http.MethodGet, "/v1/users/me/profile", nil)
	if err != nil {
		return nil, err
	}
	var p types.Profile
	if err := decodeData(resp, "/v1/users/me/profile", &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProfile applies a partial profile update and returns the stored result.
func (c *Client) UpdateProfile(ctx context.Context, req *types.UpdateProfileRequest) (*types.Profile, error) {
	resp, err := c.do(ctx, http.MethodPatch, "/v1/users/me/profile", req)
	if err != nil {
		return nil, err
	}
	var p types.Profile
	if err := decodeData(resp, "/v1/users/me/profile", &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ChangePassword changes the signed-in user's password.
func (c *Client) ChangePassword(ctx context.Context, req *types.ChangePasswordRequest) error {
	resp, err := c.do(ctx, http.MethodPost, "/v1/users/me/password", req)
	if err != nil {
		return err
	}
	if !resp.Success {
		return &APIError{Method: http.MethodPost, Path: "/v1/users/me/password", StatusCode: http.StatusOK, Message: resp.Message}
	}
	return nil
}

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, req *types.LoginRequest) (*types.LoginResponse, error) {
	resp, err := c.do(ctx, http.MethodPost, "/v1/auth/login", req)
	if err != nil {
		return nil, err
	}
	var lr types.LoginResponse
	if err := decodeData(resp, "/v1/auth/login", &lr); err != nil {
		return nil, err
	}
	return &lr, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*types.APIResponse, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, &APIError{Method: method, Path: path, Message: "failed to encode request", Cause: err}
		}
		reader = bytes.NewReader(data)
	}

	u := c.baseURL.JoinPath(path)
	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, &APIError{Method: method, Path: path, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.ua)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, &APIError{Method: method, Path: path, Message: "request failed", Cause: err}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxBody))
	if err != nil {
		return nil, &APIError{Method: method, Path: path, StatusCode: res.StatusCode, Message: "failed to read response", Cause: err}
	}

	var env types.APIResponse
	decodeErr := json.Unmarshal(raw, &env)

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		msg := env.Message
		if decodeErr != nil || msg == "" {
			msg = strings.TrimSpace(string(raw))
			if len(msg) > 200 {
				msg = msg[:200]
			}
		}
		return nil, &APIError{Method: method, Path: path, StatusCode: res.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return nil, &APIError{Method: method, Path: path, StatusCode: res.StatusCode, Message: "invalid response envelope", Cause: decodeErr}
	}
	return &env, nil
}

func decodeData(resp *types.APIResponse, path string, out any) error {
	if !resp.Success {
		return &APIError{Path: path, StatusCode: http.StatusOK, Message: resp.Message}
	}
	if len(resp.Data) == 0 {
		return &APIError{Path: path, StatusCode: http.StatusOK, Message: "response carried no data"}
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return &APIError{Path: path, StatusCode: http.StatusOK, Message: "failed to decode data", Cause: err}
	}
	return nil
}
