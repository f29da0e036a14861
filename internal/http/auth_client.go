package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// AuthClient proxies login/register to the auth service. Credential
// lifecycle (issuing, refresh, expiry) stays upstream; this client only
// moves the requests along and hands back the raw response.
type AuthClient struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

func NewAuthClient(baseURL string, timeout time.Duration, logger *zap.Logger) *AuthClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &AuthClient{httpClient: client, logger: logger}
}

// LoginResponse is the upstream success payload. Extra members are kept
// in Raw so the proxy can pass the body through unmodified.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	Raw         json.RawMessage
}

// Login forwards the credentials. A non-2xx comes back as upstreamError
// so the handler can mirror status and detail.
func (c *AuthClient) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(map[string]string{"email": email, "password": password}).
		Post("/login")
	if err != nil {
		c.logger.Error("auth service unreachable", zap.Error(err))
		return nil, fmt.Errorf("auth service unreachable: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, newUpstreamError(resp)
	}

	out := &LoginResponse{Raw: append(json.RawMessage(nil), resp.Body()...)}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return nil, fmt.Errorf("unexpected login response: %w", err)
	}
	if out.AccessToken == "" {
		return nil, fmt.Errorf("login response carries no access_token")
	}
	return out, nil
}

// Register forwards a registration and returns the upstream confirmation
// body untouched.
func (c *AuthClient) Register(ctx context.Context, email, password, fullName string) (json.RawMessage, error) {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(map[string]string{
			"email":     email,
			"password":  password,
			"full_name": fullName,
		}).
		Post("/register")
	if err != nil {
		c.logger.Error("auth service unreachable", zap.Error(err))
		return nil, fmt.Errorf("auth service unreachable: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, newUpstreamError(resp)
	}
	return append(json.RawMessage(nil), resp.Body()...), nil
}

// upstreamError carries an upstream HTTP failure so handlers can mirror
// its status code and detail message.
type upstreamError struct {
	StatusCode int
	Detail     string
}

func (e *upstreamError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.StatusCode, e.Detail)
}

func newUpstreamError(resp *resty.Response) *upstreamError {
	var body struct {
		Detail string `json:"detail"`
	}
	_ = json.Unmarshal(resp.Body(), &body)
	return &upstreamError{StatusCode: resp.StatusCode(), Detail: body.Detail}
}
