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

	"github.com/google/uuid"

	"github.com/WTLInterns/hrm-cli/internal/client/models"
	"github.com/WTLInterns/hrm-cli/internal/logging"
)

// HTTPClient implements Client over the backend's REST API.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
	log     logging.Logger
}

// NewHTTPClient returns a client for the API rooted at baseURL. The timeout
// applies to every request end to end, so a hung backend surfaces as
// ErrTimeout instead of blocking the UI indefinitely.
func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
		log:     log,
	}
}

// do sends a single API request. A JSON body is marshalled when body is
// non-nil, the bearer token attached when non-empty, and every request
// carries a fresh X-Request-ID so client and backend logs can be correlated.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, token string, body any) (*http.Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, c.mapTransportError(ctx, method, path, requestID, err)
	}

	c.log.Debug(ctx, "api response", "method", method, "path", path, "status", resp.StatusCode, "request_id", requestID)
	return resp, nil
}

func (c *HTTPClient) mapTransportError(ctx context.Context, method, path, requestID string, err error) error {
	c.log.Warn(ctx, "api request failed", "method", method, "path", path, "request_id", requestID, "error", err)

	var uerr *url.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &uerr) && uerr.Timeout()) {
		return fmt.Errorf("%s %s: %w", method, path, ErrTimeout)
	}
	return fmt.Errorf("%s %s: %w", method, path, ErrUnavailable)
}

// discard drains and closes a response body. Bodies of error responses are
// read into the debug log only; their content is never surfaced to views.
func (c *HTTPClient) discard(ctx context.Context, resp *http.Response) {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if len(data) > 0 {
		c.log.Debug(ctx, "api error body", "status", resp.StatusCode, "body", string(data))
	}
	resp.Body.Close()
}

func decode[T any](resp *http.Response) (*T, error) {
	defer resp.Body.Close()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &v, nil
}

// Login authenticates with email and password. Any non-2xx response maps to
// ErrInvalidCredentials; the backend's error body is not inspected further.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.Principal, string, error) {
	payload := map[string]string{"email": email, "password": password}

	resp, err := c.do(ctx, http.MethodPost, "/login", nil, "", payload)
	if err != nil {
		return nil, "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.discard(ctx, resp)
		return nil, "", fmt.Errorf("login: status %d: %w", resp.StatusCode, ErrInvalidCredentials)
	}

	pp, err := decode[principalPayload](resp)
	if err != nil {
		return nil, "", err
	}
	return pp.normalize(), pp.Token, nil
}

// Register creates a new account. 4xx responses mean the email is already
// registered; anything else non-2xx is a generic registration failure.
func (c *HTTPClient) Register(ctx context.Context, req RegisterRequest) (*models.Principal, string, error) {
	resp, err := c.do(ctx, http.MethodPost, "/register", nil, "", req)
	if err != nil {
		return nil, "", err
	}
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode <= 299:
		// fall through to decode
	case resp.StatusCode >= 400 && resp.StatusCode <= 499:
		c.discard(ctx, resp)
		return nil, "", fmt.Errorf("register: status %d: %w", resp.StatusCode, ErrDuplicateAccount)
	default:
		c.discard(ctx, resp)
		return nil, "", fmt.Errorf("register: status %d: %w", resp.StatusCode, ErrRegistration)
	}

	pp, err := decode[principalPayload](resp)
	if err != nil {
		return nil, "", err
	}
	return pp.normalize(), pp.Token, nil
}

// Profile fetches the current user's profile using the bearer token.
func (c *HTTPClient) Profile(ctx context.Context, token string) (*models.Principal, error) {
	resp, err := c.do(ctx, http.MethodGet, "/profile", nil, token, nil)
	if err != nil {
		return nil, err
	}
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode <= 299:
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		c.discard(ctx, resp)
		return nil, fmt.Errorf("profile: status %d: %w", resp.StatusCode, ErrUnauthorized)
	default:
		c.discard(ctx, resp)
		return nil, fmt.Errorf("profile: unexpected status %d", resp.StatusCode)
	}

	pp, err := decode[principalPayload](resp)
	if err != nil {
		return nil, err
	}
	return pp.normalize(), nil
}

// RequestPasswordReset asks the backend to email an OTP to the given
// address, using the role-specific route for userType. The backend expects
// the email as a query parameter on these legacy routes.
func (c *HTTPClient) RequestPasswordReset(ctx context.Context, userType models.ResetUserType, email string) error {
	q := url.Values{"email": {email}}

	resp, err := c.do(ctx, http.MethodPost, "/"+string(userType)+"/forgot-password/request", q, "", nil)
	if err != nil {
		return err
	}
	defer c.discard(ctx, resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("forgot-password request (%s): status %d: %w", userType, resp.StatusCode, ErrOTPRequest)
	}
	return nil
}

// VerifyPasswordReset submits the OTP and the new password. A non-2xx
// response carries the backend's "invalid OTP" semantic.
func (c *HTTPClient) VerifyPasswordReset(ctx context.Context, userType models.ResetUserType, email, otp, newPassword string) error {
	q := url.Values{
		"email":       {email},
		"otp":         {otp},
		"newPassword": {newPassword},
	}

	resp, err := c.do(ctx, http.MethodPost, "/"+string(userType)+"/forgot-password/verify", q, "", nil)
	if err != nil {
		return err
	}
	defer c.discard(ctx, resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("forgot-password verify (%s): status %d: %w", userType, resp.StatusCode, ErrInvalidOTP)
	}
	return nil
}

// Employees fetches the employee directory visible to the current user.
func (c *HTTPClient) Employees(ctx context.Context, token string) ([]models.Employee, error) {
	resp, err := c.do(ctx, http.MethodGet, "/employees", nil, token, nil)
	if err != nil {
		return nil, err
	}
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode <= 299:
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		c.discard(ctx, resp)
		return nil, fmt.Errorf("employees: status %d: %w", resp.StatusCode, ErrUnauthorized)
	default:
		c.discard(ctx, resp)
		return nil, fmt.Errorf("employees: unexpected status %d", resp.StatusCode)
	}

	defer resp.Body.Close()
	var list []models.Employee
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("failed to decode employee list: %w", err)
	}
	return list, nil
}
