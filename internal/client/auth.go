package client

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"storybook-client/internal/models"
)

// registerRequest - внутренняя структура для тела запроса /api/auth/register.
type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Role      string `json:"role"`
}

// Register creates a new account and stores the returned token.
func (c *Client) Register(ctx context.Context, email, password, firstName, lastName string) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/register", registerRequest{
		Email:     email,
		Password:  password,
		FirstName: firstName,
		LastName:  lastName,
		Role:      "user",
	}, &resp)
	if err != nil {
		return nil, err
	}
	if err := c.tokens.Save(resp.Token); err != nil {
		return nil, err
	}
	c.logger.Info("Registration successful", zap.String("email", email))
	return &resp, nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates with email and password and stores the returned token.
func (c *Client) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	if err := c.tokens.Save(resp.Token); err != nil {
		return nil, err
	}
	c.logger.Info("Login successful", zap.String("email", email))
	return &resp, nil
}

type verifyEmailRequest struct {
	Email            string `json:"email"`
	VerificationCode string `json:"verificationCode"`
}

// VerifyEmail confirms the account's email with an OTP code. It does not
// authenticate by itself.
func (c *Client) VerifyEmail(ctx context.Context, email, code string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/verify-email", verifyEmailRequest{
		Email:            email,
		VerificationCode: code,
	}, nil)
}

// VerifyAuth checks the stored token against the backend.
func (c *Client) VerifyAuth(ctx context.Context) (*models.AuthVerification, error) {
	var resp models.AuthVerification
	if err := c.do(ctx, http.MethodGet, "/api/auth/verify", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout notifies the backend. It does NOT clear local credentials; that
// is the session store's job and happens regardless of this call's outcome.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

// GoogleAuthURL returns the URL that starts the Google OAuth flow. The
// redirect sets the token out-of-band; callers refresh the session after.
func (c *Client) GoogleAuthURL() string {
	return c.baseURL + "/api/auth/google"
}

// AppleAuthURL returns the URL that starts the Apple OAuth flow.
func (c *Client) AppleAuthURL() string {
	return c.baseURL + "/api/auth/apple"
}

// GetProfile fetches the extended account view.
func (c *Client) GetProfile(ctx context.Context) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := c.do(ctx, http.MethodGet, "/api/auth/profile", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile applies a partial profile change.
func (c *Client) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := c.do(ctx, http.MethodPut, "/api/auth/profile", update, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetStats fetches the read-only story aggregates for the account.
func (c *Client) GetStats(ctx context.Context) (*models.UserStats, error) {
	var stats models.UserStats
	if err := c.do(ctx, http.MethodGet, "/api/auth/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetSubscription fetches the current plan and remaining quota.
func (c *Client) GetSubscription(ctx context.Context) (*models.UserSubscription, error) {
	var sub models.UserSubscription
	if err := c.do(ctx, http.MethodGet, "/api/auth/subscription", nil, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// Health pings the backend health endpoint; used by the CLI to tell
// "backend down" apart from "bad credentials".
func (c *Client) Health(ctx context.Context) error {
	var raw string
	return c.do(ctx, http.MethodGet, "/health", nil, &raw)
}
