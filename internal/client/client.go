// Package client implements the HTTP client for the storybook backend.
// It is a thin, typed wrapper over the documented REST contract: every
// call attaches the current bearer token, a 401 from any endpoint clears
// the stored credentials globally, and failures are normalized into the
// error taxonomy of the models package.
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
	"go.uber.org/zap"

	"storybook-client/internal/models"
	"storybook-client/internal/token"
)

// APIError is a non-2xx response from the backend. Message carries the
// server-supplied text when the error body had one, else the status text.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
}

// Client talks to the storybook backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     token.Store
	logger     *zap.Logger
}

// New creates a Client for the given base URL. The token store is shared
// with the session layer: the client reads it on every call and clears it
// on any 401.
func New(baseURL string, timeout time.Duration, tokens token.Store, logger *zap.Logger) (*Client, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL for storybook backend: %w", err)
	}
	if tokens == nil {
		return nil, fmt.Errorf("token store is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout, // Таймаут на весь запрос
		},
		tokens: tokens,
		logger: logger.Named("APIClient"),
	}, nil
}

// errorResponse is the JSON error body shape the backend uses. Some
// endpoints use "message", a few older ones "error".
type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do issues one request against the backend and decodes a JSON response
// into out (skipped when out is nil). body, when non-nil, is sent as JSON.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("internal error marshalling request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("internal error creating request: %w", err)
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	return c.send(httpReq, out)
}

// send executes a prepared request, applying auth, the request id and the
// shared response handling. Used by do and by the multipart upload path.
func (c *Client) send(httpReq *http.Request, out any) error {
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", uuid.NewString())
	if tok, ok := c.tokens.Token(); ok {
		httpReq.Header.Set("Authorization", "Bearer "+tok)
	}

	log := c.logger.With(
		zap.String("method", httpReq.Method),
		zap.String("url", httpReq.URL.String()),
		zap.String("requestID", httpReq.Header.Get("X-Request-ID")),
	)
	log.Debug("Sending request to storybook backend")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		// Проверяем ошибки контекста (например, таймаут)
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			log.Error("Request to storybook backend timed out", zap.Error(err))
			return fmt.Errorf("%w: %s %s", models.ErrRequestTimeout, httpReq.Method, httpReq.URL.Path)
		}
		log.Error("HTTP request to storybook backend failed", zap.Error(err))
		return fmt.Errorf("%w: %v", models.ErrBackendUnreachable, err)
	}
	defer httpResp.Body.Close()

	respBodyBytes, err := io.ReadAll(httpResp.Body)
	if err != nil {
		log.Error("Failed to read response body", zap.Int("status", httpResp.StatusCode), zap.Error(err))
		return fmt.Errorf("failed to read backend response: %w", err)
	}

	// 401 инвалидирует сессию глобально: чистим токен до возврата ошибки,
	// чтобы последующие вызовы уже шли без него.
	if httpResp.StatusCode == http.StatusUnauthorized {
		log.Warn("Received 401, clearing stored credentials")
		if clearErr := c.tokens.Clear(); clearErr != nil {
			log.Error("Failed to clear token store after 401", zap.Error(clearErr))
		}
		return fmt.Errorf("%w", models.ErrSessionExpired)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		log.Warn("Received error response from backend",
			zap.Int("status", httpResp.StatusCode), zap.ByteString("body", respBodyBytes))
		return &APIError{
			Status:  httpResp.StatusCode,
			Message: errorMessage(httpResp, respBodyBytes),
		}
	}

	if out == nil {
		return nil
	}

	// Не-JSON ответы отдаем как сырой текст (контракт так делает для
	// нескольких служебных эндпоинтов).
	if raw, ok := out.(*string); ok && !isJSONResponse(httpResp) {
		*raw = string(respBodyBytes)
		return nil
	}
	if len(respBodyBytes) == 0 {
		return fmt.Errorf("empty response body from backend (status %d)", httpResp.StatusCode)
	}
	if err := json.Unmarshal(respBodyBytes, out); err != nil {
		log.Error("Failed to unmarshal backend response",
			zap.Int("status", httpResp.StatusCode), zap.ByteString("body", respBodyBytes), zap.Error(err))
		return fmt.Errorf("invalid response format from backend: %w", err)
	}
	return nil
}

// errorMessage extracts the server message from an error body, falling
// back to the HTTP status text.
func errorMessage(resp *http.Response, body []byte) string {
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err == nil {
		if errResp.Message != "" {
			return errResp.Message
		}
		if errResp.Error != "" {
			return errResp.Error
		}
	}
	return http.StatusText(resp.StatusCode)
}

func isJSONResponse(resp *http.Response) bool {
	return strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json")
}

// isTimeout catches transport-level timeouts that surface as net errors
// rather than context.DeadlineExceeded (http.Client.Timeout does this).
func isTimeout(err error) bool {
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
