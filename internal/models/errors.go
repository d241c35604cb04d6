package models

import "errors"

// Доменные ошибки клиента. Сравнивать через errors.Is.
var (
	// ErrSessionExpired means the backend answered 401; the stored token
	// has already been cleared by the time the caller sees this.
	ErrSessionExpired = errors.New("session expired, please sign in again")

	// ErrRequestTimeout means no response arrived within the configured window.
	ErrRequestTimeout = errors.New("request timed out - please check your backend server")

	// ErrBackendUnreachable means the request never produced an HTTP response
	// (DNS failure, connection refused and the like).
	ErrBackendUnreachable = errors.New("storybook backend may be unreachable")

	// ErrStoryNotFound maps the 404 on story lookups.
	ErrStoryNotFound = errors.New("story not found")

	// ErrStoryLimitReached means the subscription plan allows no more stories.
	ErrStoryLimitReached = errors.New("story limit reached for your current plan - upgrade to create more stories")

	// ErrNotAuthenticated is returned by operations that require a session
	// before any network call is attempted.
	ErrNotAuthenticated = errors.New("not signed in")
)
