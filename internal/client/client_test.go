package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storybook-client/internal/models"
	"storybook-client/internal/token"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *token.MemStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	tokens := token.NewMemStore()
	c, err := New(srv.URL, 2*time.Second, tokens, zap.NewNop())
	require.NoError(t, err)
	return c, tokens
}

func TestNewRejectsInvalidBaseURL(t *testing.T) {
	_, err := New("not a url", time.Second, token.NewMemStore(), zap.NewNop())
	assert.Error(t, err)
}

func TestRequestAttachesBearerAndRequestID(t *testing.T) {
	var gotAuth, gotRequestID string
	c, tokens := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]models.Story{})
	}))
	require.NoError(t, tokens.Save("tok-123"))

	_, err := c.ListStories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestNoBearerWithoutToken(t *testing.T) {
	var gotAuth string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.AuthVerification{})
	}))

	_, err := c.VerifyAuth(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestUnauthorizedClearsTokenGlobally(t *testing.T) {
	c, tokens := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	require.NoError(t, tokens.Save("stale-token"))

	_, err := c.ListStories(context.Background())
	require.ErrorIs(t, err, models.ErrSessionExpired)

	_, ok := tokens.Token()
	assert.False(t, ok, "401 must clear the stored token")
}

func TestErrorMessageExtraction(t *testing.T) {
	t.Run("message field from body", func(t *testing.T) {
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"message":"childName is required"}`))
		}))

		_, err := c.ListStories(context.Background())
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadRequest, apiErr.Status)
		assert.Equal(t, "childName is required", apiErr.Message)
	})

	t.Run("status text fallback", func(t *testing.T) {
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("not json at all"))
		}))

		_, err := c.ListStories(context.Background())
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "Bad Gateway", apiErr.Message)
	})
}

func TestGetStoryNotFound(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := c.GetStory(context.Background(), "missing")
	assert.ErrorIs(t, err, models.ErrStoryNotFound)
}

func TestLoginStoresToken(t *testing.T) {
	c, tokens := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.AuthResponse{
			Token: "fresh-token",
			User:  models.User{ID: "u1", Email: "mia@example.com"},
		})
	}))

	resp, err := c.Login(context.Background(), "mia@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "u1", resp.User.ID)

	tok, ok := tokens.Token()
	require.True(t, ok)
	assert.Equal(t, "fresh-token", tok)
}

func TestCreateStoryJSONWithoutImage(t *testing.T) {
	// Сквозной сценарий: драфт без картинки уходит JSON'ом на /api/stories
	// и возвращает нетерминальную историю с заполненным id.
	var gotContentType string
	var gotBody map[string]any
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/stories", r.URL.Path)
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.Story{ID: "st-9", Status: models.StatusPending})
	}))

	created, err := c.CreateStory(context.Background(), models.StoryDraft{
		ChildName:   "Mia",
		ChildAge:    6,
		ChildGender: "girl",
		Theme:       "Adventure",
		StoryLength: "short",
	})
	require.NoError(t, err)

	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "Mia", gotBody["childName"])
	assert.Equal(t, float64(6), gotBody["childAge"])
	assert.NotEmpty(t, created.ID)
	assert.Contains(t, []models.StoryStatus{models.StatusPending, models.StatusGenerating}, created.Status)
}

func TestCreateStoryMultipartWithImage(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(10<<20))

		// Скаляры строкой, массивы JSON-строкой, картинка файлом.
		assert.Equal(t, "Mia", r.FormValue("childName"))
		assert.Equal(t, "6", r.FormValue("childAge"))
		assert.Equal(t, `["Animals","Magic"]`, r.FormValue("interests"))
		assert.Equal(t, "false", r.FormValue("isPublic"))

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "mia.jpg", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.Story{ID: "st-10", Status: models.StatusGenerating})
	}))

	draft := models.StoryDraft{
		ChildName:   "Mia",
		ChildAge:    6,
		ChildGender: "girl",
		Interests:   []string{"Animals", "Magic"},
		Theme:       "Adventure",
		StoryLength: "short",
		Image:       &models.ImageAttachment{Filename: "mia.jpg", Data: []byte("jpegdata")},
	}
	created, err := c.CreateStory(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, "st-10", created.ID)
}

func TestRequestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, 20*time.Millisecond, token.NewMemStore(), zap.NewNop())
	require.NoError(t, err)

	_, err = c.ListStories(context.Background())
	assert.ErrorIs(t, err, models.ErrRequestTimeout)
}

func TestBackendUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close() // Порт больше не слушается.

	c, err := New(url, time.Second, token.NewMemStore(), zap.NewNop())
	require.NoError(t, err)

	_, err = c.ListStories(context.Background())
	assert.ErrorIs(t, err, models.ErrBackendUnreachable)
}
