// Package story implements the creation flow and the generation-status
// poller over the backend's story endpoints.
package story

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"storybook-client/internal/client"
	"storybook-client/internal/models"
)

// API is the slice of the backend client the story service depends on.
type API interface {
	ListStories(ctx context.Context) ([]models.Story, error)
	GetStory(ctx context.Context, id string) (*models.Story, error)
	GetStoryPages(ctx context.Context, id string) ([]models.StoryPage, error)
	CreateStory(ctx context.Context, draft models.StoryDraft) (*models.Story, error)
	UpdateStory(ctx context.Context, id string, draft models.StoryDraft) (*models.Story, error)
	DeleteStory(ctx context.Context, id string) error
}

// Service wraps story operations with local validation and error mapping.
type Service struct {
	api    API
	logger *zap.Logger
}

// NewService creates a story service over the given API client.
func NewService(api API, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{api: api, logger: logger.Named("StoryService")}
}

// Create validates the draft and submits it. Validation failures are
// returned without any network call. The returned story is in a
// non-terminal status; the caller is responsible for starting a poller.
func (s *Service) Create(ctx context.Context, draft models.StoryDraft) (*models.Story, error) {
	if verr := Validate(draft); verr != nil {
		s.logger.Debug("Story draft rejected locally", zap.Strings("violations", verr.Violations))
		return nil, verr
	}

	created, err := s.api.CreateStory(ctx, draft)
	if err != nil {
		return nil, mapCreationError(err)
	}
	s.logger.Info("Story created",
		zap.String("storyID", created.ID), zap.String("status", string(created.Status)))
	return created, nil
}

// Update validates the draft and re-submits it for an existing story.
func (s *Service) Update(ctx context.Context, id string, draft models.StoryDraft) (*models.Story, error) {
	if verr := Validate(draft); verr != nil {
		return nil, verr
	}
	updated, err := s.api.UpdateStory(ctx, id, draft)
	if err != nil {
		return nil, mapCreationError(err)
	}
	return updated, nil
}

// List fetches all stories of the current user.
func (s *Service) List(ctx context.Context) ([]models.Story, error) {
	return s.api.ListStories(ctx)
}

// Get fetches one story by id.
func (s *Service) Get(ctx context.Context, id string) (*models.Story, error) {
	return s.api.GetStory(ctx, id)
}

// Delete removes a story.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.api.DeleteStory(ctx, id)
}

// mapCreationError recognizes quota rejections so the surface can show
// the limit-specific message; everything else passes through verbatim.
func mapCreationError(err error) error {
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	if apiErr.Status == http.StatusPaymentRequired ||
		(apiErr.Status == http.StatusForbidden && strings.Contains(strings.ToLower(apiErr.Message), "limit")) {
		return fmt.Errorf("%w: %s", models.ErrStoryLimitReached, apiErr.Message)
	}
	return err
}
