package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"storybook-client/internal/models"
)

// ListStories fetches all stories owned by the current user.
func (c *Client) ListStories(ctx context.Context) ([]models.Story, error) {
	var stories []models.Story
	if err := c.do(ctx, http.MethodGet, "/api/stories", nil, &stories); err != nil {
		return nil, err
	}
	return stories, nil
}

// GetStory fetches a single story by id.
func (c *Client) GetStory(ctx context.Context, id string) (*models.Story, error) {
	var story models.Story
	err := c.do(ctx, http.MethodGet, "/api/stories/"+id, nil, &story)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", models.ErrStoryNotFound, id)
		}
		return nil, err
	}
	return &story, nil
}

// GetStoryPages fetches the page set of a story. Ordering is NOT
// guaranteed here; the reader sorts before display.
func (c *Client) GetStoryPages(ctx context.Context, id string) ([]models.StoryPage, error) {
	var pages []models.StoryPage
	if err := c.do(ctx, http.MethodGet, "/api/stories/"+id+"/pages", nil, &pages); err != nil {
		return nil, err
	}
	return pages, nil
}

// CreateStory submits a draft. With an image attached the draft goes as
// multipart form data, otherwise as JSON; both hit the same endpoint.
// The returned story is non-terminal; the caller starts polling.
func (c *Client) CreateStory(ctx context.Context, draft models.StoryDraft) (*models.Story, error) {
	return c.submitStory(ctx, http.MethodPost, "/api/stories", draft)
}

// UpdateStory re-submits a draft for an existing story.
func (c *Client) UpdateStory(ctx context.Context, id string, draft models.StoryDraft) (*models.Story, error) {
	return c.submitStory(ctx, http.MethodPut, "/api/stories/"+id, draft)
}

func (c *Client) submitStory(ctx context.Context, method, path string, draft models.StoryDraft) (*models.Story, error) {
	var story models.Story
	if draft.Image == nil {
		if err := c.do(ctx, method, path, draft, &story); err != nil {
			return nil, err
		}
		return &story, nil
	}

	body, contentType, err := encodeDraftMultipart(draft)
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("internal error creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", contentType)
	if err := c.send(httpReq, &story); err != nil {
		return nil, err
	}
	c.logger.Debug("Story submitted with image attachment",
		zap.String("path", path), zap.Int("imageBytes", len(draft.Image.Data)))
	return &story, nil
}

// encodeDraftMultipart builds the multipart body: the image as a file
// part, scalar fields stringified, array fields JSON-stringified.
func encodeDraftMultipart(draft models.StoryDraft) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("image", draft.Image.Filename)
	if err != nil {
		return nil, "", fmt.Errorf("creating image form part: %w", err)
	}
	if _, err := part.Write(draft.Image.Data); err != nil {
		return nil, "", fmt.Errorf("writing image form part: %w", err)
	}

	fields := map[string]string{
		"childName":   draft.ChildName,
		"childAge":    strconv.Itoa(draft.ChildAge),
		"childGender": draft.ChildGender,
		"theme":       draft.Theme,
		"storyLength": draft.StoryLength,
		"isPublic":    strconv.FormatBool(draft.IsPublic),
	}
	if draft.Title != "" {
		fields["title"] = draft.Title
	}
	interests, err := json.Marshal(draft.Interests)
	if err != nil {
		return nil, "", fmt.Errorf("marshalling interests: %w", err)
	}
	fields["interests"] = string(interests)

	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("writing form field %s: %w", name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("finalizing multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

// DeleteStory removes a story.
func (c *Client) DeleteStory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/stories/"+id, nil, nil)
}

// DownloadStory streams the rendered story artifact to w.
func (c *Client) DownloadStory(ctx context.Context, id string, w io.Writer) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/stories/"+id+"/download", nil)
	if err != nil {
		return fmt.Errorf("internal error creating request: %w", err)
	}
	if tok, ok := c.tokens.Token(); ok {
		httpReq.Header.Set("Authorization", "Bearer "+tok)
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return fmt.Errorf("%w: download %s", models.ErrRequestTimeout, id)
		}
		return fmt.Errorf("%w: %v", models.ErrBackendUnreachable, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download story: %s", httpResp.Status)
	}
	if _, err := io.Copy(w, httpResp.Body); err != nil {
		return fmt.Errorf("streaming story download: %w", err)
	}
	return nil
}

// GetStoryPDF returns the URL of the rendered PDF.
func (c *Client) GetStoryPDF(ctx context.Context, id string) (string, error) {
	var resp struct {
		PDFURL string `json:"pdfUrl"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/stories/"+id+"/pdf", nil, &resp); err != nil {
		return "", err
	}
	return resp.PDFURL, nil
}
