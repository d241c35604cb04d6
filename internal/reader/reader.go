// Package reader exposes paging navigation over a story's resolved page
// sequence.
package reader

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"storybook-client/internal/models"
)

// PageFetcher fetches the page set of a story. The API client satisfies it.
type PageFetcher interface {
	GetStoryPages(ctx context.Context, id string) ([]models.StoryPage, error)
}

// Book is a loaded, ordered page sequence with a cursor. Navigation is a
// pure index clamp over already-fetched data; out-of-range moves are
// no-ops, not errors.
type Book struct {
	pages []models.StoryPage
	index int
}

// Load fetches the pages of a story and sorts them ascending by page
// number. Server ordering is never trusted.
func Load(ctx context.Context, fetch PageFetcher, storyID string, logger *zap.Logger) (*Book, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	pages, err := fetch.GetStoryPages(ctx, storyID)
	if err != nil {
		return nil, err
	}
	sort.Slice(pages, func(i, j int) bool {
		return pages[i].PageNumber < pages[j].PageNumber
	})
	logger.Debug("Story pages loaded",
		zap.String("storyID", storyID), zap.Int("pageCount", len(pages)))
	return &Book{pages: pages}, nil
}

// NewBook builds a Book directly from a page slice; used by tests and by
// callers that already hold the pages. The slice is sorted in place.
func NewBook(pages []models.StoryPage) *Book {
	sort.Slice(pages, func(i, j int) bool {
		return pages[i].PageNumber < pages[j].PageNumber
	})
	return &Book{pages: pages}
}

// Len returns the number of pages.
func (b *Book) Len() int { return len(b.pages) }

// Index returns the current 0-based cursor position.
func (b *Book) Index() int { return b.index }

// Pages returns the ordered page sequence.
func (b *Book) Pages() []models.StoryPage { return b.pages }

// Current returns the page under the cursor, or nil for an empty book.
func (b *Book) Current() *models.StoryPage {
	if len(b.pages) == 0 {
		return nil
	}
	return &b.pages[b.index]
}

// Next advances the cursor by one page; at the last page it stays put.
func (b *Book) Next() { b.GoTo(b.index + 1) }

// Previous moves the cursor back one page; at the first page it stays put.
func (b *Book) Previous() { b.GoTo(b.index - 1) }

// GoTo moves the cursor to the 0-based index. Out-of-bounds requests
// leave the cursor unchanged.
func (b *Book) GoTo(index int) {
	if index < 0 || index >= len(b.pages) {
		return
	}
	b.index = index
}
