package reader

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storybook-client/internal/models"
)

type stubPages struct {
	pages []models.StoryPage
	err   error
}

func (s *stubPages) GetStoryPages(ctx context.Context, id string) ([]models.StoryPage, error) {
	return s.pages, s.err
}

func page(n int) models.StoryPage {
	return models.StoryPage{ID: "p", PageNumber: n, Content: "content"}
}

func TestLoadSortsUnorderedPages(t *testing.T) {
	// Сервер вернул [3,1,2] - читатель обязан показать [1,2,3].
	fetch := &stubPages{pages: []models.StoryPage{page(3), page(1), page(2)}}

	book, err := Load(context.Background(), fetch, "st-1", zap.NewNop())
	require.NoError(t, err)

	var order []int
	for _, p := range book.Pages() {
		order = append(order, p.PageNumber)
	}
	assert.Equal(t, []int{1, 2, 3}, order)
	assert.Equal(t, 1, book.Current().PageNumber)
}

func TestLoadPropagatesFetchError(t *testing.T) {
	fetchErr := errors.New("boom")
	_, err := Load(context.Background(), &stubPages{err: fetchErr}, "st-1", nil)
	assert.ErrorIs(t, err, fetchErr)
}

func TestNavigationClamps(t *testing.T) {
	book := NewBook([]models.StoryPage{page(1), page(2), page(3)})

	// Назад с первой страницы - no-op.
	book.Previous()
	assert.Equal(t, 0, book.Index())

	book.Next()
	assert.Equal(t, 1, book.Index())

	// Прыжок за границу - no-op, не ошибка.
	book.GoTo(99)
	assert.Equal(t, 1, book.Index())
	book.GoTo(-1)
	assert.Equal(t, 1, book.Index())

	book.Next()
	book.Next() // уже на последней
	assert.Equal(t, 2, book.Index())
	assert.Equal(t, 3, book.Current().PageNumber)
}

func TestEmptyBook(t *testing.T) {
	book := NewBook(nil)
	assert.Zero(t, book.Len())
	assert.Nil(t, book.Current())
	book.Next() // не должен паниковать
	book.GoTo(0)
	assert.Equal(t, 0, book.Index())
}
