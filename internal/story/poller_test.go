package story

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storybook-client/internal/models"
)

// scriptedFetcher returns predefined statuses in order, then repeats the
// last one. It also checks that ticks never overlap.
type scriptedFetcher struct {
	mu       sync.Mutex
	statuses []models.StoryStatus
	err      error // returned once all statuses are consumed, when set
	calls    int
	inFlight int
	overlap  bool
	delay    time.Duration
}

func (f *scriptedFetcher) GetStory(ctx context.Context, id string) (*models.Story, error) {
	f.mu.Lock()
	f.calls++
	f.inFlight++
	if f.inFlight > 1 {
		f.overlap = true
	}
	idx := f.calls - 1
	if idx >= len(f.statuses) {
		idx = len(f.statuses) - 1
	}
	status := f.statuses[idx]
	failNow := f.err != nil && f.calls > len(f.statuses)
	f.mu.Unlock()

	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	f.mu.Lock()
	f.inFlight--
	f.mu.Unlock()

	if failNow {
		return nil, f.err
	}
	return &models.Story{ID: id, Status: status}, nil
}

func (f *scriptedFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestPollerImmediateTerminal(t *testing.T) {
	for _, tt := range []struct {
		status models.StoryStatus
		want   PollState
	}{
		{models.StatusCompleted, PollCompleted},
		{models.StatusFailed, PollFailed},
	} {
		t.Run(string(tt.status), func(t *testing.T) {
			fetch := &scriptedFetcher{statuses: []models.StoryStatus{tt.status}}
			p := NewPoller(fetch, time.Millisecond, zap.NewNop())
			require.Equal(t, PollIdle, p.State())

			result := p.Run(context.Background(), "story-1", nil)
			require.NoError(t, result.Err)
			assert.Equal(t, tt.status, result.Story.Status)
			assert.Equal(t, tt.want, p.State())
			// Терминальный статус не должен планировать следующий тик.
			assert.Equal(t, 1, fetch.callCount())
		})
	}
}

func TestPollerSchedulesNextTickWhileGenerating(t *testing.T) {
	fetch := &scriptedFetcher{statuses: []models.StoryStatus{
		models.StatusPending,
		models.StatusGenerating,
		models.StatusCompleted,
	}}
	p := NewPoller(fetch, time.Millisecond, zap.NewNop())

	var seen []models.StoryStatus
	result := p.Run(context.Background(), "story-1", func(s *models.Story) {
		seen = append(seen, s.Status)
	})
	require.NoError(t, result.Err)

	// Ровно один повторный fetch на каждый нетерминальный статус.
	assert.Equal(t, 3, fetch.callCount())
	assert.Equal(t, []models.StoryStatus{
		models.StatusPending, models.StatusGenerating, models.StatusCompleted,
	}, seen)
	assert.Equal(t, PollCompleted, p.State())
}

func TestPollerTicksAreSequential(t *testing.T) {
	fetch := &scriptedFetcher{
		statuses: []models.StoryStatus{
			models.StatusGenerating, models.StatusGenerating, models.StatusGenerating,
			models.StatusGenerating, models.StatusCompleted,
		},
		delay: 10 * time.Millisecond, // fetch дольше интервала
	}
	p := NewPoller(fetch, time.Millisecond, zap.NewNop())

	result := p.Run(context.Background(), "story-1", nil)
	require.NoError(t, result.Err)
	assert.False(t, fetch.overlap, "ticks must never overlap")
}

func TestPollerCancellation(t *testing.T) {
	fetch := &scriptedFetcher{statuses: []models.StoryStatus{models.StatusGenerating}}
	p := NewPoller(fetch, time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := p.Start(ctx, "story-1", func(s *models.Story) {
		// Отменяем после первого снапшота; fetch в полете завершится,
		// но новых тиков быть не должно.
		cancel()
	})

	result := <-done
	require.ErrorIs(t, result.Err, context.Canceled)
	assert.Equal(t, PollStopped, p.State())
	require.NotNil(t, result.Story)
	assert.Equal(t, models.StatusGenerating, result.Story.Status)

	calls := fetch.callCount()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, calls, fetch.callCount(), "call count must stop growing after cancellation")
}

func TestPollerStopsOnFetchError(t *testing.T) {
	tickErr := errors.New("boom")
	fetch := &scriptedFetcher{
		statuses: []models.StoryStatus{models.StatusGenerating},
		err:      tickErr,
	}
	p := NewPoller(fetch, time.Millisecond, zap.NewNop())

	result := p.Run(context.Background(), "story-1", nil)
	require.ErrorIs(t, result.Err, tickErr)
	// Последнее известное состояние отдается вместе с ошибкой.
	require.NotNil(t, result.Story)
	assert.Equal(t, models.StatusGenerating, result.Story.Status)
	assert.Equal(t, PollStopped, p.State())

	calls := fetch.callCount()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, calls, fetch.callCount(), "no retries after a failed tick")
}
