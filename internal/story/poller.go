package story

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"storybook-client/internal/models"
)

// PollState describes the poller state machine.
type PollState string

const (
	PollIdle      PollState = "idle"
	PollPolling   PollState = "polling"
	PollCompleted PollState = "completed" // story reached "completed"
	PollFailed    PollState = "failed"    // story reached "failed"
	PollStopped   PollState = "stopped"   // cancelled, or a tick failed
)

// Fetcher fetches one story by id. The API client satisfies it.
type Fetcher interface {
	GetStory(ctx context.Context, id string) (*models.Story, error)
}

// Result is the poller outcome. Story is the last known story state; it
// may be nil when the very first fetch failed. Err is non-nil when
// polling stopped on a failure or cancellation rather than a terminal
// story status.
type Result struct {
	Story *models.Story
	Err   error
}

// Poller re-fetches a story on a fixed interval until it reaches a
// terminal status or the context is cancelled. Ticks are strictly
// sequential: the next fetch is scheduled only after the previous one
// resolves, so overlapping fetches can never race stale state in.
//
// A tick failure stops the poller and surfaces the error together with
// the last known story. That is deliberate bounded effort, not a
// resilience gap: the server stays the source of truth and the user can
// re-open the story to resume watching.
type Poller struct {
	fetch    Fetcher
	interval time.Duration
	logger   *zap.Logger

	mu    sync.Mutex
	state PollState
}

// NewPoller creates a poller with the given fetch interval.
func NewPoller(fetch Fetcher, interval time.Duration, logger *zap.Logger) *Poller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{
		fetch:    fetch,
		interval: interval,
		logger:   logger.Named("StoryPoller"),
		state:    PollIdle,
	}
}

// State returns the current poller state.
func (p *Poller) State() PollState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Poller) setState(s PollState) {
	p.mu.Lock()
	p.state = s
	p.mu.Unlock()
}

// Run polls until a terminal status, a tick failure or ctx cancellation.
// onUpdate, when non-nil, is called with every fetched snapshot,
// including the terminal one. Run blocks; use Start for a goroutine.
func (p *Poller) Run(ctx context.Context, storyID string, onUpdate func(*models.Story)) Result {
	log := p.logger.With(zap.String("storyID", storyID))
	p.setState(PollPolling)

	var last *models.Story
	for {
		st, err := p.fetch.GetStory(ctx, storyID)
		if err != nil {
			// Ограниченная настойчивость: не ретраим, отдаем что знаем.
			log.Warn("Status poll tick failed, stopping", zap.Error(err))
			p.setState(PollStopped)
			return Result{Story: last, Err: err}
		}
		last = st
		if onUpdate != nil {
			onUpdate(st)
		}

		switch st.Status {
		case models.StatusCompleted:
			log.Info("Story generation completed")
			p.setState(PollCompleted)
			return Result{Story: st}
		case models.StatusFailed:
			log.Info("Story generation failed")
			p.setState(PollFailed)
			return Result{Story: st}
		}

		// Ровно один следующий тик, и только после завершения текущего.
		select {
		case <-ctx.Done():
			log.Debug("Status polling cancelled")
			p.setState(PollStopped)
			return Result{Story: last, Err: ctx.Err()}
		case <-time.After(p.interval):
		}
	}
}

// Start runs the poller in its own goroutine and delivers the outcome on
// the returned channel. Cancel the context to stop early.
func (p *Poller) Start(ctx context.Context, storyID string, onUpdate func(*models.Story)) <-chan Result {
	done := make(chan Result, 1)
	go func() {
		done <- p.Run(ctx, storyID, onUpdate)
	}()
	return done
}
