package session

import (
	"sync"

	"storybook-client/internal/models"
)

// stateBox guards the session snapshot. Writers replace the whole pair so
// readers can never observe a half-updated session.
type stateBox struct {
	mu    sync.RWMutex
	state State
	user  *models.User
}

func (b *stateBox) set(state State, u *models.User) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = state
	if u != nil {
		copied := *u
		b.user = &copied
	} else {
		b.user = nil
	}
}

// get copies the user out so callers cannot mutate shared state.
func (b *stateBox) get() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.user == nil {
		return Snapshot{State: b.state}
	}
	copied := *b.user
	return Snapshot{State: b.state, User: &copied}
}
