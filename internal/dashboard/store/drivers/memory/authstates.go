package memory

import (
	"context"
	"time"

	"github.com/centsible/centsible/internal/dashboard/domain"
	"github.com/centsible/centsible/internal/dashboard/store"
)

type authStatesRepo struct {
	s *Store
}

func (r *authStatesRepo) PutState(ctx context.Context, state string, createdAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.authStates[state]; exists {
		return store.ErrAlreadyExists
	}

	r.s.authStates[state] = domain.AuthState{State: state, CreatedAt: createdAt}
	return nil
}

func (r *authStatesRepo) GetState(ctx context.Context, state string) (domain.AuthState, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	st, ok := r.s.authStates[state]
	if !ok {
		return domain.AuthState{}, store.ErrNotFound
	}
	return st, nil
}

// ConsumeState deletes under the store lock, so a racing second consume of
// the same value observes the deletion and fails.
func (r *authStatesRepo) ConsumeState(ctx context.Context, state string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.authStates[state]; !ok {
		return store.ErrNotFound
	}
	delete(r.s.authStates, state)
	return nil
}

func (r *authStatesRepo) DeleteExpiredStates(ctx context.Context, cutoff time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var removed int64
	for state, st := range r.s.authStates {
		if st.CreatedAt.Before(cutoff) {
			delete(r.s.authStates, state)
			removed++
		}
	}
	return removed, nil
}
