package memory

import (
	"context"
	"time"

	"github.com/centsible/centsible/internal/dashboard/domain"
	"github.com/centsible/centsible/internal/dashboard/store"
)

type sessionsRepo struct {
	s *Store
}

func (r *sessionsRepo) CreateSession(ctx context.Context, sess domain.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.sessions[sess.ID]; exists {
		return store.ErrAlreadyExists
	}
	r.s.sessions[sess.ID] = sess
	return nil
}

func (r *sessionsRepo) GetSession(ctx context.Context, id string) (domain.Session, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sess, ok := r.s.sessions[id]
	if !ok {
		return domain.Session{}, store.ErrNotFound
	}
	return sess, nil
}

func (r *sessionsRepo) DeleteSession(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.sessions, id)
	return nil
}

func (r *sessionsRepo) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var removed int64
	for id, sess := range r.s.sessions {
		if sess.Expired(now) {
			delete(r.s.sessions, id)
			removed++
		}
	}
	return removed, nil
}
