package memory

import (
	"context"
	"time"

	"github.com/centsible/centsible/internal/dashboard/domain"
	"github.com/centsible/centsible/internal/dashboard/store"
)

type usersRepo struct {
	s *Store
}

func (r *usersRepo) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return domain.User{}, store.ErrNotFound
	}
	return u, nil
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	id, ok := r.s.usersByName[username]
	if !ok {
		return domain.User{}, store.ErrNotFound
	}
	return r.s.users[id], nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, taken := r.s.usersByName[u.Username]; taken {
		return domain.User{}, store.ErrAlreadyExists
	}

	u.ID = r.s.nextUserID
	r.s.nextUserID++

	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now

	r.s.users[u.ID] = u
	r.s.usersByName[u.Username] = u.ID
	return u, nil
}

func (r *usersRepo) UpdateUserTokens(ctx context.Context, userID int64, upd domain.TokenUpdate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[userID]
	if !ok {
		return store.ErrNotFound
	}

	expiresAt := upd.TokenExpiresAt
	u.AccessToken = upd.AccessToken
	u.RefreshToken = upd.RefreshToken
	u.TokenExpiresAt = &expiresAt
	if upd.Profile != nil {
		u.Profile = *upd.Profile
	}
	u.UpdatedAt = time.Now().UTC()

	r.s.users[userID] = u
	return nil
}
