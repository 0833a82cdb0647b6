package store

import (
	"context"
	"errors"
	"time"

	"github.com/centsible/centsible/internal/dashboard/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, memory)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable, and is always constructed explicitly and injected into services
// rather than reached through a package singleton.
//
// Every get/put/delete on a single key is atomic within a driver. That is the
// only cross-request coordination the service relies on: concurrent token
// refreshes on one user are last-writer-wins, which is safe because the last
// stored token is still a valid token.
type Store interface {
	Users() Users
	AuthStates() AuthStates
	Sessions() Sessions
	Accounts() Accounts
	Transactions() Transactions
	SpendingCategories() SpendingCategories
	Bills() Bills

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the store is still usable (readiness checks).
	Ping(ctx context.Context) error
}

type Users interface {
	// GetUserByID returns a user by its numeric id.
	GetUserByID(ctx context.Context, id int64) (domain.User, error)

	// GetUserByUsername looks a user up by provider email.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a new user and returns it with the assigned id.
	// Returns ErrAlreadyExists when the username is taken.
	CreateUser(ctx context.Context, u domain.User) (domain.User, error)

	// UpdateUserTokens applies a token update as a single atomic write.
	UpdateUserTokens(ctx context.Context, userID int64, upd domain.TokenUpdate) error
}

type AuthStates interface {
	// PutState registers a CSRF state nonce. Re-registering an already
	// pending state returns ErrAlreadyExists.
	PutState(ctx context.Context, state string, createdAt time.Time) error

	// GetState returns a pending state without consuming it.
	GetState(ctx context.Context, state string) (domain.AuthState, error)

	// ConsumeState atomically looks up and deletes a state. A second consume
	// of the same value, or a consume of a never-issued value, returns
	// ErrNotFound. This is the single-use guarantee the callback relies on.
	ConsumeState(ctx context.Context, state string) error

	// DeleteExpiredStates evicts states created before cutoff, returning the
	// number removed. Housekeeping for abandoned login attempts.
	DeleteExpiredStates(ctx context.Context, cutoff time.Time) (int64, error)
}

type Sessions interface {
	CreateSession(ctx context.Context, s domain.Session) error

	// GetSession returns a session by id regardless of expiry; callers decide
	// what expiry means for them.
	GetSession(ctx context.Context, id string) (domain.Session, error)

	// DeleteSession removes a session. Deleting an unknown id is not an error.
	DeleteSession(ctx context.Context, id string) error

	// DeleteExpiredSessions evicts sessions whose expiry has passed.
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

type Accounts interface {
	// UpsertAccount inserts or refreshes an account keyed by
	// (user id, provider account id) and returns the stored row.
	UpsertAccount(ctx context.Context, a domain.Account) (domain.Account, error)

	ListAccounts(ctx context.Context, userID int64) ([]domain.Account, error)
}

type Transactions interface {
	// UpsertTransaction is keyed by (user id, provider transaction id).
	UpsertTransaction(ctx context.Context, t domain.Transaction) (domain.Transaction, error)

	ListTransactions(ctx context.Context, userID int64) ([]domain.Transaction, error)
}

type SpendingCategories interface {
	// UpsertSpendingCategory is keyed by (user id, category, period).
	UpsertSpendingCategory(ctx context.Context, c domain.SpendingCategory) (domain.SpendingCategory, error)

	ListSpendingCategories(ctx context.Context, userID int64, period string) ([]domain.SpendingCategory, error)
}

type Bills interface {
	// UpsertBill is keyed by (user id, provider bill id). The stored IsPaid
	// flag survives refreshes from the provider.
	UpsertBill(ctx context.Context, b domain.Bill) (domain.Bill, error)

	GetBill(ctx context.Context, id int64) (domain.Bill, error)

	ListBills(ctx context.Context, userID int64) ([]domain.Bill, error)

	// SetBillPaid flips the isPaid flag for a bill owned by userID and
	// returns the updated row, or ErrNotFound if the bill does not exist or
	// belongs to someone else.
	SetBillPaid(ctx context.Context, id, userID int64, paid bool) (domain.Bill, error)
}
