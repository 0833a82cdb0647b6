// Package memory is an in-memory store driver: mutex-guarded maps with
// auto-increment counters. It is the reference semantics for the storage
// layer and the default fixture in tests; the sqlite driver is the one the
// binary ships with.
package memory

import (
	"context"
	"sync"

	"github.com/centsible/centsible/internal/dashboard/domain"
	"github.com/centsible/centsible/internal/dashboard/store"
)

type Store struct {
	mu sync.Mutex

	users        map[int64]domain.User
	usersByName  map[string]int64
	authStates   map[string]domain.AuthState
	sessions     map[string]domain.Session
	accounts     map[int64]domain.Account
	transactions map[int64]domain.Transaction
	categories   map[int64]domain.SpendingCategory
	bills        map[int64]domain.Bill

	nextUserID        int64
	nextAccountID     int64
	nextTransactionID int64
	nextCategoryID    int64
	nextBillID        int64
}

func NewStore() *Store {
	return &Store{
		users:        make(map[int64]domain.User),
		usersByName:  make(map[string]int64),
		authStates:   make(map[string]domain.AuthState),
		sessions:     make(map[string]domain.Session),
		accounts:     make(map[int64]domain.Account),
		transactions: make(map[int64]domain.Transaction),
		categories:   make(map[int64]domain.SpendingCategory),
		bills:        make(map[int64]domain.Bill),

		nextUserID:        1,
		nextAccountID:     1,
		nextTransactionID: 1,
		nextCategoryID:    1,
		nextBillID:        1,
	}
}

func (s *Store) Users() store.Users                           { return &usersRepo{s: s} }
func (s *Store) AuthStates() store.AuthStates                 { return &authStatesRepo{s: s} }
func (s *Store) Sessions() store.Sessions                     { return &sessionsRepo{s: s} }
func (s *Store) Accounts() store.Accounts                     { return &accountsRepo{s: s} }
func (s *Store) Transactions() store.Transactions             { return &transactionsRepo{s: s} }
func (s *Store) SpendingCategories() store.SpendingCategories { return &categoriesRepo{s: s} }
func (s *Store) Bills() store.Bills                           { return &billsRepo{s: s} }

// ApplyMigrations is a no-op; the maps need no schema.
func (s *Store) ApplyMigrations() error { return nil }

func (s *Store) Close() error { return nil }

func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }
