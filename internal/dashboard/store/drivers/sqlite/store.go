package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/centsible/centsible/internal/dashboard/store"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

type Store struct {
	db  *sql.DB
	dsn string
}

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// Enforce FKs
	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, dsn: dsn}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Users() store.Users                           { return &usersRepo{db: s.db} }
func (s *Store) AuthStates() store.AuthStates                 { return &authStatesRepo{db: s.db} }
func (s *Store) Sessions() store.Sessions                     { return &sessionsRepo{db: s.db} }
func (s *Store) Accounts() store.Accounts                     { return &accountsRepo{db: s.db} }
func (s *Store) Transactions() store.Transactions             { return &transactionsRepo{db: s.db} }
func (s *Store) SpendingCategories() store.SpendingCategories { return &categoriesRepo{db: s.db} }
func (s *Store) Bills() store.Bills                           { return &billsRepo{db: s.db} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// mapConstraint translates sqlite unique-constraint failures to the store
// sentinel so callers don't depend on driver error strings.
func mapConstraint(err error) error {
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return store.ErrAlreadyExists
	}
	return err
}

func mapNullTimePtr(nt sql.NullTime) *time.Time {
	if nt.Valid {
		val := nt.Time
		return &val
	}
	return nil
}

func mapOptionalTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// Monetary amounts are persisted as exact decimal strings, never floats.

func decimalToText(d decimal.Decimal) string { return d.String() }

func decimalFromText(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

func optionalDecimalToText(d *decimal.Decimal) sql.NullString {
	if d == nil {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: d.String(), Valid: true}
}

func optionalDecimalFromText(ns sql.NullString) (*decimal.Decimal, error) {
	if !ns.Valid {
		return nil, nil
	}
	d, err := decimal.NewFromString(ns.String)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
