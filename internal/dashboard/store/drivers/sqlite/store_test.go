package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/centsible/centsible/internal/dashboard/domain"
	"github.com/centsible/centsible/internal/dashboard/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", filepath.Join(t.TempDir(), "test.db"))
	st, err := NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func seedUser(t *testing.T, st *Store, username string) domain.User {
	t.Helper()
	user, err := st.Users().CreateUser(context.Background(), domain.User{
		Username:     username,
		PasswordHash: "$argon2id$placeholder",
		Profile:      domain.Profile{FirstName: "Alex", LastName: "Morgan", Email: username},
	})
	require.NoError(t, err)
	return user
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestUsersRepo(t *testing.T) {
	ctx := context.Background()

	t.Run("create and fetch", func(t *testing.T) {
		st := newTestStore(t)
		created := seedUser(t, st, "alex@example.com")
		require.NotZero(t, created.ID)

		byID, err := st.Users().GetUserByID(ctx, created.ID)
		require.NoError(t, err)
		require.Equal(t, "alex@example.com", byID.Username)
		require.Equal(t, "Alex", byID.Profile.FirstName)

		byName, err := st.Users().GetUserByUsername(ctx, "alex@example.com")
		require.NoError(t, err)
		require.Equal(t, created.ID, byName.ID)
	})

	t.Run("unknown user is ErrNotFound", func(t *testing.T) {
		st := newTestStore(t)
		_, err := st.Users().GetUserByID(ctx, 9999)
		require.ErrorIs(t, err, store.ErrNotFound)

		_, err = st.Users().GetUserByUsername(ctx, "nobody@example.com")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("duplicate username is ErrAlreadyExists", func(t *testing.T) {
		st := newTestStore(t)
		seedUser(t, st, "alex@example.com")

		_, err := st.Users().CreateUser(ctx, domain.User{
			Username:     "alex@example.com",
			PasswordHash: "$argon2id$placeholder",
		})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("token update", func(t *testing.T) {
		st := newTestStore(t)
		user := seedUser(t, st, "alex@example.com")

		expiry := time.Now().UTC().Add(time.Hour).Truncate(time.Second)
		err := st.Users().UpdateUserTokens(ctx, user.ID, domain.TokenUpdate{
			AccessToken:    "at-1",
			RefreshToken:   "rt-1",
			TokenExpiresAt: expiry,
		})
		require.NoError(t, err)

		got, err := st.Users().GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, "at-1", got.AccessToken)
		require.Equal(t, "rt-1", got.RefreshToken)
		require.NotNil(t, got.TokenExpiresAt)
		require.WithinDuration(t, expiry, *got.TokenExpiresAt, time.Second)
		// Profile untouched when the update carries none.
		require.Equal(t, "Alex", got.Profile.FirstName)
	})

	t.Run("token update with profile refresh", func(t *testing.T) {
		st := newTestStore(t)
		user := seedUser(t, st, "alex@example.com")

		err := st.Users().UpdateUserTokens(ctx, user.ID, domain.TokenUpdate{
			AccessToken:    "at-2",
			RefreshToken:   "rt-2",
			TokenExpiresAt: time.Now().UTC().Add(time.Hour),
			Profile:        &domain.Profile{FirstName: "Alexandra", LastName: "Morgan", Email: "alex@example.com"},
		})
		require.NoError(t, err)

		got, err := st.Users().GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, "Alexandra", got.Profile.FirstName)
	})

	t.Run("token update on unknown user is ErrNotFound", func(t *testing.T) {
		st := newTestStore(t)
		err := st.Users().UpdateUserTokens(ctx, 9999, domain.TokenUpdate{
			AccessToken:    "at-1",
			RefreshToken:   "rt-1",
			TokenExpiresAt: time.Now(),
		})
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestAuthStatesRepo(t *testing.T) {
	ctx := context.Background()

	t.Run("consume is single use", func(t *testing.T) {
		st := newTestStore(t)
		require.NoError(t, st.AuthStates().PutState(ctx, "nonce-1", time.Now().UTC()))

		pending, err := st.AuthStates().GetState(ctx, "nonce-1")
		require.NoError(t, err)
		require.Equal(t, "nonce-1", pending.State)

		require.NoError(t, st.AuthStates().ConsumeState(ctx, "nonce-1"))
		require.ErrorIs(t, st.AuthStates().ConsumeState(ctx, "nonce-1"), store.ErrNotFound)
	})

	t.Run("duplicate registration is ErrAlreadyExists", func(t *testing.T) {
		st := newTestStore(t)
		require.NoError(t, st.AuthStates().PutState(ctx, "nonce-1", time.Now().UTC()))
		require.ErrorIs(t, st.AuthStates().PutState(ctx, "nonce-1", time.Now().UTC()), store.ErrAlreadyExists)
	})

	t.Run("never-issued state is ErrNotFound", func(t *testing.T) {
		st := newTestStore(t)
		require.ErrorIs(t, st.AuthStates().ConsumeState(ctx, "never-issued"), store.ErrNotFound)
	})

	t.Run("expiry sweep", func(t *testing.T) {
		st := newTestStore(t)
		now := time.Now().UTC()
		require.NoError(t, st.AuthStates().PutState(ctx, "stale", now.Add(-time.Hour)))
		require.NoError(t, st.AuthStates().PutState(ctx, "fresh", now))

		removed, err := st.AuthStates().DeleteExpiredStates(ctx, now.Add(-10*time.Minute))
		require.NoError(t, err)
		require.EqualValues(t, 1, removed)

		require.ErrorIs(t, st.AuthStates().ConsumeState(ctx, "stale"), store.ErrNotFound)
		require.NoError(t, st.AuthStates().ConsumeState(ctx, "fresh"))
	})
}

func TestSessionsRepo(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip and delete", func(t *testing.T) {
		st := newTestStore(t)
		user := seedUser(t, st, "alex@example.com")

		now := time.Now().UTC().Truncate(time.Second)
		session := domain.Session{
			ID:        "01J0000000000000000000TEST",
			UserID:    user.ID,
			CreatedAt: now,
			ExpiresAt: now.Add(24 * time.Hour),
		}
		require.NoError(t, st.Sessions().CreateSession(ctx, session))

		got, err := st.Sessions().GetSession(ctx, session.ID)
		require.NoError(t, err)
		require.Equal(t, user.ID, got.UserID)
		require.WithinDuration(t, session.ExpiresAt, got.ExpiresAt, time.Second)

		require.NoError(t, st.Sessions().DeleteSession(ctx, session.ID))
		_, err = st.Sessions().GetSession(ctx, session.ID)
		require.ErrorIs(t, err, store.ErrNotFound)

		// Deleting an unknown session is not an error.
		require.NoError(t, st.Sessions().DeleteSession(ctx, session.ID))
	})

	t.Run("expiry sweep", func(t *testing.T) {
		st := newTestStore(t)
		user := seedUser(t, st, "alex@example.com")

		now := time.Now().UTC()
		require.NoError(t, st.Sessions().CreateSession(ctx, domain.Session{
			ID: "expired", UserID: user.ID, CreatedAt: now.Add(-25 * time.Hour), ExpiresAt: now.Add(-time.Hour),
		}))
		require.NoError(t, st.Sessions().CreateSession(ctx, domain.Session{
			ID: "live", UserID: user.ID, CreatedAt: now, ExpiresAt: now.Add(time.Hour),
		}))

		removed, err := st.Sessions().DeleteExpiredSessions(ctx, now)
		require.NoError(t, err)
		require.EqualValues(t, 1, removed)

		_, err = st.Sessions().GetSession(ctx, "expired")
		require.ErrorIs(t, err, store.ErrNotFound)
		_, err = st.Sessions().GetSession(ctx, "live")
		require.NoError(t, err)
	})
}

func TestAccountsRepo(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	user := seedUser(t, st, "alex@example.com")

	rate := mustDecimal(t, "1.25")
	avail := mustDecimal(t, "8942.35")

	stored, err := st.Accounts().UpsertAccount(ctx, domain.Account{
		UserID:        user.ID,
		ProviderID:    "check-1",
		Type:          "checking",
		Name:          "Primary Checking",
		Balance:       mustDecimal(t, "8942.35"),
		Available:     &avail,
		AccountNumber: "****8546",
	})
	require.NoError(t, err)
	require.NotZero(t, stored.ID)
	// Decimals survive the text round trip exactly.
	require.True(t, stored.Balance.Equal(mustDecimal(t, "8942.35")))
	require.NotNil(t, stored.Available)
	require.Nil(t, stored.InterestRate)

	// Second upsert on the same provider id refreshes in place.
	updated, err := st.Accounts().UpsertAccount(ctx, domain.Account{
		UserID:       user.ID,
		ProviderID:   "check-1",
		Type:         "checking",
		Name:         "Primary Checking",
		Balance:      mustDecimal(t, "9000.00"),
		InterestRate: &rate,
	})
	require.NoError(t, err)
	require.Equal(t, stored.ID, updated.ID)
	require.True(t, updated.Balance.Equal(mustDecimal(t, "9000")))
	require.NotNil(t, updated.InterestRate)
	require.True(t, updated.InterestRate.Equal(rate))

	// Same provider id under another user is a distinct row.
	other := seedUser(t, st, "sam@example.com")
	theirs, err := st.Accounts().UpsertAccount(ctx, domain.Account{
		UserID: other.ID, ProviderID: "check-1", Type: "checking", Name: "Checking",
		Balance: mustDecimal(t, "10.00"),
	})
	require.NoError(t, err)
	require.NotEqual(t, updated.ID, theirs.ID)

	accounts, err := st.Accounts().ListAccounts(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
}

func TestTransactionsRepo(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	user := seedUser(t, st, "alex@example.com")

	older := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	_, err := st.Transactions().UpsertTransaction(ctx, domain.Transaction{
		UserID: user.ID, ProviderID: "txn-1", AccountID: "check-1",
		Date: older, Description: "Groceries", Amount: mustDecimal(t, "-54.20"),
	})
	require.NoError(t, err)

	_, err = st.Transactions().UpsertTransaction(ctx, domain.Transaction{
		UserID: user.ID, ProviderID: "txn-2", AccountID: "check-1",
		Date: newer, Description: "Coffee", Amount: mustDecimal(t, "-4.85"),
	})
	require.NoError(t, err)

	// Re-sync of txn-1 does not duplicate it.
	_, err = st.Transactions().UpsertTransaction(ctx, domain.Transaction{
		UserID: user.ID, ProviderID: "txn-1", AccountID: "check-1",
		Date: older, Description: "Groceries", Amount: mustDecimal(t, "-54.20"),
	})
	require.NoError(t, err)

	list, err := st.Transactions().ListTransactions(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	// Newest first.
	require.Equal(t, "txn-2", list[0].ProviderID)
	require.Equal(t, "txn-1", list[1].ProviderID)
	require.True(t, list[0].Amount.Equal(mustDecimal(t, "-4.85")))
}

func TestSpendingCategoriesRepo(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	user := seedUser(t, st, "alex@example.com")

	for _, c := range []struct {
		name   string
		amount string
	}{
		{"Food & Dining", "485.50"},
		{"Housing", "1200.00"},
	} {
		_, err := st.SpendingCategories().UpsertSpendingCategory(ctx, domain.SpendingCategory{
			UserID:     user.ID,
			Category:   c.name,
			Amount:     mustDecimal(t, c.amount),
			Percentage: mustDecimal(t, "10"),
			Period:     "current_month",
		})
		require.NoError(t, err)
	}

	// A fresh sync for an existing (category, period) replaces the amount.
	updated, err := st.SpendingCategories().UpsertSpendingCategory(ctx, domain.SpendingCategory{
		UserID:     user.ID,
		Category:   "Housing",
		Amount:     mustDecimal(t, "1250.00"),
		Percentage: mustDecimal(t, "40"),
		Period:     "current_month",
	})
	require.NoError(t, err)
	require.True(t, updated.Amount.Equal(mustDecimal(t, "1250")))

	list, err := st.SpendingCategories().ListSpendingCategories(ctx, user.ID, "current_month")
	require.NoError(t, err)
	require.Len(t, list, 2)
	// Largest spend first.
	require.Equal(t, "Housing", list[0].Category)

	// A different period is a separate bucket.
	other, err := st.SpendingCategories().ListSpendingCategories(ctx, user.ID, "last_month")
	require.NoError(t, err)
	require.Empty(t, other)
}

func TestBillsRepo(t *testing.T) {
	ctx := context.Background()

	t.Run("upsert preserves the paid flag", func(t *testing.T) {
		st := newTestStore(t)
		user := seedUser(t, st, "alex@example.com")

		bill, err := st.Bills().UpsertBill(ctx, domain.Bill{
			UserID: user.ID, ProviderID: "bill-1", Name: "Rent",
			Amount: mustDecimal(t, "1200.00"), DueDate: time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		require.False(t, bill.IsPaid)

		paid, err := st.Bills().SetBillPaid(ctx, bill.ID, user.ID, true)
		require.NoError(t, err)
		require.True(t, paid.IsPaid)

		// A provider re-sync must not reset what the user marked paid.
		resynced, err := st.Bills().UpsertBill(ctx, domain.Bill{
			UserID: user.ID, ProviderID: "bill-1", Name: "Rent",
			Amount: mustDecimal(t, "1200.00"), DueDate: time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		require.Equal(t, bill.ID, resynced.ID)
		require.True(t, resynced.IsPaid)
	})

	t.Run("ownership", func(t *testing.T) {
		st := newTestStore(t)
		owner := seedUser(t, st, "alex@example.com")
		stranger := seedUser(t, st, "sam@example.com")

		bill, err := st.Bills().UpsertBill(ctx, domain.Bill{
			UserID: owner.ID, ProviderID: "bill-1", Name: "Rent",
			Amount: mustDecimal(t, "1200.00"), DueDate: time.Now().UTC(),
		})
		require.NoError(t, err)

		_, err = st.Bills().SetBillPaid(ctx, bill.ID, stranger.ID, true)
		require.ErrorIs(t, err, store.ErrNotFound)

		// The flag is untouched after the failed attempt.
		got, err := st.Bills().GetBill(ctx, bill.ID)
		require.NoError(t, err)
		require.False(t, got.IsPaid)
	})

	t.Run("list is due date order", func(t *testing.T) {
		st := newTestStore(t)
		user := seedUser(t, st, "alex@example.com")

		later := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)
		sooner := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)

		_, err := st.Bills().UpsertBill(ctx, domain.Bill{
			UserID: user.ID, ProviderID: "bill-electric", Name: "Electric",
			Amount: mustDecimal(t, "85.00"), DueDate: later,
		})
		require.NoError(t, err)
		_, err = st.Bills().UpsertBill(ctx, domain.Bill{
			UserID: user.ID, ProviderID: "bill-rent", Name: "Rent",
			Amount: mustDecimal(t, "1200.00"), DueDate: sooner,
		})
		require.NoError(t, err)

		bills, err := st.Bills().ListBills(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, bills, 2)
		require.Equal(t, "Rent", bills[0].Name)
		require.Equal(t, "Electric", bills[1].Name)
	})
}

func TestStorePing(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.Ping(context.Background()))
}
