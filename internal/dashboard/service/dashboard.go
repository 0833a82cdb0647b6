package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/centsible/centsible/internal/dashboard/domain"
	"github.com/centsible/centsible/internal/dashboard/provider"
	"github.com/centsible/centsible/internal/dashboard/store"
	"github.com/centsible/centsible/pkg/slogx"
)

// CurrentPeriod labels the spending-category snapshot window persisted by the
// sync step.
const CurrentPeriod = "current_month"

// growthPercentage is a fixed figure until the provider exposes historical
// balances to derive it from.
var growthPercentage = decimal.RequireFromString("2.4")

// Dashboard is the aggregate payload returned to the front end.
type Dashboard struct {
	User               domain.Profile              `json:"user"`
	Accounts           AccountsSummary             `json:"accounts"`
	Transactions       []provider.Transaction      `json:"transactions"`
	SpendingCategories []provider.SpendingCategory `json:"spendingCategories"`
	UpcomingBills      []provider.Bill             `json:"upcomingBills"`
}

// AccountsSummary groups accounts by type under an exact-decimal total.
type AccountsSummary struct {
	TotalBalance     decimal.Decimal    `json:"totalBalance"`
	GrowthPercentage decimal.Decimal    `json:"growthPercentage"`
	Checking         []provider.Account `json:"checking"`
	Savings          []provider.Account `json:"savings"`
	Credit           []provider.Account `json:"credit"`
}

// DashboardService aggregates the four provider resources into one payload,
// refreshing the stored token on the way when it has expired.
type DashboardService struct {
	Store    store.Store
	Provider ProviderClient
}

// Load builds the dashboard for userID. The four fetches run concurrently and
// the aggregate is all-or-nothing: any partial failure surfaces as
// ErrDataRetrievalFailed (or the reauthentication sentinel when the grant is
// dead), never a payload with holes.
func (s *DashboardService) Load(ctx context.Context, userID int64) (Dashboard, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Dashboard{}, ErrUnauthorized
		}
		return Dashboard{}, err
	}

	accessToken := user.AccessToken
	if user.TokenExpired(time.Now().UTC()) {
		accessToken, err = s.refreshToken(ctx, user)
		if err != nil {
			return Dashboard{}, err
		}
		log.Debug("refreshed expired provider token", "user_id", user.ID)
	}

	var (
		wg           sync.WaitGroup
		accounts     []provider.Account
		transactions []provider.Transaction
		categories   []provider.SpendingCategory
		bills        []provider.Bill
		errs         [4]error
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		accounts, errs[0] = s.Provider.Accounts(ctx, accessToken)
	}()
	go func() {
		defer wg.Done()
		transactions, errs[1] = s.Provider.Transactions(ctx, accessToken)
	}()
	go func() {
		defer wg.Done()
		categories, errs[2] = s.Provider.SpendingCategories(ctx, accessToken)
	}()
	go func() {
		defer wg.Done()
		bills, errs[3] = s.Provider.UpcomingBills(ctx, accessToken)
	}()
	wg.Wait()

	for _, err := range errs {
		if err == nil {
			continue
		}
		if errors.Is(err, ErrReauthenticationRequired) {
			return Dashboard{}, err
		}
		return Dashboard{}, fmt.Errorf("%w: %w", ErrDataRetrievalFailed, err)
	}

	s.sync(ctx, user.ID, accounts, transactions, categories, bills)

	summary := AccountsSummary{
		TotalBalance:     decimal.Zero,
		GrowthPercentage: growthPercentage,
		Checking:         []provider.Account{},
		Savings:          []provider.Account{},
		Credit:           []provider.Account{},
	}
	for _, a := range accounts {
		summary.TotalBalance = summary.TotalBalance.Add(a.Balance)
		switch a.Type {
		case "checking":
			summary.Checking = append(summary.Checking, a)
		case "savings":
			summary.Savings = append(summary.Savings, a)
		case "credit":
			summary.Credit = append(summary.Credit, a)
		}
	}

	if transactions == nil {
		transactions = []provider.Transaction{}
	}
	if categories == nil {
		categories = []provider.SpendingCategory{}
	}
	if bills == nil {
		bills = []provider.Bill{}
	}

	return Dashboard{
		User:               user.Profile,
		Accounts:           summary,
		Transactions:       transactions,
		SpendingCategories: categories,
		UpcomingBills:      bills,
	}, nil
}

// refreshToken exchanges the stored refresh token and persists the result in a
// single atomic update. A user with no refresh token has to log in again.
func (s *DashboardService) refreshToken(ctx context.Context, user domain.User) (string, error) {
	if user.RefreshToken == "" {
		return "", fmt.Errorf("%w: no refresh token on record", ErrReauthenticationRequired)
	}

	tok, err := s.Provider.RefreshToken(ctx, user.RefreshToken)
	if err != nil {
		return "", err
	}

	refreshToken := tok.RefreshToken
	if refreshToken == "" {
		// Providers may omit the refresh token on rotation-free grants.
		refreshToken = user.RefreshToken
	}

	upd := domain.TokenUpdate{
		AccessToken:    tok.AccessToken,
		RefreshToken:   refreshToken,
		TokenExpiresAt: time.Now().UTC().Add(time.Duration(tok.ExpiresIn) * time.Second),
	}
	if err := s.Store.Users().UpdateUserTokens(ctx, user.ID, upd); err != nil {
		return "", err
	}
	return tok.AccessToken, nil
}

// sync persists the fetched snapshot for idempotent upsert by provider id.
// Persistence failures are logged, not surfaced: the user already has the live
// data in hand.
func (s *DashboardService) sync(
	ctx context.Context,
	userID int64,
	accounts []provider.Account,
	transactions []provider.Transaction,
	categories []provider.SpendingCategory,
	bills []provider.Bill,
) {
	log := slogx.FromContext(ctx)

	for _, a := range accounts {
		_, err := s.Store.Accounts().UpsertAccount(ctx, domain.Account{
			UserID:        userID,
			ProviderID:    a.ID,
			Type:          a.Type,
			Name:          a.Name,
			Balance:       a.Balance,
			Available:     a.Available,
			AccountNumber: a.AccountNumber,
			InterestRate:  a.InterestRate,
		})
		if err != nil {
			log.Warn("account sync failed", "provider_id", a.ID, "error", err)
		}
	}

	for _, t := range transactions {
		_, err := s.Store.Transactions().UpsertTransaction(ctx, domain.Transaction{
			UserID:      userID,
			ProviderID:  t.ID,
			AccountID:   t.AccountID,
			AccountName: t.AccountName,
			Date:        t.Date,
			Description: t.Description,
			Amount:      t.Amount,
			Category:    t.Category,
			Merchant:    t.Merchant,
		})
		if err != nil {
			log.Warn("transaction sync failed", "provider_id", t.ID, "error", err)
		}
	}

	for _, c := range categories {
		_, err := s.Store.SpendingCategories().UpsertSpendingCategory(ctx, domain.SpendingCategory{
			UserID:     userID,
			Category:   c.Category,
			Amount:     c.Amount,
			Percentage: c.Percentage,
			Icon:       c.Icon,
			Color:      c.Color,
			Period:     CurrentPeriod,
		})
		if err != nil {
			log.Warn("spending category sync failed", "category", c.Category, "error", err)
		}
	}

	for _, b := range bills {
		_, err := s.Store.Bills().UpsertBill(ctx, domain.Bill{
			UserID:     userID,
			ProviderID: b.ID,
			Name:       b.Name,
			Amount:     b.Amount,
			DueDate:    b.DueDate,
			Category:   b.Category,
			Icon:       b.Icon,
			Color:      b.Color,
			IsPaid:     b.IsPaid,
		})
		if err != nil {
			log.Warn("bill sync failed", "provider_id", b.ID, "error", err)
		}
	}
}
