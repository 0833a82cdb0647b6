package service

import (
	"context"

	"github.com/centsible/centsible/internal/dashboard/provider"
)

// fakeProvider implements ProviderClient with overridable function fields.
// Unset fetches return empty slices; unset token calls return a fixed token.
type fakeProvider struct {
	exchangeCode       func(ctx context.Context, code string) (provider.Token, error)
	refreshToken       func(ctx context.Context, refreshToken string) (provider.Token, error)
	profile            func(ctx context.Context, accessToken string) (provider.Profile, error)
	accounts           func(ctx context.Context, accessToken string) ([]provider.Account, error)
	transactions       func(ctx context.Context, accessToken string) ([]provider.Transaction, error)
	spendingCategories func(ctx context.Context, accessToken string) ([]provider.SpendingCategory, error)
	upcomingBills      func(ctx context.Context, accessToken string) ([]provider.Bill, error)
}

func (f *fakeProvider) AuthorizeURL(state string) string {
	return "https://provider.test/oauth2/authorize?state=" + state
}

func (f *fakeProvider) ExchangeCode(ctx context.Context, code string) (provider.Token, error) {
	if f.exchangeCode != nil {
		return f.exchangeCode(ctx, code)
	}
	return provider.Token{AccessToken: "at-test", RefreshToken: "rt-test", ExpiresIn: 3600}, nil
}

func (f *fakeProvider) RefreshToken(ctx context.Context, refreshToken string) (provider.Token, error) {
	if f.refreshToken != nil {
		return f.refreshToken(ctx, refreshToken)
	}
	return provider.Token{AccessToken: "at-refreshed", RefreshToken: "rt-refreshed", ExpiresIn: 3600}, nil
}

func (f *fakeProvider) Profile(ctx context.Context, accessToken string) (provider.Profile, error) {
	if f.profile != nil {
		return f.profile(ctx, accessToken)
	}
	return provider.Profile{FirstName: "Alex", LastName: "Morgan", Email: "alex@example.com"}, nil
}

func (f *fakeProvider) Accounts(ctx context.Context, accessToken string) ([]provider.Account, error) {
	if f.accounts != nil {
		return f.accounts(ctx, accessToken)
	}
	return []provider.Account{}, nil
}

func (f *fakeProvider) Transactions(ctx context.Context, accessToken string) ([]provider.Transaction, error) {
	if f.transactions != nil {
		return f.transactions(ctx, accessToken)
	}
	return []provider.Transaction{}, nil
}

func (f *fakeProvider) SpendingCategories(ctx context.Context, accessToken string) ([]provider.SpendingCategory, error) {
	if f.spendingCategories != nil {
		return f.spendingCategories(ctx, accessToken)
	}
	return []provider.SpendingCategory{}, nil
}

func (f *fakeProvider) UpcomingBills(ctx context.Context, accessToken string) ([]provider.Bill, error) {
	if f.upcomingBills != nil {
		return f.upcomingBills(ctx, accessToken)
	}
	return []provider.Bill{}, nil
}
