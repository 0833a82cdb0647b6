package memory

import (
	"context"
	"sort"
	"time"

	"github.com/centsible/centsible/internal/dashboard/domain"
	"github.com/centsible/centsible/internal/dashboard/store"
)

type accountsRepo struct {
	s *Store
}

func (r *accountsRepo) UpsertAccount(ctx context.Context, a domain.Account) (domain.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, existing := range r.s.accounts {
		if existing.UserID == a.UserID && existing.ProviderID == a.ProviderID {
			a.ID = id
			a.CreatedAt = existing.CreatedAt
			r.s.accounts[id] = a
			return a, nil
		}
	}

	a.ID = r.s.nextAccountID
	r.s.nextAccountID++
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	r.s.accounts[a.ID] = a
	return a, nil
}

func (r *accountsRepo) ListAccounts(ctx context.Context, userID int64) ([]domain.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []domain.Account
	for _, a := range r.s.accounts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type transactionsRepo struct {
	s *Store
}

func (r *transactionsRepo) UpsertTransaction(ctx context.Context, t domain.Transaction) (domain.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, existing := range r.s.transactions {
		if existing.UserID == t.UserID && existing.ProviderID == t.ProviderID {
			t.ID = id
			t.CreatedAt = existing.CreatedAt
			r.s.transactions[id] = t
			return t, nil
		}
	}

	t.ID = r.s.nextTransactionID
	r.s.nextTransactionID++
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	r.s.transactions[t.ID] = t
	return t, nil
}

func (r *transactionsRepo) ListTransactions(ctx context.Context, userID int64) ([]domain.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []domain.Transaction
	for _, t := range r.s.transactions {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	// Newest first, matching the sqlite driver's ORDER BY.
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

type categoriesRepo struct {
	s *Store
}

func (r *categoriesRepo) UpsertSpendingCategory(ctx context.Context, c domain.SpendingCategory) (domain.SpendingCategory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, existing := range r.s.categories {
		if existing.UserID == c.UserID && existing.Category == c.Category && existing.Period == c.Period {
			c.ID = id
			c.CreatedAt = existing.CreatedAt
			r.s.categories[id] = c
			return c, nil
		}
	}

	c.ID = r.s.nextCategoryID
	r.s.nextCategoryID++
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	r.s.categories[c.ID] = c
	return c, nil
}

func (r *categoriesRepo) ListSpendingCategories(ctx context.Context, userID int64, period string) ([]domain.SpendingCategory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []domain.SpendingCategory
	for _, c := range r.s.categories {
		if c.UserID == userID && c.Period == period {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Amount.GreaterThan(out[j].Amount) })
	return out, nil
}

type billsRepo struct {
	s *Store
}

func (r *billsRepo) UpsertBill(ctx context.Context, b domain.Bill) (domain.Bill, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, existing := range r.s.bills {
		if existing.UserID == b.UserID && existing.ProviderID == b.ProviderID {
			b.ID = id
			b.CreatedAt = existing.CreatedAt
			// A provider refresh must not clobber a user's paid flag.
			b.IsPaid = existing.IsPaid
			r.s.bills[id] = b
			return b, nil
		}
	}

	b.ID = r.s.nextBillID
	r.s.nextBillID++
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	r.s.bills[b.ID] = b
	return b, nil
}

func (r *billsRepo) GetBill(ctx context.Context, id int64) (domain.Bill, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.bills[id]
	if !ok {
		return domain.Bill{}, store.ErrNotFound
	}
	return b, nil
}

func (r *billsRepo) ListBills(ctx context.Context, userID int64) ([]domain.Bill, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []domain.Bill
	for _, b := range r.s.bills {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return out, nil
}

func (r *billsRepo) SetBillPaid(ctx context.Context, id, userID int64, paid bool) (domain.Bill, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.bills[id]
	if !ok || b.UserID != userID {
		return domain.Bill{}, store.ErrNotFound
	}
	b.IsPaid = paid
	r.s.bills[id] = b
	return b, nil
}
