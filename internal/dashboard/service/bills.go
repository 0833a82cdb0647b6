package service

import (
	"context"

	"github.com/centsible/centsible/internal/dashboard/domain"
	"github.com/centsible/centsible/internal/dashboard/store"
)

// BillsService covers the one user-mutable financial field: a bill's paid
// flag. Everything else about a bill is provider-owned and refreshed by the
// dashboard sync.
type BillsService struct {
	Store store.Store
}

// SetPaid flips a bill's isPaid flag. Returns store.ErrNotFound when the bill
// does not exist or belongs to a different user; the two cases are
// indistinguishable on purpose.
func (s *BillsService) SetPaid(ctx context.Context, billID, userID int64, paid bool) (domain.Bill, error) {
	return s.Store.Bills().SetBillPaid(ctx, billID, userID, paid)
}

// List returns the user's stored bills ordered by due date.
func (s *BillsService) List(ctx context.Context, userID int64) ([]domain.Bill, error) {
	return s.Store.Bills().ListBills(ctx, userID)
}
