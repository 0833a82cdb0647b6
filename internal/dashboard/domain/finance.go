package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Financial records are read-mostly rows scoped to a user. Each carries the
// provider-supplied identifier so repeated dashboard syncs upsert instead of
// duplicating. Monetary amounts are exact decimals, never floats.

type Account struct {
	ID            int64            `json:"id"`
	UserID        int64            `json:"userId"`
	ProviderID    string           `json:"accountId"`
	Type          string           `json:"type"` // checking, savings, credit
	Name          string           `json:"name"`
	Balance       decimal.Decimal  `json:"balance"`
	Available     *decimal.Decimal `json:"available,omitempty"`
	AccountNumber string           `json:"accountNumber,omitempty"`
	InterestRate  *decimal.Decimal `json:"interestRate,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
}

type Transaction struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"userId"`
	ProviderID  string          `json:"transactionId"`
	AccountID   string          `json:"accountId"` // provider account id
	AccountName string          `json:"accountName,omitempty"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category,omitempty"`
	Merchant    string          `json:"merchant,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// SpendingCategory is a per-period aggregate, keyed by (user, category, period).
type SpendingCategory struct {
	ID         int64           `json:"id"`
	UserID     int64           `json:"userId"`
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
	Icon       string          `json:"icon,omitempty"`
	Color      string          `json:"color,omitempty"`
	Period     string          `json:"period"` // e.g. current_month
	CreatedAt  time.Time       `json:"createdAt"`
}

// Bill is an upcoming payment. IsPaid is the only user-mutable financial field.
type Bill struct {
	ID         int64           `json:"id"`
	UserID     int64           `json:"userId"`
	ProviderID string          `json:"billId"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	DueDate    time.Time       `json:"dueDate"`
	Category   string          `json:"category,omitempty"`
	Icon       string          `json:"icon,omitempty"`
	Color      string          `json:"color,omitempty"`
	IsPaid     bool            `json:"isPaid"`
	CreatedAt  time.Time       `json:"createdAt"`
}
