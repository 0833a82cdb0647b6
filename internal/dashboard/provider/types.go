package provider

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wire types for the banking provider API. These mirror the provider's JSON
// exactly; the service layer maps them onto domain records before persisting.

type Token struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type,omitempty"`
	Scope        string `json:"scope,omitempty"`
}

type Profile struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type Account struct {
	ID            string           `json:"id"`
	Type          string           `json:"type"`
	Name          string           `json:"name"`
	Balance       decimal.Decimal  `json:"balance"`
	Available     *decimal.Decimal `json:"available"`
	AccountNumber string           `json:"accountNumber"`
	InterestRate  *decimal.Decimal `json:"interestRate"`
}

type Transaction struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Merchant    string          `json:"merchant"`
	AccountID   string          `json:"accountId"`
	AccountName string          `json:"accountName"`
}

type SpendingCategory struct {
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
	Icon       string          `json:"icon"`
	Color      string          `json:"color"`
}

type Bill struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Amount        decimal.Decimal `json:"amount"`
	DueDate       time.Time       `json:"dueDate"`
	DaysRemaining int             `json:"daysRemaining"`
	Icon          string          `json:"icon"`
	Color         string          `json:"color"`
	Category      string          `json:"category"`
	IsPaid        bool            `json:"isPaid"`
}

// oauthError is the RFC 6749 error body the token endpoint returns on 4xx.
type oauthError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}
