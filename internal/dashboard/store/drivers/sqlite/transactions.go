package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/centsible/centsible/internal/dashboard/domain"
)

type transactionsRepo struct {
	db *sql.DB
}

const transactionColumns = `id, user_id, provider_id, account_id, account_name,
	date, description, amount, category, merchant, created_at`

func scanTransaction(scan func(dest ...any) error) (domain.Transaction, error) {
	var (
		t      domain.Transaction
		amount string
		err    error
	)
	if err = scan(
		&t.ID, &t.UserID, &t.ProviderID, &t.AccountID, &t.AccountName,
		&t.Date, &t.Description, &amount, &t.Category, &t.Merchant,
		&t.CreatedAt,
	); err != nil {
		return domain.Transaction{}, err
	}
	if t.Amount, err = decimalFromText(amount); err != nil {
		return domain.Transaction{}, err
	}
	return t, nil
}

func (r *transactionsRepo) UpsertTransaction(ctx context.Context, t domain.Transaction) (domain.Transaction, error) {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (
			user_id, provider_id, account_id, account_name, date,
			description, amount, category, merchant, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, provider_id) DO UPDATE SET
			account_id = excluded.account_id,
			account_name = excluded.account_name,
			date = excluded.date,
			description = excluded.description,
			amount = excluded.amount,
			category = excluded.category,
			merchant = excluded.merchant`,
		t.UserID, t.ProviderID, t.AccountID, t.AccountName, t.Date,
		t.Description, decimalToText(t.Amount), t.Category, t.Merchant,
		t.CreatedAt,
	)
	if err != nil {
		return domain.Transaction{}, err
	}

	row := r.db.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE user_id = ? AND provider_id = ?`,
		t.UserID, t.ProviderID)
	stored, err := scanTransaction(row.Scan)
	if err != nil {
		return domain.Transaction{}, mapNotFound(err)
	}
	return stored, nil
}

func (r *transactionsRepo) ListTransactions(ctx context.Context, userID int64) ([]domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions
		WHERE user_id = ? ORDER BY date DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
