package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/centsible/centsible/internal/dashboard/domain"
)

type accountsRepo struct {
	db *sql.DB
}

const accountColumns = `id, user_id, provider_id, type, name, balance, available,
	account_number, interest_rate, created_at`

func scanAccount(scan func(dest ...any) error) (domain.Account, error) {
	var (
		a                domain.Account
		balance          string
		available, irate sql.NullString
		err              error
	)
	if err = scan(
		&a.ID, &a.UserID, &a.ProviderID, &a.Type, &a.Name,
		&balance, &available, &a.AccountNumber, &irate, &a.CreatedAt,
	); err != nil {
		return domain.Account{}, err
	}
	if a.Balance, err = decimalFromText(balance); err != nil {
		return domain.Account{}, err
	}
	if a.Available, err = optionalDecimalFromText(available); err != nil {
		return domain.Account{}, err
	}
	if a.InterestRate, err = optionalDecimalFromText(irate); err != nil {
		return domain.Account{}, err
	}
	return a, nil
}

func (r *accountsRepo) UpsertAccount(ctx context.Context, a domain.Account) (domain.Account, error) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (
			user_id, provider_id, type, name, balance, available,
			account_number, interest_rate, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, provider_id) DO UPDATE SET
			type = excluded.type,
			name = excluded.name,
			balance = excluded.balance,
			available = excluded.available,
			account_number = excluded.account_number,
			interest_rate = excluded.interest_rate`,
		a.UserID, a.ProviderID, a.Type, a.Name,
		decimalToText(a.Balance), optionalDecimalToText(a.Available),
		a.AccountNumber, optionalDecimalToText(a.InterestRate),
		a.CreatedAt,
	)
	if err != nil {
		return domain.Account{}, err
	}

	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE user_id = ? AND provider_id = ?`,
		a.UserID, a.ProviderID)
	stored, err := scanAccount(row.Scan)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return stored, nil
}

func (r *accountsRepo) ListAccounts(ctx context.Context, userID int64) ([]domain.Account, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Account
	for rows.Next() {
		a, err := scanAccount(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
