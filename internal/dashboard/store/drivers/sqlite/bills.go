package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/centsible/centsible/internal/dashboard/domain"
)

type billsRepo struct {
	db *sql.DB
}

const billColumns = `id, user_id, provider_id, name, amount, due_date,
	category, icon, color, is_paid, created_at`

func scanBill(scan func(dest ...any) error) (domain.Bill, error) {
	var (
		b      domain.Bill
		amount string
		err    error
	)
	if err = scan(
		&b.ID, &b.UserID, &b.ProviderID, &b.Name, &amount, &b.DueDate,
		&b.Category, &b.Icon, &b.Color, &b.IsPaid, &b.CreatedAt,
	); err != nil {
		return domain.Bill{}, err
	}
	if b.Amount, err = decimalFromText(amount); err != nil {
		return domain.Bill{}, err
	}
	return b, nil
}

// UpsertBill deliberately leaves is_paid out of the update set: a provider
// refresh must not undo a bill the user already marked paid.
func (r *billsRepo) UpsertBill(ctx context.Context, b domain.Bill) (domain.Bill, error) {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO bills (
			user_id, provider_id, name, amount, due_date,
			category, icon, color, is_paid, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, provider_id) DO UPDATE SET
			name = excluded.name,
			amount = excluded.amount,
			due_date = excluded.due_date,
			category = excluded.category,
			icon = excluded.icon,
			color = excluded.color`,
		b.UserID, b.ProviderID, b.Name, decimalToText(b.Amount), b.DueDate,
		b.Category, b.Icon, b.Color, b.IsPaid, b.CreatedAt,
	)
	if err != nil {
		return domain.Bill{}, err
	}

	row := r.db.QueryRowContext(ctx,
		`SELECT `+billColumns+` FROM bills WHERE user_id = ? AND provider_id = ?`,
		b.UserID, b.ProviderID)
	stored, err := scanBill(row.Scan)
	if err != nil {
		return domain.Bill{}, mapNotFound(err)
	}
	return stored, nil
}

func (r *billsRepo) GetBill(ctx context.Context, id int64) (domain.Bill, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+billColumns+` FROM bills WHERE id = ?`, id)
	b, err := scanBill(row.Scan)
	if err != nil {
		return domain.Bill{}, mapNotFound(err)
	}
	return b, nil
}

func (r *billsRepo) ListBills(ctx context.Context, userID int64) ([]domain.Bill, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+billColumns+` FROM bills WHERE user_id = ? ORDER BY due_date, id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Bill
	for rows.Next() {
		b, err := scanBill(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *billsRepo) SetBillPaid(ctx context.Context, id, userID int64, paid bool) (domain.Bill, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bills SET is_paid = ? WHERE id = ? AND user_id = ?`, paid, id, userID)
	if err != nil {
		return domain.Bill{}, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return domain.Bill{}, err
	}
	if n == 0 {
		return domain.Bill{}, mapNotFound(sql.ErrNoRows)
	}
	return r.GetBill(ctx, id)
}
