package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/centsible/centsible/internal/dashboard/domain"
)

type categoriesRepo struct {
	db *sql.DB
}

const categoryColumns = `id, user_id, category, amount, percentage, icon, color,
	period, created_at`

func scanCategory(scan func(dest ...any) error) (domain.SpendingCategory, error) {
	var (
		c                  domain.SpendingCategory
		amount, percentage string
		err                error
	)
	if err = scan(
		&c.ID, &c.UserID, &c.Category, &amount, &percentage,
		&c.Icon, &c.Color, &c.Period, &c.CreatedAt,
	); err != nil {
		return domain.SpendingCategory{}, err
	}
	if c.Amount, err = decimalFromText(amount); err != nil {
		return domain.SpendingCategory{}, err
	}
	if c.Percentage, err = decimalFromText(percentage); err != nil {
		return domain.SpendingCategory{}, err
	}
	return c, nil
}

func (r *categoriesRepo) UpsertSpendingCategory(ctx context.Context, c domain.SpendingCategory) (domain.SpendingCategory, error) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO spending_categories (
			user_id, category, amount, percentage, icon, color, period, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, category, period) DO UPDATE SET
			amount = excluded.amount,
			percentage = excluded.percentage,
			icon = excluded.icon,
			color = excluded.color`,
		c.UserID, c.Category, decimalToText(c.Amount), decimalToText(c.Percentage),
		c.Icon, c.Color, c.Period, c.CreatedAt,
	)
	if err != nil {
		return domain.SpendingCategory{}, err
	}

	row := r.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM spending_categories
		WHERE user_id = ? AND category = ? AND period = ?`,
		c.UserID, c.Category, c.Period)
	stored, err := scanCategory(row.Scan)
	if err != nil {
		return domain.SpendingCategory{}, mapNotFound(err)
	}
	return stored, nil
}

func (r *categoriesRepo) ListSpendingCategories(ctx context.Context, userID int64, period string) ([]domain.SpendingCategory, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+categoryColumns+` FROM spending_categories
		WHERE user_id = ? AND period = ?
		ORDER BY CAST(amount AS REAL) DESC, category`, userID, period)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.SpendingCategory
	for rows.Next() {
		c, err := scanCategory(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
