package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/centsible/centsible/internal/dashboard/domain"
)

type authStatesRepo struct {
	db *sql.DB
}

func (r *authStatesRepo) PutState(ctx context.Context, state string, createdAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO auth_states (state, created_at) VALUES (?, ?)`,
		state, createdAt,
	)
	return mapConstraint(err)
}

func (r *authStatesRepo) GetState(ctx context.Context, state string) (domain.AuthState, error) {
	var st domain.AuthState
	err := r.db.QueryRowContext(ctx,
		`SELECT state, created_at FROM auth_states WHERE state = ?`, state,
	).Scan(&st.State, &st.CreatedAt)
	if err != nil {
		return domain.AuthState{}, mapNotFound(err)
	}
	return st, nil
}

// ConsumeState is a single DELETE, so two callbacks racing on the same state
// value serialize inside sqlite and exactly one of them sees a deleted row.
func (r *authStatesRepo) ConsumeState(ctx context.Context, state string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM auth_states WHERE state = ?`, state)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return mapNotFound(sql.ErrNoRows)
	}
	return nil
}

func (r *authStatesRepo) DeleteExpiredStates(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM auth_states WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
