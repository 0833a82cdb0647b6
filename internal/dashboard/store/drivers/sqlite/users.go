package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/centsible/centsible/internal/dashboard/domain"
)

type usersRepo struct {
	db *sql.DB
}

const userColumns = `id, username, password_hash, access_token, refresh_token,
	token_expires_at, profile_first_name, profile_last_name, profile_email,
	created_at, updated_at`

func scanUser(row *sql.Row) (domain.User, error) {
	var (
		u         domain.User
		expiresAt sql.NullTime
	)
	err := row.Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.AccessToken, &u.RefreshToken,
		&expiresAt, &u.Profile.FirstName, &u.Profile.LastName, &u.Profile.Email,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.TokenExpiresAt = mapNullTimePtr(expiresAt)
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	return scanUser(row)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (
			username, password_hash, access_token, refresh_token,
			token_expires_at, profile_first_name, profile_last_name,
			profile_email, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.Username, u.PasswordHash, u.AccessToken, u.RefreshToken,
		mapOptionalTime(u.TokenExpiresAt),
		u.Profile.FirstName, u.Profile.LastName, u.Profile.Email,
		u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapConstraint(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.User{}, err
	}
	u.ID = id
	return u, nil
}

// UpdateUserTokens is a single UPDATE statement: the token fields and expiry
// land together or not at all.
func (r *usersRepo) UpdateUserTokens(ctx context.Context, userID int64, upd domain.TokenUpdate) error {
	now := time.Now().UTC()

	var (
		res sql.Result
		err error
	)
	if upd.Profile != nil {
		res, err = r.db.ExecContext(ctx,
			`UPDATE users SET
				access_token = ?, refresh_token = ?, token_expires_at = ?,
				profile_first_name = ?, profile_last_name = ?, profile_email = ?,
				updated_at = ?
			WHERE id = ?`,
			upd.AccessToken, upd.RefreshToken, upd.TokenExpiresAt,
			upd.Profile.FirstName, upd.Profile.LastName, upd.Profile.Email,
			now, userID,
		)
	} else {
		res, err = r.db.ExecContext(ctx,
			`UPDATE users SET
				access_token = ?, refresh_token = ?, token_expires_at = ?,
				updated_at = ?
			WHERE id = ?`,
			upd.AccessToken, upd.RefreshToken, upd.TokenExpiresAt,
			now, userID,
		)
	}
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
