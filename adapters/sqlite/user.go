package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lborres/stele/core"
)

func (a *Adapter) CreateUser(ctx context.Context, user *core.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	if user.Role == "" {
		user.Role = core.RoleAdmin
	}

	query := `INSERT INTO users (username, password_hash, role, created_at) VALUES (?, ?, ?, ?)`
	res, err := a.db.ExecContext(ctx, query,
		user.Username, user.PasswordHash, user.Role, user.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = id
	return nil
}

func (a *Adapter) GetUserByID(ctx context.Context, id int64) (*core.User, error) {
	q := `SELECT id, username, password_hash, role, created_at FROM users WHERE id = ?`
	return a.scanUser(a.db.QueryRowContext(ctx, q, id))
}

func (a *Adapter) GetUserByUsername(ctx context.Context, username string) (*core.User, error) {
	q := `SELECT id, username, password_hash, role, created_at FROM users WHERE username = ?`
	return a.scanUser(a.db.QueryRowContext(ctx, q, username))
}

func (a *Adapter) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := a.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (a *Adapter) scanUser(row *sql.Row) (*core.User, error) {
	user := &core.User{}
	var createdAt string
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrUserNotFound
		}
		return nil, err
	}
	user.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}
