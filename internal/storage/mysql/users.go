package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"hoteldir/internal/domain"
)

func scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var u domain.User
	var role string
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &role); err != nil {
		if err == sql.ErrNoRows {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}
	u.Role = domain.Role(role)
	return u, nil
}

func (r *Repo) getUser(ctx context.Context, q querier, id int64) (domain.User, error) {
	return scanUser(q.QueryRowContext(ctx, getUserSQL, id))
}

func (r *Repo) GetUser(ctx context.Context, id int64) (domain.User, error) {
	return r.getUser(ctx, r.db, id)
}

func (r *Repo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, getUserByUsernameSQL, username))
}

func (r *Repo) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	var out domain.User
	err := r.transact(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, insertUserSQL, u.Username, u.PasswordHash, u.Email, string(u.Role))
		if err != nil {
			if isDuplicate(err) {
				return domain.ErrDuplicate
			}
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		out, err = r.getUser(ctx, tx, id)
		return err
	})
	return out, err
}

func (r *Repo) ListUsers(ctx context.Context, q domain.UsersQuery) (domain.UsersPage, error) {
	where := ""
	args := []any{}
	if q.Search != "" {
		where = "WHERE u.username LIKE ? OR u.email LIKE ?"
		pat := "%" + q.Search + "%"
		args = append(args, pat, pat)
	}

	var total int
	countSQL := "SELECT COUNT(*) FROM users u " + where
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return domain.UsersPage{}, err
	}

	listSQL := selectUserPrefix + where + " ORDER BY u.username ASC LIMIT ? OFFSET ?"
	args = append(args, q.Limit, (q.Page-1)*q.Limit)
	rows, err := r.db.QueryContext(ctx, listSQL, args...)
	if err != nil {
		return domain.UsersPage{}, err
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return domain.UsersPage{}, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return domain.UsersPage{}, err
	}
	return domain.UsersPage{Items: out, Total: total}, nil
}

func (r *Repo) UpdateUser(ctx context.Context, id int64, upd domain.UserUpdate) (domain.User, error) {
	var out domain.User
	err := r.transact(ctx, func(tx *sql.Tx) error {
		if _, err := r.getUser(ctx, tx, id); err != nil {
			return err
		}

		var sets []string
		var args []any
		if upd.Username != nil {
			sets = append(sets, "username = ?")
			args = append(args, *upd.Username)
		}
		if upd.Email != nil {
			sets = append(sets, "email = ?")
			args = append(args, *upd.Email)
		}
		if upd.PasswordHash != nil {
			sets = append(sets, "password_hash = ?")
			args = append(args, *upd.PasswordHash)
		}
		if len(sets) == 0 {
			return domain.Invalid("please provide at least one field to update (username, email, or password)")
		}
		args = append(args, id)

		stmt := fmt.Sprintf("UPDATE users SET %s WHERE user_id = ?", strings.Join(sets, ", "))
		if _, err := tx.ExecContext(ctx, stmt, args...); err != nil {
			if isDuplicate(err) {
				return domain.ErrDuplicate
			}
			return err
		}

		var err error
		out, err = r.getUser(ctx, tx, id)
		return err
	})
	return out, err
}

func (r *Repo) UpdateUserRole(ctx context.Context, id int64, role domain.Role) (domain.User, error) {
	var out domain.User
	err := r.transact(ctx, func(tx *sql.Tx) error {
		if _, err := r.getUser(ctx, tx, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, updateUserRoleSQL, string(role), id); err != nil {
			return err
		}
		var err error
		out, err = r.getUser(ctx, tx, id)
		return err
	})
	return out, err
}

func (r *Repo) DeleteUser(ctx context.Context, id int64) (domain.User, error) {
	var out domain.User
	err := r.transact(ctx, func(tx *sql.Tx) error {
		u, err := r.getUser(ctx, tx, id)
		if err != nil {
			return err
		}

		var managed int
		if err := tx.QueryRowContext(ctx, countManagedHotelsSQL, id).Scan(&managed); err != nil {
			return err
		}
		if managed > 0 {
			return &domain.ManagedHotelsError{Count: managed}
		}

		if _, err := tx.ExecContext(ctx, deleteUserSQL, id); err != nil {
			return err
		}
		out = u
		return nil
	})
	return out, err
}

func (r *Repo) HasPermission(ctx context.Context, role domain.Role, res domain.Resource, act domain.Action) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx, hasPermissionSQL, string(role), string(res), string(act)).Scan(&ok)
	return ok, err
}
