package store

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"user-management/internal/apperr"
	"user-management/internal/database"
	"user-management/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation = "23505"

	// maxUserID is the largest value the SERIAL id column can hold. Larger
	// ids cannot exist and are answered without a query.
	maxUserID = math.MaxInt32

	userColumns       = `id, name, email, password_hash, created_at, updated_at`
	publicUserColumns = `id, name, email, created_at, updated_at`
)

// classify turns driver errors into the kinds callers branch on.
func classify(op string, err error) error {
	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
	case errors.As(err, &pgErr) && pgErr.Code == uniqueViolation:
		return fmt.Errorf("%s: %w", op, apperr.ErrDuplicateEmail)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return u, nil
}

func scanPublicUsers(rows pgx.Rows) ([]model.User, error) {
	defer rows.Close()
	users := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser inserts u and fills in its id and timestamps. A taken email
// yields apperr.ErrDuplicateEmail.
func CreateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		u.Name,
		u.Email,
		u.PasswordHash,
	)
	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, classify("CreateUser", err)
	}
	return u, nil
}

func GetUserByID(ctx context.Context, db database.DB, userID int) (*model.User, error) {
	if userID > maxUserID {
		return nil, fmt.Errorf("GetUserByID: %w", apperr.ErrNotFound)
	}
	u, err := scanUser(db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		userID,
	))
	if err != nil {
		return nil, classify("GetUserByID", err)
	}
	return u, nil
}

func GetUserByEmail(ctx context.Context, db database.DB, email string) (*model.User, error) {
	u, err := scanUser(db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		email,
	))
	if err != nil {
		return nil, classify("GetUserByEmail", err)
	}
	return u, nil
}

// ListUsers returns every user ordered by id, without password hashes.
func ListUsers(ctx context.Context, db database.DB) ([]model.User, error) {
	rows, err := db.Query(ctx, `SELECT `+publicUserColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, classify("ListUsers", err)
	}
	users, err := scanPublicUsers(rows)
	if err != nil {
		return nil, classify("ListUsers", err)
	}
	return users, nil
}

// UpdateUser sets whichever of name and email are non-nil and bumps
// updated_at. With nothing to set it returns (nil, nil) without touching the
// database. An unknown id yields apperr.ErrNotFound.
func UpdateUser(ctx context.Context, db database.DB, userID int, name, email *string) (*model.User, error) {
	var (
		sets []string
		args []any
	)
	if name != nil {
		args = append(args, *name)
		sets = append(sets, "name = $"+strconv.Itoa(len(args)))
	}
	if email != nil {
		args = append(args, *email)
		sets = append(sets, "email = $"+strconv.Itoa(len(args)))
	}
	if len(sets) == 0 {
		return nil, nil
	}
	if userID > maxUserID {
		return nil, fmt.Errorf("UpdateUser: %w", apperr.ErrNotFound)
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, userID)

	u, err := scanUser(db.QueryRow(ctx,
		`UPDATE users SET `+strings.Join(sets, ", ")+
			` WHERE id = $`+strconv.Itoa(len(args))+
			` RETURNING `+userColumns,
		args...,
	))
	if err != nil {
		return nil, classify("UpdateUser", err)
	}
	return u, nil
}

// DeleteUser reports whether a row was removed.
func DeleteUser(ctx context.Context, db database.DB, userID int) (bool, error) {
	if userID > maxUserID {
		return false, nil
	}
	tag, err := db.Exec(ctx,
		`DELETE FROM users WHERE id = $1`,
		userID,
	)
	if err != nil {
		return false, classify("DeleteUser", err)
	}
	return tag.RowsAffected() > 0, nil
}

// SearchUsersByName matches term as a case-insensitive substring of name.
// LIKE wildcards in term are escaped.
func SearchUsersByName(ctx context.Context, db database.DB, term string) ([]model.User, error) {
	pattern := "%" + escapeLike(term) + "%"
	rows, err := db.Query(ctx,
		`SELECT `+publicUserColumns+` FROM users
		 WHERE name ILIKE $1 ESCAPE '\'
		 ORDER BY id`,
		pattern,
	)
	if err != nil {
		return nil, classify("SearchUsersByName", err)
	}
	users, err := scanPublicUsers(rows)
	if err != nil {
		return nil, classify("SearchUsersByName", err)
	}
	return users, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
