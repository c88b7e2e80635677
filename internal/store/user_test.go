package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"user-management/internal/apperr"
	"user-management/internal/database"
	"user-management/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

// fakeUserRow answers the two Scan shapes used by the store:
// 6 columns for full rows, 3 for INSERT ... RETURNING.
type fakeUserRow struct {
	scanErr error
	user    model.User
}

func (r *fakeUserRow) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	u := r.user
	switch len(dest) {
	case 6:
		*dest[0].(*int) = u.ID
		*dest[1].(*string) = u.Name
		*dest[2].(*string) = u.Email
		*dest[3].(*string) = u.PasswordHash
		*dest[4].(*time.Time) = u.CreatedAt
		*dest[5].(*time.Time) = u.UpdatedAt
	case 3:
		*dest[0].(*int) = u.ID
		*dest[1].(*time.Time) = u.CreatedAt
		*dest[2].(*time.Time) = u.UpdatedAt
	default:
		panic("fakeUserRow.Scan: unexpected dest count")
	}
	return nil
}

// fakeRows yields public user rows (5 columns).
type fakeRows struct {
	users   []model.User
	i       int
	err     error
	scanErr error
	closed  bool
}

func (r *fakeRows) Close()                                       { r.closed = true }
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Values() ([]any, error)                       { return nil, nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	if r.i >= len(r.users) {
		return false
	}
	r.i++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	u := r.users[r.i-1]
	*dest[0].(*int) = u.ID
	*dest[1].(*string) = u.Name
	*dest[2].(*string) = u.Email
	*dest[3].(*time.Time) = u.CreatedAt
	*dest[4].(*time.Time) = u.UpdatedAt
	return nil
}

func uniqueErr() error {
	return &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
}

func TestCreateUser(t *testing.T) {
	now := time.Now().UTC()

	t.Run("success", func(t *testing.T) {
		var gotArgs []any
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
				require.Contains(t, sql, "INSERT INTO users")
				gotArgs = args
				return &fakeUserRow{user: model.User{ID: 42, CreatedAt: now, UpdatedAt: now}}
			},
		}
		u, err := CreateUser(context.Background(), db, &model.User{Name: "Bob", Email: "bob@example.com", PasswordHash: "h"})
		require.NoError(t, err)
		require.Equal(t, 42, u.ID)
		require.Equal(t, now, u.CreatedAt)
		require.Equal(t, []any{"Bob", "bob@example.com", "h"}, gotArgs)
	})

	t.Run("duplicate email", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row {
				return &fakeUserRow{scanErr: uniqueErr()}
			},
		}
		_, err := CreateUser(context.Background(), db, &model.User{})
		require.ErrorIs(t, err, apperr.ErrDuplicateEmail)
	})

	t.Run("other error", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row {
				return &fakeUserRow{scanErr: errors.New("conn reset")}
			},
		}
		_, err := CreateUser(context.Background(), db, &model.User{})
		require.Error(t, err)
		require.NotErrorIs(t, err, apperr.ErrDuplicateEmail)
		require.Contains(t, err.Error(), "CreateUser: conn reset")
	})
}

func TestGetUser(t *testing.T) {
	sample := model.User{ID: 7, Name: "Alice", Email: "alice@example.com", PasswordHash: "hash"}

	t.Run("by id", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
				require.Contains(t, sql, "WHERE id = $1")
				require.Equal(t, []any{7}, args)
				return &fakeUserRow{user: sample}
			},
		}
		u, err := GetUserByID(context.Background(), db, 7)
		require.NoError(t, err)
		require.Equal(t, "hash", u.PasswordHash)
	})

	t.Run("by id not found", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row {
				return &fakeUserRow{scanErr: pgx.ErrNoRows}
			},
		}
		u, err := GetUserByID(context.Background(), db, 999)
		require.ErrorIs(t, err, apperr.ErrNotFound)
		require.Nil(t, u)
	})

	t.Run("by email", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
				require.Contains(t, sql, "WHERE email = $1")
				require.Equal(t, []any{"alice@example.com"}, args)
				return &fakeUserRow{user: sample}
			},
		}
		u, err := GetUserByEmail(context.Background(), db, "alice@example.com")
		require.NoError(t, err)
		require.Equal(t, 7, u.ID)
	})

	t.Run("by email not found", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row {
				return &fakeUserRow{scanErr: pgx.ErrNoRows}
			},
		}
		_, err := GetUserByEmail(context.Background(), db, "x@example.com")
		require.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestListUsers(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		rows := &fakeRows{users: []model.User{{ID: 1, Name: "John Doe"}, {ID: 2, Name: "Jane Smith"}}}
		db := &database.FakeDB{
			QueryFn: func(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
				require.NotContains(t, sql, "password_hash")
				return rows, nil
			},
		}
		users, err := ListUsers(context.Background(), db)
		require.NoError(t, err)
		require.Len(t, users, 2)
		require.Equal(t, "Jane Smith", users[1].Name)
		require.True(t, rows.closed)
	})

	t.Run("empty is not nil", func(t *testing.T) {
		db := &database.FakeDB{
			QueryFn: func(context.Context, string, ...any) (pgx.Rows, error) { return &fakeRows{}, nil },
		}
		users, err := ListUsers(context.Background(), db)
		require.NoError(t, err)
		require.NotNil(t, users)
		require.Empty(t, users)
	})

	t.Run("query error", func(t *testing.T) {
		db := &database.FakeDB{
			QueryFn: func(context.Context, string, ...any) (pgx.Rows, error) { return nil, errors.New("down") },
		}
		_, err := ListUsers(context.Background(), db)
		require.Error(t, err)
	})

	t.Run("scan error", func(t *testing.T) {
		db := &database.FakeDB{
			QueryFn: func(context.Context, string, ...any) (pgx.Rows, error) {
				return &fakeRows{users: []model.User{{ID: 1}}, scanErr: errors.New("scan")}, nil
			},
		}
		_, err := ListUsers(context.Background(), db)
		require.Error(t, err)
	})

	t.Run("rows error", func(t *testing.T) {
		db := &database.FakeDB{
			QueryFn: func(context.Context, string, ...any) (pgx.Rows, error) {
				return &fakeRows{err: errors.New("iter")}, nil
			},
		}
		_, err := ListUsers(context.Background(), db)
		require.Error(t, err)
	})
}

func TestUpdateUser(t *testing.T) {
	name := "New Name"
	email := "new@example.com"

	t.Run("nothing to update", func(t *testing.T) {
		u, err := UpdateUser(context.Background(), &database.FakeDB{}, 1, nil, nil)
		require.NoError(t, err)
		require.Nil(t, u)
	})

	t.Run("name only", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
				require.Contains(t, sql, "SET name = $1, updated_at = NOW() WHERE id = $2")
				require.Equal(t, []any{name, 3}, args)
				return &fakeUserRow{user: model.User{ID: 3, Name: name}}
			},
		}
		u, err := UpdateUser(context.Background(), db, 3, &name, nil)
		require.NoError(t, err)
		require.Equal(t, name, u.Name)
	})

	t.Run("name and email", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
				require.Contains(t, sql, "SET name = $1, email = $2, updated_at = NOW() WHERE id = $3")
				require.Equal(t, []any{name, email, 3}, args)
				return &fakeUserRow{user: model.User{ID: 3, Name: name, Email: email}}
			},
		}
		u, err := UpdateUser(context.Background(), db, 3, &name, &email)
		require.NoError(t, err)
		require.Equal(t, email, u.Email)
	})

	t.Run("not found", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row { return &fakeUserRow{scanErr: pgx.ErrNoRows} },
		}
		_, err := UpdateUser(context.Background(), db, 3, nil, &email)
		require.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("duplicate email", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row { return &fakeUserRow{scanErr: uniqueErr()} },
		}
		_, err := UpdateUser(context.Background(), db, 3, nil, &email)
		require.ErrorIs(t, err, apperr.ErrDuplicateEmail)
	})
}

func TestDeleteUser(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		db := &database.FakeDB{
			ExecFn: func(_ context.Context, _ string, args ...any) (pgconn.CommandTag, error) {
				require.Equal(t, []any{7}, args)
				return pgconn.NewCommandTag("DELETE 1"), nil
			},
		}
		ok, err := DeleteUser(context.Background(), db, 7)
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("missing", func(t *testing.T) {
		db := &database.FakeDB{
			ExecFn: func(context.Context, string, ...any) (pgconn.CommandTag, error) {
				return pgconn.NewCommandTag("DELETE 0"), nil
			},
		}
		ok, err := DeleteUser(context.Background(), db, 7)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("error", func(t *testing.T) {
		db := &database.FakeDB{
			ExecFn: func(context.Context, string, ...any) (pgconn.CommandTag, error) {
				return pgconn.CommandTag{}, errors.New("delete failed")
			},
		}
		_, err := DeleteUser(context.Background(), db, 7)
		require.Error(t, err)
	})
}

func TestSearchUsersByName(t *testing.T) {
	var gotSQL string
	var gotArgs []any
	db := &database.FakeDB{
		QueryFn: func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
			gotSQL = sql
			gotArgs = args
			return &fakeRows{users: []model.User{{ID: 1, Name: "John Doe"}, {ID: 3, Name: "Bob Johnson"}}}, nil
		},
	}
	users, err := SearchUsersByName(context.Background(), db, "john")
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Contains(t, gotSQL, "ILIKE")
	require.Equal(t, []any{"%john%"}, gotArgs)

	_, err = SearchUsersByName(context.Background(), db, "50%_a")
	require.NoError(t, err)
	require.Equal(t, []any{`%50\%\_a%`}, gotArgs)

	db.QueryFn = func(context.Context, string, ...any) (pgx.Rows, error) { return nil, errors.New("down") }
	_, err = SearchUsersByName(context.Background(), db, "john")
	require.Error(t, err)
}

func TestUserIDBeyondColumnRange(t *testing.T) {
	// FakeDB panics on any query, so these must be answered locally.
	db := &database.FakeDB{}
	id := 2147483648
	name := "John Doe"

	_, err := GetUserByID(context.Background(), db, id)
	require.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = UpdateUser(context.Background(), db, id, &name, nil)
	require.ErrorIs(t, err, apperr.ErrNotFound)

	ok, err := DeleteUser(context.Background(), db, id)
	require.NoError(t, err)
	require.False(t, ok)
}
