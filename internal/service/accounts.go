package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"user-management/internal/apperr"
	"user-management/internal/cache"
	"user-management/internal/database"
	"user-management/internal/model"
	"user-management/internal/store"
	"user-management/internal/worker"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

var (
	createUser        = store.CreateUser
	getUserByID       = store.GetUserByID
	getUserByEmail    = store.GetUserByEmail
	listUsers         = store.ListUsers
	updateUser        = store.UpdateUser
	deleteUser        = store.DeleteUser
	searchUsersByName = store.SearchUsersByName
)

// Options tunes hashing and caching.
type Options struct {
	BcryptCost int
	CacheTTL   time.Duration
}

// Accounts is the account store: persistence, password hashing and
// credential checks. It is built once at startup and shared by handlers.
type Accounts struct {
	db    database.DB
	cache cache.Cache
	pool  worker.Pool
	log   zerolog.Logger
	opts  Options

	dummyOnce sync.Once
	dummyHash string
}

func NewAccounts(db database.DB, c cache.Cache, pool worker.Pool, log zerolog.Logger, opts Options) *Accounts {
	if c == nil {
		c = cache.Noop{}
	}
	return &Accounts{db: db, cache: c, pool: pool, log: log, opts: opts}
}

// tombstone marks a user key after an update or delete. Reads only fill a
// key that is absent, so a read that started before the write cannot put
// the old row back.
const tombstone = "-"

func userKey(id int) string { return "user:" + strconv.Itoa(id) }

func (a *Accounts) hash(ctx context.Context, password string) (string, error) {
	return worker.Run(ctx, a.pool, func() (string, error) {
		return HashPassword(password, a.opts.BcryptCost)
	})
}

func (a *Accounts) compare(ctx context.Context, hash, password string) error {
	_, err := worker.Run(ctx, a.pool, func() (struct{}, error) {
		return struct{}{}, ComparePassword(hash, password)
	})
	return err
}

// Create hashes password and inserts the user. A taken email yields
// apperr.ErrDuplicateEmail. The returned user carries no hash.
func (a *Accounts) Create(ctx context.Context, name, email, password string) (*model.User, error) {
	hash, err := a.hash(ctx, password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u, err := createUser(ctx, a.db, &model.User{Name: name, Email: email, PasswordHash: hash})
	if err != nil {
		return nil, err
	}
	a.log.Info().Int("user_id", u.ID).Msg("user created")
	pub := u.Public()
	return &pub, nil
}

// Get returns the user with id or apperr.ErrNotFound. Hits are served from
// the cache when one is configured.
func (a *Accounts) Get(ctx context.Context, id int) (*model.User, error) {
	if u, ok := a.cached(ctx, id); ok {
		return u, nil
	}
	u, err := getUserByID(ctx, a.db, id)
	if err != nil {
		return nil, err
	}
	pub := u.Public()
	a.remember(ctx, &pub)
	return &pub, nil
}

// List returns all users.
func (a *Accounts) List(ctx context.Context) ([]model.User, error) {
	return listUsers(ctx, a.db)
}

// Update applies the non-nil fields. It returns apperr.ErrNotFound for an
// unknown id and (nil, nil) when there is nothing to change.
func (a *Accounts) Update(ctx context.Context, id int, name, email *string) (*model.User, error) {
	u, err := updateUser(ctx, a.db, id, name, email)
	if err != nil || u == nil {
		return nil, err
	}
	a.invalidate(ctx, id)
	pub := u.Public()
	return &pub, nil
}

// Delete reports whether a user was removed.
func (a *Accounts) Delete(ctx context.Context, id int) (bool, error) {
	deleted, err := deleteUser(ctx, a.db, id)
	if err != nil {
		return false, err
	}
	if deleted {
		a.invalidate(ctx, id)
		a.log.Info().Int("user_id", id).Msg("user deleted")
	}
	return deleted, nil
}

// Search matches term case-insensitively anywhere in the name.
func (a *Accounts) Search(ctx context.Context, term string) ([]model.User, error) {
	return searchUsersByName(ctx, a.db, term)
}

// Authenticate returns the user when password matches the stored hash.
// Unknown email and wrong password both yield apperr.ErrInvalidCredentials,
// and both spend one bcrypt comparison.
func (a *Accounts) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	u, err := getUserByEmail(ctx, a.db, email)
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		_ = a.compare(ctx, a.dummy(), password)
		return nil, apperr.ErrInvalidCredentials
	case err != nil:
		return nil, err
	}
	if err := a.compare(ctx, u.PasswordHash, password); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, apperr.ErrInvalidCredentials
	}
	pub := u.Public()
	return &pub, nil
}

// dummy is a hash at the configured cost compared against when the email
// is unknown, so both failure paths cost the same.
func (a *Accounts) dummy() string {
	a.dummyOnce.Do(func() {
		h, err := HashPassword("dummy-password-0", a.opts.BcryptCost)
		if err != nil {
			a.log.Error().Err(err).Msg("generate dummy hash")
			return
		}
		a.dummyHash = h
	})
	return a.dummyHash
}

func (a *Accounts) cached(ctx context.Context, id int) (*model.User, bool) {
	raw, err := a.cache.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			a.log.Warn().Err(err).Int("user_id", id).Msg("cache get failed")
		}
		return nil, false
	}
	if string(raw) == tombstone {
		return nil, false
	}
	var u model.User
	if err := json.Unmarshal(raw, &u); err != nil {
		a.log.Warn().Err(err).Int("user_id", id).Msg("cache entry corrupt")
		return nil, false
	}
	return &u, true
}

func (a *Accounts) remember(ctx context.Context, u *model.User) {
	raw, err := json.Marshal(u)
	if err != nil {
		return
	}
	if err := a.cache.SetNX(ctx, userKey(u.ID), raw, a.opts.CacheTTL).Err(); err != nil {
		a.log.Warn().Err(err).Int("user_id", u.ID).Msg("cache set failed")
	}
}

// invalidate overwrites the entry with a tombstone for one TTL.
func (a *Accounts) invalidate(ctx context.Context, id int) {
	if err := a.cache.Set(ctx, userKey(id), tombstone, a.opts.CacheTTL).Err(); err != nil {
		a.log.Warn().Err(err).Int("user_id", id).Msg("cache invalidate failed")
	}
}
