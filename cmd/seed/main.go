// Command seed inserts a few sample accounts. Accounts whose email is
// already registered are skipped. With -reset every migration is rolled
// back and reapplied first, which drops all existing users.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"user-management/internal/apperr"
	"user-management/internal/cache"
	"user-management/internal/config"
	"user-management/internal/database"
	"user-management/internal/logging"
	"user-management/internal/service"
	"user-management/internal/validate"
	"user-management/internal/worker"

	"github.com/rs/zerolog"
)

type sampleUser struct {
	Name, Email, Password string
}

var samples = []sampleUser{
	{"John Doe", "john@example.com", "password123"},
	{"Jane Smith", "jane@example.com", "secret456"},
	{"Bob Johnson", "bob@example.com", "qwerty789"},
}

var (
	loadConfig      = config.Load
	newPgxPool      = database.NewPgxPool
	runMigrationsFn = database.RunMigrations
	rollbackAllFn   = database.RollbackAll
	exitFunc        = os.Exit
)

// seed creates each sample and returns how many were inserted.
func seed(ctx context.Context, create func(ctx context.Context, name, email, password string) error, log zerolog.Logger) (int, error) {
	n := 0
	for _, s := range samples {
		name, err := validate.Name(s.Name)
		if err != nil {
			return n, err
		}
		email, err := validate.Email(s.Email)
		if err != nil {
			return n, err
		}
		err = create(ctx, name, email, s.Password)
		switch {
		case errors.Is(err, apperr.ErrDuplicateEmail):
			log.Warn().Str("email", email).Msg("user already exists, skipping")
			continue
		case err != nil:
			return n, fmt.Errorf("create %s: %w", email, err)
		}
		log.Info().Str("email", email).Msg("user created")
		n++
	}
	return n, nil
}

func run(reset bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	ctx := context.Background()
	db, err := newPgxPool(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if reset {
		if err := rollbackAllFn(cfg.Database.URL); err != nil {
			return fmt.Errorf("rollback migrations: %w", err)
		}
		log.Warn().Msg("database reset")
	}
	if err := runMigrationsFn(cfg.Database.URL); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	wp := worker.NewPool(cfg.Security.WorkerCount)
	defer wp.Stop()
	accounts := service.NewAccounts(db, cache.Noop{}, wp, log, service.Options{
		BcryptCost: cfg.Security.BcryptCost,
		CacheTTL:   cfg.Redis.TTL,
	})

	n, err := seed(ctx, func(ctx context.Context, name, email, password string) error {
		_, err := accounts.Create(ctx, name, email, password)
		return err
	}, log)
	if err != nil {
		return err
	}
	log.Info().Int("created", n).Int("total", len(samples)).Msg("seeding finished")
	return nil
}

func main() {
	reset := flag.Bool("reset", false, "roll back all migrations before seeding")
	flag.Parse()
	if err := run(*reset); err != nil {
		fmt.Fprintln(os.Stderr, err)
		exitFunc(1)
	}
}
