// Command seed creates an API user so that /login has something to check
// credentials against. Running it twice with the same username is a no-op.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lojadev/pedidos/internal/config"
	ordererrors "github.com/lojadev/pedidos/internal/errors"
	"github.com/lojadev/pedidos/internal/store"
	"github.com/lojadev/pedidos/pkg/auth"
	"github.com/lojadev/pedidos/pkg/config/configloader"
)

const serviceName = "pedidos"

func main() {
	username := flag.String("username", "admin", "username of the user to create")
	password := flag.String("password", "123456", "password of the user to create")
	flag.Parse()

	if err := run(context.Background(), *username, *password); err != nil {
		log.Printf("seed failed: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, username, password string) error {
	cfg, err := configloader.Load[*config.Config](serviceName)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	poolCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	dbPool, err := pgxpool.New(poolCtx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to create database connection pool: %w", err)
	}
	defer dbPool.Close()

	if err := store.Migrate(cfg.Database.URL); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	users := store.NewPgUserStore(dbPool)
	if existing, err := users.FindByUsername(ctx, username); err == nil {
		log.Printf("user %q already exists (id=%d), nothing to do", existing.Username, existing.ID)
		return nil
	} else if !errors.Is(err, ordererrors.ErrUserNotFound) {
		return fmt.Errorf("failed to look up user: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	created, err := users.CreateUser(ctx, username, hash)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	log.Printf("user %q created (id=%d)", created.Username, created.ID)
	return nil
}
