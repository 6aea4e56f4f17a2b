package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	ordererrors "github.com/lojadev/pedidos/internal/errors"
)

type PgUserStore struct {
	db *pgxpool.Pool
}

var _ UserStore = (*PgUserStore)(nil)

// NewPgUserStore creates a new instance of UserStore using a PostgreSQL connection pool.
func NewPgUserStore(dbp *pgxpool.Pool) *PgUserStore {
	return &PgUserStore{db: dbp}
}

func (p *PgUserStore) FindByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	err := p.db.QueryRow(ctx, `
		SELECT id, username, password_hash
		FROM users WHERE username = $1
	`, username).Scan(&u.ID, &u.Username, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ordererrors.ErrUserNotFound
		}
		return nil, ordererrors.ErrFailedToFindUser
	}
	return &u, nil
}

func (p *PgUserStore) CreateUser(ctx context.Context, username, passwordHash string) (*User, error) {
	var id int64
	err := p.db.QueryRow(ctx, `
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		RETURNING id
	`, username, passwordHash).Scan(&id)
	if err != nil {
		return nil, ordererrors.ErrCreateUser
	}
	return &User{ID: id, Username: username, PasswordHash: passwordHash}, nil
}
