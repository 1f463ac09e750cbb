package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// postgres unique_violation
const pgUniqueViolation = "23505"

// creates a new user repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// creates a local account. Uniqueness of email is enforced by the
// database constraint, so two concurrent registrations race safely:
// one succeeds, the other gets ErrEmailTaken.
func (r *Repository) Create(ctx context.Context, email, passwordHash string) (*User, error) {
	var user User

	err := r.db.QueryRow(ctx, queryCreate, email, passwordHash).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Provider,
		&user.ProviderID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, ErrEmailTaken
		}

		return nil, err
	}

	return &user, nil
}

// finds a user by email; returns pgx.ErrNoRows when absent
func (r *Repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var user User

	err := r.db.QueryRow(ctx, queryFindByEmail, email).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Provider,
		&user.ProviderID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &user, nil
}

// finds a user by their ID
func (r *Repository) FindByID(ctx context.Context, userID string) (*User, error) {
	var user User

	err := r.db.QueryRow(ctx, queryFindByID, userID).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Provider,
		&user.ProviderID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &user, nil
}

// finds a user by OAuth provider subject id or creates a new one.
// An empty profile email is stored as NULL: the federated id alone
// identifies the account until an email is reconciled later.
func (r *Repository) FindOrCreateByProvider(ctx context.Context, provider, providerID, email string) (*User, error) {
	var emailArg *string
	if email != "" {
		emailArg = &email
	}

	var user User

	err := r.db.QueryRow(ctx, queryFindOrCreateByProvider, provider, providerID, emailArg).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Provider,
		&user.ProviderID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &user, nil
}
