package users

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// handles user database operations
type Repository struct {
	db *pgxpool.Pool
}

// returned by Create when the email is already registered
var ErrEmailTaken = errors.New("email already registered")

// User is an authenticable identity. Either PasswordHash (local
// account) or Provider/ProviderID (federated account) must be set;
// both are set when a local account is later linked. Email is nil
// only for federated accounts whose provider withheld it.
type User struct {
	ID           string    `json:"id"`
	Email        *string   `json:"email"`
	PasswordHash *string   `json:"-"`
	Provider     *string   `json:"provider,omitempty"`
	ProviderID   *string   `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
