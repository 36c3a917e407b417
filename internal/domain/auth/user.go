// Package auth implements the identity side of the storefront: customer
// accounts with bcrypt credentials, signed session tokens, and the HMAC
// hashed API keys used by the admin back-office.
package auth

import (
	"context"
	"time"

	"github.com/go-faster/errors"

	"github.com/suudhaa/grocer-api/internal/domain/order"
)

// Role is the closed role vocabulary.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

var (
	// ErrUserNotFound is returned when no account matches the lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrPhoneTaken is returned when signing up with an already registered phone.
	ErrPhoneTaken = errors.New("phone already registered")
	// ErrInvalidCredentials is returned for a wrong phone/password pair.
	ErrInvalidCredentials = errors.New("invalid phone or password")
)

// User is a registered account.
type User struct {
	ID           string
	Phone        string
	Name         string
	PasswordHash string
	Role         Role
	Address      order.Address
	CreatedAt    time.Time
}

// UserRepository defines persistence for accounts.
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByPhone(ctx context.Context, phone string) (*User, error)
	List(ctx context.Context) ([]User, error)
}
