package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/suudhaa/grocer-api/internal/domain/auth"
	"github.com/suudhaa/grocer-api/internal/domain/order"
)

const (
	customerColumns = `id, phone, name, password_hash, role, address, created_at`

	insertCustomerSQL = `INSERT INTO customers (id, phone, name, password_hash, role, address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	getCustomerByIDSQL = `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`

	getCustomerByPhoneSQL = `SELECT ` + customerColumns + ` FROM customers WHERE phone = $1`

	listCustomersSQL = `SELECT ` + customerColumns + ` FROM customers ORDER BY created_at DESC`
)

// uniqueViolation is the PostgreSQL error code for unique constraint breaks.
const uniqueViolation = "23505"

var _ auth.UserRepository = (*CustomerRepository)(nil)

// CustomerRepository implements auth.UserRepository backed by PostgreSQL.
type CustomerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository returns a CustomerRepository that uses the given pool.
func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

// Create inserts a new account. Returns auth.ErrPhoneTaken when the phone
// number is already registered.
func (r *CustomerRepository) Create(ctx context.Context, u *auth.User) error {
	addressJSON, err := json.Marshal(u.Address)
	if err != nil {
		return fmt.Errorf("marshaling customer address: %w", err)
	}

	_, err = r.pool.Exec(ctx, insertCustomerSQL,
		u.ID, u.Phone, u.Name, u.PasswordHash, string(u.Role), addressJSON, u.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return auth.ErrPhoneTaken
		}
		return fmt.Errorf("creating customer %q: %w", u.ID, err)
	}
	return nil
}

// GetByID returns an account by its identifier.
func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*auth.User, error) {
	return r.getOne(ctx, getCustomerByIDSQL, id)
}

// GetByPhone returns an account by its registered phone number.
func (r *CustomerRepository) GetByPhone(ctx context.Context, phone string) (*auth.User, error) {
	return r.getOne(ctx, getCustomerByPhoneSQL, phone)
}

// List returns all accounts, newest first.
func (r *CustomerRepository) List(ctx context.Context) ([]auth.User, error) {
	rows, err := r.pool.Query(ctx, listCustomersSQL)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	return pgx.CollectRows(rows, scanCustomer)
}

func (r *CustomerRepository) getOne(ctx context.Context, sql, arg string) (*auth.User, error) {
	rows, err := r.pool.Query(ctx, sql, arg)
	if err != nil {
		return nil, fmt.Errorf("getting customer: %w", err)
	}

	u, err := pgx.CollectExactlyOneRow(rows, scanCustomer)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("getting customer: %w", err)
	}
	return &u, nil
}

func scanCustomer(row pgx.CollectableRow) (auth.User, error) {
	var (
		u           auth.User
		role        string
		addressJSON []byte
	)
	err := row.Scan(&u.ID, &u.Phone, &u.Name, &u.PasswordHash, &role, &addressJSON, &u.CreatedAt)
	if err != nil {
		return auth.User{}, err
	}

	var addr order.Address
	if err := json.Unmarshal(addressJSON, &addr); err != nil {
		return auth.User{}, fmt.Errorf("unmarshaling customer address: %w", err)
	}

	u.Role = auth.Role(role)
	u.Address = addr
	return u, nil
}
