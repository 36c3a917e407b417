package auth

import (
	"context"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/suudhaa/grocer-api/internal/domain/order"
)

const (
	bcryptCost = 12
	tokenTTL   = 24 * time.Hour
)

// ErrInvalidToken is returned for expired, malformed, or forged session tokens.
var ErrInvalidToken = errors.New("invalid session token")

// Claims is the session token payload: who the user is and what they may do.
type Claims struct {
	Role Role `json:"role"`
	jwt.RegisteredClaims
}

// SignUpForm is the input for account registration.
type SignUpForm struct {
	Name     string
	Phone    string
	Password string
	Address  order.Address
}

// Session is the result of a successful sign-in.
type Session struct {
	Token  string
	UserID string
	Role   Role
}

// Service implements sign-up, sign-in, and token validation over the user
// repository. Tokens are HS256 JWTs signed with the configured secret.
type Service struct {
	users  UserRepository
	secret []byte
	now    func() time.Time
}

// NewService creates an auth Service with the given repository and signing
// secret.
func NewService(users UserRepository, secret []byte) *Service {
	return &Service{users: users, secret: secret, now: time.Now}
}

// SignUp validates the form, hashes the password, and creates the account
// with the customer role.
func (s *Service) SignUp(ctx context.Context, form SignUpForm) (*User, error) {
	if verr := validateSignUp(form); verr != nil {
		return nil, verr
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcryptCost)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}

	u := &User{
		ID:           uuid.New().String(),
		Phone:        form.Phone,
		Name:         strings.TrimSpace(form.Name),
		PasswordHash: string(hash),
		Role:         RoleCustomer,
		Address:      form.Address,
		CreatedAt:    s.now(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, errors.Wrap(err, "create user")
	}
	return u, nil
}

// SignIn checks the credentials and issues a session token carrying the
// user's ID and role.
func (s *Service) SignIn(ctx context.Context, phone, password string) (*Session, error) {
	u, err := s.users.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, "get user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	claims := Claims{
		Role: u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, errors.Wrap(err, "sign token")
	}

	return &Session{Token: token, UserID: u.ID, Role: u.Role}, nil
}

// ValidateToken parses and verifies a session token, returning its claims.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// validateSignUp mirrors the storefront's sign-up form rules.
func validateSignUp(form SignUpForm) *order.ValidationError {
	fields := make(map[string]string)

	name := strings.TrimSpace(form.Name)
	switch {
	case name == "":
		fields["name"] = "name is required"
	case len(name) < 2:
		fields["name"] = "name must be at least 2 characters"
	case !isLettersAndSpaces(name):
		fields["name"] = "name can only contain letters and spaces"
	}

	if !isNepalMobile(form.Phone) {
		fields["phone"] = "valid Nepal mobile number required (10 digits, 98/97 prefix)"
	}

	if len(form.Password) < 6 {
		fields["password"] = "password must be at least 6 characters"
	}

	if len(fields) > 0 {
		return &order.ValidationError{Fields: fields}
	}
	return nil
}

func isLettersAndSpaces(s string) bool {
	for _, r := range s {
		ok := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == ' '
		if !ok {
			return false
		}
	}
	return true
}

// isNepalMobile checks the 10-digit 98/97-prefixed mobile number format.
func isNepalMobile(phone string) bool {
	if len(phone) != 10 {
		return false
	}
	for i := range len(phone) {
		if phone[i] < '0' || phone[i] > '9' {
			return false
		}
	}
	return strings.HasPrefix(phone, "98") || strings.HasPrefix(phone, "97")
}
