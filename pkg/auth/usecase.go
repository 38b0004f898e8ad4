package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// AuthUseCase describes authentication, token verification and admin registration.
type AuthUseCase interface {
	Login(ctx context.Context, email, password string) (AuthResult, error)
	VerifyToken(ctx context.Context, token string) (Claims, error)
	Register(ctx context.Context, email, name, password string) error
	Me(ctx context.Context, claims Claims) (User, error)
	Logout(ctx context.Context, claims Claims) error
	SeedMasterAdmin(ctx context.Context, email, name, password string) (SeedResult, error)
}

// bcrypt ignores anything past 72 bytes and x/crypto rejects longer input.
const maxPasswordBytes = 72

type AuthResult struct {
	User   User
	Token  string
	Claims Claims
}

type Option func(*authService)

// WithDenylist enables server-side revocation of logged out tokens.
func WithDenylist(d Denylist) Option {
	return func(s *authService) { s.denylist = d }
}

// WithHashCost overrides the bcrypt cost; meant for tests.
func WithHashCost(cost int) Option {
	return func(s *authService) { s.hashCost = cost }
}

type authService struct {
	repo      UserRepository
	tokens    TokenIssuer
	denylist  Denylist
	hashCost  int
	dummyHash []byte
	now       func() time.Time
}

// NewAuthService returns default implementation of AuthUseCase.
func NewAuthService(repo UserRepository, tokens TokenIssuer, opts ...Option) AuthUseCase {
	s := &authService{
		repo:     repo,
		tokens:   tokens,
		hashCost: bcrypt.DefaultCost,
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	// Compared against on unknown emails so both failure paths cost one bcrypt round.
	s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("unknown-user"), s.hashCost)
	return s
}

// RequireRole fails with ErrForbidden unless the token carries the given role.
func RequireRole(claims Claims, role Role) error {
	if claims.Role != role {
		return ErrForbidden
	}
	return nil
}

func (s *authService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return AuthResult{}, ErrValidation("email and password are required")
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return AuthResult{}, ErrInvalidCredentials
	}

	token, claims, err := s.tokens.Generate(ctx, user)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: user, Token: token, Claims: claims}, nil
}

func (s *authService) VerifyToken(ctx context.Context, token string) (Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Claims{}, ErrUnauthenticated
	}
	claims, err := s.tokens.Parse(ctx, token)
	if err != nil {
		return Claims{}, ErrUnauthenticated
	}
	if s.denylist != nil && claims.TokenID != "" {
		revoked, err := s.denylist.IsRevoked(ctx, claims.TokenID)
		if err != nil {
			return Claims{}, err
		}
		if revoked {
			return Claims{}, ErrUnauthenticated
		}
	}
	return claims, nil
}

func (s *authService) Register(ctx context.Context, email, name, password string) error {
	email = NormalizeEmail(email)
	name = strings.TrimSpace(name)
	if email == "" || name == "" || password == "" {
		return ErrValidation("name, email and password are required")
	}
	if len(password) > maxPasswordBytes {
		return ErrValidation("password must be at most 72 bytes")
	}

	// If user exists, fail fast; the unique index still catches races.
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return ErrUserAlreadyExists
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	_, err := s.createUser(ctx, email, name, password, false)
	return err
}

func (s *authService) Me(ctx context.Context, claims Claims) (User, error) {
	return s.repo.GetByID(ctx, claims.UserID)
}

func (s *authService) Logout(ctx context.Context, claims Claims) error {
	if s.denylist == nil || claims.TokenID == "" {
		return nil
	}
	return s.denylist.Revoke(ctx, claims.TokenID, claims.ExpiresAt)
}

func (s *authService) createUser(ctx context.Context, email, name, password string, master bool) (User, error) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return User{}, err
	}
	now := s.now()
	return s.repo.Create(ctx, User{
		Email:        email,
		Name:         name,
		PasswordHash: string(passwordHash),
		Role:         RoleAdmin,
		IsMaster:     master,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}
