package service

import (
	"context"
	"log/slog"
	"time"

	"courseMarketplace/internal/auth"
	"courseMarketplace/internal/hash"
	"courseMarketplace/models"
	"courseMarketplace/repository"
)

// IdentityService owns account registration, authentication, and user
// administration on top of the user repository.
type IdentityService struct {
	Users    repository.UserRepositoryI
	Secret   string
	TokenTTL time.Duration
}

// Session is the caller-owned, ephemeral login state: a signed token the
// presentation layer holds until logout. Nothing here is persisted.
type Session struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

// Profile is the user-facing view of an account.
type Profile struct {
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Role     models.Role `json:"role"`
}

// Register creates an account with a hashed password. Unrecognized roles are
// rejected with ErrInvalidRole; a taken username or email surfaces as
// ErrDuplicateIdentity.
func (s *IdentityService) Register(ctx context.Context, username, password, email string, role models.Role) (*models.User, error) {
	if !role.Valid() {
		return nil, repository.ErrInvalidRole
	}
	pwHash, err := hash.Password(password)
	if err != nil {
		slog.Error("hash password", "svc", "identity.register", "error", err)
		return nil, err
	}
	u, err := s.Users.Create(ctx, username, pwHash, email, role)
	if err != nil {
		return nil, err
	}
	slog.Info("user registered", "svc", "identity.register", "username", username, "role", role)
	return u, nil
}

// Authenticate verifies the username/password pair and mints a session token.
// Unknown usernames and wrong passwords both surface as ErrNotFound so the
// caller cannot distinguish them. Accounts still carrying a legacy sha256
// digest are transparently upgraded to bcrypt on success.
func (s *IdentityService) Authenticate(ctx context.Context, username, password string) (*Session, error) {
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if !hash.Check(u.PasswordHash, password) {
		return nil, repository.ErrNotFound
	}

	if hash.IsLegacy(u.PasswordHash) {
		if upgraded, err := hash.Password(password); err == nil {
			if err := s.Users.UpdatePasswordHash(ctx, u.ID, upgraded); err != nil {
				// Login still succeeds; the next one retries the upgrade.
				slog.Warn("legacy hash upgrade failed", "svc", "identity.authenticate", "username", username, "error", err)
			} else {
				u.PasswordHash = upgraded
				slog.Info("legacy hash upgraded", "svc", "identity.authenticate", "username", username)
			}
		}
	}

	token, exp, err := auth.Mint(s.Secret, u, s.TokenTTL)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, ExpiresAt: exp, User: u}, nil
}

// GetProfile returns the role and email for the given username.
func (s *IdentityService) GetProfile(ctx context.Context, username string) (*Profile, error) {
	role, err := s.Users.GetRole(ctx, username)
	if err != nil {
		return nil, err
	}
	email, err := s.Users.GetEmail(ctx, username)
	if err != nil {
		return nil, err
	}
	return &Profile{Username: username, Email: email, Role: role}, nil
}

// UpdateUserRole overwrites the role for the given user ID after validating
// it against the closed role set.
func (s *IdentityService) UpdateUserRole(ctx context.Context, userID int64, role models.Role) error {
	if err := s.Users.UpdateRole(ctx, userID, role); err != nil {
		return err
	}
	slog.Info("role updated", "svc", "identity.update_role", "user_id", userID, "role", role)
	return nil
}

// ListUsers returns all accounts. Password hashes stay internal; the model
// never serializes them.
func (s *IdentityService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.Users.List(ctx)
}
