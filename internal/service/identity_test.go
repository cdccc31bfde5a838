package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"courseMarketplace/internal/auth"
	"courseMarketplace/internal/hash"
	"courseMarketplace/internal/testutil"
	"courseMarketplace/models"
	"courseMarketplace/repository"
)

func newIdentityService(t *testing.T, name string) (*IdentityService, *repository.UserRepository) {
	t.Helper()
	d := testutil.OpenInMemoryDB(t, name)
	users := repository.NewUserRepository(d)
	svc := &IdentityService{Users: users, Secret: "test-secret", TokenTTL: time.Hour}
	return svc, users
}

func TestIdentity_RegisterAndAuthenticate(t *testing.T) {
	svc, _ := newIdentityService(t, "identityauth")
	ctx := context.Background()

	u, err := svc.Register(ctx, "alice", "p1", "a@x.com", models.RoleStudent)
	require.NoError(t, err)
	require.NotZero(t, u.ID)
	require.NotEqual(t, "p1", u.PasswordHash)

	sess, err := svc.Authenticate(ctx, "alice", "p1")
	require.NoError(t, err)
	require.Equal(t, u.ID, sess.User.ID)
	require.NotEmpty(t, sess.Token)

	p, err := auth.Parse(sess.Token, "test-secret")
	require.NoError(t, err)
	require.Equal(t, u.ID, p.UserID)
	require.Equal(t, models.RoleStudent, p.Role)

	_, err = svc.Authenticate(ctx, "alice", "wrong")
	require.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.Authenticate(ctx, "nobody", "p1")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestIdentity_RegisterRejectsUnknownRole(t *testing.T) {
	svc, _ := newIdentityService(t, "identityrole")
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "p1", "a@x.com", models.Role("superuser"))
	require.ErrorIs(t, err, repository.ErrInvalidRole)
}

func TestIdentity_RegisterDuplicateUsername(t *testing.T) {
	svc, _ := newIdentityService(t, "identitydup")
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "p1", "a@x.com", models.RoleStudent)
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "p2", "other@x.com", models.RoleStudent)
	require.ErrorIs(t, err, repository.ErrDuplicateIdentity)
}

func TestIdentity_LegacyHashUpgradedOnLogin(t *testing.T) {
	svc, users := newIdentityService(t, "identitylegacy")
	ctx := context.Background()

	// Seed an account the way the pre-migration scheme stored it.
	u, err := users.Create(ctx, "old", hash.LegacyDigest("p1"), "old@x.com", models.RoleStudent)
	require.NoError(t, err)
	require.True(t, hash.IsLegacy(u.PasswordHash))

	_, err = svc.Authenticate(ctx, "old", "wrong")
	require.ErrorIs(t, err, repository.ErrNotFound)

	sess, err := svc.Authenticate(ctx, "old", "p1")
	require.NoError(t, err)
	require.NotEmpty(t, sess.Token)

	// The stored hash is now bcrypt and still verifies.
	stored, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.False(t, hash.IsLegacy(stored.PasswordHash))

	_, err = svc.Authenticate(ctx, "old", "p1")
	require.NoError(t, err)
}

func TestIdentity_ProfileAndRoleUpdate(t *testing.T) {
	svc, _ := newIdentityService(t, "identityprofile")
	ctx := context.Background()

	u, err := svc.Register(ctx, "alice", "p1", "a@x.com", models.RoleStudent)
	require.NoError(t, err)

	profile, err := svc.GetProfile(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, "a@x.com", profile.Email)
	require.Equal(t, models.RoleStudent, profile.Role)

	_, err = svc.GetProfile(ctx, "nobody")
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, svc.UpdateUserRole(ctx, u.ID, models.RoleInstructor))
	profile, err = svc.GetProfile(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, models.RoleInstructor, profile.Role)

	err = svc.UpdateUserRole(ctx, u.ID, models.Role("root"))
	require.ErrorIs(t, err, repository.ErrInvalidRole)

	list, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestIdentity_ListUsersReturnsAllAccounts(t *testing.T) {
	svc, users := newIdentityService(t, "identitylistall")
	ctx := context.Background()

	// Seed past any page-sized result set to make sure nothing truncates.
	const total = 120
	for i := 0; i < total; i++ {
		name := fmt.Sprintf("user%03d", i)
		_, err := users.Create(ctx, name, "h", name+"@x.com", models.RoleStudent)
		require.NoError(t, err)
	}

	n, err := users.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, total, n)

	list, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, list, total)

	seen := make(map[string]bool, len(list))
	for _, u := range list {
		seen[u.Username] = true
	}
	require.Len(t, seen, total)
}
