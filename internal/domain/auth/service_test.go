package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendorgate/internal/core/apperror"
	appctx "vendorgate/internal/core/context"
	"vendorgate/internal/core/id"
)

type fakeRepo struct {
	byID    map[id.ID]*User
	byEmail map[string]*User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[id.ID]*User), byEmail: make(map[string]*User)}
}

func (r *fakeRepo) Create(_ context.Context, user *User) error {
	r.byID[user.ID] = user
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeRepo) Update(_ context.Context, user *User) error {
	r.byID[user.ID] = user
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, userID id.ID) (*User, error) {
	if u, ok := r.byID[userID]; ok {
		return u, nil
	}
	return nil, apperror.NewNotFound("user", userID)
}

func (r *fakeRepo) FindByEmail(_ context.Context, email string) (*User, error) {
	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	return nil, apperror.NewNotFound("user", email)
}

func newService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	return NewService(repo, NewJWTService("test-secret", time.Hour)), repo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	vendorID := id.New()
	user := NewUser(id.New(), "Buyer@Example.com", appctx.RoleVendor)
	user.VendorID = &vendorID

	require.NoError(t, svc.Register(ctx, user, "s3cret-pass"))
	assert.Equal(t, "buyer@example.com", user.Email, "email is normalized")
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)

	result, err := svc.Login(ctx, "  BUYER@example.com ", "s3cret-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)

	_, err = svc.Login(ctx, "buyer@example.com", "wrong")
	require.Error(t, err)

	// Unknown email yields the identical message as a wrong password.
	_, err2 := svc.Login(ctx, "nobody@example.com", "whatever")
	require.Error(t, err2)
	assert.Equal(t, err.Error(), err2.Error())
}

func TestRegisterValidations(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	user := NewUser(id.New(), "staff@example.com", appctx.RoleDistributor)
	require.Error(t, svc.Register(ctx, user, "short"), "weak password")
	require.NoError(t, svc.Register(ctx, user, "long-enough"))

	dup := NewUser(id.New(), "staff@example.com", appctx.RoleDistributor)
	err := svc.Register(ctx, dup, "long-enough")
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)

	vendorUser := NewUser(id.New(), "v@example.com", appctx.RoleVendor)
	require.Error(t, svc.Register(ctx, vendorUser, "long-enough"), "vendor scope missing")
}

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewJWTService("test-secret", time.Hour)

	vendorID := id.New()
	user := NewUser(id.New(), "buyer@example.com", appctx.RoleVendor)
	user.VendorID = &vendorID

	token, err := tokens.Generate(user)
	require.NoError(t, err)

	uc, err := tokens.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), uc.UserID)
	assert.Equal(t, appctx.RoleVendor, uc.Role)
	assert.Equal(t, vendorID.String(), uc.VendorID)

	_, err = tokens.ValidateToken(token + "tampered")
	require.Error(t, err)

	other := NewJWTService("different-secret", time.Hour)
	_, err = other.ValidateToken(token)
	require.Error(t, err)
}

func TestExpiredToken(t *testing.T) {
	tokens := NewJWTService("test-secret", -time.Minute)
	user := NewUser(id.New(), "staff@example.com", appctx.RoleDistributor)

	token, err := tokens.Generate(user)
	require.NoError(t, err)

	_, err = tokens.ValidateToken(token)
	require.Error(t, err)
}

func TestChangePassword(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	user := NewUser(id.New(), "staff@example.com", appctx.RoleDistributor)
	require.NoError(t, svc.Register(ctx, user, "original-pass"))

	require.Error(t, svc.ChangePassword(ctx, user.ID, "wrong", "next-password"))
	require.NoError(t, svc.ChangePassword(ctx, user.ID, "original-pass", "next-password"))

	_, err := svc.Login(ctx, "staff@example.com", "original-pass")
	require.Error(t, err)
	_, err = svc.Login(ctx, "staff@example.com", "next-password")
	require.NoError(t, err)
}
