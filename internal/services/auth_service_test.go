package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlitvinov/go-task-api/internal/auth"
	"github.com/nlitvinov/go-task-api/internal/storage/memory"
)

func newAuthService(t *testing.T, codec auth.TokenCodec) AuthService {
	t.Helper()
	return NewAuthService(zerolog.Nop(), memory.NewUserStore(), codec)
}

func testCodec() auth.TokenCodec {
	return auth.NewJWTCodec("todo-api", []byte("test-signing-key"), time.Hour, 24*time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t, testCodec())

	user, err := svc.Register(ctx, RegisterParams{Username: "alice", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "s3cret-pass", user.Password, "password stored in plain text")

	pair, err := svc.Login(ctx, LoginParams{Username: "alice", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.True(t, pair.RefreshTokenExpiresAt.After(pair.AccessTokenExpiresAt))
}

func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t, testCodec())

	_, err := svc.Register(ctx, RegisterParams{Username: "alice", Password: "s3cret-pass"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginParams{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	svc := newAuthService(t, testCodec())

	_, err := svc.Login(context.Background(), LoginParams{Username: "nobody", Password: "whatever"})
	// Indistinguishable from a wrong password.
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t, testCodec())

	_, err := svc.Register(ctx, RegisterParams{Username: "alice", Password: "s3cret-pass"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterParams{Username: "alice", Password: "another-pass"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t, testCodec())

	registered, err := svc.Register(ctx, RegisterParams{Username: "alice", Password: "s3cret-pass"})
	require.NoError(t, err)

	pair, err := svc.Login(ctx, LoginParams{Username: "alice", Password: "s3cret-pass"})
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.Equal(t, "alice", user.Username)
}

func TestAuthenticateExpiredToken(t *testing.T) {
	ctx := context.Background()
	expiredCodec := auth.NewJWTCodec("todo-api", []byte("test-signing-key"), -time.Hour, -time.Hour)
	svc := newAuthService(t, expiredCodec)

	_, err := svc.Register(ctx, RegisterParams{Username: "alice", Password: "s3cret-pass"})
	require.NoError(t, err)

	pair, err := svc.Login(ctx, LoginParams{Username: "alice", Password: "s3cret-pass"})
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthenticateGarbageToken(t *testing.T) {
	svc := newAuthService(t, testCodec())

	_, err := svc.Authenticate(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthenticateTokenForDeletedUser(t *testing.T) {
	ctx := context.Background()
	codec := testCodec()
	svc := newAuthService(t, codec)

	// A well-formed token whose user never existed in this store.
	token, _, err := codec.Issue("ghost-user-id", "ghost", auth.KindAccess)
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t, testCodec())

	_, err := svc.Register(ctx, RegisterParams{Username: "alice", Password: "s3cret-pass"})
	require.NoError(t, err)

	pair, err := svc.Login(ctx, LoginParams{Username: "alice", Password: "s3cret-pass"})
	require.NoError(t, err)

	fresh, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.AccessToken)

	// An access token is not accepted as a refresh token.
	_, err = svc.Refresh(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLegacyCodecEndToEnd(t *testing.T) {
	ctx := context.Background()
	codec := auth.NewLegacyCodec(24*time.Hour, 7*24*time.Hour)
	svc := newAuthService(t, codec)

	_, err := svc.Register(ctx, RegisterParams{Username: "alice", Password: "s3cret-pass"})
	require.NoError(t, err)

	pair, err := svc.Login(ctx, LoginParams{Username: "alice", Password: "s3cret-pass"})
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}
