package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	appErr "github.com/hdnotes/hdnotes/internal/pkg/errors"
	"github.com/hdnotes/hdnotes/internal/pkg/jwt"
	"github.com/hdnotes/hdnotes/internal/testutil"
)

var testSecret = []byte("test-secret")

func newAuthFixture(t *testing.T) (*AuthService, *testutil.MemUserStore, *testutil.RecorderSender) {
	t.Helper()
	store := testutil.NewMemUserStore()
	sender := &testutil.RecorderSender{}
	otp := NewOTPService(store, sender)
	auth := NewAuthService(store, otp, testSecret, 7*24*time.Hour)
	return auth, store, sender
}

func pendingCode(t *testing.T, store *testutil.MemUserStore, email string) string {
	t.Helper()
	user, err := store.GetByEmail(context.Background(), email)
	require.NoError(t, err)
	require.NotEmpty(t, user.OtpCode)
	return user.OtpCode
}

func register(t *testing.T, auth *AuthService, store *testutil.MemUserStore, email, name string) string {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, auth.SendOTP(ctx, email, name, ""))
	user, token, err := auth.VerifyOTP(ctx, email, pendingCode(t, store, email))
	require.NoError(t, err)
	require.True(t, user.Verified)
	return token
}

func TestRegistrationFlow(t *testing.T) {
	auth, store, sender := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, auth.SendOTP(ctx, "alice@example.com", "Alice", "1990-01-02"))
	require.Equal(t, 1, sender.Count())

	user, err := store.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.False(t, user.Verified)
	require.Equal(t, "Alice", user.Name)
	require.Equal(t, "1990-01-02", user.DateOfBirth)

	verified, token, err := auth.VerifyOTP(ctx, "alice@example.com", user.OtpCode)
	require.NoError(t, err)
	require.True(t, verified.Verified)
	require.Empty(t, verified.OtpCode)
	require.Zero(t, verified.OtpExpires)

	claims, err := jwt.ParseToken(token, testSecret)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)
}

func TestRegistrationNormalizesEmail(t *testing.T) {
	auth, store, _ := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, auth.SendOTP(ctx, "  Alice@Example.COM ", "Alice", ""))
	user, err := store.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)

	_, _, err = auth.VerifyOTP(ctx, "ALICE@example.com", user.OtpCode)
	require.NoError(t, err)
}

func TestRegistrationBlockedForVerifiedEmail(t *testing.T) {
	auth, store, _ := newAuthFixture(t)
	ctx := context.Background()
	register(t, auth, store, "alice@example.com", "Alice")

	require.ErrorIs(t, auth.SendOTP(ctx, "alice@example.com", "Alice", ""), appErr.ErrConflict)
	require.ErrorIs(t, auth.ResendOTP(ctx, "alice@example.com", "", ""), appErr.ErrConflict)
}

func TestRegistrationRestartOverwritesProfile(t *testing.T) {
	auth, store, sender := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, auth.SendOTP(ctx, "alice@example.com", "Alcie", "1990-01-02"))

	// Re-sending to an unverified identity is allowed and lets the
	// user correct their profile before verifying.
	require.NoError(t, auth.SendOTP(ctx, "alice@example.com", "Alice", "1990-02-01"))
	require.Equal(t, 2, sender.Count())

	user, err := store.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, "Alice", user.Name)
	require.Equal(t, "1990-02-01", user.DateOfBirth)
}

func TestResendOTP(t *testing.T) {
	auth, store, sender := newAuthFixture(t)
	ctx := context.Background()

	require.ErrorIs(t, auth.ResendOTP(ctx, "ghost@example.com", "", ""), appErr.ErrNotFound)

	require.NoError(t, auth.SendOTP(ctx, "alice@example.com", "Alice", "1990-01-02"))
	require.NoError(t, auth.ResendOTP(ctx, "alice@example.com", "", ""))
	require.Equal(t, 2, sender.Count())

	// Profile fields survive a resend that omits them.
	user, err := store.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, "Alice", user.Name)
	require.Equal(t, "1990-01-02", user.DateOfBirth)

	require.NoError(t, auth.ResendOTP(ctx, "alice@example.com", "Alicia", ""))
	user, err = store.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, "Alicia", user.Name)
}

func TestSignInRequiresVerifiedIdentity(t *testing.T) {
	auth, store, _ := newAuthFixture(t)
	ctx := context.Background()

	require.ErrorIs(t, auth.SignIn(ctx, "ghost@example.com"), appErr.ErrNotFound)

	require.NoError(t, auth.SendOTP(ctx, "alice@example.com", "Alice", ""))
	require.ErrorIs(t, auth.SignIn(ctx, "alice@example.com"), appErr.ErrNotVerified)

	_, _, err := auth.VerifySignIn(ctx, "alice@example.com", "123456")
	require.ErrorIs(t, err, appErr.ErrNotVerified)

	_, err = store.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
}

func TestSignInFlow(t *testing.T) {
	auth, store, sender := newAuthFixture(t)
	ctx := context.Background()
	register(t, auth, store, "alice@example.com", "Alice")

	require.NoError(t, auth.SignIn(ctx, "alice@example.com"))
	require.Equal(t, 2, sender.Count())

	code := pendingCode(t, store, "alice@example.com")
	_, _, err := auth.VerifySignIn(ctx, "alice@example.com", "999999")
	if code != "999999" {
		require.ErrorIs(t, err, appErr.ErrInvalidCode)
	}

	user, token, err := auth.VerifySignIn(ctx, "alice@example.com", code)
	require.NoError(t, err)
	require.Empty(t, user.OtpCode)

	claims, err := jwt.ParseToken(token, testSecret)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)
}

func TestSendOTPMailFailure(t *testing.T) {
	auth, _, sender := newAuthFixture(t)
	ctx := context.Background()
	sender.Fail = true

	require.ErrorIs(t, auth.SendOTP(ctx, "alice@example.com", "Alice", ""), appErr.ErrMailDelivery)
}

func TestSendOTPValidatesInput(t *testing.T) {
	auth, _, _ := newAuthFixture(t)
	ctx := context.Background()

	require.ErrorIs(t, auth.SendOTP(ctx, "", "Alice", ""), appErr.ErrInvalid)
	require.ErrorIs(t, auth.SendOTP(ctx, "alice@example.com", "  ", ""), appErr.ErrInvalid)
	_, _, err := auth.VerifyOTP(ctx, "alice@example.com", "")
	require.ErrorIs(t, err, appErr.ErrInvalid)
}
