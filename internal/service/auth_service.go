package service

import (
	"context"
	"strings"
	"time"

	"github.com/hdnotes/hdnotes/internal/model"
	appErr "github.com/hdnotes/hdnotes/internal/pkg/errors"
	"github.com/hdnotes/hdnotes/internal/pkg/jwt"
)

// AuthService drives the registration and sign-in flow:
// Unregistered -> PendingVerification -> Verified, with a sign-in
// challenge sub-state once verified.
type AuthService struct {
	users     UserStore
	otp       *OTPService
	jwtSecret []byte
	jwtTTL    time.Duration
	now       func() time.Time
}

func NewAuthService(users UserStore, otp *OTPService, secret []byte, ttl time.Duration) *AuthService {
	return &AuthService{users: users, otp: otp, jwtSecret: secret, jwtTTL: ttl, now: time.Now}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SendOTP starts or restarts a registration. A verified identity with
// this email blocks registration; an unverified one gets its profile
// fields overwritten and a fresh code. Overwriting the profile during
// an unfinished registration is deliberate, it lets the user fix a
// typo in their name before verifying.
func (s *AuthService) SendOTP(ctx context.Context, email, name, dateOfBirth string) error {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)
	if email == "" || name == "" {
		return appErr.ErrInvalid
	}
	user, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if user.Verified {
			return appErr.ErrConflict
		}
		user.Name = name
		user.DateOfBirth = dateOfBirth
	case appErr.IsNotFound(err):
		now := s.now().Unix()
		user = &model.User{
			ID:          newID(),
			Email:       email,
			Name:        name,
			DateOfBirth: dateOfBirth,
			Ctime:       now,
			Mtime:       now,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return err
		}
	default:
		return err
	}
	return s.otp.Issue(ctx, user, otpPurposeRegister)
}

// VerifyOTP consumes the pending registration code. The first success
// flips the identity to verified; either way a session token is
// minted.
func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) (*model.User, string, error) {
	email = normalizeEmail(email)
	if email == "" || code == "" {
		return nil, "", appErr.ErrInvalid
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if err := s.otp.Verify(ctx, user, code); err != nil {
		return nil, "", err
	}
	if !user.Verified {
		user.Verified = true
		user.Mtime = s.now().Unix()
		if err := s.users.Update(ctx, user); err != nil {
			return nil, "", err
		}
	}
	token, err := jwt.GenerateToken(user.ID, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// SignIn issues a sign-in code to a verified identity. An identity
// that never completed registration cannot sign in.
func (s *AuthService) SignIn(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return appErr.ErrInvalid
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if !user.Verified {
		return appErr.ErrNotVerified
	}
	return s.otp.Issue(ctx, user, otpPurposeSignIn)
}

// VerifySignIn consumes the pending sign-in code and mints a session
// token.
func (s *AuthService) VerifySignIn(ctx context.Context, email, code string) (*model.User, string, error) {
	email = normalizeEmail(email)
	if email == "" || code == "" {
		return nil, "", appErr.ErrInvalid
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if !user.Verified {
		return nil, "", appErr.ErrNotVerified
	}
	if err := s.otp.Verify(ctx, user, code); err != nil {
		return nil, "", err
	}
	token, err := jwt.GenerateToken(user.ID, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// ResendOTP re-issues a registration code for an existing unverified
// identity. Profile fields are updated only when supplied.
func (s *AuthService) ResendOTP(ctx context.Context, email, name, dateOfBirth string) error {
	email = normalizeEmail(email)
	if email == "" {
		return appErr.ErrInvalid
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.Verified {
		return appErr.ErrConflict
	}
	if name = strings.TrimSpace(name); name != "" {
		user.Name = name
	}
	if dateOfBirth != "" {
		user.DateOfBirth = dateOfBirth
	}
	return s.otp.Issue(ctx, user, otpPurposeRegister)
}
