package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/hdnotes/hdnotes/internal/model"
	appErr "github.com/hdnotes/hdnotes/internal/pkg/errors"
)

const (
	otpPurposeRegister = "register"
	otpPurposeSignIn   = "signin"
	otpExpireMinutes   = 10
)

// OTPService owns the lifecycle of the one-time code stored on a user
// record: issue, verify, single-use invalidation. Issuing always
// overwrites any still-pending code, so only the latest one is valid.
type OTPService struct {
	users  UserStore
	sender EmailSender
	now    func() time.Time
}

func NewOTPService(users UserStore, sender EmailSender) *OTPService {
	return &OTPService{users: users, sender: sender, now: time.Now}
}

// Issue generates a fresh 6-digit code, stores it on the user with a
// 10-minute expiry, and emails it. Mail failure is terminal for the
// request; the pending code stays and a retry issues a new one.
func (s *OTPService) Issue(ctx context.Context, user *model.User, purpose string) error {
	code := s.generateCode()
	now := s.now().Unix()
	user.OtpCode = code
	user.OtpExpires = now + int64(otpExpireMinutes*60)
	user.Mtime = now
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	subject := "HD Notes - Verification Code"
	if purpose == otpPurposeSignIn {
		subject = "HD Notes - Sign In Code"
	}
	body := fmt.Sprintf("Your verification code is %s. It expires in %d minutes.", code, otpExpireMinutes)
	return s.sender.Send(user.Email, subject, body)
}

// Verify checks the submitted code against the pending one. The
// comparison is an exact string match, "012345" does not equal
// "12345". On success both OTP fields are cleared unconditionally and
// the cleared record is persisted, a consumed code can never be
// replayed.
func (s *OTPService) Verify(ctx context.Context, user *model.User, submitted string) error {
	if !user.OtpPending() {
		return appErr.ErrInvalidCode
	}
	if user.OtpExpires <= s.now().Unix() {
		return appErr.ErrCodeExpired
	}
	if user.OtpCode != submitted {
		return appErr.ErrInvalidCode
	}
	user.OtpCode = ""
	user.OtpExpires = 0
	user.Mtime = s.now().Unix()
	return s.users.Update(ctx, user)
}

// generateCode returns a uniformly random 6-digit decimal string,
// leading zeros preserved.
func (s *OTPService) generateCode() string {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return fmt.Sprintf("%06d", rng.Intn(1000000))
}
