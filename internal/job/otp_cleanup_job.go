package job

import (
	"context"

	"github.com/hdnotes/hdnotes/internal/pkg/timeutil"
	"github.com/hdnotes/hdnotes/internal/repo"
)

// OTPCleanupJob clears code/expiry pairs whose window has passed.
// Expired codes are rejected at verification regardless, the job only
// keeps stale challenge state from lingering on user records.
type OTPCleanupJob struct {
	users *repo.UserRepo
}

func NewOTPCleanupJob(users *repo.UserRepo) *OTPCleanupJob {
	return &OTPCleanupJob{users: users}
}

func (j *OTPCleanupJob) Name() string {
	return "otp_cleanup"
}

func (j *OTPCleanupJob) Run(ctx context.Context) error {
	if j.users == nil {
		return nil
	}
	_, err := j.users.ClearExpiredOTP(ctx, timeutil.NowUnix())
	return err
}
