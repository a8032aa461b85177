package model

// User is a registered identity, keyed by normalized email.
// OtpCode and OtpExpires are both set while a challenge is outstanding
// and both cleared otherwise, never one without the other.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	Verified    bool   `json:"verified"`
	OtpCode     string `json:"-"`
	OtpExpires  int64  `json:"-"`
	Ctime       int64  `json:"ctime"`
	Mtime       int64  `json:"mtime"`
}

// OtpPending reports whether an OTP challenge is outstanding.
func (u *User) OtpPending() bool {
	return u.OtpCode != "" && u.OtpExpires != 0
}
