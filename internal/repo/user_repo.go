package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/hdnotes/hdnotes/internal/model"
	"github.com/hdnotes/hdnotes/internal/pkg/dbutil"
	appErr "github.com/hdnotes/hdnotes/internal/pkg/errors"
)

var userColumns = []string{"id", "email", "name", "date_of_birth", "verified", "otp_code", "otp_expires", "ctime", "mtime"}

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, user *model.User) error {
	data := map[string]interface{}{
		"id":            user.ID,
		"email":         user.Email,
		"name":          user.Name,
		"date_of_birth": user.DateOfBirth,
		"verified":      user.Verified,
		"otp_code":      user.OtpCode,
		"otp_expires":   user.OtpExpires,
		"ctime":         user.Ctime,
		"mtime":         user.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("users", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		if dbutil.IsConflict(err) {
			return appErr.ErrConflict
		}
		return err
	}
	return nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, map[string]interface{}{"email": email})
}

func (r *UserRepo) GetByID(ctx context.Context, userID string) (*model.User, error) {
	return r.getOne(ctx, map[string]interface{}{"id": userID})
}

func (r *UserRepo) getOne(ctx context.Context, where map[string]interface{}) (*model.User, error) {
	sqlStr, args, err := builder.BuildSelect("users", where, userColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		return nil, appErr.ErrNotFound
	}
	var user model.User
	if err := rows.Scan(&user.ID, &user.Email, &user.Name, &user.DateOfBirth, &user.Verified, &user.OtpCode, &user.OtpExpires, &user.Ctime, &user.Mtime); err != nil {
		return nil, err
	}
	return &user, nil
}

// Update writes all mutable fields of the user record in place.
// Email and ctime never change after creation.
func (r *UserRepo) Update(ctx context.Context, user *model.User) error {
	where := map[string]interface{}{"id": user.ID}
	update := map[string]interface{}{
		"name":          user.Name,
		"date_of_birth": user.DateOfBirth,
		"verified":      user.Verified,
		"otp_code":      user.OtpCode,
		"otp_expires":   user.OtpExpires,
		"mtime":         user.Mtime,
	}
	sqlStr, args, err := builder.BuildUpdate("users", where, update)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

// ClearExpiredOTP drops code/expiry pairs whose expiry has passed.
// Both fields are cleared together, expired codes are rejected on
// verification anyway so this is pure hygiene.
func (r *UserRepo) ClearExpiredOTP(ctx context.Context, now int64) (int64, error) {
	where := map[string]interface{}{
		"otp_code !=":    "",
		"otp_expires <=": now,
	}
	update := map[string]interface{}{
		"otp_code":    "",
		"otp_expires": 0,
	}
	sqlStr, args, err := builder.BuildUpdate("users", where, update)
	if err != nil {
		return 0, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
