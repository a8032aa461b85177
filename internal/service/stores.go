package service

import (
	"context"

	"github.com/hdnotes/hdnotes/internal/model"
)

// UserStore is the slice of the user directory the services need:
// find by unique key, insert, update in place.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, userID string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
}

type NoteStore interface {
	Create(ctx context.Context, note *model.Note) error
	ListByUser(ctx context.Context, userID string) ([]*model.Note, error)
	Delete(ctx context.Context, userID, noteID string) error
}
