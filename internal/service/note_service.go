package service

import (
	"context"
	"strings"
	"time"

	"github.com/hdnotes/hdnotes/internal/model"
	appErr "github.com/hdnotes/hdnotes/internal/pkg/errors"
)

// NoteService scopes every note operation to the owning user id
// resolved by the session middleware. Nothing here can see or touch
// another user's notes.
type NoteService struct {
	notes NoteStore
	now   func() time.Time
}

func NewNoteService(notes NoteStore) *NoteService {
	return &NoteService{notes: notes, now: time.Now}
}

type NoteCreateInput struct {
	Title   string
	Content string
}

func (s *NoteService) Create(ctx context.Context, userID string, input NoteCreateInput) (*model.Note, error) {
	// Title is trimmed, content is stored exactly as supplied: leading
	// whitespace and trailing newlines are significant in markdown.
	title := strings.TrimSpace(input.Title)
	if title == "" || strings.TrimSpace(input.Content) == "" {
		return nil, appErr.ErrInvalid
	}
	now := s.now().Unix()
	note := &model.Note{
		ID:      newID(),
		UserID:  userID,
		Title:   title,
		Content: input.Content,
		Ctime:   now,
		Mtime:   now,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// List returns the user's notes, newest created first.
func (s *NoteService) List(ctx context.Context, userID string) ([]*model.Note, error) {
	return s.notes.ListByUser(ctx, userID)
}

func (s *NoteService) Delete(ctx context.Context, userID, noteID string) error {
	if noteID == "" {
		return appErr.ErrInvalid
	}
	return s.notes.Delete(ctx, userID, noteID)
}
