package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/hdnotes/hdnotes/internal/model"
	appErr "github.com/hdnotes/hdnotes/internal/pkg/errors"
)

// MemUserStore is an in-memory user directory for tests. It copies
// records on the way in and out so callers observe the same
// read-your-writes behavior the real store gives them.
type MemUserStore struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func NewMemUserStore() *MemUserStore {
	return &MemUserStore{users: make(map[string]*model.User)}
}

func (s *MemUserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, appErr.ErrNotFound
}

func (s *MemUserStore) GetByID(ctx context.Context, userID string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return nil, appErr.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (s *MemUserStore) Create(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return appErr.ErrConflict
		}
	}
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *MemUserStore) Update(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return appErr.ErrNotFound
	}
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *MemUserStore) Delete(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, userID)
}

// MemNoteStore is an in-memory note store scoped by owner, matching
// the real repo: a note under another owner looks like a missing one.
type MemNoteStore struct {
	mu    sync.Mutex
	seq   int
	notes map[string]*memNote
}

type memNote struct {
	note *model.Note
	seq  int
}

func NewMemNoteStore() *MemNoteStore {
	return &MemNoteStore{notes: make(map[string]*memNote)}
}

func (s *MemNoteStore) Create(ctx context.Context, note *model.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	clone := *note
	s.notes[note.ID] = &memNote{note: &clone, seq: s.seq}
	return nil
}

func (s *MemNoteStore) ListByUser(ctx context.Context, userID string) ([]*model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]*memNote, 0)
	for _, item := range s.notes {
		if item.note.UserID == userID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].note.Ctime != items[j].note.Ctime {
			return items[i].note.Ctime > items[j].note.Ctime
		}
		return items[i].seq > items[j].seq
	})
	out := make([]*model.Note, 0, len(items))
	for _, item := range items {
		clone := *item.note
		out = append(out, &clone)
	}
	return out, nil
}

func (s *MemNoteStore) Delete(ctx context.Context, userID, noteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.notes[noteID]
	if !ok || item.note.UserID != userID {
		return appErr.ErrNotFound
	}
	delete(s.notes, noteID)
	return nil
}
