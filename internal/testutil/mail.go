package testutil

import (
	"sync"

	appErr "github.com/hdnotes/hdnotes/internal/pkg/errors"
)

type SentMail struct {
	To      string
	Subject string
	Body    string
}

// RecorderSender captures outgoing mail instead of delivering it.
// Set Fail to simulate a delivery failure.
type RecorderSender struct {
	mu   sync.Mutex
	Fail bool
	Sent []SentMail
}

func (s *RecorderSender) Send(to, subject, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail {
		return appErr.ErrMailDelivery
	}
	s.Sent = append(s.Sent, SentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (s *RecorderSender) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Sent)
}

func (s *RecorderSender) Last() SentMail {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Sent) == 0 {
		return SentMail{}
	}
	return s.Sent[len(s.Sent)-1]
}
