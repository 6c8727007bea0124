package email

import (
	"context"
	"fmt"
	c "remindme/internal/core/domain/common"
	"sync"
	"time"
)

type FakeSender struct {
	Configured  bool
	ReturnError bool
	Sent        []Message
	lock        sync.Mutex
}

func NewFakeSender(configured bool) *FakeSender {
	return &FakeSender{Configured: configured}
}

func (s *FakeSender) IsConfigured() bool {
	return s.Configured
}

func (s *FakeSender) Send(ctx context.Context, msg Message) error {
	if !s.Configured {
		return ErrNotConfigured
	}
	if s.ReturnError {
		return fmt.Errorf("could not send email to %s", msg.To)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, msg)
	return nil
}

func (s *FakeSender) SentCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.Sent)
}

func (s *FakeSender) LastSent() Message {
	s.lock.Lock()
	defer s.lock.Unlock()
	l := len(s.Sent)
	if l == 0 {
		panic("Sent count is 0.")
	}
	return s.Sent[l-1]
}

type FakeComposer struct{}

func NewFakeComposer() *FakeComposer {
	return &FakeComposer{}
}

func (f *FakeComposer) ComposePasswordReset(params PasswordResetParams) (Message, error) {
	return Message{
		To:      params.To,
		Subject: "password reset",
		HTML:    params.ResetURL,
		Text:    params.ResetURL,
	}, nil
}

func (f *FakeComposer) ComposeTest(to c.Email, at time.Time) (Message, error) {
	return Message{To: to, Subject: "test", Text: at.String()}, nil
}
