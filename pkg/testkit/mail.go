package testkit

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/bistrobuzz/bistro/pkg/mail"
)

// MailMock is a testify-backed mail.Sender. NewMailMock accepts every
// message with MessageID "<test@bistro>"; tests that need a failure start
// from a zero MailMock and set their own On("Send", ...).
type MailMock struct {
	mock.Mock
}

func NewMailMock() *MailMock {
	m := &MailMock{}
	m.On("Send", mock.AnythingOfType("mail.Message")).
		Return(mail.Receipt{MessageID: "<test@bistro>"}, nil).
		Maybe()
	return m
}

func (m *MailMock) Send(_ context.Context, msg mail.Message) (mail.Receipt, error) {
	args := m.Called(msg)
	return args.Get(0).(mail.Receipt), args.Error(1)
}

// Sent returns every message passed to Send.
func (m *MailMock) Sent() []mail.Message {
	var out []mail.Message
	for _, call := range m.Calls {
		if call.Method == "Send" {
			out = append(out, call.Arguments.Get(0).(mail.Message))
		}
	}
	return out
}
