package services

import (
	"context"
	"fmt"
	"html"

	"github.com/bistrobuzz/bistro/pkg/mail"
)

// ContactInput is a message from the public contact form.
type ContactInput struct {
	Name    string `json:"name" validate:"required,oneline,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,oneline,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

type ContactService struct {
	sender mail.Sender
	from   string
	to     string
}

// NewContactService sends form messages from `from` to the `to` inbox.
func NewContactService(sender mail.Sender, from, to string) *ContactService {
	return &ContactService{sender: sender, from: from, to: to}
}

// Send forwards in to the restaurant inbox. Replies go to the visitor.
func (s *ContactService) Send(ctx context.Context, in ContactInput) (mail.Receipt, error) {
	return s.sender.Send(ctx, mail.Message{
		From:     s.from,
		FromName: "From " + in.Email,
		To:       []string{s.to},
		ReplyTo:  in.Email,
		Subject:  fmt.Sprintf("%s - %s - %s", in.Subject, in.Name, in.Email),
		Text:     in.Message,
		HTML:     "<div>" + html.EscapeString(in.Message) + "</div>",
	})
}
