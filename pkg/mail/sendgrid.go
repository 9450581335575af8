package mail

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

const sendGridHost = "https://api.sendgrid.com"

// SendGridMailer delivers through the SendGrid v3 mail API.
type SendGridMailer struct {
	apiKey string
	host   string
}

// NewSendGrid returns a SendGrid transport. An empty host means the public API.
func NewSendGrid(apiKey, host string) *SendGridMailer {
	if host == "" {
		host = sendGridHost
	}
	return &SendGridMailer{apiKey: apiKey, host: host}
}

func (s *SendGridMailer) Send(ctx context.Context, m Message) (Receipt, error) {
	if err := m.validate(); err != nil {
		return Receipt{}, err
	}
	if s.apiKey == "" {
		return Receipt{}, fmt.Errorf("mail: sendgrid api key is empty")
	}

	req := sendgrid.GetRequest(s.apiKey, "/v3/mail/send", s.host)
	req.Method = "POST"
	req.Body = sgmail.GetRequestBody(s.build(m))

	resp, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return Receipt{}, fmt.Errorf("mail: sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return Receipt{}, fmt.Errorf("mail: sendgrid send failed: status=%d body=%s", resp.StatusCode, resp.Body)
	}

	id := ""
	if v := resp.Headers["X-Message-Id"]; len(v) > 0 {
		id = v[0]
	}
	return Receipt{MessageID: id}, nil
}

func (s *SendGridMailer) build(m Message) *sgmail.SGMailV3 {
	out := sgmail.NewV3Mail()
	out.SetFrom(sgmail.NewEmail(m.FromName, m.From))
	out.Subject = m.Subject

	p := sgmail.NewPersonalization()
	for _, to := range m.To {
		p.AddTos(sgmail.NewEmail("", to))
	}
	out.AddPersonalizations(p)

	if m.ReplyTo != "" {
		out.SetReplyTo(sgmail.NewEmail("", m.ReplyTo))
	}
	if m.Text != "" {
		out.AddContent(sgmail.NewContent("text/plain", m.Text))
	}
	if m.HTML != "" {
		out.AddContent(sgmail.NewContent("text/html", m.HTML))
	}
	return out
}
