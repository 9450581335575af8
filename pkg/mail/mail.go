// Package mail sends outbound email through a pluggable transport.
//
//	sender, _ := mail.New(mail.Config{Driver: "smtp", Host: "smtp.gmail.com", Port: "587", ...})
//	receipt, err := sender.Send(ctx, mail.Message{
//	    From:    "kitchen@bistro.test",
//	    To:      []string{"owner@bistro.test"},
//	    Subject: "Hello",
//	    Text:    "plain body",
//	    HTML:    "<p>html body</p>",
//	})
package mail

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoRecipient = errors.New("mail: no recipient")
	ErrNoSender    = errors.New("mail: no from address")
)

// Message is one outbound email. Text and HTML may both be set; the
// receiving client picks the richer part.
type Message struct {
	From     string
	FromName string
	To       []string
	ReplyTo  string
	Subject  string
	Text     string
	HTML     string
}

func (m Message) validate() error {
	if strings.TrimSpace(m.From) == "" {
		return ErrNoSender
	}
	if len(m.To) == 0 {
		return ErrNoRecipient
	}
	return nil
}

// Receipt identifies a message accepted by the transport.
type Receipt struct {
	MessageID string `json:"messageId"`
}

// Sender delivers a Message.
type Sender interface {
	Send(ctx context.Context, m Message) (Receipt, error)
}

// Config selects and configures a transport.
type Config struct {
	Driver   string // smtp | sendgrid
	Host     string
	Port     string
	Username string
	Password string
	APIKey   string
}

// New builds the Sender named by cfg.Driver.
func New(cfg Config) (Sender, error) {
	switch cfg.Driver {
	case "", "smtp":
		return NewSMTP(SMTPConfig{
			Host:     cfg.Host,
			Port:     cfg.Port,
			Username: cfg.Username,
			Password: cfg.Password,
		}), nil
	case "sendgrid":
		if cfg.APIKey == "" {
			return nil, errors.New("mail: SENDGRID_API_KEY not configured")
		}
		return NewSendGrid(cfg.APIKey, ""), nil
	default:
		return nil, fmt.Errorf("mail: unsupported driver %q", cfg.Driver)
	}
}
