package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	netmail "net/mail"
	"net/smtp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SMTPConfig holds connection credentials.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
}

// SMTPMailer delivers over SMTP. Port 465 uses implicit TLS, anything else
// upgrades with STARTTLS when the server offers it.
type SMTPMailer struct {
	cfg     SMTPConfig
	timeout time.Duration
}

func NewSMTP(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, timeout: 15 * time.Second}
}

func (s *SMTPMailer) Send(ctx context.Context, m Message) (Receipt, error) {
	if err := m.validate(); err != nil {
		return Receipt{}, err
	}
	if s.cfg.Username == "" {
		return Receipt{}, fmt.Errorf("mail: EMAIL_USERNAME not configured")
	}

	id := messageID(s.cfg.Host)
	raw := buildRaw(m, id, time.Now())

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.deliver(ctx, m, raw); err != nil {
		return Receipt{}, err
	}
	return Receipt{MessageID: id}, nil
}

func (s *SMTPMailer) deliver(ctx context.Context, m Message, raw []byte) error {
	addr := net.JoinHostPort(s.cfg.Host, s.cfg.Port)
	tlsCfg := &tls.Config{ServerName: s.cfg.Host}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("mail: dial: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	if s.cfg.Port == "465" {
		conn = tls.Client(conn, tlsCfg)
	}

	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("mail: handshake: %w", err)
	}
	defer client.Close()

	if s.cfg.Port != "465" {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(tlsCfg); err != nil {
				return fmt.Errorf("mail: starttls: %w", err)
			}
		}
	}

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("mail: auth: %w", err)
	}
	if err := client.Mail(m.From); err != nil {
		return err
	}
	for _, rcpt := range m.To {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(raw); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func messageID(host string) string {
	if host == "" {
		host = "localhost"
	}
	return fmt.Sprintf("<%s@%s>", uuid.NewString(), host)
}

// buildRaw renders m as an RFC 5322 message. When both parts are present the
// body is multipart/alternative.
func buildRaw(m Message, id string, now time.Time) []byte {
	from := oneLine(m.From)
	if m.FromName != "" {
		from = (&netmail.Address{Name: oneLine(m.FromName), Address: from}).String()
	}
	to := make([]string, len(m.To))
	for i, addr := range m.To {
		to[i] = oneLine(addr)
	}

	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + strings.Join(to, ", ") + "\r\n")
	if m.ReplyTo != "" {
		b.WriteString("Reply-To: " + oneLine(m.ReplyTo) + "\r\n")
	}
	b.WriteString("Subject: " + mime.QEncoding.Encode("UTF-8", oneLine(m.Subject)) + "\r\n")
	b.WriteString("Date: " + now.Format(time.RFC1123Z) + "\r\n")
	b.WriteString("Message-ID: " + id + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")

	switch {
	case m.Text != "" && m.HTML != "":
		boundary := strings.ReplaceAll(uuid.NewString(), "-", "")
		b.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary))
		writePart(&b, boundary, "text/plain", m.Text)
		writePart(&b, boundary, "text/html", m.HTML)
		b.WriteString("--" + boundary + "--\r\n")
	case m.HTML != "":
		b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
		b.WriteString(m.HTML)
	default:
		b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
		b.WriteString(m.Text)
	}
	return []byte(b.String())
}

func writePart(b *strings.Builder, boundary, contentType, body string) {
	b.WriteString("--" + boundary + "\r\n")
	b.WriteString(fmt.Sprintf("Content-Type: %s; charset=\"UTF-8\"\r\n\r\n", contentType))
	b.WriteString(body + "\r\n")
}

// oneLine folds CR and LF to spaces so a value cannot open a new header.
func oneLine(s string) string {
	return strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(s)
}
