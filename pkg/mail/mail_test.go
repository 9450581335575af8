package mail

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contactMessage() Message {
	return Message{
		From:    "kitchen@bistro.test",
		To:      []string{"owner@bistro.test"},
		ReplyTo: "guest@example.com",
		Subject: "Booking - Ann - guest@example.com",
		Text:    "table for two",
		HTML:    "<p>table for two</p>",
	}
}

func TestBuildRaw_Multipart(t *testing.T) {
	raw := string(buildRaw(contactMessage(), "<id-1@smtp.test>", time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)))

	assert.Contains(t, raw, "From: kitchen@bistro.test\r\n")
	assert.Contains(t, raw, "To: owner@bistro.test\r\n")
	assert.Contains(t, raw, "Reply-To: guest@example.com\r\n")
	assert.Contains(t, raw, "Subject: Booking - Ann - guest@example.com\r\n")
	assert.Contains(t, raw, "Message-ID: <id-1@smtp.test>\r\n")
	assert.Contains(t, raw, "Content-Type: multipart/alternative;")
	assert.Contains(t, raw, "Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\ntable for two")
	assert.Contains(t, raw, "Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n<p>table for two</p>")
}

func TestBuildRaw_SinglePart(t *testing.T) {
	m := contactMessage()
	m.HTML = ""
	m.ReplyTo = ""
	m.FromName = "Bistro"
	raw := string(buildRaw(m, "<x@y>", time.Now()))

	assert.Contains(t, raw, "From: \"Bistro\" <kitchen@bistro.test>\r\n")
	assert.NotContains(t, raw, "Reply-To:")
	assert.NotContains(t, raw, "multipart")
	assert.True(t, strings.HasSuffix(raw, "\r\n\r\ntable for two"))
}

func TestBuildRaw_HeaderValuesStayOnOneLine(t *testing.T) {
	m := contactMessage()
	m.Subject = "hi\r\nBcc: x@evil.test\r\nX-Injected: 1"
	m.FromName = "Ann\nX-Other: 2"
	m.ReplyTo = "ann@example.com\r\nCc: y@evil.test"
	raw := string(buildRaw(m, "<x@y>", time.Now()))

	header, _, ok := strings.Cut(raw, "\r\n\r\n")
	require.True(t, ok)
	for _, line := range strings.Split(header, "\r\n") {
		assert.NotRegexp(t, `^(Bcc|Cc|X-Injected|X-Other):`, line)
	}
	assert.Contains(t, header, "Subject: hi Bcc: x@evil.test X-Injected: 1\r\n")
	assert.Contains(t, header, "Reply-To: ann@example.com Cc: y@evil.test\r\n")
}

func TestBuildRaw_EncodesNonASCIISubject(t *testing.T) {
	m := contactMessage()
	m.Subject = "Crème brûlée"
	raw := string(buildRaw(m, "<x@y>", time.Now()))

	assert.Contains(t, raw, "Subject: =?UTF-8?q?")
	assert.NotContains(t, raw, "Crème")
}

func TestMessageID(t *testing.T) {
	id := messageID("smtp.gmail.com")
	assert.True(t, strings.HasPrefix(id, "<"))
	assert.True(t, strings.HasSuffix(id, "@smtp.gmail.com>"))
	assert.NotEqual(t, id, messageID("smtp.gmail.com"))
}

func TestSMTP_Validation(t *testing.T) {
	s := NewSMTP(SMTPConfig{Host: "localhost", Port: "2525", Username: "u"})

	m := contactMessage()
	m.To = nil
	_, err := s.Send(context.Background(), m)
	assert.ErrorIs(t, err, ErrNoRecipient)

	m = contactMessage()
	m.From = " "
	_, err = s.Send(context.Background(), m)
	assert.ErrorIs(t, err, ErrNoSender)

	_, err = NewSMTP(SMTPConfig{Host: "localhost", Port: "2525"}).Send(context.Background(), contactMessage())
	assert.ErrorContains(t, err, "EMAIL_USERNAME")
}

func TestNew(t *testing.T) {
	s, err := New(Config{Driver: "smtp", Host: "h", Port: "587"})
	require.NoError(t, err)
	assert.IsType(t, &SMTPMailer{}, s)

	s, err = New(Config{Driver: "sendgrid", APIKey: "SG.key"})
	require.NoError(t, err)
	assert.IsType(t, &SendGridMailer{}, s)

	_, err = New(Config{Driver: "sendgrid"})
	assert.Error(t, err)

	_, err = New(Config{Driver: "pigeon"})
	assert.Error(t, err)
}

func TestSendGrid_Send(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v3/mail/send", r.URL.Path)
		assert.Equal(t, "Bearer SG.key", r.Header.Get("Authorization"))
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &body))
		w.Header().Set("X-Message-Id", "sg-42")
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	receipt, err := NewSendGrid("SG.key", srv.URL).Send(context.Background(), contactMessage())
	require.NoError(t, err)
	assert.Equal(t, "sg-42", receipt.MessageID)

	assert.Equal(t, "Booking - Ann - guest@example.com", body["subject"])
	replyTo := body["reply_to"].(map[string]any)
	assert.Equal(t, "guest@example.com", replyTo["email"])
	assert.Len(t, body["content"], 2)
}

func TestSendGrid_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":[{"message":"bad key"}]}`))
	}))
	defer srv.Close()

	_, err := NewSendGrid("SG.bad", srv.URL).Send(context.Background(), contactMessage())
	assert.ErrorContains(t, err, "status=401")
}
