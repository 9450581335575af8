package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bistrobuzz/bistro/app/services"
)

func TestContactService_Send(t *testing.T) {
	sender := &fakeSender{}
	svc := services.NewContactService(sender, "site@bistro.test", "owner@bistro.test")

	receipt, err := svc.Send(context.Background(), services.ContactInput{
		Name:    "Ann",
		Email:   "ann@example.com",
		Subject: "Booking",
		Message: "Table for <two>",
	})
	require.NoError(t, err)
	assert.Equal(t, "<1@test>", receipt.MessageID)

	require.Len(t, sender.sent, 1)
	m := sender.sent[0]
	assert.Equal(t, "site@bistro.test", m.From)
	assert.Equal(t, []string{"owner@bistro.test"}, m.To)
	assert.Equal(t, "ann@example.com", m.ReplyTo)
	assert.Equal(t, "Booking - Ann - ann@example.com", m.Subject)
	assert.Equal(t, "Table for <two>", m.Text)
	assert.Equal(t, "<div>Table for &lt;two&gt;</div>", m.HTML)
}
