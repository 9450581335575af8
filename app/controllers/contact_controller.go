package controllers

import (
	"github.com/bistrobuzz/bistro/app/services"
	"github.com/bistrobuzz/bistro/pkg/ctx"
)

type ContactController struct {
	contact *services.ContactService
}

func NewContactController(contact *services.ContactService) *ContactController {
	return &ContactController{contact: contact}
}

// Send POST /contact
func (h *ContactController) Send(c *ctx.Context) {
	var in services.ContactInput
	if !c.BindJSON(&in) {
		return
	}

	receipt, err := h.contact.Send(c.Context(), in)
	if err != nil {
		fail(c, "send contact mail", err)
		return
	}
	c.Success(map[string]string{"message": "Email sent", "messageId": receipt.MessageID})
}
