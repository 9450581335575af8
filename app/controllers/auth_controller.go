package controllers

import (
	"github.com/bistrobuzz/bistro/pkg/ctx"
)

// TokenIssuer signs identity tokens.
type TokenIssuer interface {
	Issue(email string) (string, error)
}

type AuthController struct {
	tokens TokenIssuer
}

func NewAuthController(tokens TokenIssuer) *AuthController {
	return &AuthController{tokens: tokens}
}

type tokenRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Issue POST /jwt
func (h *AuthController) Issue(c *ctx.Context) {
	var in tokenRequest
	if !c.BindJSON(&in) {
		return
	}

	token, err := h.tokens.Issue(in.Email)
	if err != nil {
		c.Fail("issue token", err)
		return
	}
	c.Success(map[string]string{"token": token})
}
