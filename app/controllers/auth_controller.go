// Package controllers wires HTTP requests to the service layer. Handlers own
// status-code mapping; business rules live in app/services.
package controllers

import (
	"net/http"

	"github.com/plantnet-dev/plantnet/pkg/auth"
	"github.com/plantnet-dev/plantnet/pkg/bind"
	"github.com/plantnet-dev/plantnet/pkg/logger"
	"github.com/plantnet-dev/plantnet/pkg/response"
)

type AuthController struct{}

func NewAuthController() *AuthController { return &AuthController{} }

type tokenInput struct {
	Email string `json:"email" validate:"required,email"`
}

// IssueToken signs a session token for the given email and sets it as the
// auth cookie. Identity proof happens upstream (the OAuth provider); this
// endpoint only mints the session.
func (c *AuthController) IssueToken(w http.ResponseWriter, r *http.Request) {
	var in tokenInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Message(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	token, err := auth.GenerateToken(in.Email)
	if err != nil {
		logger.WithCtx(r.Context()).Error("auth: sign token", "error", err)
		response.InternalError(w)
		return
	}
	auth.SetCookie(w, token)
	response.OK(w, map[string]bool{"success": true})
}

// Logout clears the auth cookie.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearCookie(w)
	response.OK(w, map[string]bool{"success": true})
}
