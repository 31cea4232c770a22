package controllers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/plantnet-dev/plantnet/app/models"
	"github.com/plantnet-dev/plantnet/app/services"
	"github.com/plantnet-dev/plantnet/pkg/logger"
	"github.com/plantnet-dev/plantnet/pkg/response"
)

type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

type upsertUserInput struct {
	Name  string `json:"name"  validate:"nullable"`
	Image string `json:"image" validate:"nullable,url"`
}

// Upsert registers the user on first contact. Existing users get their
// stored document back; new ones get the insert result.
func (c *UserController) Upsert(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	var in upsertUserInput
	// Body is optional profile data; decode errors fall back to empty input.
	_ = decodeLoose(r, &in)

	u, created, err := c.users.Upsert(r.Context(), email, models.User{
		Name:  in.Name,
		Image: in.Image,
	})
	if err != nil {
		logger.WithCtx(r.Context()).Error("users: upsert", "error", err)
		response.InternalError(w)
		return
	}
	if created {
		response.OK(w, map[string]interface{}{"insertedId": u.ID})
		return
	}
	response.OK(w, u)
}

// RequestSeller flags the account for admin review. A duplicate request, or
// an email with no account, gets the plain-text 400 the storefront expects.
func (c *UserController) RequestSeller(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	n, err := c.users.RequestSeller(r.Context(), email)
	switch {
	case errors.Is(err, services.ErrSellerRequestPending), errors.Is(err, services.ErrNotFound):
		response.Text(w, http.StatusBadRequest,
			"You have already requested to become a seller, Wait for the admin to accept the request.")
		return
	case err != nil:
		logger.WithCtx(r.Context()).Error("users: request seller", "error", err)
		response.InternalError(w)
		return
	}
	response.OK(w, map[string]int64{"modifiedCount": n})
}

// Role reports the stored role for an email; unknown emails yield "".
func (c *UserController) Role(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	role, err := c.users.RoleFor(r.Context(), email)
	if err != nil {
		logger.WithCtx(r.Context()).Error("users: resolve role", "error", err)
		response.InternalError(w)
		return
	}
	response.OK(w, map[string]string{"role": role})
}
