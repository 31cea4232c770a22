package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/plantnet-dev/plantnet/app/services"
	"github.com/plantnet-dev/plantnet/pkg/bind"
	"github.com/plantnet-dev/plantnet/pkg/logger"
	"github.com/plantnet-dev/plantnet/pkg/response"
)

type AdminController struct {
	users   *services.UserService
	reports *services.ReportService
}

func NewAdminController(users *services.UserService, reports *services.ReportService) *AdminController {
	return &AdminController{users: users, reports: reports}
}

// AllUsers lists every account except the admin's own.
func (c *AdminController) AllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := c.users.AllExcept(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		logger.WithCtx(r.Context()).Error("admin: list users", "error", err)
		response.InternalError(w)
		return
	}
	response.OK(w, users)
}

type roleInput struct {
	Role string `json:"role" validate:"required,in=customer,seller,admin"`
}

// UpdateRole settles a seller request or changes any account's role. The
// update also marks the account Verified.
func (c *AdminController) UpdateRole(w http.ResponseWriter, r *http.Request) {
	var in roleInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Message(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	n, err := c.users.UpdateRole(r.Context(), chi.URLParam(r, "email"), in.Role)
	if err != nil {
		logger.WithCtx(r.Context()).Error("admin: update role", "error", err)
		response.InternalError(w)
		return
	}
	response.OK(w, map[string]int64{"modifiedCount": n})
}

// Stats serves the admin dashboard aggregates.
func (c *AdminController) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.reports.AdminStats(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("admin: stats", "error", err)
		response.InternalError(w)
		return
	}
	response.OK(w, stats)
}
