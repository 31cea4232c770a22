// Package routes declares the HTTP surface and its role gates.
package routes

import (
	"net/http"

	"github.com/plantnet-dev/plantnet/app/controllers"
	"github.com/plantnet-dev/plantnet/app/models"
	"github.com/plantnet-dev/plantnet/pkg/metrics"
	"github.com/plantnet-dev/plantnet/pkg/middleware"
	"github.com/plantnet-dev/plantnet/pkg/rbac"
	"github.com/plantnet-dev/plantnet/pkg/response"
	"github.com/plantnet-dev/plantnet/pkg/router"
)

// Controllers bundles everything Register needs.
type Controllers struct {
	Auth   *controllers.AuthController
	Users  *controllers.UserController
	Plants *controllers.PlantController
	Orders *controllers.OrderController
	Admin  *controllers.AdminController

	// Roles resolves the live role for gated routes.
	Roles rbac.RoleResolver
}

// Register mounts the full API on r.
func Register(r *router.Router, c Controllers) {
	seller := rbac.Require(c.Roles, models.RoleSeller)
	admin := rbac.Require(c.Roles, models.RoleAdmin)

	r.Get("/", "home", func(w http.ResponseWriter, _ *http.Request) {
		response.OK(w, map[string]string{"message": "Hello from plantNet Server.."})
	})
	r.Get("/metrics", "metrics", metrics.Handler())

	// Session
	r.Post("/jwt", "auth.issue", c.Auth.IssueToken)
	r.Get("/logout", "auth.logout", c.Auth.Logout)

	// Public catalog
	r.Get("/plants", "plants.index", c.Plants.Index)
	r.Get("/plants/{id}", "plants.show", c.Plants.Show)

	// Users
	r.Post("/users/{email}", "users.upsert", c.Users.Upsert)
	r.Get("/users/role/{email}", "users.role", c.Users.Role)

	// Any authenticated user
	authed := r.Group("", middleware.VerifyToken)
	authed.Post("/orders", "orders.create", c.Orders.Create)
	authed.Get("/customer-orders/{email}", "orders.customer", c.Orders.CustomerOrders)
	authed.Delete("/orders/delete/{id}", "orders.cancel", c.Orders.Cancel)
	authed.Patch("/plants/quantity/{id}", "plants.quantity", c.Plants.AdjustQuantity)
	authed.Patch("/users/{email}", "users.requestSeller", c.Users.RequestSeller)

	// Seller only
	sellers := r.Group("", middleware.VerifyToken, seller)
	sellers.Post("/plants", "plants.create", c.Plants.Create)
	sellers.Post("/plants/image", "plants.upload", c.Plants.UploadImage)
	sellers.Get("/seller-plants", "plants.mine", c.Plants.SellerPlants)
	sellers.Delete("/plants/{id}", "plants.delete", c.Plants.Delete)
	sellers.Get("/seller-orders/{email}", "orders.seller", c.Orders.SellerOrders)
	sellers.Patch("/orders/{id}", "orders.status", c.Orders.SetStatus)

	// Admin only
	admins := r.Group("", middleware.VerifyToken, admin)
	admins.Get("/all-users/{email}", "admin.users", c.Admin.AllUsers)
	admins.Patch("/user/role/{email}", "admin.role", c.Admin.UpdateRole)
	admins.Get("/admin-stat", "admin.stats", c.Admin.Stats)
}
