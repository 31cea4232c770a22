package controllers

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/plantnet-dev/plantnet/app/models"
	"github.com/plantnet-dev/plantnet/app/services"
	"github.com/plantnet-dev/plantnet/pkg/bind"
	"github.com/plantnet-dev/plantnet/pkg/logger"
	"github.com/plantnet-dev/plantnet/pkg/middleware"
	"github.com/plantnet-dev/plantnet/pkg/response"
	"github.com/plantnet-dev/plantnet/pkg/storage"
)

type PlantController struct {
	catalog *services.CatalogService
}

func NewPlantController(catalog *services.CatalogService) *PlantController {
	return &PlantController{catalog: catalog}
}

// Index is the public catalog listing.
func (c *PlantController) Index(w http.ResponseWriter, r *http.Request) {
	plants, err := c.catalog.List(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("plants: list", "error", err)
		response.InternalError(w)
		return
	}
	response.OK(w, plants)
}

// Show returns one plant by id.
func (c *PlantController) Show(w http.ResponseWriter, r *http.Request) {
	p, err := c.catalog.Get(r.Context(), chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, services.ErrInvalidID):
		response.Message(w, http.StatusBadRequest, "invalid plant id")
		return
	case errors.Is(err, services.ErrNotFound):
		response.NotFound(w)
		return
	case err != nil:
		logger.WithCtx(r.Context()).Error("plants: show", "error", err)
		response.InternalError(w)
		return
	}
	response.OK(w, p)
}

type plantInput struct {
	Name        string  `json:"name"        validate:"required"`
	Category    string  `json:"category"    validate:"nullable"`
	Description string  `json:"description" validate:"nullable"`
	Image       string  `json:"image"       validate:"nullable,url"`
	Price       float64 `json:"price"       validate:"required,numeric,gt=0"`
	Quantity    int     `json:"quantity"    validate:"required,integer,gte=0"`
	SellerName  string  `json:"sellerName"  validate:"nullable"`
}

// Create adds a plant to the authed seller's inventory. The seller identity
// comes from the session, never from the body.
func (c *PlantController) Create(w http.ResponseWriter, r *http.Request) {
	email, _ := middleware.EmailFromCtx(r)

	var in plantInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Message(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	id, err := c.catalog.Create(r.Context(), models.Plant{
		Name:        in.Name,
		Category:    in.Category,
		Description: in.Description,
		Image:       in.Image,
		Price:       in.Price,
		Quantity:    in.Quantity,
		Seller:      models.SellerRef{Name: in.SellerName, Email: email},
	})
	if err != nil {
		logger.WithCtx(r.Context()).Error("plants: create", "error", err)
		response.InternalError(w)
		return
	}
	response.Created(w, map[string]interface{}{"insertedId": id})
}

// SellerPlants lists the authed seller's own inventory.
func (c *PlantController) SellerPlants(w http.ResponseWriter, r *http.Request) {
	email, _ := middleware.EmailFromCtx(r)

	plants, err := c.catalog.SellerPlants(r.Context(), email)
	if err != nil {
		logger.WithCtx(r.Context()).Error("plants: seller list", "error", err)
		response.InternalError(w)
		return
	}
	response.OK(w, plants)
}

// Delete removes a plant from the catalog.
func (c *PlantController) Delete(w http.ResponseWriter, r *http.Request) {
	n, err := c.catalog.Delete(r.Context(), chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, services.ErrInvalidID):
		response.Message(w, http.StatusBadRequest, "invalid plant id")
		return
	case err != nil:
		logger.WithCtx(r.Context()).Error("plants: delete", "error", err)
		response.InternalError(w)
		return
	}
	response.OK(w, map[string]int64{"deletedCount": n})
}

type quantityInput struct {
	QuantityToUpdate int    `json:"quantityToUpdate" validate:"required,integer,gt=0"`
	Status           string `json:"status"           validate:"nullable"`
}

// AdjustQuantity moves a plant's stock counter. "increase" restores stock;
// anything else decrements, which is what checkout sends.
func (c *PlantController) AdjustQuantity(w http.ResponseWriter, r *http.Request) {
	var in quantityInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Message(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	n, err := c.catalog.AdjustQuantity(r.Context(), chi.URLParam(r, "id"), in.QuantityToUpdate, in.Status)
	switch {
	case errors.Is(err, services.ErrInvalidID):
		response.Message(w, http.StatusBadRequest, "invalid plant id")
		return
	case err != nil:
		logger.WithCtx(r.Context()).Error("plants: adjust quantity", "error", err)
		response.InternalError(w)
		return
	}
	response.OK(w, map[string]int64{"modifiedCount": n})
}

// UploadImage stores a plant photo on the configured disk and returns its URL.
func (c *PlantController) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		response.Message(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		response.Message(w, http.StatusBadRequest, "missing image file")
		return
	}
	defer file.Close()

	buf := make([]byte, 8)
	rand.Read(buf) //nolint:errcheck
	name := "plants/" + hex.EncodeToString(buf) + filepath.Ext(header.Filename)

	if err := storage.PutStream(name, file); err != nil {
		logger.WithCtx(r.Context()).Error("plants: store image", "error", err)
		response.InternalError(w)
		return
	}
	response.Created(w, map[string]string{"url": storage.URL(name)})
}
