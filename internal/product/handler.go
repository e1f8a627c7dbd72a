// AngelaMos | 2026
// handler.go

package product

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/somod-gif/cartwave-backend/internal/core"
	"github.com/somod-gif/cartwave-backend/internal/middleware"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/products", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(middleware.RequireAuthenticated)

		r.Get("/", h.List)
		r.Get("/{productID}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(
				"BUSINESS_OWNER", "STAFF", "SUPER_ADMIN",
			))
			r.Post("/", h.Create)
			r.Put("/{productID}", h.Update)
			r.Delete("/{productID}", h.Delete)
		})
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	created, err := h.service.Create(r.Context(), req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Created(w, ToProductResponse(created))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		core.BadRequest(w, "invalid product id")
		return
	}

	found, err := h.service.GetByID(r.Context(), productID)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToProductResponse(found))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	limit := defaultPageSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			core.BadRequest(w, "invalid limit")
			return
		}
		limit = min(parsed, maxPageSize)
	}

	offset := 0
	if raw := r.URL.Query().Get("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			core.BadRequest(w, "invalid offset")
			return
		}
		offset = parsed
	}

	products, total, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ToProductResponse(&products[i]))
	}

	core.OK(w, ListProductsResponse{Products: responses, Total: total})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		core.BadRequest(w, "invalid product id")
		return
	}

	var req UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	updated, err := h.service.Update(r.Context(), productID, req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToProductResponse(updated))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		core.BadRequest(w, "invalid product id")
		return
	}

	if err := h.service.Delete(r.Context(), productID); err != nil {
		core.JSONError(w, err)
		return
	}

	core.NoContent(w)
}
