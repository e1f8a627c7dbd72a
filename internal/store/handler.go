// AngelaMos | 2026
// handler.go

package store

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/somod-gif/cartwave-backend/internal/core"
	"github.com/somod-gif/cartwave-backend/internal/middleware"
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
	r.Route("/stores", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Use(middleware.RequireRole("BUSINESS_OWNER", "SUPER_ADMIN"))
			r.Post("/", h.Create)
			r.Put("/{storeID}", h.Update)
		})

		r.Get("/{storeID}", h.Get)
		r.Get("/slug/{slug}", h.GetBySlug)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	ownerID := middleware.GetUserID(r.Context())
	if ownerID == uuid.Nil {
		core.Unauthorized(w, "")
		return
	}

	created, err := h.service.Create(r.Context(), ownerID, req)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			core.JSONError(w, core.DuplicateError("slug"))
			return
		}
		core.JSONError(w, err)
		return
	}

	core.Created(w, ToStoreResponse(created))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	storeID, err := uuid.Parse(chi.URLParam(r, "storeID"))
	if err != nil {
		core.BadRequest(w, "invalid store id")
		return
	}

	found, err := h.service.GetByID(r.Context(), storeID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "store")
			return
		}
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToStoreResponse(found))
}

func (h *Handler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		core.BadRequest(w, "invalid store slug")
		return
	}

	found, err := h.service.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "store")
			return
		}
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToStoreResponse(found))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	storeID, err := uuid.Parse(chi.URLParam(r, "storeID"))
	if err != nil {
		core.BadRequest(w, "invalid store id")
		return
	}

	var req UpdateStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	updated, err := h.service.Update(r.Context(), storeID, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "store")
			return
		}
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToStoreResponse(updated))
}
