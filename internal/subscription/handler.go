// AngelaMos | 2026
// handler.go

package subscription

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/somod-gif/cartwave-backend/internal/core"
	"github.com/somod-gif/cartwave-backend/internal/tenant"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/subscription", func(r chi.Router) {
		r.Use(authenticator)
		r.Get("/", h.GetSubscription)
		r.Get("/plan", h.GetPlan)
		r.Get("/plans/{name}", h.GetPlanByName)
		r.Get("/features/{feature}", h.GetFeature)
	})
}

func (h *Handler) GetPlanByName(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	plan, err := h.service.GetPlanByName(r.Context(), name)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "plan")
			return
		}
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToPlanResponse(plan))
}

func (h *Handler) GetSubscription(w http.ResponseWriter, r *http.Request) {
	sub, err := h.service.GetForCurrentStore(r.Context())
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "subscription")
			return
		}
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToSubscriptionResponse(sub))
}

func (h *Handler) GetPlan(w http.ResponseWriter, r *http.Request) {
	storeID, err := tenant.ID(r.Context())
	if err != nil {
		core.JSONError(w, err)
		return
	}

	plan, err := h.service.ResolvePlan(r.Context(), storeID)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToPlanResponse(plan))
}

func (h *Handler) GetFeature(w http.ResponseWriter, r *http.Request) {
	storeID, err := tenant.ID(r.Context())
	if err != nil {
		core.JSONError(w, err)
		return
	}

	feature := chi.URLParam(r, "feature")

	enabled, err := h.service.IsFeatureEnabled(r.Context(), storeID, feature)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, FeatureResponse{Feature: feature, Enabled: enabled})
}
