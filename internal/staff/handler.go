// AngelaMos | 2026
// handler.go

package staff

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
	r.Route("/staff", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(middleware.RequireRole("BUSINESS_OWNER", "SUPER_ADMIN"))

		r.Get("/", h.List)
		r.Post("/", h.Add)
		r.Delete("/{memberID}", h.Remove)
	})
}

func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	var req AddMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	member, err := h.service.AddMember(r.Context(), req)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			core.JSONError(w, core.DuplicateError("staff member"))
			return
		}
		core.JSONError(w, err)
		return
	}

	core.Created(w, ToMemberResponse(member))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.service.List(r.Context())
	if err != nil {
		core.JSONError(w, err)
		return
	}

	responses := make([]MemberResponse, 0, len(members))
	for i := range members {
		responses = append(responses, ToMemberResponse(&members[i]))
	}

	core.OK(w, responses)
}

func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	memberID, err := uuid.Parse(chi.URLParam(r, "memberID"))
	if err != nil {
		core.BadRequest(w, "invalid staff member id")
		return
	}

	if err := h.service.Remove(r.Context(), memberID); err != nil {
		core.JSONError(w, err)
		return
	}

	core.NoContent(w)
}
