package handlers

import (
	"net/http"

	"github.com/baharkarakas/blog-api/internal/api/httpx"
	"github.com/baharkarakas/blog-api/internal/middleware"
	"github.com/baharkarakas/blog-api/internal/services"
)

type UserHandler struct {
	Svc *services.UserService
}

func NewUserHandler(svc *services.UserService) *UserHandler {
	return &UserHandler{Svc: svc}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if err := httpx.DecodeJSON(w, r, &in); err != nil {
		writeBadBody(w, err)
		return
	}
	u, err := h.Svc.Register(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, u)
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())
	u, err := h.Svc.Get(r.Context(), uid)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}
