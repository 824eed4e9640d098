package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/baharkarakas/blog-api/internal/api/httpx"
	"github.com/baharkarakas/blog-api/internal/middleware"
	"github.com/baharkarakas/blog-api/internal/services"
)

type PostHandler struct {
	Svc *services.PostService
}

func NewPostHandler(svc *services.PostService) *PostHandler {
	return &PostHandler{Svc: svc}
}

// positiveInt parses v, returning 0 for anything that is not a positive integer.
func positiveInt(v string) int {
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0
	}
	return n
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())
	var in services.CreatePostInput
	if err := httpx.DecodeJSON(w, r, &in); err != nil {
		writeBadBody(w, err)
		return
	}
	p, err := h.Svc.Create(r.Context(), uid, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, p)
}

func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := h.Svc.List(r.Context(), services.ListPostsQuery{
		Category: q.Get("category"),
		Author:   q.Get("author"),
		Page:     positiveInt(q.Get("page")),
		Limit:    positiveInt(q.Get("limit")),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.Header().Set("X-Total-Count", strconv.FormatInt(page.Total, 10))
	w.Header().Set("X-Page", strconv.Itoa(page.Page))
	w.Header().Set("X-Limit", strconv.Itoa(page.Limit))
	httpx.WriteJSON(w, http.StatusOK, page.Items)
}

func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.Svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}

func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())
	id := chi.URLParam(r, "id")
	body, readErr := httpx.ReadBody(w, r)
	// authorship first so a non-author gets 403 whatever the body holds
	if err := h.Svc.Authorize(r.Context(), uid, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	var in services.UpdatePostInput
	if readErr == nil {
		readErr = httpx.Unmarshal(body, &in)
	}
	if readErr != nil {
		writeBadBody(w, readErr)
		return
	}
	p, err := h.Svc.Update(r.Context(), uid, id, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())
	if err := h.Svc.Delete(r.Context(), uid, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "post deleted"})
}
