// internal/api/handlers/auth.go
package handlers

import (
	"net/http"
	"time"

	"github.com/baharkarakas/blog-api/internal/api/httpx"
	"github.com/baharkarakas/blog-api/internal/api/validate"
	"github.com/baharkarakas/blog-api/internal/auth"
	"github.com/baharkarakas/blog-api/internal/models"
	"github.com/baharkarakas/blog-api/internal/services"
)

type AuthHandler struct {
	TM    *auth.TokenManager
	Users *services.UserService
}

func NewAuthHandler(tm *auth.TokenManager, us *services.UserService) *AuthHandler {
	return &AuthHandler{TM: tm, Users: us}
}

type tokenResp struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"` // seconds until the access token expires
	User         *models.User `json:"user,omitempty"`
}

func newTokenResp(p auth.TokenPair, u *models.User) tokenResp {
	return tokenResp{
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		ExpiresIn:    int64(time.Until(p.ExpiresAt).Truncate(time.Second).Seconds()),
		User:         u,
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in services.LoginInput
	if err := httpx.DecodeJSON(w, r, &in); err != nil {
		writeBadBody(w, err)
		return
	}
	u, pair, err := h.Users.Login(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, newTokenResp(pair, &u))
}

type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshReq
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadBody(w, err)
		return
	}
	if fe := validate.Required("refresh_token", req.RefreshToken); fe != nil {
		writeServiceError(w, r, validate.Errs{*fe})
		return
	}
	pair, err := h.TM.Refresh(req.RefreshToken)
	if err != nil {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated", "invalid refresh token", nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, newTokenResp(pair, nil))
}
