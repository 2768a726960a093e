package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/cardoctor/cardoctor-api/internal/http/middleware"
	"github.com/cardoctor/cardoctor-api/internal/http/response"
	"github.com/cardoctor/cardoctor-api/internal/platform/auth"
	"github.com/cardoctor/cardoctor-api/pkg/config"
	"github.com/cardoctor/cardoctor-api/pkg/logger"
)

type AuthHandler struct {
	cfg config.AuthConfig
}

func NewAuthHandler(cfg config.AuthConfig) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

// IssueToken signs the posted identity claim and sets the session cookie.
// POST /jwt
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var claims map[string]any
	if err := json.NewDecoder(r.Body).Decode(&claims); err != nil || claims == nil {
		response.BadRequest(w, "invalid identity payload")
		return
	}
	if email, _ := claims["email"].(string); email == "" {
		response.BadRequest(w, "email is required")
		return
	}

	token, err := auth.Issue(h.cfg.JWTSecret, claims, h.cfg.TokenTTL)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to sign token", "error", err)
		response.InternalError(w, "failed to issue token")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cfg.TokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	response.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Logout clears the session cookie. The credential itself stays valid until
// its natural expiry; the server holds no session state to revoke.
// POST /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	response.JSON(w, http.StatusOK, map[string]bool{"success": true})
}
