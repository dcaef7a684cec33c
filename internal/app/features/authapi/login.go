// internal/app/features/authapi/login.go
package authapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	userstore "github.com/dalemusser/fundops/internal/app/store/users"
	"github.com/dalemusser/fundops/internal/app/system/auth"
	"github.com/dalemusser/fundops/internal/app/system/httpjson"
	"github.com/dalemusser/fundops/internal/app/system/timeouts"
	"github.com/dalemusser/fundops/internal/domain/models"
	"go.uber.org/zap"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// HandleLogin handles POST /auth/login. The username field also accepts an
// email address. Bad credentials and deactivated accounts both come back as
// a generic 401 so the response does not leak which part was wrong.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.lookup(ctx, strings.TrimSpace(req.Username))
	if errors.Is(err, userstore.ErrNotFound) {
		httpjson.Error(w, http.StatusUnauthorized, "incorrect username or password")
		return
	}
	if err != nil {
		h.Log.Error("login lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "login failed")
		return
	}

	if !u.IsActive || !auth.CheckPassword(u.HashedPassword, req.Password) {
		httpjson.Error(w, http.StatusUnauthorized, "incorrect username or password")
		return
	}

	token, err := h.Tokens.Issue(u)
	if err != nil {
		h.Log.Error("failed to issue token", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "login failed")
		return
	}

	httpjson.Write(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (h *Handler) lookup(ctx context.Context, username string) (models.User, error) {
	if strings.Contains(username, "@") {
		return h.Users.GetByEmail(ctx, username)
	}
	return h.Users.GetByUsername(ctx, username)
}
