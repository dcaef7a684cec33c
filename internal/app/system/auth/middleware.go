// internal/app/system/auth/middleware.go
package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/fundops/internal/app/policy/accesspolicy"
	userstore "github.com/dalemusser/fundops/internal/app/store/users"
	"github.com/dalemusser/fundops/internal/app/system/authz"
	"github.com/dalemusser/fundops/internal/app/system/httpjson"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Middleware wires token verification and the access guards into chi route
// groups.
type Middleware struct {
	tokens *TokenManager
	users  *userstore.Store
	policy *accesspolicy.Policy
}

func NewMiddleware(tokens *TokenManager, users *userstore.Store, policy *accesspolicy.Policy) *Middleware {
	return &Middleware{tokens: tokens, users: users, policy: policy}
}

// LoadIdentity verifies the bearer token, loads the user it names, and
// injects the identity into the request context. Requests with no token, a
// bad token, or a deactivated user continue unauthenticated; RequireSignedIn
// decides whether that matters for the route.
func (m *Middleware) LoadIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.tokens.Verify(token)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		userID, err := primitive.ObjectIDFromHex(claims.Subject)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		u, err := m.users.GetByID(r.Context(), userID)
		if err != nil {
			if !errors.Is(err, userstore.ErrNotFound) {
				zap.L().Error("identity lookup failed", zap.Error(err))
			}
			next.ServeHTTP(w, r)
			return
		}
		if !u.IsActive {
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, authz.WithIdentity(r, &authz.Identity{
			UserID:      u.ID,
			Username:    u.Username,
			Email:       u.Email,
			IsSuperuser: u.IsSuperuser,
		}))
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// RequireSignedIn rejects unauthenticated requests with 401.
func (m *Middleware) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := authz.CurrentIdentity(r); !ok {
			httpjson.Error(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAnyRole applies the global guard: the caller must be a platform
// admin, hold super_admin somewhere, or hold one of the allowed roles in
// some organization.
func (m *Middleware) RequireAnyRole(allowed ...authz.StaticRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := authz.CurrentIdentity(r)
			if !ok {
				httpjson.Error(w, http.StatusUnauthorized, "not authenticated")
				return
			}

			passed, err := m.policy.AllowAny(r.Context(), *id, allowed...)
			if err != nil {
				zap.L().Error("global access check failed", zap.Error(err))
				httpjson.Error(w, http.StatusInternalServerError, "authorization check failed")
				return
			}
			if !passed {
				httpjson.Error(w, http.StatusForbidden, "insufficient permission")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireOrgMember admits any member of the organization named by the chi
// URL parameter, whatever their role. Platform admins always pass.
func (m *Middleware) RequireOrgMember(urlParam string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := authz.CurrentIdentity(r)
			if !ok {
				httpjson.Error(w, http.StatusUnauthorized, "not authenticated")
				return
			}

			orgID, err := primitive.ObjectIDFromHex(chi.URLParam(r, urlParam))
			if err != nil {
				httpjson.Error(w, http.StatusBadRequest, "invalid organization id")
				return
			}

			switch err := m.policy.MemberOf(r.Context(), *id, orgID); {
			case err == nil:
				next.ServeHTTP(w, r)
			case errors.Is(err, accesspolicy.ErrNoOrgAccess):
				httpjson.Error(w, http.StatusForbidden, "no access to this organization")
			default:
				zap.L().Error("organization access check failed", zap.Error(err))
				httpjson.Error(w, http.StatusInternalServerError, "authorization check failed")
			}
		})
	}
}

// RequireOrgRole applies the organization-scoped guard. The organization id
// comes from the named chi URL parameter. The two denial reasons produce
// distinct 403 bodies so clients can tell "not a member" from "wrong role".
func (m *Middleware) RequireOrgRole(urlParam string, allowed ...authz.StaticRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := authz.CurrentIdentity(r)
			if !ok {
				httpjson.Error(w, http.StatusUnauthorized, "not authenticated")
				return
			}

			orgID, err := primitive.ObjectIDFromHex(chi.URLParam(r, urlParam))
			if err != nil {
				httpjson.Error(w, http.StatusBadRequest, "invalid organization id")
				return
			}

			switch err := m.policy.AllowInOrg(r.Context(), *id, orgID, allowed...); {
			case err == nil:
				next.ServeHTTP(w, r)
			case errors.Is(err, accesspolicy.ErrNoOrgAccess):
				httpjson.Error(w, http.StatusForbidden, "no access to this organization")
			case errors.Is(err, accesspolicy.ErrInsufficientRole):
				httpjson.Error(w, http.StatusForbidden, "insufficient permission")
			default:
				zap.L().Error("organization access check failed", zap.Error(err))
				httpjson.Error(w, http.StatusInternalServerError, "authorization check failed")
			}
		})
	}
}
