// internal/app/system/authz/identity.go
package authz

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Identity is the authenticated caller as seen by guards and handlers.
// It is placed into the request context by the auth middleware after token
// verification; everything downstream treats it as read-only.
type Identity struct {
	UserID      primitive.ObjectID
	Username    string
	Email       string
	IsSuperuser bool // platform admin: bypasses all org-scoped checks
}

type ctxKey string

const identityKey ctxKey = "currentIdentity"

// WithIdentity returns a request whose context carries id.
func WithIdentity(r *http.Request, id *Identity) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), identityKey, id))
}

// CurrentIdentity returns the authenticated identity and a found flag.
// ok=false means the request is unauthenticated; callers must treat that as
// 401 territory, never as an anonymous allow.
func CurrentIdentity(r *http.Request) (*Identity, bool) {
	id, ok := r.Context().Value(identityKey).(*Identity)
	if !ok || id == nil || id.UserID == primitive.NilObjectID {
		return nil, false
	}
	return id, true
}
