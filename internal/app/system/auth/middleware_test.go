package auth_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/fundops/internal/app/policy/accesspolicy"
	membershipstore "github.com/dalemusser/fundops/internal/app/store/memberships"
	rolestore "github.com/dalemusser/fundops/internal/app/store/roles"
	userstore "github.com/dalemusser/fundops/internal/app/store/users"
	"github.com/dalemusser/fundops/internal/app/system/auth"
	"github.com/dalemusser/fundops/internal/app/system/authz"
	"github.com/dalemusser/fundops/internal/domain/models"
	"github.com/dalemusser/fundops/internal/testutil"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
)

func setupMiddleware(t *testing.T) (*auth.Middleware, *auth.TokenManager, *mongo.Database, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	policy := accesspolicy.New(membershipstore.New(db), membershipstore.NewResolver(rolestore.New(db)))
	m := auth.NewMiddleware(tokens, userstore.New(db), policy)
	return m, tokens, db, testutil.NewFixtures(t, db)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func issue(t *testing.T, tokens *auth.TokenManager, u models.User) string {
	t.Helper()
	token, err := tokens.Issue(u)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	return token
}

func TestLoadIdentity_ValidToken(t *testing.T) {
	m, tokens, _, fixtures := setupMiddleware(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "alice", "alice@example.com")

	var got *authz.Identity
	h := m.LoadIdentity(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = authz.CurrentIdentity(r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+issue(t, tokens, user))
	h.ServeHTTP(httptest.NewRecorder(), req)

	if got == nil {
		t.Fatal("identity should be loaded for a valid token")
	}
	if got.UserID != user.ID || got.Username != "alice" {
		t.Errorf("identity: got %+v", got)
	}
}

func TestLoadIdentity_BadOrMissingToken(t *testing.T) {
	m, _, _, _ := setupMiddleware(t)

	for _, header := range []string{"", "Bearer garbage", "Basic abc"} {
		var ok bool
		h := m.LoadIdentity(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok = authz.CurrentIdentity(r)
		}))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		h.ServeHTTP(httptest.NewRecorder(), req)
		if ok {
			t.Errorf("header %q should not produce an identity", header)
		}
	}
}

func TestLoadIdentity_InactiveUser(t *testing.T) {
	m, tokens, db, fixtures := setupMiddleware(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "alice", "alice@example.com")
	users := userstore.New(db)
	inactive := false
	if _, err := users.Update(ctx, user.ID, userstore.Update{IsActive: &inactive}); err != nil {
		t.Fatalf("deactivate user: %v", err)
	}

	var ok bool
	h := m.LoadIdentity(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok = authz.CurrentIdentity(r)
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+issue(t, tokens, user))
	h.ServeHTTP(httptest.NewRecorder(), req)

	if ok {
		t.Error("a deactivated user's token must not produce an identity")
	}
}

func TestRequireSignedIn(t *testing.T) {
	m, _, _, _ := setupMiddleware(t)

	h := m.RequireSignedIn(okHandler())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rec.Code)
	}
}

func TestRequireAnyRole(t *testing.T) {
	m, tokens, _, fixtures := setupMiddleware(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Org A")
	user := fixtures.CreateUser(ctx, "alice", "alice@example.com")
	fixtures.CreateMembership(ctx, user.ID, org.ID, string(authz.RoleInvestor), nil)

	h := m.LoadIdentity(m.RequireAnyRole(authz.RoleCFO)(okHandler()))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+issue(t, tokens, user))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("investor against cfo allow-list: got %d, want 403", rec.Code)
	}

	cfo := fixtures.CreateUser(ctx, "carol", "carol@example.com")
	fixtures.CreateMembership(ctx, cfo.ID, org.ID, string(authz.RoleCFO), nil)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+issue(t, tokens, cfo))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("cfo against cfo allow-list: got %d, want 200", rec.Code)
	}
}

func TestRequireOrgRole_DistinctDenials(t *testing.T) {
	m, tokens, _, fixtures := setupMiddleware(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	orgA := fixtures.CreateOrganization(ctx, "Org A")
	orgB := fixtures.CreateOrganization(ctx, "Org B")
	user := fixtures.CreateUser(ctx, "alice", "alice@example.com")
	fixtures.CreateMembership(ctx, user.ID, orgA.ID, string(authz.RoleInvestor), nil)

	router := chi.NewRouter()
	router.Use(m.LoadIdentity)
	router.With(m.RequireOrgRole("orgID", authz.RoleCFO)).
		Get("/orgs/{orgID}/funds", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

	// Member of A with the wrong role.
	req := httptest.NewRequest(http.MethodGet, "/orgs/"+orgA.ID.Hex()+"/funds", nil)
	req.Header.Set("Authorization", "Bearer "+issue(t, tokens, user))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("wrong role: got %d, want 403", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, "insufficient permission") {
		t.Errorf("wrong role body: %s", body)
	}

	// Not a member of B at all.
	req = httptest.NewRequest(http.MethodGet, "/orgs/"+orgB.ID.Hex()+"/funds", nil)
	req.Header.Set("Authorization", "Bearer "+issue(t, tokens, user))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("no membership: got %d, want 403", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, "no access to this organization") {
		t.Errorf("no membership body: %s", body)
	}
}
