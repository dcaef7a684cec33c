package roles_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	rolesfeature "github.com/dalemusser/fundops/internal/app/features/roles"
	"github.com/dalemusser/fundops/internal/app/policy/accesspolicy"
	membershipstore "github.com/dalemusser/fundops/internal/app/store/memberships"
	rolestore "github.com/dalemusser/fundops/internal/app/store/roles"
	userstore "github.com/dalemusser/fundops/internal/app/store/users"
	"github.com/dalemusser/fundops/internal/app/system/auth"
	"github.com/dalemusser/fundops/internal/app/system/indexes"
	"github.com/dalemusser/fundops/internal/domain/models"
	"github.com/dalemusser/fundops/internal/testutil"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// setupServer mounts the roles feature on a test server the way BuildHandler
// does, with an index-backed database behind it.
func setupServer(t *testing.T) (*httptest.Server, *auth.TokenManager, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	roles := rolestore.New(db)
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	policy := accesspolicy.New(membershipstore.New(db), membershipstore.NewResolver(roles))
	m := auth.NewMiddleware(tokens, userstore.New(db), policy)

	r := chi.NewRouter()
	r.Use(m.LoadIdentity)
	r.Mount("/roles", rolesfeature.Routes(rolesfeature.NewHandler(roles, zap.NewNop()), m))

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, tokens, testutil.NewFixtures(t, db)
}

func doJSON(t *testing.T, method, url, token, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func adminToken(t *testing.T, tokens *auth.TokenManager, u models.User) string {
	t.Helper()
	token, err := tokens.Issue(u)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	return token
}

func TestRoles_CreateListDelete(t *testing.T) {
	srv, tokens, fixtures := setupServer(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateSuperuser(ctx, "root", "root@example.com")
	token := adminToken(t, tokens, admin)

	resp := doJSON(t, http.MethodPost, srv.URL+"/roles", token,
		`{"name":"Deal Lead","display_name":"Deal Lead","permissions":{"view_financials":true}}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: got status %d", resp.StatusCode)
	}
	var created models.Role
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode created role: %v", err)
	}
	if created.Name != "deal lead" {
		t.Errorf("name should be folded, got %q", created.Name)
	}

	// Duplicate name, any casing, conflicts.
	resp = doJSON(t, http.MethodPost, srv.URL+"/roles", token, `{"name":"DEAL LEAD"}`)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("duplicate create: got status %d, want 409", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodGet, srv.URL+"/roles", token, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list: got status %d", resp.StatusCode)
	}
	var listed []models.Role
	if err := json.NewDecoder(resp.Body).Decode(&listed); err != nil {
		t.Fatalf("decode role list: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("list: got %d roles, want 1", len(listed))
	}

	resp = doJSON(t, http.MethodDelete, srv.URL+"/roles/"+created.ID.Hex(), token, "")
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete: got status %d, want 204", resp.StatusCode)
	}
}

func TestRoles_SystemRoleProtections(t *testing.T) {
	srv, tokens, fixtures := setupServer(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateSuperuser(ctx, "root", "root@example.com")
	token := adminToken(t, tokens, admin)
	system := fixtures.CreateRole(ctx, "cfo", true, map[string]bool{"view_financials": true})

	resp := doJSON(t, http.MethodPatch, srv.URL+"/roles/"+system.ID.Hex(), token, `{"name":"finance_chief"}`)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("rename system role: got status %d, want 403", resp.StatusCode)
	}

	// Display metadata stays editable.
	resp = doJSON(t, http.MethodPatch, srv.URL+"/roles/"+system.ID.Hex(), token, `{"display_name":"Chief Financial Officer"}`)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("update system role metadata: got status %d, want 200", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodDelete, srv.URL+"/roles/"+system.ID.Hex(), token, "")
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("delete system role: got status %d, want 403", resp.StatusCode)
	}
}

func TestRoles_DeleteInUse(t *testing.T) {
	srv, tokens, fixtures := setupServer(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateSuperuser(ctx, "root", "root@example.com")
	token := adminToken(t, tokens, admin)

	role := fixtures.CreateRole(ctx, "analyst", false, nil)
	org := fixtures.CreateOrganization(ctx, "Granite Capital")
	member := fixtures.CreateUser(ctx, "carol", "carol@example.com")
	fixtures.CreateMembership(ctx, member.ID, org.ID, role.Name, &role.ID)

	resp := doJSON(t, http.MethodDelete, srv.URL+"/roles/"+role.ID.Hex(), token, "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("delete in-use role: got status %d, want 400", resp.StatusCode)
	}
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if !strings.Contains(body.Detail, "assigned to 1 user") {
		t.Errorf("error detail should mention the assignment count, got %q", body.Detail)
	}
}

func TestRoles_MutationsRequireAdmin(t *testing.T) {
	srv, tokens, fixtures := setupServer(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "dave", "dave@example.com")
	token := adminToken(t, tokens, user)

	resp := doJSON(t, http.MethodPost, srv.URL+"/roles", token, `{"name":"sneaky"}`)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("create without admin: got status %d, want 403", resp.StatusCode)
	}

	// Reads stay open to signed-in users.
	resp = doJSON(t, http.MethodGet, srv.URL+"/roles", token, "")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("list as regular user: got status %d, want 200", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodGet, srv.URL+"/roles", "", "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("list without token: got status %d, want 401", resp.StatusCode)
	}
}
