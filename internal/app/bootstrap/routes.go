// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	authfeature "github.com/dalemusser/fundops/internal/app/features/authapi"
	fundsfeature "github.com/dalemusser/fundops/internal/app/features/funds"
	healthfeature "github.com/dalemusser/fundops/internal/app/features/health"
	investorfundsfeature "github.com/dalemusser/fundops/internal/app/features/investorfunds"
	investorsfeature "github.com/dalemusser/fundops/internal/app/features/investors"
	organizationsfeature "github.com/dalemusser/fundops/internal/app/features/organizations"
	propertiesfeature "github.com/dalemusser/fundops/internal/app/features/properties"
	rolesfeature "github.com/dalemusser/fundops/internal/app/features/roles"
	userorgsfeature "github.com/dalemusser/fundops/internal/app/features/userorgs"
	usersfeature "github.com/dalemusser/fundops/internal/app/features/users"
	"github.com/dalemusser/fundops/internal/app/policy/accesspolicy"
	fundstore "github.com/dalemusser/fundops/internal/app/store/funds"
	investorfundstore "github.com/dalemusser/fundops/internal/app/store/investorfunds"
	investorstore "github.com/dalemusser/fundops/internal/app/store/investors"
	membershipstore "github.com/dalemusser/fundops/internal/app/store/memberships"
	orgstore "github.com/dalemusser/fundops/internal/app/store/organizations"
	propertystore "github.com/dalemusser/fundops/internal/app/store/properties"
	rolestore "github.com/dalemusser/fundops/internal/app/store/roles"
	userstore "github.com/dalemusser/fundops/internal/app/store/users"
	"github.com/dalemusser/fundops/internal/app/system/auth"
	"github.com/dalemusser/fundops/internal/app/system/authz"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. FundOps builds the store layer once,
// wires the access policy and bearer-token middleware, and mounts the JSON
// feature routers.
//
// Every request passes through LoadIdentity, which resolves the bearer
// token (if any) into the current user; the per-feature routers decide what
// that identity is allowed to do.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	// Stores
	users := userstore.New(db)
	orgs := orgstore.New(db)
	roles := rolestore.New(db)
	memberships := membershipstore.New(db)
	funds := fundstore.New(db)
	investors := investorstore.New(db)
	properties := propertystore.New(db)
	links := investorfundstore.New(db)

	// Authorization: membership resolver + access policy + token middleware.
	resolver := membershipstore.NewResolver(roles)
	policy := accesspolicy.New(memberships, resolver)
	tokens := auth.NewTokenManager(appCfg.TokenSecret, appCfg.TokenExpiry)
	m := auth.NewMiddleware(tokens, users, policy)

	r := chi.NewRouter()

	// Global auth middleware: loads the bearer-token identity into context
	// if present. Routes that need authentication enforce it themselves.
	r.Use(m.LoadIdentity)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Authentication (register, login, current user)
	authHandler := authfeature.NewHandler(users, tokens, logger)
	r.Mount("/auth", authfeature.Routes(authHandler, m))

	// Role catalog
	rolesHandler := rolesfeature.NewHandler(roles, logger)
	r.Mount("/roles", rolesfeature.Routes(rolesHandler, m))

	// User administration
	usersHandler := usersfeature.NewHandler(users, logger)
	r.Mount("/users", usersfeature.Routes(usersHandler, m))

	// Organizations and per-organization resources. Deeper mounts are
	// registered alongside the collection mount; chi routes each request to
	// the most specific match.
	orgsHandler := organizationsfeature.NewHandler(orgs, logger)
	r.Mount("/organizations", organizationsfeature.Routes(orgsHandler, m))

	userorgsHandler := userorgsfeature.NewHandler(memberships, roles, resolver, logger)
	r.Mount("/organizations/{orgID}/members", userorgsfeature.Routes(userorgsHandler, m))

	fundsHandler := fundsfeature.NewHandler(funds, logger)
	r.Mount("/organizations/{orgID}/funds", fundsfeature.Routes(fundsHandler, m))

	investorsHandler := investorsfeature.NewHandler(investors, logger)
	r.Mount("/organizations/{orgID}/investors", investorsfeature.Routes(investorsHandler, m))

	propertiesHandler := propertiesfeature.NewHandler(properties, funds, logger)
	r.Mount("/organizations/{orgID}/funds/{fundID}/properties", propertiesfeature.Routes(propertiesHandler, m))

	linksHandler := investorfundsfeature.NewHandler(links, funds, logger)
	r.Mount("/organizations/{orgID}/funds/{fundID}/investors", investorfundsfeature.Routes(linksHandler, m))

	// The caller's own memberships, resolved to canonical role views.
	r.Group(func(pr chi.Router) {
		pr.Use(m.RequireSignedIn)
		pr.Get("/me/organizations", userorgsHandler.ServeMine)
	})

	// Admin view of any user's memberships.
	r.Group(func(pr chi.Router) {
		pr.Use(m.RequireSignedIn)
		pr.Use(m.RequireAnyRole(authz.RoleAdmin))
		pr.Get("/users/{id}/organizations", userorgsHandler.ServeForUser)
	})

	return r, nil
}
