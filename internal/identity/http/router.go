package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/identity/internal/identity/cache"
	"github.com/aussiebroadwan/identity/internal/identity/domain"
	"github.com/aussiebroadwan/identity/internal/identity/service"
	"github.com/aussiebroadwan/identity/internal/identity/store"
	"github.com/aussiebroadwan/identity/pkg/httpx"
	"github.com/aussiebroadwan/identity/pkg/jwtx"
	"github.com/aussiebroadwan/identity/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/aussiebroadwan/identity/api/identity" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeyManager
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store    store.Store
	accounts *cache.Repository

	Gate              *service.Gate
	AccountService    *service.AccountService
	InvitationService *service.InvitationService
	BootstrapService  *service.BootstrapService

	// Gatherer backs /metrics. Nil leaves the route unregistered.
	Gatherer prometheus.Gatherer
}

func NewRouter(
	keys *jwtx.KeyManager,
	buildVersion string,
	st store.Store,
	accounts *cache.Repository,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		accounts:     accounts,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAccounts()
	r.registerAdmin()
	r.registerInvitations()
	r.registerBootstrap()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Identity Service API
//	@version		0.1.0
//	@description	Account registration with email verification, role gated sessions and invitations.
//	@description
//	@description				Session tokens are EdDSA signed JWTs and can be verified using the JWKS endpoint.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/identity
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// gated wraps h so only accounts holding one of roles reach it.
func (r *Router) gated(h http.HandlerFunc, roles ...domain.Role) http.Handler {
	return httpx.Chain(h, requireRoles(r.Gate, roles...))
}

func (r *Router) registerAccounts() {
	h := &AccountsHandler{AccountService: r.AccountService}
	members := []domain.Role{domain.RoleAdmin, domain.RoleClient}

	// Public lifecycle
	r.Mux.HandleFunc("POST /v1/accounts/signup", h.HandleSignup)
	r.Mux.HandleFunc("GET /v1/accounts/verify", h.HandleVerify)
	r.Mux.HandleFunc("POST /v1/accounts/signin", h.HandleSignin)
	r.Mux.HandleFunc("GET /v1/accounts/email/confirm", h.HandleConfirmEmail)

	// Any authenticated account
	r.Mux.Handle("GET /v1/accounts/me", r.gated(h.HandleMe))

	// Members
	r.Mux.Handle("PUT /v1/accounts/me", r.gated(h.HandleUpdateMe, members...))
	r.Mux.Handle("POST /v1/accounts/me/email", r.gated(h.HandleRequestEmailChange, members...))
	r.Mux.Handle("POST /v1/accounts/me/photo", r.gated(h.HandleStartPhotoUpload, members...))
	r.Mux.Handle("GET /v1/accounts/me/photo", r.gated(h.HandlePhoto, members...))
	r.Mux.Handle("POST /v1/accounts/refresh", r.gated(h.HandleRefresh, members...))
}

func (r *Router) registerAdmin() {
	h := &AdminHandler{AccountService: r.AccountService}

	r.Mux.Handle("GET /v1/accounts/export", r.gated(h.HandleExport, domain.RoleAdmin))
	r.Mux.Handle("GET /v1/accounts/stats", r.gated(h.HandleStats, domain.RoleAdmin))
	r.Mux.Handle("GET /v1/accounts/{username}", r.gated(h.HandleGet, domain.RoleAdmin))
	r.Mux.Handle("PUT /v1/accounts/{username}", r.gated(h.HandleUpdate, domain.RoleAdmin))
	r.Mux.Handle("DELETE /v1/accounts/{username}", r.gated(h.HandleDelete, domain.RoleAdmin))
}

func (r *Router) registerInvitations() {
	h := &InvitationsHandler{InvitationService: r.InvitationService}

	r.Mux.Handle("POST /v1/invitations", r.gated(h.HandleInvite, domain.RoleAdmin, domain.RoleClient))
	r.Mux.Handle("GET /v1/invitations", r.gated(h.HandleList, domain.RoleAdmin, domain.RoleClient))
}

func (r *Router) registerBootstrap() {
	// POST /bootstrap - one-time setup endpoint, guarded by its own token
	r.Mux.Handle("POST /v1/bootstrap", &BootstrapHandler{BootstrapService: r.BootstrapService})
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys, r.accounts))
	r.Mux.Handle("GET /.well-known/jwks.json", JWKSHandler(r.keys.KeySet))

	if r.Gatherer != nil {
		r.Mux.Handle("GET /metrics", promhttp.HandlerFor(r.Gatherer, promhttp.HandlerOpts{}))
	}
}
