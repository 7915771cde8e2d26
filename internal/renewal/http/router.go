package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/renewal/internal/renewal/domain"
	"github.com/aussiebroadwan/renewal/internal/renewal/service"
	"github.com/aussiebroadwan/renewal/internal/renewal/store"
	"github.com/aussiebroadwan/renewal/pkg/httpx"
	"github.com/aussiebroadwan/renewal/pkg/jwtx"
	"github.com/aussiebroadwan/renewal/pkg/slogx"

	_ "github.com/aussiebroadwan/renewal/api/renewal" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store               store.Store
	ContractService     *service.ContractService
	DashboardService    *service.DashboardService
	RateProvider        service.RateProvider
	InvitationService   *service.InvitationService
	OrganizationService *service.OrganizationService
	UserService         *service.UserService
	GuideService        *service.GuideService
	Scheduler           *service.NotificationScheduler

	Plans      domain.Plans
	Location   *time.Location
	Now        service.Clock
	CronSecret httpx.SecretChecker // nil rejects every batch trigger
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerContracts()
	r.registerDashboard()
	r.registerOrganizations()
	r.registerInvitations()
	r.registerUsers()
	r.registerGuides()
	r.registerCron()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Renewal Tracker API
//	@version		0.1.0
//	@description	Tracks recurring contracts and subscriptions, warns before they renew and records the savings of every cancellation.
//	@description
//	@description				Access tokens are issued by the hosted auth provider and verified against its JWKS.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/renewal
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
//	@description				Provider access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// secured verifies the caller's token, resolves the tenant and applies a
// per-user rate limit.
func (r *Router) secured(h http.HandlerFunc, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		TenantMiddleware(r.UserService, r.OrganizationService),
		httpx.RateLimitByUser(limit),
	)
}

func (r *Router) registerContracts() {
	h := &ContractsHandler{
		ContractService: r.ContractService,
		Location:        r.Location,
		Now:             r.Now,
	}

	r.Mux.Handle("GET /contracts", r.secured(h.HandleList, httpx.LenientLimit))
	r.Mux.Handle("POST /contracts", r.secured(h.HandleCreate, httpx.ModerateLimit))
	r.Mux.Handle("GET /contracts/{id}", r.secured(h.HandleGet, httpx.LenientLimit))
	r.Mux.Handle("PUT /contracts/{id}", r.secured(h.HandleUpdate, httpx.ModerateLimit))
	r.Mux.Handle("DELETE /contracts/{id}", r.secured(h.HandleDelete, httpx.ModerateLimit))
	r.Mux.Handle("POST /contracts/{id}/renew", r.secured(h.HandleRenew, httpx.ModerateLimit))
	r.Mux.Handle("POST /contracts/{id}/terminate", r.secured(h.HandleTerminate, httpx.ModerateLimit))
	r.Mux.Handle("POST /contracts/{id}/keep", r.secured(h.HandleKeep, httpx.ModerateLimit))
}

func (r *Router) registerDashboard() {
	h := &DashboardHandler{
		DashboardService: r.DashboardService,
		Location:         r.Location,
		Now:              r.Now,
	}

	r.Mux.Handle("GET /dashboard/summary", r.secured(h.ServeHTTP, httpx.LenientLimit))
	r.Mux.Handle("GET /exchange-rate", r.secured(ExchangeRateHandler(r.RateProvider), httpx.LenientLimit))
}

func (r *Router) registerOrganizations() {
	h := &OrganizationsHandler{OrganizationService: r.OrganizationService}

	r.Mux.Handle("POST /organizations", r.secured(h.HandleCreate, httpx.StrictLimit))
	r.Mux.Handle("GET /organizations", r.secured(h.HandleList, httpx.LenientLimit))
	r.Mux.Handle("GET /organizations/{id}/members", r.secured(h.HandleMembers, httpx.ModerateLimit))
}

func (r *Router) registerInvitations() {
	h := &InvitationsHandler{InvitationService: r.InvitationService}

	r.Mux.Handle("POST /invitations", r.secured(h.HandleCreate, httpx.StrictLimit))
	r.Mux.Handle("GET /invitations", r.secured(h.HandleList, httpx.ModerateLimit))
	r.Mux.Handle("DELETE /invitations/{id}", r.secured(h.HandleRevoke, httpx.ModerateLimit))
	r.Mux.Handle("POST /invitations/{token}/accept", r.secured(h.HandleAccept, httpx.StrictLimit))

	// Public preview for the accept page. Strict per-IP limit against token guessing.
	r.Mux.Handle("GET /invitations/validate/{token}",
		httpx.Chain(http.HandlerFunc(h.HandleValidate),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerUsers() {
	me := &MeHandler{UserService: r.UserService}

	r.Mux.Handle("GET /me", r.secured(me.ServeHTTP, httpx.LenientLimit))
	r.Mux.Handle("GET /plans", r.secured(PlansHandler(r.Plans), httpx.LenientLimit))
}

func (r *Router) registerGuides() {
	h := &GuidesHandler{GuideService: r.GuideService}

	r.Mux.Handle("GET /cancellation-guides", r.secured(h.HandleList, httpx.LenientLimit))
	r.Mux.Handle("GET /cancellation-guides/{slug}", r.secured(h.HandleGet, httpx.LenientLimit))
	r.Mux.Handle("PUT /cancellation-guides/{slug}", r.secured(h.HandlePut, httpx.ModerateLimit))
}

func (r *Router) registerCron() {
	h := &NotificationsHandler{Scheduler: r.Scheduler}

	// Shared secret only; the external scheduler has no user identity.
	r.Mux.Handle("POST /internal/cron/notifications",
		httpx.Chain(h,
			httpx.RequireBearerSecret(r.CronSecret),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
