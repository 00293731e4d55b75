package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/cors"

	"github.com/suntowerrwa/portal/internal/portal/service"
	"github.com/suntowerrwa/portal/internal/portal/store"
	"github.com/suntowerrwa/portal/pkg/httpx"
	"github.com/suntowerrwa/portal/pkg/jwtx"
	"github.com/suntowerrwa/portal/pkg/slogx"

	_ "github.com/suntowerrwa/portal/api/portal" // Swagger docs
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
	AuthService         *service.AuthService
	AdminService        *service.AdminService
	ProfileService      *service.ProfileService
	RegistrationService *service.RegistrationService
	ProjectService      *service.ProjectService
	ExpenseService      *service.ExpenseService
	NoticeService       *service.NoticeService
	MessageService      *service.MessageService
	CommitteeService    *service.CommitteeService
	DocumentService     *service.DocumentService
	AuditService        *service.AuditService
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

	// Global middleware chain. The portal UI is served from a separate
	// origin, so CORS stays wide open; bearer auth carries the identity.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.RealIPMiddleware,
		cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
			MaxAge:         300,
		}),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerRegistrations()
	r.registerAdmin()
	r.registerProfiles()
	r.registerProjects()
	r.registerExpenses()
	r.registerNotices()
	r.registerMessages()
	r.registerCommittees()
	r.registerDocuments()
	r.registerAudit()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Sun Tower RWA Portal API
//	@version		0.1.0
//	@description	HTTP API for the Sun Tower residents' welfare association portal: registrations,
//	@description	committee projects and expenses, notices, messages, documents, and the audit trail.
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
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	// POST /login - strict rate limit by IP (password guessing)
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /refresh - moderate rate limit; the token itself is the credential
	r.Mux.Handle("POST /v1/auth/refresh",
		httpx.Chain(http.HandlerFunc(h.HandleRefresh),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// GET /session - the liveness probe clients poll every few minutes
	r.Mux.Handle("GET /v1/auth/session",
		httpx.Chain(http.HandlerFunc(h.HandleSession),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("POST /v1/auth/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("POST /v1/auth/change-password",
		httpx.Chain(http.HandlerFunc(h.HandleChangePassword),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerRegistrations() {
	h := &RegistrationsHandler{RegistrationService: r.RegistrationService}

	// POST /registrations - public signup form, strict rate limit by IP
	r.Mux.Handle("POST /v1/registrations",
		httpx.Chain(http.HandlerFunc(h.HandleSubmit),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// Queue browsing is an admin surface
	securedList := httpx.Chain(http.HandlerFunc(h.HandleList),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope("admin:read"),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
	securedGet := httpx.Chain(http.HandlerFunc(h.HandleGet),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope("admin:read"),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	r.Mux.Handle("GET /v1/registrations", securedList)
	r.Mux.Handle("GET /v1/registrations/{id}", securedGet)
}

func (r *Router) registerAdmin() {
	h := &AdminHandler{AdminService: r.AdminService}

	secure := func(next http.HandlerFunc) http.Handler {
		return httpx.Chain(next,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("admin:write"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("POST /v1/admin/approve-resident", secure(h.HandleApproveResident))
	r.Mux.Handle("POST /v1/admin/reject-resident/{id}", secure(h.HandleRejectResident))
	r.Mux.Handle("POST /v1/admin/reset-password", secure(h.HandleResetPassword))
}

func (r *Router) registerProfiles() {
	h := &ProfilesHandler{ProfileService: r.ProfileService}

	read := func(next http.HandlerFunc) http.Handler {
		return httpx.Chain(next,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("portal:read"),
			httpx.RateLimitByUser(httpx.LenientLimit),
		)
	}

	r.Mux.Handle("GET /v1/me", read(h.HandleMe))
	r.Mux.Handle("GET /v1/profiles/{id}", read(h.HandleGet))

	// The full roster exposes emails and flat numbers, so listing is an
	// admin-only view.
	r.Mux.Handle("GET /v1/profiles",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("admin:read"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// Updates only need authentication; the service decides who may touch
	// what (self-service vs admin fields).
	r.Mux.Handle("PATCH /v1/profiles/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerProjects() {
	h := &ProjectsHandler{ProjectService: r.ProjectService}

	read := func(next http.HandlerFunc) http.Handler {
		return httpx.Chain(next,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("portal:read"),
			httpx.RateLimitByUser(httpx.LenientLimit),
		)
	}
	write := func(next http.HandlerFunc) http.Handler {
		return httpx.Chain(next,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("portal:write"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("GET /v1/projects", read(h.HandleList))
	r.Mux.Handle("GET /v1/projects/{id}", read(h.HandleGet))
	r.Mux.Handle("GET /v1/projects/{id}/updates", read(h.HandleListUpdates))
	r.Mux.Handle("POST /v1/projects", write(h.HandleCreate))
	r.Mux.Handle("PATCH /v1/projects/{id}", write(h.HandleUpdate))
	r.Mux.Handle("DELETE /v1/projects/{id}", write(h.HandleDelete))
	r.Mux.Handle("POST /v1/projects/{id}/updates", write(h.HandleAddUpdate))
}

func (r *Router) registerExpenses() {
	h := &ExpensesHandler{ExpenseService: r.ExpenseService}

	r.Mux.Handle("GET /v1/expenses",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("portal:read"),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /v1/expenses",
		httpx.Chain(http.HandlerFunc(h.HandleAdd),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("portal:write"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// Approval is admin-gated at the scope level too
	r.Mux.Handle("POST /v1/expenses/{id}/approve",
		httpx.Chain(http.HandlerFunc(h.HandleApprove),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("admin:write"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerNotices() {
	h := &NoticesHandler{NoticeService: r.NoticeService}

	r.Mux.Handle("GET /v1/notices",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("portal:read"),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /v1/notices",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("portal:write"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /v1/notices/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("admin:write"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerMessages() {
	h := &MessagesHandler{MessageService: r.MessageService}

	r.Mux.Handle("GET /v1/messages",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("portal:read"),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	// Posting only needs portal:read; the message board is open to every
	// member including read-only residents.
	r.Mux.Handle("POST /v1/messages",
		httpx.Chain(http.HandlerFunc(h.HandlePost),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("portal:read"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerCommittees() {
	h := &CommitteesHandler{CommitteeService: r.CommitteeService}

	r.Mux.Handle("GET /v1/committees",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("portal:read"),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /v1/committees/{code}/board",
		httpx.Chain(http.HandlerFunc(h.HandleBoard),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("portal:read"),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("PUT /v1/committees/members",
		httpx.Chain(http.HandlerFunc(h.HandleUpsert),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("portal:write"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerDocuments() {
	h := &DocumentsHandler{DocumentService: r.DocumentService}

	r.Mux.Handle("GET /v1/documents",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("portal:read"),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /v1/documents",
		httpx.Chain(http.HandlerFunc(h.HandleUpload),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("portal:write"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /v1/documents/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("admin:write"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerAudit() {
	h := &AuditHandler{AuditService: r.AuditService}

	r.Mux.Handle("GET /v1/audit",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("admin:read"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys))
}
