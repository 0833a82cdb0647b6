package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/centsible/centsible/internal/dashboard/service"
	"github.com/centsible/centsible/internal/dashboard/store"
	"github.com/centsible/centsible/pkg/httpx"
	"github.com/centsible/centsible/pkg/slogx"

	_ "github.com/centsible/centsible/api/dashboard" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	secureCookie bool

	store            store.Store
	AuthService      *service.AuthService
	SessionService   *service.SessionService
	DashboardService *service.DashboardService
	BillsService     *service.BillsService
}

func NewRouter(buildVersion string, secureCookie bool, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		secureCookie: secureCookie,
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
	r.registerAuth()
	r.registerDashboard()
	r.registerBills()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Centsible Dashboard API
//	@version		0.1.0
//	@description	Personal-finance dashboard backend. Authenticates against the banking
//	@description	provider via the OAuth authorization-code flow and aggregates accounts,
//	@description	transactions, spending categories, and upcoming bills.
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:5000
//	@BasePath	/
//
//	@schemes	http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	sessionGate := SessionMiddleware(r.SessionService, r.store)

	// POST /api/auth/state - strict rate limit (unauthenticated write)
	stateHandler := &AuthStateHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /api/auth/state",
		httpx.Chain(stateHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// GET /api/auth/login - server-generated state + provider authorize URL
	loginHandler := &AuthLoginHandler{AuthService: r.AuthService}
	r.Mux.Handle("GET /api/auth/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /api/auth/callback - strict rate limit (authentication attempts)
	callbackHandler := &AuthCallbackHandler{
		AuthService:  r.AuthService,
		SecureCookie: r.secureCookie,
	}
	r.Mux.Handle("POST /api/auth/callback",
		httpx.Chain(callbackHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// GET /api/auth/me - authenticated, lenient rate limit by user
	meHandler := &AuthMeHandler{AuthService: r.AuthService}
	r.Mux.Handle("GET /api/auth/me",
		httpx.Chain(meHandler,
			sessionGate,
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	// POST /api/auth/logout - destroys the session; no gate so a stale cookie
	// still gets cleared
	logoutHandler := &AuthLogoutHandler{
		AuthService:  r.AuthService,
		Sessions:     r.SessionService,
		SecureCookie: r.secureCookie,
	}
	r.Mux.Handle("POST /api/auth/logout",
		httpx.Chain(logoutHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerDashboard() {
	h := &DashboardHandler{DashboardService: r.DashboardService}

	secured := httpx.Chain(h,
		SessionMiddleware(r.SessionService, r.store),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	r.Mux.Handle("GET /api/dashboard", secured)
}

func (r *Router) registerBills() {
	h := &BillsHandler{BillsService: r.BillsService}

	secured := httpx.Chain(http.HandlerFunc(h.HandleSetPaid),
		SessionMiddleware(r.SessionService, r.store),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	r.Mux.Handle("PATCH /api/bills/{id}", secured)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
