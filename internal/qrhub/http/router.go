package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/klauspost/compress/gzhttp"

	"github.com/aussiebroadwan/qrhub/internal/qrhub/observability"
	"github.com/aussiebroadwan/qrhub/internal/qrhub/service"
	"github.com/aussiebroadwan/qrhub/internal/qrhub/store"
	"github.com/aussiebroadwan/qrhub/pkg/httpx"
	"github.com/aussiebroadwan/qrhub/pkg/jwtx"
	"github.com/aussiebroadwan/qrhub/pkg/slogx"

	_ "github.com/aussiebroadwan/qrhub/api/qrhub" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

const serviceName = "qrhub"

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	AccountService    *service.AccountService
	ProjectService    *service.ProjectService
	CustomDataService *service.CustomDataService
	Captioner         Captioner
	Metrics           *observability.Metrics // Optional: nil disables /metrics
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	allowedOrigins []string,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		cors.Handler(cors.Options{
			AllowedOrigins: allowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", slogx.RequestIDHeader},
			ExposedHeaders: []string{slogx.RequestIDHeader},
			MaxAge:         300,
		}),
		func(next http.Handler) http.Handler { return gzhttp.GzipHandler(next) },
		observability.TracingMiddleware(serviceName),
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerSystem()
	r.registerAccounts()
	r.registerSessions()
	r.registerProjects()
	r.registerTracking()
	r.registerIntegrations()

	r.Mux.Handle("GET /metrics", r.Metrics.Handler())
	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			qrhub API
//	@version		0.1.0
//	@description	Accounts, QR code projects and scan analytics.
//	@description
//	@description				Sessions are HS256 JWTs issued by /api/login2.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/qrhub
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:3001
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

// handle registers h with per-route metrics ahead of mws.
func (r *Router) handle(pattern string, h http.Handler, mws ...httpx.Middleware) {
	chain := append([]httpx.Middleware{r.Metrics.Route(pattern)}, mws...)
	r.Mux.Handle(pattern, httpx.Chain(h, chain...))
}

func (r *Router) registerSystem() {
	r.handle("GET /api/test", http.HandlerFunc(HandleTest))
	r.handle("GET /api/health", http.HandlerFunc(HandleHealth))
	r.handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}

func (r *Router) registerAccounts() {
	h := &AccountsHandler{AccountService: r.AccountService}

	r.handle("POST /api/register", http.HandlerFunc(h.HandleRegister))
	r.handle("POST /api/login", http.HandlerFunc(h.HandleLogin))
	r.handle("POST /api/verify-code", http.HandlerFunc(h.HandleVerifyCode))
	r.handle("POST /api/resend-verification", http.HandlerFunc(h.HandleResendVerification))
	r.handle("POST /api/forgot-password", http.HandlerFunc(h.HandleForgotPassword))
	r.handle("POST /api/reset-password", http.HandlerFunc(h.HandleResetPassword))
	r.handle("PUT /api/update-user", http.HandlerFunc(h.HandleUpdateUser))
	r.handle("DELETE /api/delete-account", http.HandlerFunc(h.HandleDeleteAccount))
}

func (r *Router) registerSessions() {
	h := &AccountsHandler{AccountService: r.AccountService}

	r.handle("POST /api/register2", http.HandlerFunc(h.HandleRegister2))
	r.handle("POST /api/login2", http.HandlerFunc(h.HandleLogin2))
	r.handle("DELETE /api/user/account", http.HandlerFunc(h.HandleDeleteMyAccount),
		httpx.AuthnMiddleware(r.verifier),
	)
}

func (r *Router) registerProjects() {
	h := &ProjectsHandler{ProjectService: r.ProjectService}
	authn := httpx.AuthnMiddleware(r.verifier)

	r.handle("POST /api/save-project", http.HandlerFunc(h.HandleSave), authn)
	r.handle("GET /api/get-projects", http.HandlerFunc(h.HandleList), authn)
	r.handle("GET /api/get-project/{id}", http.HandlerFunc(h.HandleGet), authn)
	r.handle("PUT /api/update-project/{id}", http.HandlerFunc(h.HandleUpdate), authn)
	r.handle("DELETE /api/delete-project/{id}", http.HandlerFunc(h.HandleDelete), authn)
	r.handle("PUT /api/update-color/{id}", http.HandlerFunc(h.HandleUpdateColors), authn)
}

func (r *Router) registerTracking() {
	h := &TrackingHandler{ProjectService: r.ProjectService}

	r.handle("GET /track/{id}", http.HandlerFunc(h.HandleTrack))
	r.handle("GET /api/get-scan-count/{id}", http.HandlerFunc(h.HandleScanCount))
	r.handle("GET /api/get-scan-analytics/{id}", http.HandlerFunc(h.HandleScanAnalytics))
}

func (r *Router) registerIntegrations() {
	customData := &CustomDataHandler{CustomDataService: r.CustomDataService}
	captions := &CaptionHandler{Captioner: r.Captioner}

	r.handle("POST /api/custom-data", http.HandlerFunc(customData.HandleFetch))
	r.handle("POST /api/caption-image", http.HandlerFunc(captions.HandleCaption))
}
