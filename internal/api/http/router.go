package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/hydrous-ai/hydrous/internal/api/service"
	"github.com/hydrous-ai/hydrous/internal/api/store"
	"github.com/hydrous-ai/hydrous/internal/api/store/kv"
	"github.com/hydrous-ai/hydrous/pkg/httpx"
	"github.com/hydrous-ai/hydrous/pkg/slogx"

	"github.com/rs/cors"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store      store.Store
	revocation kv.KV

	AuthService         *service.AuthService
	ConversationService *service.ConversationService
	DocumentService     *service.DocumentService
}

func NewRouter(
	buildVersion string,
	allowedOrigins []string,
	st store.Store,
	revocation kv.KV,
	auth *service.AuthService,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		revocation:   revocation,
		AuthService:  auth,
		logger:       logger,
	}

	// Credentials mode stays off: auth rides in the Authorization header,
	// and a wildcard origin with credentials is rejected by browsers.
	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	// Order matters: logging wraps everything, CORS answers preflights
	// before the gate sees them, the gate rejects before any handler runs.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		corsMiddleware.Handler,
		AuthGate(auth),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerConversations()
	r.registerDocuments()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	registerHandler := &RegisterHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /api/auth/register",
		httpx.Chain(registerHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	loginHandler := &LoginHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /api/auth/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	logoutHandler := &LogoutHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /api/auth/logout",
		httpx.Chain(logoutHandler,
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	logoutAllHandler := &LogoutAllHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /api/auth/logout-all",
		httpx.Chain(logoutAllHandler,
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("GET /api/auth/me",
		httpx.Chain(MeHandler(),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerConversations() {
	h := &ConversationsHandler{ConversationService: r.ConversationService}

	r.Mux.Handle("POST /api/conversations",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /api/conversations",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /api/conversations/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("DELETE /api/conversations/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerDocuments() {
	h := &DocumentsHandler{DocumentService: r.DocumentService}

	r.Mux.Handle("POST /api/conversations/{id}/documents",
		httpx.Chain(http.HandlerFunc(h.HandleUpload),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /api/conversations/{id}/documents",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /api/documents/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDownload),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /alb-health", ALBHealthHandler())
	r.Mux.Handle("GET /health", ALBHealthHandler())

	r.Mux.Handle("GET /api/health",
		httpx.Chain(HealthHandler(r.startTime, r.buildVersion, r.store, r.revocation),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	dbStatus := &DBStatusHandler{Store: r.store}
	r.Mux.Handle("GET /api/diagnostic/db-status",
		httpx.Chain(dbStatus,
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}
