package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/eventcart/internal/devserver/service"
	"github.com/aussiebroadwan/eventcart/internal/devserver/store"
	"github.com/aussiebroadwan/eventcart/pkg/httpx"
	"github.com/aussiebroadwan/eventcart/pkg/slogx"

	_ "github.com/aussiebroadwan/eventcart/api/devserver" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	metrics      *Metrics

	store        *store.Store
	AuthService  *service.AuthService
	TokenService *service.TokenService
}

func NewRouter(st *store.Store, buildVersion string, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		metrics:      NewMetrics(),
		store:        st,
	}

	// Metrics must sit directly in front of the mux to see r.Pattern.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		r.metrics.Middleware(),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerEvents()
	r.registerCart()
	r.registerOrders()
	r.registerWishlist()
	r.registerAdmin()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			EventCart Development Server API
//	@version		0.1.0
//	@description	In-memory EventCart backend: catalogue, cart, orders, wishlist and admin.
//	@description
//	@description				Access tokens are short-lived HS256 JWTs. Exchange an expired token at /auth/refresh-token.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/eventcart
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

// authn verifies the bearer token and rate limits per user.
func (r *Router) authn(h http.Handler, extra ...httpx.Middleware) http.Handler {
	mws := append([]httpx.Middleware{
		httpx.AuthnMiddleware(r.TokenService.Signer, r.TokenService.IsRevoked),
	}, extra...)
	mws = append(mws, httpx.RateLimitByUser(httpx.PublicLimit))
	return httpx.Chain(h, mws...)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService, TokenService: r.TokenService}

	// Credential endpoints are limited by IP + email to slow down brute force
	r.Mux.Handle("POST /auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "email"),
		),
	)
	r.Mux.Handle("POST /auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "email"),
		),
	)

	r.Mux.Handle("POST /auth/refresh-token",
		httpx.Chain(http.HandlerFunc(h.HandleRefresh),
			httpx.RateLimitByIPAndJSONField(httpx.ModerateLimit, "email"),
		),
	)
	r.Mux.Handle("POST /auth/verify-token",
		httpx.Chain(http.HandlerFunc(h.HandleVerify),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// Logout never fails, so it does not go through authn
	r.Mux.Handle("POST /auth/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerEvents() {
	h := &EventsHandler{Store: r.store}

	// Anonymous browsing is allowed; a valid token only tags the request.
	viewer := httpx.OptionalAuthn(r.TokenService.Signer, r.TokenService.IsRevoked)

	r.Mux.Handle("GET /events",
		httpx.Chain(http.HandlerFunc(h.HandleList), viewer, httpx.RateLimitByIP(httpx.PublicLimit)),
	)
	r.Mux.Handle("GET /events/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet), viewer, httpx.RateLimitByIP(httpx.PublicLimit)),
	)
}

func (r *Router) registerCart() {
	h := &CartHandler{Store: r.store}

	r.Mux.Handle("GET /cart", r.authn(http.HandlerFunc(h.HandleGet)))
	r.Mux.Handle("DELETE /cart", r.authn(http.HandlerFunc(h.HandleClear)))
	r.Mux.Handle("POST /cart/items", r.authn(http.HandlerFunc(h.HandleAddItem)))
	r.Mux.Handle("PUT /cart/items/{id}", r.authn(http.HandlerFunc(h.HandleUpdateItem)))
	r.Mux.Handle("DELETE /cart/items/{id}", r.authn(http.HandlerFunc(h.HandleRemoveItem)))
}

func (r *Router) registerOrders() {
	h := &OrdersHandler{Store: r.store, Metrics: r.metrics}

	r.Mux.Handle("POST /orders", r.authn(http.HandlerFunc(h.HandleCheckout)))
	r.Mux.Handle("GET /orders", r.authn(http.HandlerFunc(h.HandleList)))
	r.Mux.Handle("GET /orders/{id}", r.authn(http.HandlerFunc(h.HandleGet)))
}

func (r *Router) registerWishlist() {
	h := &WishlistHandler{Store: r.store}

	r.Mux.Handle("GET /users/me/wishlist", r.authn(http.HandlerFunc(h.HandleGet)))
	r.Mux.Handle("POST /users/me/wishlist", r.authn(http.HandlerFunc(h.HandleAdd)))
	r.Mux.Handle("DELETE /users/me/wishlist/{event_id}", r.authn(http.HandlerFunc(h.HandleRemove)))
}

func (r *Router) registerAdmin() {
	h := &AdminHandler{Store: r.store}

	r.Mux.Handle("GET /admin/users", r.authn(http.HandlerFunc(h.HandleListUsers), httpx.RequireAdmin))
	r.Mux.Handle("GET /admin/orders", r.authn(http.HandlerFunc(h.HandleListOrders), httpx.RequireAdmin))
	r.Mux.Handle("PUT /admin/orders/{id}/status", r.authn(http.HandlerFunc(h.HandleUpdateOrderStatus), httpx.RequireAdmin))
	r.Mux.Handle("GET /admin/analytics", r.authn(http.HandlerFunc(h.HandleAnalytics), httpx.RequireAdmin))
}

func (r *Router) registerSystem() {
	// Monitoring systems may poll frequently
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /metrics", r.metrics.Handler())
}
