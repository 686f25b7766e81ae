package api

import (
	"net/http"
	"time"

	"github.com/LeoR1u/ProyectoLegos/internal/api/handlers"
	"github.com/LeoR1u/ProyectoLegos/internal/api/middleware"
	"github.com/LeoR1u/ProyectoLegos/internal/metrics"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Handlers struct {
	Product *handlers.ProductHandler
	Cart    *handlers.CartHandler
	User    *handlers.UserHandler
	Order   *handlers.OrderHandler
}

type RouterConfig struct {
	Handlers       Handlers
	Sessions       *middleware.SessionMiddleware
	Health         http.Handler
	RequestTimeout time.Duration
	ServiceName    string
}

// NewRouter registers every route. Session-bound routes run inside the session
// middleware; checkout, history and tickets additionally require a login.
// Checkout and logout change state, so they only answer POST.
func NewRouter(cfg RouterConfig) http.Handler {
	h := cfg.Handlers
	withSession := cfg.Sessions.Attach

	signedIn := func(next http.HandlerFunc) http.Handler {
		return withSession(middleware.RequireLogin(next))
	}

	mux := http.NewServeMux()

	mux.Handle("GET /{$}", withSession(h.Product.Index()))
	mux.Handle("GET /api/v1/products", h.Product.ListProducts())
	mux.Handle("GET /api/v1/products/{id}", h.Product.GetProduct())

	mux.Handle("GET /cart", withSession(h.Cart.ViewCart()))
	mux.Handle("POST /add-to-cart", withSession(h.Cart.AddToCart()))
	mux.Handle("POST /update-cart", withSession(h.Cart.UpdateCart()))

	mux.Handle("POST /register", h.User.Register())
	mux.Handle("POST /login", withSession(h.User.Login()))
	mux.Handle("POST /logout", withSession(h.User.Logout()))

	mux.Handle("POST /checkout", signedIn(h.Order.Checkout()))
	mux.Handle("GET /history", signedIn(h.Order.History()))
	mux.Handle("GET /orders/{id}/ticket", signedIn(h.Order.DownloadTicket()))

	if cfg.Health != nil {
		mux.Handle("GET /health", cfg.Health)
	}

	mux.Handle("GET /metrics", metrics.Handler())
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// metrics reads r.Pattern, which the mux sets on the request it was given
	var handler http.Handler = metrics.Middleware(mux)

	if cfg.RequestTimeout > 0 {
		handler = http.TimeoutHandler(handler, cfg.RequestTimeout, `{"success":false,"error":{"code":"TIMEOUT","message":"Request timed out"}}`)
	}

	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, cfg.ServiceName)

	return handler
}
