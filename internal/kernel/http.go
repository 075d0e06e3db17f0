package kernel

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/shashiranjanraj/pizzeria/app/routes"
	"github.com/shashiranjanraj/pizzeria/config"
	"github.com/shashiranjanraj/pizzeria/pkg/metrics"
	"github.com/shashiranjanraj/pizzeria/pkg/middleware"
	"github.com/shashiranjanraj/pizzeria/pkg/reqid"
	"github.com/shashiranjanraj/pizzeria/pkg/router"
)

// Router mounts the global middleware stack and every route.
//
// Middleware order, outermost first:
//  1. metrics      total latency including recovery
//  2. request id   set before anything logs
//  3. Recovery     a panic becomes a 500
//  4. Logger       request-scoped logger with request_id
//  5. CORS
//  6. StripSlashes "/orders/user/orders/1/" routes like "/orders/user/orders/1"
func (k *Kernel) Router() *router.Router {
	r := router.New()
	r.Use(metrics.Middleware())
	r.Use(reqid.Middleware())
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.APICORSOptions(config.CORSOrigins())))
	r.Use(chimw.StripSlashes)

	r.HandleFunc("/metrics", metrics.Handler())

	routes.RegisterAPI(r, routes.Deps{
		Orders:   k.Orders,
		Auth:     k.Auth,
		Verifier: k.Tokens,
	})
	return r
}

func (k *Kernel) Handler() http.Handler {
	return k.Router().Handler()
}
