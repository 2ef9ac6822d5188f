package app

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heartmarshall/megamarket-backend/internal/config"
	"github.com/heartmarshall/megamarket-backend/internal/transport/middleware"
	"github.com/heartmarshall/megamarket-backend/internal/transport/rest"
)

// NewHTTPHandler assembles the router and the middleware stack. The returned
// stop function releases background resources held by the middleware.
func NewHTTPHandler(
	cfg *config.Config,
	cat *Catalog,
	logger *slog.Logger,
	reg prometheus.Registerer,
	gatherer prometheus.Gatherer,
) (http.Handler, func()) {
	routes := rest.RouterConfig{
		Catalog: rest.NewCatalogHandler(cat.Service, cfg.Server.MaxBodyBytes, logger),
		Health:  rest.NewHealthHandler(cat.Pool, cat.Migrator, BuildVersion()),
	}
	if !cfg.Metrics.Disabled {
		routes.Metrics = promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
		routes.MetricsPath = cfg.Metrics.Path
	}

	router := rest.NewRouter(routes)
	if !cfg.Metrics.Disabled {
		router.Use(mux.MiddlewareFunc(middleware.Metrics(middleware.NewHTTPMetrics(reg))))
	}

	mws := []middleware.Middleware{
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
	}

	stop := func() {}
	if !cfg.RateLimit.Disabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit)
		mws = append(mws, limiter.Limit())
		stop = limiter.Stop
	}

	return middleware.Chain(mws...)(router), stop
}
