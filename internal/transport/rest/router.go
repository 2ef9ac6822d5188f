package rest

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RouterConfig lists the handlers mounted by NewRouter.
type RouterConfig struct {
	Catalog *CatalogHandler
	Health  *HealthHandler

	// Metrics serves the prometheus exposition at MetricsPath; nil disables it.
	Metrics     http.Handler
	MetricsPath string
}

// NewRouter registers every endpoint. Middleware that needs the matched
// route should be attached with Use on the returned router.
func NewRouter(cfg RouterConfig) *mux.Router {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	c := cfg.Catalog
	r.HandleFunc("/imports", c.Import).Methods(http.MethodPost)
	r.HandleFunc("/delete/{id}", c.Delete).Methods(http.MethodDelete)
	r.HandleFunc("/nodes/{id}", c.Node).Methods(http.MethodGet)
	r.HandleFunc("/nodes/{id}/recalculate", c.Recalculate).Methods(http.MethodPost)
	r.HandleFunc("/sales", c.Sales).Methods(http.MethodGet)
	r.HandleFunc("/node/{id}/statistic", c.Statistic).Methods(http.MethodGet)

	if h := cfg.Health; h != nil {
		r.HandleFunc("/live", h.Live).Methods(http.MethodGet)
		r.HandleFunc("/ready", h.Ready).Methods(http.MethodGet)
		r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	}

	if cfg.Metrics != nil && cfg.MetricsPath != "" {
		r.Handle(cfg.MetricsPath, cfg.Metrics).Methods(http.MethodGet)
	}

	return r
}
