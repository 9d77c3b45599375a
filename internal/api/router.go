package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nikolayk812/caja-isv/internal/common"
	"github.com/nikolayk812/caja-isv/internal/health"
	"github.com/nikolayk812/caja-isv/internal/obs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type RouterConfig struct {
	Handler *Handler
	Health  health.Handler
	Logger  zerolog.Logger
	// Metrics and Gatherer are optional; /metrics is served only with a Gatherer.
	Metrics  *obs.HTTPMetrics
	Gatherer prometheus.Gatherer
	// RequestTimeout bounds every request; zero means 30s.
	RequestTimeout time.Duration
}

// NewRouter wires the sales API routes behind the common middleware stack
// and wraps the result for OpenTelemetry propagation.
func NewRouter(cfg RouterConfig) http.Handler {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(obs.HTTPObs{Metrics: cfg.Metrics}.Middleware)
	r.Use(obs.RequestLogger{Logger: cfg.Logger}.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "Ruta no encontrada")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		common.JSONError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Método no permitido")
	})

	r.Get("/health", cfg.Health.Live)
	r.Get("/ready", cfg.Health.Ready)
	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	h := cfg.Handler
	r.Route("/api", func(a chi.Router) {
		a.Get("/clientes", h.Customers)
		a.Post("/clientes", h.CreateCustomer)
		a.Get("/productos", h.Products)
		a.Post("/productos", h.CreateProduct)
		a.Post("/productos/{id}/barras", h.AddBarcode)
		a.Get("/producto/{codigo}", h.Product)
		a.Get("/ultima-factura", h.LastInvoice)
		a.Post("/registrar-venta", h.RegisterSale)
	})
	r.Get("/factura/imprimir/{id}", h.PrintInvoice)

	return otelhttp.NewHandler(r, "caja-api",
		otelhttp.WithFilter(func(r *http.Request) bool { return r.URL.Path != "/metrics" }),
	)
}
