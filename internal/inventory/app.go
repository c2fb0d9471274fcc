package inventory

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"Inventory/pkg/kit"
)

const writeLimitWindow = 60 * time.Second

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string

	// WriteLimitPerMin caps mutating requests per client IP; 0 disables it.
	WriteLimitPerMin int
	// TrustForwardedFor keys the write limit on X-Forwarded-For.
	TrustForwardedFor bool
}

func NewHandler(s *Server, deps HTTPDeps) http.Handler {
	r := chi.NewRouter()

	setupMiddleware(r, deps)
	setupMetrics(r, s, deps)

	var writeMW []func(http.Handler) http.Handler
	if deps.WriteLimitPerMin > 0 {
		limiter := kit.NewIPRateLimiter(deps.WriteLimitPerMin, writeLimitWindow)
		limiter.TrustForwardedFor = deps.TrustForwardedFor
		writeMW = append(writeMW, limiter.Middleware)
	}

	r.Mount("/", s.Routes(writeMW...))
	return r
}

func setupMiddleware(r *chi.Mux, deps HTTPDeps) {
	r.Use(kit.RequestID)
	r.Use(kit.Recoverer)
	r.Use(kit.Logging(deps.Log))
}

func setupMetrics(r *chi.Mux, s *Server, deps HTTPDeps) {
	if deps.Registry == nil {
		return
	}

	metrics := kit.NewMetrics(deps.Registry)
	r.Use(metrics.Middleware(deps.Service, kit.ChiRoutePatternOrPath))
	registerStoreGauges(deps.Registry, s.Store)

	if !deps.MetricsEnabled {
		return
	}

	r.With(kit.MetricsAuth(deps.MetricsToken)).
		Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
}

type entityCounter interface {
	Counts() (categories, products int)
}

// registerStoreGauges exposes entity counts for stores that can report them
// without a scan.
func registerStoreGauges(reg prometheus.Registerer, store Store) {
	ec, ok := store.(entityCounter)
	if !ok {
		return
	}

	reg.MustRegister(
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "inventory_categories",
			Help: "Number of stored categories",
		}, func() float64 {
			c, _ := ec.Counts()
			return float64(c)
		}),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "inventory_products",
			Help: "Number of stored products",
		}, func() float64 {
			_, p := ec.Counts()
			return float64(p)
		}),
	)
}
