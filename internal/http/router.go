package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/MrJamesThe3rd/buku/internal/http/dashboard"
	"github.com/MrJamesThe3rd/buku/internal/http/entry"
	"github.com/MrJamesThe3rd/buku/internal/http/importcsv"
	"github.com/MrJamesThe3rd/buku/internal/http/report"
)

type Options struct {
	AllowedOrigins []string
	RateLimit      float64
	RateBurst      int
	// StaticToken lets requests without Authorization use the server's own
	// backend token.
	StaticToken bool
	Now         func() time.Time
}

func New(
	opts Options,
	dashboardV1 *dashboard.Handler,
	entriesV1 *entry.Handler,
	importV1 *importcsv.Handler,
	reportV1 *report.Handler,
) http.Handler {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	if opts.RateLimit > 0 {
		router.Use(rateLimit(rate.NewLimiter(rate.Limit(opts.RateLimit), max(opts.RateBurst, 1))))
	}

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(authenticate(opts.StaticToken, opts.Now))

		r.Route("/dashboard", dashboardV1.Routes)

		r.Route("/entries", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			entriesV1.Routes(r)
		})

		r.Route("/import", importV1.Routes)
		r.Route("/reports", reportV1.Routes)
	})

	return router
}
