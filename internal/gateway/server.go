package gateway

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// buildRouter constructs the chi mux with all routes wired.
func (g *Gateway) buildRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(g.requestLogger)

	r.Get("/", g.handlePage())
	r.Get("/api/info", g.handleInfo())
	r.Get("/health", g.handleHealth())
	r.Get("/status", g.handleStatus())
	r.Handle("/metrics", promhttp.Handler())

	fs := http.StripPrefix("/static/", http.FileServer(http.Dir(g.config.PhotoDir)))
	r.Get("/static/*", fs.ServeHTTP)

	return r
}

// requestLogger logs each request with its status and duration.
func (g *Gateway) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		g.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Truncate(time.Millisecond),
		)
	})
}
