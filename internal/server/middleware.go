package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/eggsposition/eggsposition/pkg/buildinfo"
	"github.com/eggsposition/eggsposition/pkg/observability"
)

// accessLog writes one structured line per request.
func accessLog(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start).Round(time.Microsecond),
				"request_id", chimiddleware.GetReqID(r.Context()),
				"remote", r.RemoteAddr,
			)
		})
	}
}

// httpHooks reports every request to the registered observability hooks.
func httpHooks(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, time.Since(start))
	})
}

func serverHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Server", buildinfo.UserAgent())
		next.ServeHTTP(w, r)
	})
}
