// internal/httpserver/server.go
//
// HTTP server wiring for the trainer.
// Responsibilities:
//   - Router + middleware (CORS, timeouts, panic recovery, request IDs,
//     access logging).
//   - Public endpoints: "/" (the page), "/static/*", "/health".
//   - Session API under /api: create a session, then drive it with
//     mode/toggle/next/answer/key calls.
//   - Geometry lookups and label catalogs for the page.
//
// Notes:
//   - Session handles are signed tokens (see session.go); the store only
//     ever sees the session ID inside them.
//   - Every mutation goes through Store.Update, so two requests for one
//     session never interleave.

package httpserver

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/boardparity/internal/store"
)

// Options carries what the server needs from configuration.
type Options struct {
	ClientOrigin string
	DefaultLang  string
	Secret       string
	TTL          time.Duration
	CookieName   string
	Secure       bool          // mark cookies Secure (production)
	Web          fs.FS         // page files; nil disables "/" and "/static"
	Seed         func() uint64 // question seed per new session; nil = random
}

// Server bundles router, session store and token settings.
type Server struct {
	r      *chi.Mux
	store  store.Store
	opts   Options
	tokens tokenIssuer
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, opts Options) *Server {
	s := &Server{
		r:      chi.NewRouter(),
		store:  st,
		opts:   opts,
		tokens: tokenIssuer{secret: []byte(opts.Secret), ttl: opts.TTL},
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(log.Logger))     // request-scoped logger
	s.r.Use(accessLog)                       // one line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(s.cors)                          // credentials-friendly CORS

	if opts.Web != nil {
		s.mountWeb(opts.Web)
	}

	s.r.Group(func(r chi.Router) {
		r.Use(jsonContentType)

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"ok":true}`))
		})

		r.Route("/api", func(r chi.Router) {
			r.Post("/sessions", s.handleCreateSession)
			r.Get("/squares/{name}", s.handleSquare)
			r.Get("/labels", s.handleLabels)

			r.Route("/session", func(r chi.Router) {
				r.Use(s.requireSession)
				r.Get("/", s.handleState)
				r.Delete("/", s.handleEndSession)
				r.Post("/mode", s.handleMode)
				r.Post("/toggle", s.handleToggle)
				r.Post("/next", s.handleNext)
				r.Post("/answer", s.handleAnswer)
				r.Post("/key", s.handleKey)
			})
		})

		// JSON 404 for easier debugging
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusNotFound, "not_found")
		})
	})

	return s
}

// Run serves HTTP on addr until ctx is cancelled, then drains in-flight
// requests for up to five seconds.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// mountWeb serves index.html at "/" and the rest under /static.
func (s *Server) mountWeb(web fs.FS) {
	files := http.FileServer(http.FS(web))
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFileFS(w, r, web, "index.html")
	})
	s.r.Handle("/static/*", http.StripPrefix("/static/", files))
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// accessLog writes one zerolog line per request.
var accessLog = hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Info().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("req_id", chimw.GetReqID(r.Context())).
		Int("status", status).
		Int("size", size).
		Dur("dur", d).
		Msg("http")
})

// cors enables credentialed CORS for the configured origin, so a page
// served from a dev server can still carry the session cookie.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.opts.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin != "" {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
