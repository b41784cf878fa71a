// internal/httpserver/server.go
//
// HTTP server wiring for the Guess The Word backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health".
//   - Round endpoints under /game (see routes_game.go), including a
//     WebSocket snapshot stream.
//   - Results-screen endpoints under /score and the finished-round board
//     under /rounds (see routes_score.go).
//
// Notes:
//   - CORS is origin-aware and credentials-enabled.
//   - The score screen is built from a signed result token issued when a
//     round finishes, never from a client-supplied number.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/guesstheword/apps/go-server/internal/game"
	"github.com/robalobadob/guesstheword/apps/go-server/internal/history"
	"github.com/robalobadob/guesstheword/apps/go-server/internal/holder"
	"github.com/robalobadob/guesstheword/apps/go-server/internal/store"
)

// Options tunes a Server.
type Options struct {
	ClientOrigin string        // allowed CORS / WebSocket origin
	JWTSecret    string        // HMAC key for result tokens
	GameOptions  []game.Option // applied to every new round (tests inject a fake clock)
}

// Server bundles router, holder registry and the finished-round board.
type Server struct {
	r      *chi.Mux
	store  store.Store
	board  *history.Store
	tokens *tokenSigner
	opts   Options
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, board *history.Store, opts Options) *Server {
	if opts.ClientOrigin == "" {
		opts.ClientOrigin = "http://localhost:5173"
	}
	s := &Server{
		r:      chi.NewRouter(),
		store:  st,
		board:  board,
		tokens: newTokenSigner(opts.JWTSecret),
		opts:   opts,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID) // add X-Request-ID
	s.r.Use(chimw.RealIP)    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(log.Logger))
	s.r.Use(accessLog)
	s.r.Use(chimw.Recoverer) // recover from panics
	s.r.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{opts.ClientOrigin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler)

	// The snapshot stream outlives any request timeout.
	s.r.Get("/game/{id}/ws", s.handleGameStream)

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
		r.Use(jsonContentType)                 // default JSON responses

		// --- diagnostics ---
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"service":"guesstheword-go","endpoints":["/health","POST /game/new","POST /score/new","/rounds/top"]}`))
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"ok":true}`))
		})

		s.mountGame(r)
		s.mountScore(r)

		// JSON 404 for easier debugging
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusNotFound, "not_found")
		})
	})

	return s
}

// Router exposes the internal router (used by main and tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// accessLog writes one debug line per request.
var accessLog = hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Debug().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("took", d).
		Msg("request")
})

// ------------------------------- helpers -----------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// writeDomainError maps package errors onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, game.ErrRoundFinished):
		writeError(w, http.StatusConflict, "round_finished")
	case errors.Is(err, game.ErrSessionClosed):
		writeError(w, http.StatusConflict, "session_closed")
	case errors.Is(err, holder.ErrUnsupportedKind):
		writeError(w, http.StatusBadRequest, "unsupported_kind")
	case errors.Is(err, errInvalidToken):
		writeError(w, http.StatusBadRequest, "invalid_token")
	default:
		log.Error().Err(err).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "server_error")
	}
}
