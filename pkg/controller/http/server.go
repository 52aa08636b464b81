package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/forgelab/promptforge/pkg/domain/model"
	"github.com/forgelab/promptforge/pkg/usecase"
	"github.com/forgelab/promptforge/pkg/utils/logging"
	"github.com/forgelab/promptforge/pkg/utils/safe"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
	authUC AuthUseCase
	levels []model.LevelDefinition
}

type Options func(*Server)

func WithAuth(authUC AuthUseCase) Options {
	return func(s *Server) {
		s.authUC = authUC
	}
}

// WithLevels overrides the expertise level definitions served to
// clients
func WithLevels(levels []model.LevelDefinition) Options {
	return func(s *Server) {
		s.levels = levels
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
		authUC: uc.Auth,
		levels: model.DefaultLevelDefinitions(),
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)
	r.Get("/api/levels", levelsHandler(s.levels))

	// Generation works without a session; the token middleware only
	// attaches identity so anonymous use keeps working.
	r.Route("/api/generate", func(r chi.Router) {
		r.Use(optionalAuthMiddleware(s.authUC))
		r.Post("/", generateHandler(s.uc))
	})

	// Auth endpoints (if auth is configured)
	if s.authUC != nil {
		r.Route("/api/auth", func(r chi.Router) {
			r.Post("/signup", authSignUpHandler(s.authUC))
			r.Post("/login", authLoginHandler(s.authUC))
			r.Post("/logout", authLogoutHandler(s.authUC))
			r.Get("/me", authMeHandler(s.authUC))
		})

		// History requires a signed-in user
		r.Route("/api/history", func(r chi.Router) {
			r.Use(authMiddleware(s.authUC))
			r.Get("/", historyListHandler(s.uc))
			r.Post("/", historySaveHandler(s.uc))
		})
	}

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	safe.Write(r.Context(), w, []byte(`{"status":"ok"}`))
}

// levelsHandler serves the expertise level definitions for the form
func levelsHandler(levels []model.LevelDefinition) http.HandlerFunc {
	type response struct {
		Levels []model.LevelDefinition `json:"levels"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(r.Context(), w, http.StatusOK, response{Levels: levels})
	}
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
