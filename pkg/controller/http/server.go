package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/govern-lab/aegis/pkg/catalog"
	"github.com/govern-lab/aegis/pkg/usecase"
	"github.com/govern-lab/aegis/pkg/utils/logging"
)

// AuthUseCase is the session contract the HTTP layer depends on
type AuthUseCase = usecase.AuthUseCaseInterface

type Server struct {
	router *chi.Mux
	authUC AuthUseCase
}

type Options func(*Server)

// WithAuth installs session validation on every /api route. Without it the
// server runs with an anonymous identity.
func WithAuth(authUC AuthUseCase) Options {
	return func(s *Server) {
		s.authUC = authUC
	}
}

func New(uc *usecase.UseCases, cat *catalog.Catalog, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware(s.authUC))

		r.Route("/auth", func(r chi.Router) {
			r.Get("/me", authMeHandler())
			r.Post("/logout", authLogoutHandler(s.authUC))
		})

		// Reference data, identical for every caller
		r.Get("/controls", listControlsHandler(cat))
		r.Get("/taxonomy", taxonomyHandler(cat))

		r.Route("/orgs", func(r chi.Router) {
			r.Post("/", createOrgHandler(uc.Assessment))
			r.Get("/", listOrgsHandler(uc.Assessment))

			r.Route("/{orgID}", func(r chi.Router) {
				r.Delete("/", deleteOrgHandler(uc.Assessment))
				r.Put("/answers", updateOrgAnswersHandler(uc.Assessment))
				r.Get("/policies", orgPoliciesHandler(uc.Result))
				r.Get("/audit", orgAuditHandler(uc.Audit))
				r.Post("/recompute", recomputeOrgHandler(uc.Result))

				r.Route("/products", func(r chi.Router) {
					r.Post("/", createProductHandler(uc.Assessment))

					r.Route("/{productID}", func(r chi.Router) {
						r.Delete("/", deleteProductHandler(uc.Assessment))
						r.Put("/answers", updateProductAnswersHandler(uc.Assessment))
						r.Get("/results", productResultHandler(uc.Result))
						r.Patch("/checklist", patchChecklistHandler(uc.Result))
						r.Get("/audit", productAuditHandler(uc.Audit))
						r.Post("/recompute", recomputeProductHandler(uc.Result))
					})
				})
			})
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
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
