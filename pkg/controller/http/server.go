package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/osint-lab/casetrail/pkg/usecase"
	"github.com/osint-lab/casetrail/pkg/utils/logging"
)

// Server exposes the case store to a local UI over REST
type Server struct {
	router *chi.Mux
	store  *usecase.CaseStore
}

// New builds the router over the given case store
func New(store *usecase.CaseStore) *Server {
	r := chi.NewRouter()
	s := &Server{router: r, store: store}

	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Route("/cases", func(r chi.Router) {
			r.Get("/", s.listCases)
			r.Post("/", s.createCase)

			r.Get("/active", s.getActiveCase)
			r.Put("/active", s.setActiveCase)

			r.Route("/{caseID}", func(r chi.Router) {
				r.Get("/", s.getCase)
				r.Patch("/", s.updateCase)
				r.Delete("/", s.deleteCase)

				r.Post("/searches", s.saveSearch)
				r.Post("/findings", s.addFinding)
				r.Patch("/findings/{findingID}", s.updateFinding)
				r.Delete("/findings/{findingID}", s.deleteFinding)
				r.Post("/notes", s.addNote)
				r.Delete("/notes/{noteID}", s.deleteNote)
				r.Put("/tools/{toolID}", s.setToolStatus)

				r.Get("/export/{format}", s.exportCase)
			})
		})
		r.Get("/history", s.searchHistory)
		r.Post("/import", s.importCases)
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
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
