// ABOUTME: HTTP server for the creator-counsel backend
// ABOUTME: chi router with CORS, request-ID, logging, and recovery middleware
package server

import (
	"context"
	"embed"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/rohitadv/creator-counsel/internal/pdf"
)

//go:embed static
var staticFS embed.FS

// Advisor runs the four advisor tasks. Satisfied by rag.Executor.
type Advisor interface {
	SimplifyContract(ctx context.Context, text string) (string, error)
	CheckContentSafety(ctx context.Context, text string) (string, error)
	PolicyAnswer(ctx context.Context, question string) (string, error)
	AssistantAnswer(ctx context.Context, question string) (string, error)
}

// Server holds the wired dependencies for all HTTP handlers.
type Server struct {
	advisor        Advisor
	renderer       *pdf.Renderer // nil when PDF generation is disabled
	storeAvailable bool
	version        string
	log            *logrus.Logger
	validate       *validator.Validate
}

// NewServer wires the handler dependencies. renderer may be nil to disable
// the PDF download route; storeAvailable reflects whether the vector index
// loaded at startup.
func NewServer(advisor Advisor, renderer *pdf.Renderer, storeAvailable bool, version string, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.New()
	}

	v := validator.New()
	v.RegisterTagNameFunc(jsonTagName)

	return &Server{
		advisor:        advisor,
		renderer:       renderer,
		storeAvailable: storeAvailable,
		version:        version,
		log:            log,
		validate:       v,
	}
}

// Router builds the chi router with the full middleware stack and routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(s.requestID)
	r.Use(s.requestLogger)
	r.Use(s.recoverer)

	r.Get("/", s.handleIndex)
	r.Handle("/static/*", http.StripPrefix("/static/", s.staticHandler()))

	r.Route("/api", func(r chi.Router) {
		r.Post("/contract/simplify", s.handleContractSimplify)
		r.Post("/content/check", s.handleContentCheck)
		r.Post("/invoice/generate", s.handleInvoiceGenerate)
		r.Post("/invoice/download", s.handleInvoiceDownload)
		r.Post("/youtube/policy", s.handleYouTubePolicy)
		r.Post("/ama/ask", s.handleAMAAsk)
		r.Get("/health", s.handleHealth)
		r.Get("/debug/info", s.handleDebugInfo)
	})

	return r
}

func (s *Server) staticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// embed guarantees the directory exists
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "page unavailable")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
