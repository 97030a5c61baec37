// ABOUTME: HTTP handlers for the advisor, invoice, and health endpoints
// ABOUTME: Maps typed pipeline errors onto 400/500/501/503 with generic bodies
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/rohitadv/creator-counsel/internal/invoice"
	"github.com/rohitadv/creator-counsel/internal/models"
	"github.com/rohitadv/creator-counsel/internal/rag"
)

const serviceName = "creator-counsel"

type textRequest struct {
	Text string `json:"text" validate:"required"`
}

type questionRequest struct {
	Question string `json:"question" validate:"required"`
}

// Amount is a json.Number so both 5000 and "5000" are accepted, the way
// a loosely-typed client would send them.
type invoiceRequest struct {
	Brand      string      `json:"brand" validate:"required"`
	Service    string      `json:"service" validate:"required"`
	Amount     json.Number `json:"amount" validate:"required"`
	IncludeGST bool        `json:"include_gst"`
}

type downloadRequest struct {
	InvoiceText string `json:"invoice_text" validate:"required"`
}

func (s *Server) handleContractSimplify(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !s.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text must be a non-empty string")
		return
	}

	summary, err := s.advisor.SimplifyContract(r.Context(), req.Text)
	if err != nil {
		s.advisorError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

func (s *Server) handleContentCheck(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !s.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text must be a non-empty string")
		return
	}

	report, err := s.advisor.CheckContentSafety(r.Context(), req.Text)
	if err != nil {
		s.advisorError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"report": report})
}

func (s *Server) handleYouTubePolicy(w http.ResponseWriter, r *http.Request) {
	var req questionRequest
	if !s.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusBadRequest, "question must be a non-empty string")
		return
	}

	answer, err := s.advisor.PolicyAnswer(r.Context(), req.Question)
	if err != nil {
		s.advisorError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

func (s *Server) handleAMAAsk(w http.ResponseWriter, r *http.Request) {
	var req questionRequest
	if !s.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusBadRequest, "question must be a non-empty string")
		return
	}

	answer, err := s.advisor.AssistantAnswer(r.Context(), req.Question)
	if err != nil {
		s.advisorError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

func (s *Server) handleInvoiceGenerate(w http.ResponseWriter, r *http.Request) {
	var req invoiceRequest
	if !s.decode(w, r, &req) {
		return
	}

	amount, err := req.Amount.Float64()
	if err != nil {
		writeError(w, http.StatusBadRequest, "amount must be a valid number")
		return
	}

	text, err := invoice.Format(models.Invoice{
		Brand:      req.Brand,
		Service:    req.Service,
		Amount:     amount,
		IncludeGST: req.IncludeGST,
	})
	if err != nil {
		var valErr *invoice.ValidationError
		if errors.As(err, &valErr) {
			writeError(w, http.StatusBadRequest, valErr.Error())
			return
		}
		s.log.WithError(err).Error("invoice formatting failed")
		writeError(w, http.StatusInternalServerError, "invoice generation failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"invoice_text": text})
}

func (s *Server) handleInvoiceDownload(w http.ResponseWriter, r *http.Request) {
	if s.renderer == nil {
		writeError(w, http.StatusNotImplemented, "pdf generation is not available")
		return
	}

	var req downloadRequest
	if !s.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.InvoiceText) == "" {
		writeError(w, http.StatusBadRequest, "invoice_text must be a non-empty string")
		return
	}

	data, err := s.renderer.Render(req.InvoiceText)
	if err != nil {
		s.log.WithError(err).Error("pdf rendering failed")
		writeError(w, http.StatusInternalServerError, "pdf rendering failed")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="invoice.pdf"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// handleHealth always answers 200 so load balancers see the process alive
// even when the vector store never loaded.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":                   "healthy",
		"service":                  serviceName,
		"version":                  s.version,
		"timestamp":                time.Now().UTC().Format(time.RFC3339),
		"vector_store_available":   s.storeAvailable,
		"pdf_generation_available": s.renderer != nil,
	})
}

func (s *Server) handleDebugInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service": serviceName,
		"version": s.version,
		"endpoints": []string{
			"POST /api/contract/simplify",
			"POST /api/content/check",
			"POST /api/invoice/generate",
			"POST /api/invoice/download",
			"POST /api/youtube/policy",
			"POST /api/ama/ask",
			"GET /api/health",
			"GET /api/debug/info",
		},
		"vector_store_available":   s.storeAvailable,
		"pdf_generation_available": s.renderer != nil,
	})
}

// advisorError maps pipeline failures onto HTTP statuses. 503 is reserved
// for a store that never became available; a runtime retrieval failure is
// a 500. Full detail goes to the log, generic bodies to the client.
func (s *Server) advisorError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.WithError(err).WithField("path", r.URL.Path).Error("advisor request failed")

	var retErr *rag.RetrievalError
	var genErr *rag.GenerationError
	switch {
	case errors.As(err, &retErr):
		if !s.storeAvailable {
			writeError(w, http.StatusServiceUnavailable, "knowledge base is not available")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to retrieve context")
	case errors.As(err, &genErr):
		writeError(w, http.StatusInternalServerError, "failed to generate a response")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decode parses and validates a JSON request body, answering 400 itself
// when the body is malformed or a required field is missing.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}

	if err := s.validate.Struct(dst); err != nil {
		var valErrs validator.ValidationErrors
		if errors.As(err, &valErrs) && len(valErrs) > 0 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("%s is required", valErrs[0].Field()))
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid request")
		return false
	}
	return true
}

// jsonTagName makes validator error messages use the JSON field names
// clients actually sent.
func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg, "code": status})
}
