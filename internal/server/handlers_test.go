// ABOUTME: Handler tests over the full router with a mocked advisor
// ABOUTME: Verifies status mapping, validation short-circuits, and payloads
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/rohitadv/creator-counsel/internal/pdf"
	"github.com/rohitadv/creator-counsel/internal/rag"
)

// mockAdvisor returns a canned answer or error and counts calls
type mockAdvisor struct {
	answer string
	err    error
	calls  int
	input  string
}

func (m *mockAdvisor) run(input string) (string, error) {
	m.calls++
	m.input = input
	if m.err != nil {
		return "", m.err
	}
	return m.answer, nil
}

func (m *mockAdvisor) SimplifyContract(ctx context.Context, text string) (string, error) {
	return m.run(text)
}

func (m *mockAdvisor) CheckContentSafety(ctx context.Context, text string) (string, error) {
	return m.run(text)
}

func (m *mockAdvisor) PolicyAnswer(ctx context.Context, question string) (string, error) {
	return m.run(question)
}

func (m *mockAdvisor) AssistantAnswer(ctx context.Context, question string) (string, error) {
	return m.run(question)
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestServer(advisor Advisor, renderer *pdf.Renderer, storeAvailable bool) http.Handler {
	return NewServer(advisor, renderer, storeAvailable, "test", quietLogger()).Router()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("response is not JSON: %v\n%s", err, rec.Body.String())
	}
	return m
}

func TestContractSimplify_Success(t *testing.T) {
	adv := &mockAdvisor{answer: "plain terms"}
	h := newTestServer(adv, nil, true)

	rec := do(t, h, "POST", "/api/contract/simplify", `{"text":"whereas the party"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	if got := decodeBody(t, rec)["summary"]; got != "plain terms" {
		t.Errorf("summary = %v, want %q", got, "plain terms")
	}
	if adv.input != "whereas the party" {
		t.Errorf("advisor input = %q", adv.input)
	}
}

func TestBlankInput_RejectedBeforeAdvisor(t *testing.T) {
	tests := []struct {
		name string
		path string
		body string
	}{
		{"simplify blank text", "/api/contract/simplify", `{"text":"   "}`},
		{"simplify missing text", "/api/contract/simplify", `{}`},
		{"check blank text", "/api/content/check", `{"text":""}`},
		{"policy blank question", "/api/youtube/policy", `{"question":" "}`},
		{"ama missing question", "/api/ama/ask", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adv := &mockAdvisor{answer: "unreachable"}
			h := newTestServer(adv, nil, true)

			rec := do(t, h, "POST", tt.path, tt.body)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			if adv.calls != 0 {
				t.Errorf("advisor calls = %d, want 0", adv.calls)
			}
			body := decodeBody(t, rec)
			if body["error"] == "" || body["code"] != float64(http.StatusBadRequest) {
				t.Errorf("error body = %v", body)
			}
		})
	}
}

func TestMalformedJSON_Rejected(t *testing.T) {
	adv := &mockAdvisor{}
	h := newTestServer(adv, nil, true)

	rec := do(t, h, "POST", "/api/ama/ask", `{"question": `)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if adv.calls != 0 {
		t.Errorf("advisor calls = %d, want 0", adv.calls)
	}
}

func TestPolicy_StoreNeverLoaded_503(t *testing.T) {
	adv := &mockAdvisor{err: &rag.RetrievalError{Err: errors.New("vector store unavailable")}}
	h := newTestServer(adv, nil, false)

	rec := do(t, h, "POST", "/api/youtube/policy", `{"question":"fair use?"}`)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestPolicy_RuntimeRetrievalFailure_500(t *testing.T) {
	adv := &mockAdvisor{err: &rag.RetrievalError{Err: errors.New("index corrupted: /secret/path")}}
	h := newTestServer(adv, nil, true)

	rec := do(t, h, "POST", "/api/youtube/policy", `{"question":"fair use?"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "/secret/path") {
		t.Error("error body leaks internal detail")
	}
}

func TestAMA_GenerationFailure_500(t *testing.T) {
	adv := &mockAdvisor{err: &rag.GenerationError{Err: errors.New("rate limited by provider")}}
	h := newTestServer(adv, nil, true)

	rec := do(t, h, "POST", "/api/ama/ask", `{"question":"help"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "rate limited") {
		t.Error("error body leaks provider detail")
	}
}

func TestInvoiceGenerate_NumberAndStringAmounts(t *testing.T) {
	h := newTestServer(&mockAdvisor{}, nil, true)

	for _, body := range []string{
		`{"brand":"Acme","service":"Video","amount":100,"include_gst":true}`,
		`{"brand":"Acme","service":"Video","amount":"100","include_gst":true}`,
	} {
		rec := do(t, h, "POST", "/api/invoice/generate", body)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
		}
		text, _ := decodeBody(t, rec)["invoice_text"].(string)
		if !strings.Contains(text, "₹118.00 (including 18% GST)") {
			t.Errorf("invoice_text missing GST total:\n%s", text)
		}
	}
}

func TestInvoiceGenerate_Rejections(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing brand", `{"service":"Video","amount":100}`},
		{"blank brand", `{"brand":"  ","service":"Video","amount":100}`},
		{"missing amount", `{"brand":"Acme","service":"Video"}`},
		{"non-numeric amount", `{"brand":"Acme","service":"Video","amount":"lots"}`},
		{"zero amount", `{"brand":"Acme","service":"Video","amount":0}`},
		{"negative amount", `{"brand":"Acme","service":"Video","amount":-10}`},
	}

	h := newTestServer(&mockAdvisor{}, nil, true)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, "POST", "/api/invoice/generate", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400; body: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestInvoiceDownload_DisabledIs501(t *testing.T) {
	h := newTestServer(&mockAdvisor{}, nil, true)

	rec := do(t, h, "POST", "/api/invoice/download", `{"invoice_text":"PROFESSIONAL INVOICE"}`)

	if rec.Code != http.StatusNotImplemented {
		t.Errorf("status = %d, want 501", rec.Code)
	}
}

func TestInvoiceDownload_ReturnsPDF(t *testing.T) {
	h := newTestServer(&mockAdvisor{}, pdf.NewRenderer(), true)

	rec := do(t, h, "POST", "/api/invoice/download", `{"invoice_text":"PROFESSIONAL INVOICE\nTotal: 118.00"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q, want application/pdf", ct)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Error("body is not a PDF document")
	}
}

func TestHealth_AlwaysHealthy(t *testing.T) {
	h := newTestServer(&mockAdvisor{}, nil, false)

	rec := do(t, h, "GET", "/api/health", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["status"] != "healthy" {
		t.Errorf("status field = %v", body["status"])
	}
	if body["service"] != serviceName {
		t.Errorf("service field = %v", body["service"])
	}
	if body["vector_store_available"] != false {
		t.Errorf("vector_store_available = %v, want false", body["vector_store_available"])
	}
	if body["pdf_generation_available"] != false {
		t.Errorf("pdf_generation_available = %v, want false", body["pdf_generation_available"])
	}
	if body["timestamp"] == "" {
		t.Error("timestamp missing")
	}
}

func TestDebugInfo_ListsEndpoints(t *testing.T) {
	h := newTestServer(&mockAdvisor{}, pdf.NewRenderer(), true)

	rec := do(t, h, "GET", "/api/debug/info", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "/api/youtube/policy") {
		t.Error("endpoint list missing /api/youtube/policy")
	}
}

func TestRequestID_Echoed(t *testing.T) {
	h := newTestServer(&mockAdvisor{}, nil, true)

	rec := do(t, h, "GET", "/api/health", "")

	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing")
	}
}

func TestIndex_ServesPage(t *testing.T) {
	h := newTestServer(&mockAdvisor{}, nil, true)

	rec := do(t, h, "GET", "/", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Creator Counsel") {
		t.Error("index page missing title")
	}
}
