package httpadapter

import (
	"encoding/json"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/medkoval/health-companion/internal/config"
	"github.com/medkoval/health-companion/internal/core/domain"
	"github.com/medkoval/health-companion/internal/core/ports"
	"github.com/medkoval/health-companion/internal/observability/metrics"
)

const serviceName = "api"

// pdfAnalyzeQuestion drives the text path when a PDF lands on the analyze
// endpoint: PDFs carry extractable text and skip the classify/explain
// pipeline, so they get a generic explanation instead of a categorized one.
const pdfAnalyzeQuestion = "Please explain this document in simple, patient-friendly terms."

type Router struct {
	cfg      config.Config
	analyzer ports.DocumentAnalyzer
	chat     ports.ChatService
	sessions ports.SessionStore
	metrics  *metrics.HTTPServerMetrics
}

func NewRouter(
	cfg config.Config,
	analyzer ports.DocumentAnalyzer,
	chat ports.ChatService,
	sessions ports.SessionStore,
	m *metrics.HTTPServerMetrics,
) *Router {
	return &Router{
		cfg:      cfg,
		analyzer: analyzer,
		chat:     chat,
		sessions: sessions,
		metrics:  m,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/sessions", rt.createSession)
	mux.HandleFunc("/v1/sessions/", rt.sessionAction)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}
	return requestIDMiddleware(telemetryMiddleware(rt.metrics, mux))
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) createSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	state := rt.sessions.Create()
	writeJSON(w, http.StatusCreated, map[string]string{"session_id": state.ID})
}

func (rt *Router) sessionAction(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/v1/sessions/")
	sessionID, action, _ := strings.Cut(rest, "/")
	if sessionID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "session id is required"})
		return
	}

	state, err := rt.sessions.Get(sessionID)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}

	switch {
	case action == "reset" && r.Method == http.MethodPost:
		rt.resetSession(w, r, sessionID)
	case action == "messages" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"messages": state.Messages})
	case action == "analyze" && r.Method == http.MethodPost:
		rt.analyzeDocument(w, r, state)
	case action == "chat" && r.Method == http.MethodPost:
		rt.chatTurn(w, r, state)
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown session action"})
	}
}

func (rt *Router) resetSession(w http.ResponseWriter, r *http.Request, sessionID string) {
	if err := rt.sessions.Reset(sessionID); err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

type analyzeResponse struct {
	Category        domain.DocumentCategory `json:"category,omitempty"`
	CategoryDisplay string                  `json:"category_display,omitempty"`
	Explanation     string                  `json:"explanation"`
}

func (rt *Router) analyzeDocument(w http.ResponseWriter, r *http.Request, state *domain.ConversationState) {
	file, err := rt.readUploadedFile(r)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}

	start := time.Now()

	// PDFs bypass classification: their text is extracted directly and
	// explained through the generic conversational prompt.
	if file.Kind == domain.MediaKindPDF {
		explanation, err := rt.chat.Respond(r.Context(), state, pdfAnalyzeQuestion, &file)
		if err != nil {
			rt.writeError(w, r, err)
			return
		}
		rt.recordChatTurn("pdf_attachment", start)
		writeJSON(w, http.StatusOK, analyzeResponse{Explanation: explanation})
		return
	}

	result, err := rt.analyzer.Analyze(r.Context(), state, file)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	if rt.metrics != nil {
		rt.metrics.RecordAnalysis(serviceName, string(result.Category), time.Since(start))
	}
	writeJSON(w, http.StatusOK, analyzeResponse{
		Category:        result.Category,
		CategoryDisplay: result.CategoryDisplay,
		Explanation:     result.Explanation,
	})
}

func (rt *Router) chatTurn(w http.ResponseWriter, r *http.Request, state *domain.ConversationState) {
	userInput, attachment, err := rt.readChatRequest(r)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}

	start := time.Now()
	response, err := rt.chat.Respond(r.Context(), state, userInput, attachment)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	rt.recordChatTurn(chatTurnKind(attachment), start)
	writeJSON(w, http.StatusOK, map[string]string{"response": response})
}

// readChatRequest accepts either a JSON body (plain turns) or a multipart form
// with an optional file part (turns with an inline attachment).
func (rt *Router) readChatRequest(r *http.Request) (string, *domain.UploadedFile, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if !strings.HasPrefix(mediaType, "multipart/") {
		var req struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return "", nil, domain.WrapError(domain.ErrInvalidInput, "read chat request", err)
		}
		return req.Message, nil, nil
	}

	userInput := r.FormValue("message")

	part, header, err := r.FormFile("file")
	if err == http.ErrMissingFile {
		return userInput, nil, nil
	}
	if err != nil {
		return "", nil, domain.WrapError(domain.ErrInvalidInput, "read chat attachment", err)
	}
	defer part.Close()

	data, err := io.ReadAll(part)
	if err != nil {
		return "", nil, domain.WrapError(domain.ErrInvalidInput, "read chat attachment", err)
	}

	file, err := domain.NewUploadedFile(header.Filename, header.Header.Get("Content-Type"), data, rt.cfg.StrictMediaTypes)
	if err != nil {
		return "", nil, err
	}
	return userInput, &file, nil
}

func (rt *Router) readUploadedFile(r *http.Request) (domain.UploadedFile, error) {
	part, header, err := r.FormFile("file")
	if err != nil {
		return domain.UploadedFile{}, domain.WrapError(domain.ErrInvalidInput, "read uploaded file", err)
	}
	defer part.Close()

	data, err := io.ReadAll(part)
	if err != nil {
		return domain.UploadedFile{}, domain.WrapError(domain.ErrInvalidInput, "read uploaded file", err)
	}

	return domain.NewUploadedFile(header.Filename, header.Header.Get("Content-Type"), data, rt.cfg.StrictMediaTypes)
}

func chatTurnKind(attachment *domain.UploadedFile) string {
	if attachment == nil {
		return "plain"
	}
	if attachment.Kind == domain.MediaKindPDF {
		return "pdf_attachment"
	}
	return "image_attachment"
}

func (rt *Router) recordChatTurn(kind string, start time.Time) {
	if rt.metrics == nil {
		return
	}
	rt.metrics.RecordChatTurn(serviceName, kind, time.Since(start))
}

func (rt *Router) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := mapErrorToHTTPStatus(err)
	slog.Error("request_failed",
		"request_id", requestIDFromContext(r.Context()),
		"path", r.URL.Path,
		"status", status,
		"error", err,
	)
	writeJSON(w, status, map[string]string{"error": mapErrorToUserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
