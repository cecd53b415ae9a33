package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/medkoval/health-companion/internal/core/domain"
)

// scriptedGateway returns queued responses in order, one per call.
type scriptedGateway struct {
	responses []string
	errAt     int
	err       error
	calls     []gatewayCall
}

func (f *scriptedGateway) Invoke(_ context.Context, prompt, systemPrompt string, image *domain.ImagePayload) (string, error) {
	call := len(f.calls)
	f.calls = append(f.calls, gatewayCall{prompt: prompt, system: systemPrompt, image: image})
	if f.err != nil && call == f.errAt {
		return "", f.err
	}
	if call < len(f.responses) {
		return f.responses[call], nil
	}
	return "", errors.New("no scripted response")
}

func imageFile() domain.UploadedFile {
	return domain.UploadedFile{
		Kind:      domain.MediaKindImage,
		Filename:  "rx.jpg",
		MediaType: "image/jpeg",
		Data:      []byte{0xFF, 0xD8},
	}
}

func newAnalyzeUseCase(gateway *scriptedGateway) *AnalyzeDocumentUseCase {
	return NewAnalyzeDocumentUseCase(
		NewClassifyDocumentUseCase(gateway),
		NewExplainDocumentUseCase(gateway),
	)
}

func TestAnalyzeClassifiesThenExplains(t *testing.T) {
	gateway := &scriptedGateway{responses: []string{"PRESCRIPTION", "take one daily"}}
	uc := newAnalyzeUseCase(gateway)
	state := &domain.ConversationState{ID: "s1"}

	result, err := uc.Analyze(context.Background(), state, imageFile())
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if result.Category != domain.CategoryPrescription || result.CategoryDisplay != "PRESCRIPTION" {
		t.Fatalf("unexpected classification: %+v", result)
	}
	if result.Explanation != "take one daily" {
		t.Fatalf("unexpected explanation: %q", result.Explanation)
	}
	if len(gateway.calls) != 2 {
		t.Fatalf("expected classify + explain calls, got %d", len(gateway.calls))
	}
	if !strings.Contains(gateway.calls[1].prompt, "prescription") {
		t.Fatalf("second call must use the prescription template: %s", gateway.calls[1].prompt)
	}
}

func TestAnalyzeUnknownSkipsExplainCall(t *testing.T) {
	gateway := &scriptedGateway{responses: []string{"not sure what this is"}}
	uc := newAnalyzeUseCase(gateway)
	state := &domain.ConversationState{ID: "s1"}

	result, err := uc.Analyze(context.Background(), state, imageFile())
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if result.Category != domain.CategoryUnknown {
		t.Fatalf("expected UNKNOWN, got %s", result.Category)
	}
	if result.CategoryDisplay != "not sure what this is" {
		t.Fatalf("display must preserve raw text, got %q", result.CategoryDisplay)
	}
	if result.Explanation != UnknownCategoryFallback {
		t.Fatalf("expected fallback explanation, got %q", result.Explanation)
	}
	if len(gateway.calls) != 1 {
		t.Fatalf("UNKNOWN must not trigger an explain call, got %d calls", len(gateway.calls))
	}
}

func TestAnalyzeUpdatesContextAndTranscript(t *testing.T) {
	gateway := &scriptedGateway{responses: []string{"LAB_REPORT", "your results look normal"}}
	uc := newAnalyzeUseCase(gateway)
	state := &domain.ConversationState{ID: "s1", DocumentContext: "stale explanation"}

	if _, err := uc.Analyze(context.Background(), state, imageFile()); err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if state.DocumentContext != "your results look normal" {
		t.Fatalf("expected context overwrite, got %q", state.DocumentContext)
	}
	if len(state.Messages) != 2 {
		t.Fatalf("expected user + assistant messages, got %d", len(state.Messages))
	}
	if state.Messages[0].Role != domain.RoleUser || !strings.Contains(state.Messages[0].Content, "[attached: rx.jpg]") {
		t.Fatalf("user message must carry attachment marker: %+v", state.Messages[0])
	}
	if state.Messages[1].Role != domain.RoleAssistant || state.Messages[1].Content != "your results look normal" {
		t.Fatalf("unexpected assistant message: %+v", state.Messages[1])
	}
}

func TestAnalyzeFailureLeavesNoPartialResult(t *testing.T) {
	gateway := &scriptedGateway{
		responses: []string{"PRESCRIPTION"},
		errAt:     1,
		err:       domain.WrapError(domain.ErrGateway, "invoke model", errors.New("timeout")),
	}
	uc := newAnalyzeUseCase(gateway)
	state := &domain.ConversationState{ID: "s1"}

	result, err := uc.Analyze(context.Background(), state, imageFile())
	if result != nil {
		t.Fatalf("expected no partial result, got %+v", result)
	}
	if !domain.IsKind(err, domain.ErrGateway) {
		t.Fatalf("expected gateway error, got %v", err)
	}
	if state.DocumentContext != "" {
		t.Fatalf("failed analysis must not set context, got %q", state.DocumentContext)
	}
	if len(state.Messages) != 1 || state.Messages[0].Role != domain.RoleUser {
		t.Fatalf("expected only the user turn recorded, got %+v", state.Messages)
	}
}

func TestAnalyzeRejectsPDFKind(t *testing.T) {
	gateway := &scriptedGateway{}
	uc := newAnalyzeUseCase(gateway)
	state := &domain.ConversationState{ID: "s1"}

	_, err := uc.Analyze(context.Background(), state, domain.UploadedFile{
		Kind:     domain.MediaKindPDF,
		Filename: "report.pdf",
		Data:     []byte("%PDF"),
	})
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for pdf kind, got %v", err)
	}
	if len(gateway.calls) != 0 {
		t.Fatalf("pdf must never reach the gateway, got %d calls", len(gateway.calls))
	}
}
