package ports

import (
	"context"

	"github.com/medkoval/health-companion/internal/core/domain"
)

// ModelGateway invokes the hosted multimodal model with a prompt, a system
// directive and an optional image payload, returning the completion text.
type ModelGateway interface {
	Invoke(ctx context.Context, prompt, systemPrompt string, image *domain.ImagePayload) (string, error)
}

// StructuredExtractor runs OCR and table detection over raw image bytes.
type StructuredExtractor interface {
	Extract(ctx context.Context, imageData []byte) (domain.Extraction, error)
}

// PDFDecoder extracts per-page plain text from a PDF payload.
type PDFDecoder interface {
	ExtractPages(ctx context.Context, pdfData []byte) ([]string, error)
}

// SessionStore owns the lifecycle of per-session conversation state. Each
// session's state is isolated; nothing is shared across sessions.
type SessionStore interface {
	Create() *domain.ConversationState
	Get(id string) (*domain.ConversationState, error)
	Reset(id string) error
}
