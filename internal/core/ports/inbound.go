package ports

import (
	"context"

	"github.com/medkoval/health-companion/internal/core/domain"
)

// DocumentAnalyzer is the inbound contract for the explicit analyze action:
// classify an uploaded image and produce its explanation, folding the result
// into the session's carried context.
type DocumentAnalyzer interface {
	Analyze(ctx context.Context, state *domain.ConversationState, file domain.UploadedFile) (*domain.AnalysisResult, error)
}

// ChatService is the inbound contract for conversational turns, with or
// without an inline attachment.
type ChatService interface {
	Respond(ctx context.Context, state *domain.ConversationState, userInput string, attachment *domain.UploadedFile) (string, error)
}
