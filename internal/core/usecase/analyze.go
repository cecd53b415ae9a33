package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/medkoval/health-companion/internal/core/domain"
)

const analyzeRequestText = "Please analyze this medical document."

// AnalyzeDocumentUseCase is the two-phase pipeline: classify first, then
// explain with the category-specific template. The phases are strictly
// sequential because prompt selection depends on the classification. A
// successful run overwrites the session's carried document context and records
// the exchange in the transcript; a failed run records the user turn only and
// never yields a partial result.
type AnalyzeDocumentUseCase struct {
	classifier *ClassifyDocumentUseCase
	explainer  *ExplainDocumentUseCase
}

func NewAnalyzeDocumentUseCase(classifier *ClassifyDocumentUseCase, explainer *ExplainDocumentUseCase) *AnalyzeDocumentUseCase {
	return &AnalyzeDocumentUseCase{
		classifier: classifier,
		explainer:  explainer,
	}
}

func (uc *AnalyzeDocumentUseCase) Analyze(ctx context.Context, state *domain.ConversationState, file domain.UploadedFile) (*domain.AnalysisResult, error) {
	if file.Kind != domain.MediaKindImage {
		return nil, domain.WrapError(domain.ErrInvalidInput, "analyze document", fmt.Errorf("media kind %s is not classifiable", file.Kind))
	}

	state.Append(newMessage(domain.RoleUser, attachmentMarker(file.Filename, analyzeRequestText)))

	classification, err := uc.classifier.Classify(ctx, file.Data, file.MediaType)
	if err != nil {
		return nil, err
	}

	explanation, err := uc.explainer.Explain(ctx, classification.Category, file.Data, file.MediaType)
	if err != nil {
		return nil, err
	}

	result := &domain.AnalysisResult{
		Category:        classification.Category,
		CategoryDisplay: classification.CategoryDisplay,
		Explanation:     explanation,
	}

	state.Append(newMessage(domain.RoleAssistant, explanation))
	state.SetDocumentContext(explanation)
	return result, nil
}

func newMessage(role domain.MessageRole, content string) domain.ConversationMessage {
	return domain.ConversationMessage{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
}
