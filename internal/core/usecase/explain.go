package usecase

import (
	"context"
	"fmt"

	"github.com/medkoval/health-companion/internal/core/domain"
	"github.com/medkoval/health-companion/internal/core/ports"
)

// ExplainDocumentUseCase generates a category-specific patient-facing
// explanation. Each known category dispatches to its own prompt template and
// persona; UNKNOWN short-circuits to a fixed fallback message without touching
// the gateway.
type ExplainDocumentUseCase struct {
	gateway ports.ModelGateway
}

func NewExplainDocumentUseCase(gateway ports.ModelGateway) *ExplainDocumentUseCase {
	return &ExplainDocumentUseCase{gateway: gateway}
}

func (uc *ExplainDocumentUseCase) Explain(ctx context.Context, category domain.DocumentCategory, imageData []byte, mediaType string) (string, error) {
	tpl, ok := explanationTemplates[category]
	if !ok {
		return UnknownCategoryFallback, nil
	}

	explanation, err := uc.gateway.Invoke(ctx, tpl.prompt, tpl.system, &domain.ImagePayload{
		Data:      imageData,
		MediaType: mediaType,
	})
	if err != nil {
		return "", fmt.Errorf("explain %s: %w", category, err)
	}
	return explanation, nil
}
