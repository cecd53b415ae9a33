package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/medkoval/health-companion/internal/core/domain"
	"github.com/medkoval/health-companion/internal/core/ports"
)

// ClassifyDocumentUseCase runs the single-round category classification over
// an uploaded image. The model is instructed to answer with exactly one
// category token; any other answer collapses to UNKNOWN. There is no retry or
// voting - one round is final. Gateway failures propagate to the caller.
type ClassifyDocumentUseCase struct {
	gateway ports.ModelGateway
}

func NewClassifyDocumentUseCase(gateway ports.ModelGateway) *ClassifyDocumentUseCase {
	return &ClassifyDocumentUseCase{gateway: gateway}
}

func (uc *ClassifyDocumentUseCase) Classify(ctx context.Context, imageData []byte, mediaType string) (domain.ClassificationResult, error) {
	if len(imageData) == 0 {
		return domain.ClassificationResult{}, domain.WrapError(domain.ErrInvalidInput, "classify document", errors.New("empty image payload"))
	}

	raw, err := uc.gateway.Invoke(ctx, classificationPrompt, classificationSystemPrompt, &domain.ImagePayload{
		Data:      imageData,
		MediaType: mediaType,
	})
	if err != nil {
		return domain.ClassificationResult{}, fmt.Errorf("classify document: %w", err)
	}

	display := strings.TrimSpace(raw)
	return domain.ClassificationResult{
		Category:        domain.ParseCategory(display),
		CategoryDisplay: display,
	}, nil
}
