package httpadapter

import (
	"net/http"

	"github.com/medkoval/health-companion/internal/core/domain"
)

func mapErrorToHTTPStatus(err error) int {
	switch {
	case domain.IsKind(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrUnsupportedMedia):
		return http.StatusUnsupportedMediaType
	case domain.IsKind(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case domain.IsKind(err, domain.ErrDecode):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrExtraction):
		return http.StatusBadGateway
	case domain.IsKind(err, domain.ErrGateway):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// mapErrorToUserMessage keeps technical detail out of responses; the full
// error chain goes to the log instead.
func mapErrorToUserMessage(err error) string {
	switch {
	case domain.IsKind(err, domain.ErrInvalidInput):
		return "Your request was missing something or could not be read. Please check it and try again."
	case domain.IsKind(err, domain.ErrUnsupportedMedia):
		return "This file type is not supported. Please upload a JPEG, PNG or WebP image, or a PDF."
	case domain.IsKind(err, domain.ErrSessionNotFound):
		return "This conversation could not be found. Please start a new one."
	case domain.IsKind(err, domain.ErrDecode):
		return "We could not read this PDF. Please try a different file."
	case domain.IsKind(err, domain.ErrExtraction):
		return "We could not read the text in this document. Please try a clearer image."
	case domain.IsKind(err, domain.ErrGateway):
		return "The assistant is temporarily unavailable. Please try again in a moment."
	default:
		return "Something went wrong on our side. Please try again."
	}
}
