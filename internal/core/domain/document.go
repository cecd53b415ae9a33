package domain

import (
	"errors"
	"fmt"
	"strings"
)

// DocumentCategory is the closed set of document types the classifier can
// produce. The string values are the exact tokens exchanged with the model.
type DocumentCategory string

const (
	CategoryPrescription DocumentCategory = "PRESCRIPTION"
	CategoryLabReport    DocumentCategory = "LAB_REPORT"
	CategoryMedicalImage DocumentCategory = "MEDICAL_IMAGE"
	CategoryUnknown      DocumentCategory = "UNKNOWN"
)

// ParseCategory maps raw classifier output to a category. The raw text is
// trimmed and must match a canonical token exactly; anything else collapses
// to CategoryUnknown.
func ParseCategory(raw string) DocumentCategory {
	switch c := DocumentCategory(strings.TrimSpace(raw)); c {
	case CategoryPrescription, CategoryLabReport, CategoryMedicalImage, CategoryUnknown:
		return c
	default:
		return CategoryUnknown
	}
}

// ClassificationResult keeps the parsed category together with the raw text
// the classifier returned, which is preserved for display even when it does
// not match any known token.
type ClassificationResult struct {
	Category        DocumentCategory `json:"category"`
	CategoryDisplay string           `json:"category_display"`
}

// AnalysisResult is the outcome of one classify+explain pass over a document.
// Created once, never mutated.
type AnalysisResult struct {
	Category        DocumentCategory `json:"category"`
	CategoryDisplay string           `json:"category_display"`
	Explanation     string           `json:"explanation"`
}

type MediaKind string

const (
	MediaKindImage MediaKind = "image"
	MediaKindPDF   MediaKind = "pdf"
)

// UploadedFile is the value object built once at the system boundary for every
// incoming attachment.
type UploadedFile struct {
	Kind      MediaKind
	Filename  string
	MediaType string
	Data      []byte
}

const MimeTypePDF = "application/pdf"

var supportedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
}

// NormalizeImageMediaType enforces the image MIME allowlist. Types outside the
// allowlist default to jpeg handling unless strict mode is on, in which case
// they are rejected with ErrUnsupportedMedia.
func NormalizeImageMediaType(mediaType string, strict bool) (string, error) {
	mt := strings.ToLower(strings.TrimSpace(mediaType))
	if mt == "image/jpg" {
		mt = "image/jpeg"
	}
	if _, ok := supportedImageTypes[mt]; ok {
		return mt, nil
	}
	if strict {
		return "", WrapError(ErrUnsupportedMedia, "normalize media type", fmt.Errorf("media type %q not in allowlist", mediaType))
	}
	return "image/jpeg", nil
}

// NewUploadedFile builds the boundary value object, deciding the media kind
// from the declared MIME type.
func NewUploadedFile(filename, mediaType string, data []byte, strictMedia bool) (UploadedFile, error) {
	if len(data) == 0 {
		return UploadedFile{}, WrapError(ErrInvalidInput, "build uploaded file", errors.New("empty file payload"))
	}

	mt := strings.ToLower(strings.TrimSpace(mediaType))
	if mt == MimeTypePDF {
		return UploadedFile{
			Kind:      MediaKindPDF,
			Filename:  filename,
			MediaType: MimeTypePDF,
			Data:      data,
		}, nil
	}

	normalized, err := NormalizeImageMediaType(mt, strictMedia)
	if err != nil {
		return UploadedFile{}, err
	}
	return UploadedFile{
		Kind:      MediaKindImage,
		Filename:  filename,
		MediaType: normalized,
		Data:      data,
	}, nil
}

// ImagePayload travels with a gateway invocation when the prompt refers to an
// image.
type ImagePayload struct {
	Data      []byte
	MediaType string
}

// Table is one extracted table: ordered rows of cell values.
type Table [][]string

// Extraction is the structured-extraction service output: raw OCR text plus
// any detected tables.
type Extraction struct {
	RawText string  `json:"raw_text"`
	Tables  []Table `json:"tables"`
}
