package pdfdecode

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/medkoval/health-companion/internal/core/domain"
)

// Decoder extracts per-page plain text from PDF payloads. Corrupt or
// unreadable input surfaces as ErrDecode.
type Decoder struct{}

func New() *Decoder {
	return &Decoder{}
}

func (d *Decoder) ExtractPages(ctx context.Context, pdfData []byte) (pages []string, err error) {
	if len(pdfData) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "extract pdf pages", errors.New("empty pdf payload"))
	}
	// The parser panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = domain.WrapError(domain.ErrDecode, "extract pdf pages", fmt.Errorf("parser panic: %v", r))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(pdfData), int64(len(pdfData)))
	if err != nil {
		return nil, domain.WrapError(domain.ErrDecode, "extract pdf pages", err)
	}

	total := reader.NumPage()
	pages = make([]string, 0, total)
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, domain.WrapError(domain.ErrDecode, fmt.Sprintf("extract pdf page %d", i), err)
		}
		pages = append(pages, text)
	}
	return pages, nil
}
