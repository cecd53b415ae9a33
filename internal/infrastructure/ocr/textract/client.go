// Package textract is the HTTP client for the structured-extraction service:
// OCR text plus detected tables from a document image.
package textract

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/medkoval/health-companion/internal/core/domain"
	"github.com/medkoval/health-companion/internal/infrastructure/resilience"
)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	executor   *resilience.Executor
}

func New(baseURL, apiKey string, timeout time.Duration, executor *resilience.Executor) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		executor:   executor,
	}
}

type extractRequest struct {
	Image string `json:"image"`
}

type extractResponse struct {
	RawText string         `json:"raw_text"`
	Tables  []domain.Table `json:"tables"`
}

func (c *Client) Extract(ctx context.Context, imageData []byte) (domain.Extraction, error) {
	if len(imageData) == 0 {
		return domain.Extraction{}, domain.WrapError(domain.ErrInvalidInput, "extract structured data", errors.New("empty image payload"))
	}

	request := extractRequest{Image: base64.StdEncoding.EncodeToString(imageData)}

	var response extractResponse
	err := c.executor.Execute(ctx, "ocr_extract", func(callCtx context.Context) error {
		return c.postJSON(callCtx, "/v1/extract", request, &response)
	}, classifyExtractionError)
	if err != nil {
		return domain.Extraction{}, domain.WrapError(domain.ErrExtraction, "extract structured data", err)
	}

	if response.Tables == nil {
		response.Tables = []domain.Table{}
	}
	return domain.Extraction{
		RawText: response.RawText,
		Tables:  response.Tables,
	}, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal extract request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create extract request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ocr extract request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		msg := strings.TrimSpace(string(raw))
		if msg == "" {
			return fmt.Errorf("ocr extract status: %s", resp.Status)
		}
		return fmt.Errorf("ocr extract status: %s: %s", resp.Status, msg)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode extract response: %w", err)
	}
	return nil
}

func classifyExtractionError(err error) resilience.ErrorClassification {
	if err == nil {
		return resilience.ErrorClassification{}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.ErrorClassification{RecordFailure: false}
	}
	return resilience.ErrorClassification{RecordFailure: true}
}
