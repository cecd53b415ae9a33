package claude

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/medkoval/health-companion/internal/core/domain"
	"github.com/medkoval/health-companion/internal/infrastructure/resilience"
)

// Client talks to an Anthropic-compatible messages endpoint and implements the
// model gateway port. Every failure mode - transport error, non-2xx status,
// malformed body, empty completion - surfaces as a gateway error.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	maxTokens  int
	httpClient httpDoer
	executor   *resilience.Executor
}

func New(baseURL, apiKey, model string, maxTokens int, timeout time.Duration, executor *resilience.Executor) *Client {
	if maxTokens <= 0 {
		maxTokens = 2048
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		maxTokens:  maxTokens,
		httpClient: newHTTPClient(timeout),
		executor:   executor,
	}
}

type contentBlock struct {
	Type   string       `json:"type"`
	Text   string       `json:"text,omitempty"`
	Source *imageSource `json:"source,omitempty"`
}

type imageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type message struct {
	Role    string         `json:"role"`
	Content []contentBlock `json:"content"`
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []message `json:"messages"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func (c *Client) Invoke(ctx context.Context, prompt, systemPrompt string, image *domain.ImagePayload) (string, error) {
	blocks := make([]contentBlock, 0, 2)
	if image != nil {
		blocks = append(blocks, contentBlock{
			Type: "image",
			Source: &imageSource{
				Type:      "base64",
				MediaType: image.MediaType,
				Data:      base64.StdEncoding.EncodeToString(image.Data),
			},
		})
	}
	blocks = append(blocks, contentBlock{Type: "text", Text: prompt})

	request := messagesRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System:    systemPrompt,
		Messages:  []message{{Role: "user", Content: blocks}},
	}

	var response messagesResponse
	err := c.executor.Execute(ctx, "model_invoke", func(callCtx context.Context) error {
		return c.postJSON(callCtx, "/v1/messages", request, &response, "invoke")
	}, classifyGatewayError)
	if err != nil {
		return "", wrapGatewayError("invoke model", err)
	}

	text := firstTextBlock(response)
	if strings.TrimSpace(text) == "" {
		return "", domain.WrapError(domain.ErrGateway, "invoke model", errors.New("empty completion"))
	}
	return text, nil
}

func firstTextBlock(resp messagesResponse) string {
	for _, block := range resp.Content {
		if block.Type == "text" {
			return block.Text
		}
	}
	return ""
}

func wrapGatewayError(operation string, err error) error {
	if err == nil {
		return nil
	}
	if domain.IsKind(err, domain.ErrGateway) {
		return err
	}
	return domain.WrapError(domain.ErrGateway, operation, err)
}
