package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/medkoval/health-companion/internal/core/domain"
	"github.com/medkoval/health-companion/internal/core/ports"
)

// ChatUseCase handles conversational turns. Prompt composition follows a
// strict priority: a fresh attachment in the current turn wins over the
// carried document context and is never merged with it; with no attachment the
// carried context (if any) rides along as background; otherwise the user input
// goes out alone.
//
// The user message is recorded before the gateway call, so a failed turn
// leaves the transcript without an assistant entry and no speculative response
// is ever stored.
type ChatUseCase struct {
	gateway         ports.ModelGateway
	extractor       ports.StructuredExtractor
	decoder         ports.PDFDecoder
	pdfTextMaxChars int
}

func NewChatUseCase(gateway ports.ModelGateway, extractor ports.StructuredExtractor, decoder ports.PDFDecoder, pdfTextMaxChars int) *ChatUseCase {
	if pdfTextMaxChars <= 0 {
		pdfTextMaxChars = 4000
	}
	return &ChatUseCase{
		gateway:         gateway,
		extractor:       extractor,
		decoder:         decoder,
		pdfTextMaxChars: pdfTextMaxChars,
	}
}

func (uc *ChatUseCase) Respond(ctx context.Context, state *domain.ConversationState, userInput string, attachment *domain.UploadedFile) (string, error) {
	userInput = strings.TrimSpace(userInput)
	if userInput == "" {
		return "", domain.WrapError(domain.ErrInvalidInput, "chat respond", errors.New("empty user input"))
	}

	prompt, displayed, err := uc.composePrompt(ctx, state, userInput, attachment)
	if err != nil {
		return "", err
	}

	state.Append(newMessage(domain.RoleUser, displayed))

	response, err := uc.gateway.Invoke(ctx, prompt, chatSystemPrompt, nil)
	if err != nil {
		return "", fmt.Errorf("chat respond: %w", err)
	}

	state.Append(newMessage(domain.RoleAssistant, response))
	return response, nil
}

// composePrompt returns the outgoing prompt and the user message as it should
// appear in the transcript (with an attachment marker when a file rides
// along).
func (uc *ChatUseCase) composePrompt(ctx context.Context, state *domain.ConversationState, userInput string, attachment *domain.UploadedFile) (prompt, displayed string, err error) {
	if attachment == nil {
		if state.DocumentContext != "" {
			return buildCarriedContextPrompt(userInput, state.DocumentContext), userInput, nil
		}
		return userInput, userInput, nil
	}

	displayed = attachmentMarker(attachment.Filename, userInput)

	switch attachment.Kind {
	case domain.MediaKindPDF:
		pages, err := uc.decoder.ExtractPages(ctx, attachment.Data)
		if err != nil {
			return "", "", fmt.Errorf("chat attachment: %w", err)
		}
		text := truncate(strings.Join(pages, "\n"), uc.pdfTextMaxChars)
		return buildPDFChatPrompt(userInput, text), displayed, nil
	default:
		extraction, err := uc.extractor.Extract(ctx, attachment.Data)
		if err != nil {
			return "", "", fmt.Errorf("chat attachment: %w", err)
		}
		return buildExtractionChatPrompt(userInput, extraction), displayed, nil
	}
}

// truncate bounds text to maxChars characters. The limit counts runes, so a
// multibyte character is never split and the result stays valid UTF-8.
func truncate(text string, maxChars int) string {
	if utf8.RuneCountInString(text) <= maxChars {
		return text
	}
	return string([]rune(text)[:maxChars])
}
