package domain

import "time"

type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// ConversationMessage is one entry in the append-only session transcript.
type ConversationMessage struct {
	ID        string      `json:"id"`
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
}

// ConversationState holds everything a session carries between turns: the
// running transcript and the explanation of the most recently analyzed
// document. DocumentContext is overwritten by each new analysis, never
// appended; Messages only grow until an explicit reset.
type ConversationState struct {
	ID              string                `json:"id"`
	Messages        []ConversationMessage `json:"messages"`
	DocumentContext string                `json:"document_context,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
}

func (s *ConversationState) Append(msg ConversationMessage) {
	s.Messages = append(s.Messages, msg)
}

// SetDocumentContext replaces the carried context with the latest analyzed
// document's explanation.
func (s *ConversationState) SetDocumentContext(explanation string) {
	s.DocumentContext = explanation
}

// Reset clears the transcript and the carried document context, returning the
// session to its initial state.
func (s *ConversationState) Reset() {
	s.Messages = nil
	s.DocumentContext = ""
}
