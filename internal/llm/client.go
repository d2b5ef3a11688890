// Package llm talks to hosted chat-completion providers. A Client performs one
// provider call; Completion frames the call with the support persona and folds
// every failure into the "Error: ..." reply the rest of the system expects.
package llm

import "context"

// Chat roles understood by every provider.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

type Message struct {
	Role    string
	Content string
}

type Response struct {
	Content          string
	Model            string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Client performs exactly one completion request. Implementations do not retry.
type Client interface {
	Generate(ctx context.Context, messages []Message) (Response, error)
}
