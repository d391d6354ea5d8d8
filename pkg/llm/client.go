package llm

import "context"

// ChatRequest describes one chat-completion call.
type ChatRequest struct {
	System      string
	User        string
	MaxTokens   int64
	Temperature float64
}

// ChatClient sends a chat-completion request and returns the generated text.
type ChatClient interface {
	Complete(ctx context.Context, req ChatRequest) (string, error)
}
