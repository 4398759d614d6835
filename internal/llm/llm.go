package llm

import (
	"context"
	"errors"
	"time"

	"ai-grocery-list/internal/shared"
)

// requestTimeout bounds a single model call. It stays below the HTTP
// server's write timeout.
const requestTimeout = 60 * time.Second

// ErrUpstream marks failures of the model provider itself: transport errors,
// non-success statuses and empty completions.
var ErrUpstream = errors.New("upstream model error")

// ContentResponse contains the generated text and metadata like token usage.
type ContentResponse struct {
	Content string
	Usage   shared.TokenUsage
}

// TextGenerator is an interface for generating text from a prompt.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (ContentResponse, error)
}

// Closer is an interface for closing resources.
type Closer interface {
	Close() error
}

// withRequestTimeout applies requestTimeout unless ctx already has an
// earlier deadline.
func withRequestTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) <= requestTimeout {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, requestTimeout)
}
