package out

import "context"

// ContentGenerator produces raw model output for a prompt. Implementations
// wrap a hosted model or a deterministic local stand-in.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}
