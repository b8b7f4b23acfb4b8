package out

import "context"

// OfflineGenerator stands in for the hosted model when no API key is
// configured. It returns prose rather than JSON so callers engage their
// deterministic fallback paths.
type OfflineGenerator struct{}

func NewOfflineGenerator() OfflineGenerator {
	return OfflineGenerator{}
}

func (OfflineGenerator) GenerateContent(context.Context, string) (string, error) {
	return "offline mode: no generated content available", nil
}
