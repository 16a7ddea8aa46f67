package client

import "context"

// VisionClient defines the interface for multimodal model calls.
// GeminiClient implements this interface.
type VisionClient interface {
	// DescribeImage sends a prompt together with a base64-encoded image and
	// returns the model's text output.
	DescribeImage(ctx context.Context, prompt, imageB64, mimeType string) (string, error)

	// GenerateText sends a text-only prompt and returns the model's output.
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Ensure the client implements VisionClient
var _ VisionClient = (*GeminiClient)(nil)
