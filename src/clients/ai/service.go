package ai

import (
	"context"
	"errors"
	"fmt"

	"walter/src/config"
	aws_handler "walter/src/utils/aws"
)

// ErrGeneration wraps generative model failures.
var ErrGeneration = errors.New("generation error")

// GeneratorClientI maps a prompt to generated text. The newsletter pipeline
// invokes it once per render parameter.
type GeneratorClientI interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// NewGenerator selects the generative provider from config.
func NewGenerator(cfg *config.Config, handler *aws_handler.AWSHandler, secrets *aws_handler.Secrets) (GeneratorClientI, error) {
	switch cfg.AI.Provider {
	case config.Bedrock, "":
		return NewBedrockClient(handler.Bedrock, cfg.AI.Model), nil
	case config.Gemini:
		return NewGeminiClient(secrets.GeminiAPIKey, cfg.AI.Model)
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.AI.Provider)
	}
}
