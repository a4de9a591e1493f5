package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/bedrockruntime"
)

const defaultBedrockModelID = "meta.llama3-8b-instruct-v1:0"

// llama3PromptFormat wraps a bare prompt into the Llama 3 instruct chat
// format expected by the Bedrock runtime.
const llama3PromptFormat = "<|begin_of_text|><|start_header_id|>user<|end_header_id|>\n%s<|eot_id|><|start_header_id|>assistant<|end_header_id|>"

type llama3Request struct {
	Prompt      string  `json:"prompt"`
	MaxGenLen   int     `json:"max_gen_len"`
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
}

type llama3Response struct {
	Generation string `json:"generation"`
	StopReason string `json:"stop_reason"`
}

// BedrockClient generates text with a Meta Llama model served by AWS Bedrock.
type BedrockClient struct {
	svc     *bedrockruntime.BedrockRuntime
	modelID string
}

func NewBedrockClient(svc *bedrockruntime.BedrockRuntime, modelID string) *BedrockClient {
	if modelID == "" {
		modelID = defaultBedrockModelID
	}
	return &BedrockClient{svc: svc, modelID: modelID}
}

func (c *BedrockClient) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(llama3Request{
		Prompt:      fmt.Sprintf(llama3PromptFormat, prompt),
		MaxGenLen:   512,
		Temperature: 0.5,
		TopP:        0.9,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	result, err := c.svc.InvokeModelWithContext(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(c.modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return "", fmt.Errorf("%w: invoke %s: %v", ErrGeneration, c.modelID, err)
	}

	var response llama3Response
	if err := json.Unmarshal(result.Body, &response); err != nil {
		return "", fmt.Errorf("%w: decode %s response: %v", ErrGeneration, c.modelID, err)
	}
	return strings.TrimSpace(response.Generation), nil
}
