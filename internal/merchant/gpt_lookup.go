package merchant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

type GPTLookup struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float64
	logger      *zap.Logger
}

func NewGPTLookup(apiKey string, model string, maxTokens int, temperature float64, logger *zap.Logger) *GPTLookup {
	return &GPTLookup{
		client:      openai.NewClient(apiKey),
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		logger:      logger,
	}
}

// Classify asks the model what kind of business the merchant is and what it
// sells. Errors are returned to the caller, which degrades to keyword-only
// scoring.
func (l *GPTLookup) Classify(ctx context.Context, merchantName string) (*Metadata, error) {
	prompt := fmt.Sprintf(`Classify the following merchant name into a business type and the products it typically sells.

Return the response as a JSON object with this structure:
{
    "merchant_type": "business_type",
    "products": ["product1", "product2", ...]
}

Merchant: %s`, merchantName)

	resp, err := l.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: l.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   l.maxTokens,
			Temperature: float32(l.temperature),
		},
	)
	if err != nil {
		l.logger.Warn("Merchant lookup request failed",
			zap.Error(err),
			zap.String("merchant", merchantName))
		return nil, err
	}

	var metadata Metadata
	response := strings.TrimSpace(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(response), &metadata); err != nil {
		l.logger.Warn("Failed to parse merchant lookup response",
			zap.Error(err),
			zap.String("merchant", merchantName),
			zap.String("response", response))
		return nil, fmt.Errorf("parsing merchant metadata: %w", err)
	}

	if metadata.MerchantType == "" {
		return nil, nil
	}
	return &metadata, nil
}
