package classifier

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-classifier/internal/config"
	apperrors "github.com/spec-kit/ticket-classifier/pkg/util"
)

const systemPrompt = `You are an expert customer support ticket analyzer.

Your task is to analyze customer support tickets and extract the following information:

1. Summary: Create a concise 1-2 sentence summary of the ticket's main issue or request.

2. Category: Classify the ticket into one of these categories:
   - billing: Issues related to payments, charges, refunds, or subscriptions
   - technical: Technical problems, bugs, errors, or system issues
   - feature_request: Requests for new features or improvements
   - general: General inquiries, questions, or uncategorized issues

3. Priority: Determine the urgency level:
   - low: Minor issues, questions, general feedback
   - medium: Important but not urgent, workarounds available
   - high: Significant issues affecting user experience
   - critical: Urgent issues requiring immediate attention, blocking functionality

4. Sentiment Score: Analyze the emotional tone from 0.0 (very negative, angry, frustrated)
   to 1.0 (very positive, happy, satisfied). Consider:
   - Language used (polite vs aggressive)
   - Emotional indicators (exclamation marks, capitalization)
   - Overall tone and context

Respond with a JSON object of this exact structure and nothing else:
{
    "summary": "concise summary",
    "category": "billing|technical|feature_request|general",
    "priority": "low|medium|high|critical",
    "sentiment_score": 0.5
}`

// chatCompleter is the slice of the OpenAI client the classifier needs.
// *openai.Client satisfies it.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIClassifier calls a chat-completion model and validates its
// structured response. The API key is injected through the constructor;
// no process-wide environment state is touched.
type OpenAIClassifier struct {
	client      chatCompleter
	model       string
	maxTokens   int
	temperature float64
	logger      *zap.Logger
}

// NewOpenAIClassifier builds a classifier from configuration.
func NewOpenAIClassifier(cfg config.ClassifierConfig, logger *zap.Logger) *OpenAIClassifier {
	return &OpenAIClassifier{
		client:      openai.NewClient(cfg.APIKey),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		logger:      logger,
	}
}

// Classify sends the ticket content to the model and parses the response.
func (c *OpenAIClassifier) Classify(ctx context.Context, content string) (ProcessedTicket, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: "Analyze this customer support ticket:\n\n" + content,
			},
		},
		MaxTokens:   c.maxTokens,
		Temperature: float32(c.temperature),
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return ProcessedTicket{}, apperrors.NewClassificationError("model call failed", err)
	}
	if len(resp.Choices) == 0 {
		return ProcessedTicket{}, apperrors.NewClassificationError("model returned no choices", nil)
	}

	result, err := decodeResponse(resp.Choices[0].Message.Content)
	if err != nil {
		c.logger.Error("failed to parse model response",
			zap.Error(err),
			zap.String("response", resp.Choices[0].Message.Content))
		return ProcessedTicket{}, err
	}

	c.logger.Debug("ticket classified",
		zap.String("category", string(result.Category)),
		zap.String("priority", string(result.Priority)),
		zap.Float64("sentiment_score", result.SentimentScore))
	return result, nil
}

// decodeResponse unmarshals and validates the model output. Markdown code
// fences around the JSON body are tolerated.
func decodeResponse(raw string) (ProcessedTicket, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var result ProcessedTicket
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return ProcessedTicket{}, apperrors.NewClassificationError("model response is not valid JSON", err)
	}
	if err := result.Validate(); err != nil {
		return ProcessedTicket{}, invalidResponse(err)
	}
	return result, nil
}
