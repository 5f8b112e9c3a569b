package commentary

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"ratecast/internal/domain"
)

// LLMClient abstracts the OpenAI chat completions API for testability.
type LLMClient interface {
	CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error)
}

// LLMNarrator asks a chat model to write the commentary. When the call fails
// and a fallback is set, the fallback's text is returned instead.
type LLMNarrator struct {
	tracer   trace.Tracer
	logger   zerolog.Logger
	llm      LLMClient
	model    string
	bands    Bands
	fallback Narrator
}

func NewLLMNarrator(tracer trace.Tracer, logger zerolog.Logger, llm LLMClient, model string, bands Bands) *LLMNarrator {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &LLMNarrator{
		tracer: tracer,
		logger: logger.With().Str("component", "commentary").Logger(),
		llm:    llm,
		model:  model,
		bands:  bands,
	}
}

func (n *LLMNarrator) SetFallback(f Narrator) {
	n.fallback = f
}

func (n *LLMNarrator) Narrate(ctx context.Context, forecast float64, signal domain.Signal, record domain.Record) (string, error) {
	ctx, span := n.tracer.Start(ctx, "commentary.llm-narrate")
	defer span.End()

	if err := record.Require(RequiredFields...); err != nil {
		return "", err
	}

	brief, err := FormatBrief(forecast, signal, record)
	if err != nil {
		return "", err
	}
	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(BuildSystemPrompt(n.bands)),
		openai.UserMessage(brief),
	}

	reply, err := n.callLLM(ctx, messages)
	if err != nil {
		span.RecordError(err)
		if n.fallback != nil {
			n.logger.Warn().Err(err).Msg("llm commentary failed, using fallback narrator")
			return n.fallback.Narrate(ctx, forecast, signal, record)
		}
		return "", fmt.Errorf("commentary unavailable: %w", err)
	}
	return reply, nil
}

func (n *LLMNarrator) callLLM(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion) (string, error) {
	ctx, span := n.tracer.Start(ctx, "commentary.llm-call")
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.model", n.model),
		attribute.Int("llm.message_count", len(messages)),
	)

	completion, err := n.llm.CreateChatCompletion(ctx, openai.ChatCompletionNewParams{
		Model:    n.model,
		Messages: messages,
	})
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no choices in LLM response")
	}

	reply := completion.Choices[0].Message.Content
	if reply == "" {
		return "", fmt.Errorf("empty LLM response")
	}
	span.SetAttributes(attribute.Int("llm.reply_length", len(reply)))
	return reply, nil
}

// openaiClient wraps the official SDK's chat completions service.
type openaiClient struct {
	client openai.Client
}

func NewOpenAIClient(apiKey string) LLMClient {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &openaiClient{client: client}
}

func (c *openaiClient) CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	return c.client.Chat.Completions.New(ctx, params)
}
