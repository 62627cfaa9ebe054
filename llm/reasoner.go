package llm

import (
	"context"
	"fmt"

	"github.com/mudler/xlog"
	"github.com/sashabaranov/go-openai"
)

const (
	maxRetries = 3
	// contextWindow caps how much raw conversation reaches the model; the
	// serialized state carries everything older.
	contextWindow = 10
)

// Reasoner is the LLM-backed reasoning step. Each Think renders the
// serialized tracker state into the system prompt, trims the conversation
// to the last few messages, and asks the model for the next move with the
// tool set bound. Parallel tool calls are disabled so the batch the model
// issues is an ordered list.
type Reasoner struct {
	client *openai.Client
	model  string
	tools  []openai.Tool
}

func NewReasoner(client *openai.Client, model string, tools []openai.Tool) *Reasoner {
	return &Reasoner{
		client: client,
		model:  model,
		tools:  tools,
	}
}

func (r *Reasoner) Think(ctx context.Context, conversation []openai.ChatCompletionMessage, stateText string) (openai.ChatCompletionMessage, error) {
	system, err := renderSystemPrompt(stateText)
	if err != nil {
		return openai.ChatCompletionMessage{}, fmt.Errorf("rendering system prompt: %w", err)
	}

	window := conversation
	if len(window) > contextWindow {
		window = window[len(window)-contextWindow:]
	}

	request := openai.ChatCompletionRequest{
		Model: r.model,
		Messages: append([]openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
		}, window...),
		Tools:             r.tools,
		ParallelToolCalls: false,
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		resp, err := r.client.CreateChatCompletion(ctx, request)
		if err != nil {
			lastErr = err
			xlog.Warn("Chat completion failed", "attempt", attempt+1, "error", err)
			continue
		}
		if len(resp.Choices) != 1 {
			lastErr = fmt.Errorf("expected one choice, got %d", len(resp.Choices))
			xlog.Warn("Unexpected completion shape", "attempt", attempt+1, "error", lastErr)
			continue
		}
		return resp.Choices[0].Message, nil
	}
	return openai.ChatCompletionMessage{}, fmt.Errorf("reasoning failed after %d attempts: %w", maxRetries, lastErr)
}
