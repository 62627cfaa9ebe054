// Package runner sequences one trip-planning run: reasoning, intent
// recording, tool execution, result resolution, round after round until the
// booking register is complete, the model stops calling tools, or the round
// budget runs out.
package runner

import (
	"context"
	"fmt"

	"github.com/mudler/xlog"
	"github.com/sashabaranov/go-openai"

	"github.com/tripbench/tripbench/core/tracker"
	"github.com/tripbench/tripbench/core/types"
)

// ReasoningStep produces the next assistant message, given the conversation
// so far and the serialized tracker state. Implementations decide how much
// of either actually reaches the model.
type ReasoningStep interface {
	Think(ctx context.Context, conversation []openai.ChatCompletionMessage, stateText string) (openai.ChatCompletionMessage, error)
}

// RunResult is what a finished run exposes to the orchestrator.
type RunResult struct {
	Success      bool
	Phase        tracker.Phase
	State        *tracker.State
	Violations   []tracker.Violation
	Conversation []openai.ChatCompletionMessage
	Rounds       int
	ToolCalls    map[string]int
}

type Runner struct {
	options *options
}

func New(opts ...Option) (*Runner, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to set options: %w", err)
	}
	if options.reasoner == nil {
		return nil, fmt.Errorf("a reasoning step is required")
	}
	if len(options.actions) == 0 {
		return nil, fmt.Errorf("at least one action is required")
	}
	return &Runner{options: options}, nil
}

// Run drives one complete run with a fresh tracker. A round that started
// always finishes its pre-update/execution/post-update triple; cancellation
// is only observed between LLM and tool calls through ctx.
func (r *Runner) Run(ctx context.Context) (*RunResult, error) {
	tr := tracker.New()
	conversation := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: r.options.userPrompt},
	}
	result := &RunResult{ToolCalls: map[string]int{}}

	defer func() {
		result.Success = tr.Register().IsComplete()
		result.Phase = tr.Phase()
		result.State = tr.StateView()
		result.Violations = tr.Violations()
		result.Conversation = conversation
	}()

	for round := 0; round < r.options.maxRounds; round++ {
		msg, err := r.options.reasoner.Think(ctx, conversation, tr.Serialize())
		if err != nil {
			return result, fmt.Errorf("reasoning step failed: %w", err)
		}
		conversation = append(conversation, msg)

		if len(msg.ToolCalls) == 0 {
			xlog.Info("Assistant stopped calling tools", "round", round)
			return result, nil
		}
		result.Rounds++

		calls, err := types.FromOpenAIToolCalls(msg.ToolCalls)
		if err != nil {
			return result, err
		}
		for _, c := range calls {
			result.ToolCalls[c.Name]++
		}

		if err := tr.PreToolUpdate(calls); err != nil {
			return result, err
		}

		// Tools execute sequentially in the order the model issued them;
		// parallel execution is disabled to keep intent/result ordering
		// auditable.
		outputs := make([]types.ToolResult, 0, len(calls))
		for _, call := range calls {
			out := r.execute(ctx, call)
			outputs = append(outputs, out)
			conversation = append(conversation, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				ToolCallID: out.CallID,
				Name:       out.Name,
				Content:    out.Content,
			})
		}

		if err := tr.PostToolUpdate(calls, outputs); err != nil {
			return result, err
		}
		if tr.Phase() == tracker.PhaseComplete {
			return result, nil
		}
		if err := tr.NextRound(); err != nil {
			return result, err
		}
	}

	tr.Exhaust()
	xlog.Info("Round budget exhausted", "rounds", r.options.maxRounds)
	return result, nil
}

// execute runs one tool call. An unknown tool or a failing simulator is
// reported to the model as an error payload rather than failing the run.
func (r *Runner) execute(ctx context.Context, call types.ToolCall) types.ToolResult {
	out := types.ToolResult{CallID: call.ID, Name: call.Name}

	action := r.options.actions.Find(call.Name)
	if action == nil {
		out.Content = fmt.Sprintf(`{"error": "unknown tool %q"}`, call.Name)
		return out
	}

	res, err := action.Run(ctx, call.Params)
	if err != nil {
		xlog.Warn("Tool execution failed", "tool", call.Name, "error", err)
		out.Content = fmt.Sprintf(`{"error": %q}`, err.Error())
		return out
	}
	out.Content = res.Result
	out.Metadata = res.Metadata
	return out
}
