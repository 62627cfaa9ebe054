package experiment_test

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sashabaranov/go-openai"

	"github.com/tripbench/tripbench/core/runner"
	"github.com/tripbench/tripbench/experiment"
	"github.com/tripbench/tripbench/services/tools"
)

// fakeReasoner replays a fixed script, then stops calling tools.
type fakeReasoner struct {
	script []openai.ChatCompletionMessage
	err    error
}

func (f *fakeReasoner) Think(ctx context.Context, conversation []openai.ChatCompletionMessage, stateText string) (openai.ChatCompletionMessage, error) {
	if f.err != nil {
		return openai.ChatCompletionMessage{}, f.err
	}
	if len(f.script) == 0 {
		return openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: "Done."}, nil
	}
	msg := f.script[0]
	f.script = f.script[1:]
	return msg, nil
}

func toolCall(id, name, args string) openai.ToolCall {
	return openai.ToolCall{
		ID:       id,
		Type:     openai.ToolTypeFunction,
		Function: openai.FunctionCall{Name: name, Arguments: args},
	}
}

// bookingScript drives a run through search and both bookings in the one
// fully bookable date window.
func bookingScript() []openai.ChatCompletionMessage {
	return []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleAssistant, ToolCalls: []openai.ToolCall{
			toolCall("c1", "list_flights", `{"dest":"BKK","dep":"2025-10-03","ret":"2025-10-10"}`),
			toolCall("c2", "list_hotels", `{"city":"BKK","checkin":"2025-10-03","checkout":"2025-10-10"}`),
		}},
		{Role: openai.ChatMessageRoleAssistant, ToolCalls: []openai.ToolCall{
			toolCall("c3", "book_flight", `{"flight_id":"FL-BKK-312","departure":"2025-10-03","return_date":"2025-10-10","dest":"BKK"}`),
			toolCall("c4", "book_hotel", `{"hotel_id":"HT-BKK-47","offer_id":"OF-4701","check_in":"2025-10-03","check_out":"2025-10-10","city":"BKK"}`),
		}},
	}
}

func factoryFor(reasoner runner.ReasoningStep) func() (*runner.Runner, error) {
	return func() (*runner.Runner, error) {
		return runner.New(
			runner.WithReasoner(reasoner),
			runner.WithActions(tools.All()...),
		)
	}
}

func readMetrics(dir string) []experiment.TrialMetrics {
	entries, err := os.ReadDir(dir)
	Expect(err).ToNot(HaveOccurred())
	Expect(entries).To(HaveLen(1))
	Expect(entries[0].Name()).To(HaveSuffix(".jsonl"))

	f, err := os.Open(filepath.Join(dir, entries[0].Name()))
	Expect(err).ToNot(HaveOccurred())
	defer f.Close()

	var lines []experiment.TrialMetrics
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var m experiment.TrialMetrics
		Expect(json.Unmarshal(scanner.Bytes(), &m)).To(Succeed())
		lines = append(lines, m)
	}
	Expect(scanner.Err()).ToNot(HaveOccurred())
	return lines
}

var _ = Describe("Experiment", func() {
	var logDir string

	BeforeEach(func() {
		logDir = GinkgoT().TempDir()
	})

	It("records one metrics line per successful trial", func() {
		e := &experiment.Experiment{
			Trials: 2,
			LogDir: logDir,
			Model:  "test-model",
			Factory: func() (*runner.Runner, error) {
				return factoryFor(&fakeReasoner{script: bookingScript()})()
			},
		}

		summary, err := e.Run(context.Background())
		Expect(err).ToNot(HaveOccurred())
		Expect(summary.Trials).To(Equal(2))
		Expect(summary.Successes).To(Equal(2))
		Expect(summary.Rate).To(Equal(1.0))

		lines := readMetrics(logDir)
		Expect(lines).To(HaveLen(2))
		for i, m := range lines {
			Expect(m.Trial).To(Equal(i))
			Expect(m.Success).To(BeTrue())
			Expect(m.Finished).To(BeTrue())
			Expect(m.Rounds).To(Equal(2))
			Expect(m.ToolCalls).To(HaveKeyWithValue("book_flight", 1))
		}
	})

	It("keeps going past a failing trial", func() {
		e := &experiment.Experiment{
			Trials: 1,
			LogDir: logDir,
			Model:  "test-model",
			Factory: func() (*runner.Runner, error) {
				return factoryFor(&fakeReasoner{err: errors.New("endpoint down")})()
			},
		}

		summary, err := e.Run(context.Background())
		Expect(err).ToNot(HaveOccurred())
		Expect(summary.Successes).To(BeZero())
		Expect(summary.Rate).To(BeZero())

		lines := readMetrics(logDir)
		Expect(lines).To(HaveLen(1))
		Expect(lines[0].Finished).To(BeFalse())
		Expect(lines[0].Error).To(ContainSubstring("endpoint down"))
	})

	It("embeds the model name in the metrics file", func() {
		e := &experiment.Experiment{
			Trials:  1,
			LogDir:  logDir,
			Model:   "qwen3-30b",
			Factory: factoryFor(&fakeReasoner{}),
		}

		_, err := e.Run(context.Background())
		Expect(err).ToNot(HaveOccurred())

		entries, err := os.ReadDir(logDir)
		Expect(err).ToNot(HaveOccurred())
		Expect(entries[0].Name()).To(ContainSubstring("stateful_qwen3-30b"))
	})
})
