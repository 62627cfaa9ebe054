package main

import (
	"context"
	"os"
	"strconv"

	"github.com/mudler/xlog"

	"github.com/tripbench/tripbench/core/runner"
	"github.com/tripbench/tripbench/experiment"
	"github.com/tripbench/tripbench/llm"
	"github.com/tripbench/tripbench/services/tools"
)

var (
	model     = os.Getenv("TRIPBENCH_MODEL")
	apiURL    = os.Getenv("TRIPBENCH_LLM_API_URL")
	apiKey    = os.Getenv("TRIPBENCH_LLM_API_KEY")
	trials    = os.Getenv("TRIPBENCH_TRIALS")
	maxRounds = os.Getenv("TRIPBENCH_MAX_ROUNDS")
	logDir    = os.Getenv("TRIPBENCH_LOG_DIR")
)

func init() {
	if model == "" {
		panic("TRIPBENCH_MODEL not set")
	}
	if apiURL == "" {
		panic("TRIPBENCH_LLM_API_URL not set")
	}
	if logDir == "" {
		logDir = "logs"
	}
}

func intEnv(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		panic("invalid integer: " + value)
	}
	return n
}

func main() {
	actions := tools.All()
	client := llm.NewClient(apiKey, apiURL)
	reasoner := llm.NewReasoner(client, model, actions.ToTools())
	rounds := intEnv(maxRounds, 40)

	e := &experiment.Experiment{
		Trials: intEnv(trials, 10),
		LogDir: logDir,
		Model:  model,
		Factory: func() (*runner.Runner, error) {
			return runner.New(
				runner.WithReasoner(reasoner),
				runner.WithActions(actions...),
				runner.WithMaxRounds(rounds),
			)
		},
	}

	summary, err := e.Run(context.Background())
	if err != nil {
		xlog.Error("Experiment failed", "error", err)
		os.Exit(1)
	}
	xlog.Info("Experiment done",
		"trials", summary.Trials,
		"successes", summary.Successes,
		"success_rate", summary.Rate,
	)
}
