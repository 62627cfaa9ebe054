// Package experiment runs repeated trials of the stateful agent and records
// per-trial metrics as JSONL.
package experiment

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mudler/xlog"

	"github.com/tripbench/tripbench/core/runner"
)

// TrialMetrics is one JSONL line per trial.
type TrialMetrics struct {
	Trial      int            `json:"trial"`
	Success    bool           `json:"success"`
	Finished   bool           `json:"finished"`
	Error      string         `json:"error,omitempty"`
	Rounds     int            `json:"rounds"`
	ElapsedSec float64        `json:"elapsed_sec"`
	ToolCalls  map[string]int `json:"tool_calls"`
	Violations int            `json:"violations"`
}

// Summary aggregates a whole experiment.
type Summary struct {
	Trials    int     `json:"trials"`
	Successes int     `json:"successes"`
	Rate      float64 `json:"success_rate"`
}

type Experiment struct {
	Trials  int
	LogDir  string
	Model   string
	Factory func() (*runner.Runner, error)
}

// Run executes the configured number of trials. A trial that fails with a
// protocol error is recorded as unfinished and the experiment continues.
func (e *Experiment) Run(ctx context.Context) (Summary, error) {
	if err := os.MkdirAll(e.LogDir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("creating log dir: %w", err)
	}

	name := fmt.Sprintf("%s_stateful_%s.jsonl", time.Now().Format("20060102-150405"), filepath.Base(e.Model))
	f, err := os.Create(filepath.Join(e.LogDir, name))
	if err != nil {
		return Summary{}, fmt.Errorf("creating metrics log: %w", err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)

	summary := Summary{Trials: e.Trials}
	for trial := 0; trial < e.Trials; trial++ {
		metrics := e.runTrial(ctx, trial)
		if metrics.Success {
			summary.Successes++
		}
		if err := enc.Encode(metrics); err != nil {
			return summary, fmt.Errorf("writing metrics: %w", err)
		}
		xlog.Info("Trial finished",
			"trial", trial,
			"success", metrics.Success,
			"rounds", metrics.Rounds,
			"violations", metrics.Violations,
		)
	}

	if summary.Trials > 0 {
		summary.Rate = float64(summary.Successes) / float64(summary.Trials)
	}
	return summary, nil
}

func (e *Experiment) runTrial(ctx context.Context, trial int) TrialMetrics {
	metrics := TrialMetrics{Trial: trial, ToolCalls: map[string]int{}}
	start := time.Now()

	r, err := e.Factory()
	if err != nil {
		metrics.Error = err.Error()
		return metrics
	}

	res, err := r.Run(ctx)
	metrics.ElapsedSec = time.Since(start).Seconds()
	if err != nil {
		metrics.Error = err.Error()
	} else {
		metrics.Finished = true
	}
	if res != nil {
		metrics.Success = res.Success
		metrics.Rounds = res.Rounds
		metrics.ToolCalls = res.ToolCalls
		metrics.Violations = len(res.Violations)
	}
	return metrics
}
