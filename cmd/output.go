package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/gibbs-sim/gibbs-sim/sim"
	"github.com/gibbs-sim/gibbs-sim/sim/engine"
	"github.com/gibbs-sim/gibbs-sim/sim/trace"
)

// statusExitBase offsets sampler status codes so they never collide with
// exit code 1 of a fatal configuration error.
const statusExitBase = 10

// exitCode is the process exit code for a finished run.
func exitCode(status sim.Status) int {
	if status == sim.StatusSuccess {
		return 0
	}
	return statusExitBase + int(status)
}

// RunOutput is the JSON document written for every run.
type RunOutput struct {
	RunID      string              `json:"run_id"`
	Sampler    string              `json:"sampler"`
	Model      string              `json:"model"`
	Seed       int64               `json:"seed"`
	Status     string              `json:"status"`
	StatusCode int                 `json:"status_code"`
	N          int                 `json:"n"`
	Points     [][2]float64        `json:"points"`
	Parents    [][2]float64        `json:"parents,omitempty"`
	ElapsedMs  float64             `json:"elapsed_ms"`
	Trace      *trace.TraceSummary `json:"trace_summary,omitempty"`
}

// newRunOutput fills the fields common to every sampler.
func newRunOutput(sampler, model string, seedValue int64, status sim.Status, pts []sim.Point, elapsed time.Duration) RunOutput {
	return RunOutput{
		RunID:      uuid.New().String(),
		Sampler:    sampler,
		Model:      model,
		Seed:       seedValue,
		Status:     status.String(),
		StatusCode: int(status),
		N:          len(pts),
		Points:     pairs(pts),
		ElapsedMs:  float64(elapsed.Microseconds()) / 1000,
	}
}

func pairs(pts []sim.Point) [][2]float64 {
	out := make([][2]float64, len(pts))
	for i, p := range pts {
		out[i] = [2]float64{p.X, p.Y}
	}
	return out
}

// report writes the JSON result and metrics of an engine run, then exits
// with exitCode when the run did not succeed.
func report(sampler, model string, seedValue int64, res engine.Result, tr *trace.SimulationTrace, elapsed time.Duration) {
	out := newRunOutput(sampler, model, seedValue, res.Status, res.Points(), elapsed)
	if tr.Enabled() {
		out.Trace = trace.Summarize(tr)
	}
	if err := writeOutput(out, outputPath); err != nil {
		logrus.Fatalf("Failed to write output: %v", err)
	}

	metrics := newRunMetrics()
	metrics.observe(out, elapsed)
	metrics.observeDiagnostics(out, res.Diagnostics)
	if err := metrics.write(metricsPath); err != nil {
		logrus.Fatalf("Failed to write metrics: %v", err)
	}

	if res.Status != sim.StatusSuccess {
		logrus.Warnf("Run %s finished with status %s", out.RunID, res.Status)
		os.Exit(exitCode(res.Status))
	}
}

// writeOutput marshals out to path, or to stdout when path is empty.
func writeOutput(out RunOutput, path string) error {
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling output: %w", err)
	}
	if path == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	logrus.Infof("Result written to %s", path)
	return nil
}
