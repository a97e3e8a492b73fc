package pipeline

import (
	"context"
	"strings"
	"sync"
	"testing"
)

func TestRunnerBlockingFailure(t *testing.T) {
	r := &Runner{RootDir: t.TempDir(), Workers: 2}

	units := []Unit{
		{Job: "ok", Command: []string{"true"}},
		{Job: "bad", Command: []string{"false"}},
	}

	results, err := r.Run(context.Background(), units)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results", len(results))
	}

	// Results sorted by job name: bad, ok.
	if results[0].Job != "bad" || results[0].Status != StatusFailed || results[0].ExitCode == 0 {
		t.Errorf("bad result = %+v", results[0])
	}
	if results[1].Job != "ok" || results[1].Status != StatusSucceeded || results[1].ExitCode != 0 {
		t.Errorf("ok result = %+v", results[1])
	}

	if Aggregate(results) != StatusFailed {
		t.Error("blocking failure should fail the run")
	}
}

func TestRunnerAdvisoryFailureDoesNotGate(t *testing.T) {
	r := &Runner{RootDir: t.TempDir()}

	units := []Unit{
		{Job: "lint", Advisory: true, Command: []string{"false"}},
		{Job: "test", Command: []string{"true"}},
	}

	results, err := r.Run(context.Background(), units)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if Aggregate(results) != StatusSucceeded {
		t.Error("advisory failure must not fail the run")
	}
	for _, res := range results {
		if res.Job == "lint" && res.Status != StatusFailed {
			t.Error("advisory failure should still be recorded as failed")
		}
	}
}

func TestRunnerMatrixCellIndependence(t *testing.T) {
	r := &Runner{RootDir: t.TempDir(), Workers: 3}

	units := []Unit{
		{Job: "test", Cell: "a", Command: []string{"true"}},
		{Job: "test", Cell: "b", Command: []string{"false"}},
		{Job: "test", Cell: "c", Command: []string{"true"}},
	}

	results, err := r.Run(context.Background(), units)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	summaries := Summarize(results)
	if len(summaries) != 1 {
		t.Fatalf("got %d summaries", len(summaries))
	}
	s := summaries[0]
	if s.Units != 3 || s.Failed != 1 || s.Status != StatusFailed {
		t.Errorf("summary = %+v, want one failed cell failing the job", s)
	}
	if Aggregate(results) != StatusFailed {
		t.Error("one failed matrix cell must fail the run")
	}
}

func TestRunnerCapturesOutput(t *testing.T) {
	r := &Runner{RootDir: t.TempDir()}

	units := []Unit{
		{Job: "echo", Command: []string{"sh", "-c", "echo hello; echo err >&2"}},
	}

	results, err := r.Run(context.Background(), units)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	out := results[0].Output
	if !strings.Contains(out, "hello") || !strings.Contains(out, "err") {
		t.Errorf("combined output missing streams: %q", out)
	}
}

func TestRunnerMissingBinary(t *testing.T) {
	r := &Runner{RootDir: t.TempDir()}

	units := []Unit{
		{Job: "ghost", Command: []string{"definitely-not-a-real-binary-xyz"}},
	}

	results, err := r.Run(context.Background(), units)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	res := results[0]
	if res.Status != StatusFailed || res.ExitCode != -1 {
		t.Errorf("missing binary result = %+v", res)
	}
	if res.Output == "" {
		t.Error("missing binary should report the error in output")
	}
}

func TestRunnerInProcessUnit(t *testing.T) {
	r := &Runner{RootDir: t.TempDir()}

	units := []Unit{
		{Job: "native-ok", Advisory: true, InProcess: func(ctx context.Context, dir string) (string, bool, error) {
			return "clean\n", true, nil
		}},
		{Job: "native-bad", Advisory: true, InProcess: func(ctx context.Context, dir string) (string, bool, error) {
			return "findings\n", false, nil
		}},
	}

	results, err := r.Run(context.Background(), units)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	for _, res := range results {
		switch res.Job {
		case "native-ok":
			if res.Status != StatusSucceeded {
				t.Errorf("native-ok = %+v", res)
			}
		case "native-bad":
			if res.Status != StatusFailed || res.ExitCode != 1 {
				t.Errorf("native-bad = %+v", res)
			}
		}
	}
	if Aggregate(results) != StatusSucceeded {
		t.Error("advisory in-process failure must not gate")
	}
}

func TestRunnerOnFinishSerialized(t *testing.T) {
	r := &Runner{RootDir: t.TempDir(), Workers: 4}

	var mu sync.Mutex
	seen := 0
	r.OnFinish = func(Result) {
		mu.Lock()
		seen++
		mu.Unlock()
	}

	units := make([]Unit, 8)
	for i := range units {
		units[i] = Unit{Job: "ok", Cell: string(rune('a' + i)), Command: []string{"true"}}
	}

	if _, err := r.Run(context.Background(), units); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if seen != 8 {
		t.Errorf("OnFinish called %d times, want 8", seen)
	}
}

func TestRunnerCancelledContext(t *testing.T) {
	r := &Runner{RootDir: t.TempDir()}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Run(ctx, []Unit{{Job: "ok", Command: []string{"true"}}})
	if err == nil {
		t.Error("cancelled context should surface as an error")
	}
}
