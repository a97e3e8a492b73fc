package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/sofmeright/pipewright/src/pipeline"
)

func plainPrinter(buf *bytes.Buffer) *Printer {
	return &Printer{Writer: buf, Color: false}
}

func TestUnitLine(t *testing.T) {
	var buf bytes.Buffer
	p := plainPrinter(&buf)

	p.UnitLine(pipeline.Result{
		Job:      "test",
		Cell:     "python 3.11",
		Status:   pipeline.StatusSucceeded,
		Duration: 1500 * time.Millisecond,
	})

	out := buf.String()
	if !strings.Contains(out, "PASS") || !strings.Contains(out, "test [python 3.11]") {
		t.Errorf("unit line = %q", out)
	}
}

func TestUnitLineAdvisoryFailure(t *testing.T) {
	var buf bytes.Buffer
	p := plainPrinter(&buf)

	p.UnitLine(pipeline.Result{
		Job:      "lint",
		Advisory: true,
		Status:   pipeline.StatusFailed,
		Output:   "src/x.py:1:1: E501 line too long\n",
	})

	out := buf.String()
	if !strings.Contains(out, "WARN") {
		t.Errorf("advisory failure should show WARN, got %q", out)
	}
	if !strings.Contains(out, "does not gate") {
		t.Errorf("advisory note missing: %q", out)
	}
	if !strings.Contains(out, "E501") {
		t.Errorf("failure output should be echoed: %q", out)
	}
}

func TestUnitLineBlockingFailure(t *testing.T) {
	var buf bytes.Buffer
	p := plainPrinter(&buf)

	p.UnitLine(pipeline.Result{
		Job:    "integration",
		Cell:   "version",
		Status: pipeline.StatusFailed,
		Output: "command not found\n",
	})

	out := buf.String()
	if !strings.Contains(out, "FAIL") {
		t.Errorf("blocking failure should show FAIL, got %q", out)
	}
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	p := plainPrinter(&buf)

	results := []pipeline.Result{
		{Job: "lint", Advisory: true, Status: pipeline.StatusFailed},
		{Job: "test", Cell: "python 3.10", Status: pipeline.StatusSucceeded},
		{Job: "test", Cell: "python 3.11", Status: pipeline.StatusSucceeded},
	}

	p.Summary(results, 3*time.Second)
	out := buf.String()

	if !strings.Contains(out, "pipeline succeeded") {
		t.Errorf("summary should report success despite advisory failure: %q", out)
	}
	if !strings.Contains(out, "(2/2 units passed)") {
		t.Errorf("matrix rollup missing: %q", out)
	}
	if !strings.Contains(out, "advisory") {
		t.Errorf("gate labels missing: %q", out)
	}
}

func TestSummaryFailed(t *testing.T) {
	var buf bytes.Buffer
	p := plainPrinter(&buf)

	p.Summary([]pipeline.Result{
		{Job: "test", Status: pipeline.StatusFailed},
	}, time.Second)

	if !strings.Contains(buf.String(), "pipeline failed") {
		t.Errorf("summary = %q", buf.String())
	}
}
