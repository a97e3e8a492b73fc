package pipeline

import (
	"github.com/sofmeright/pipewright/src/config"
)

func init() {
	Register("lint", func() Kind { return lintKind{} })
	Register("format", func() Kind { return formatKind{} })
	Register("typecheck", func() Kind { return typecheckKind{} })
}

// The three advisory quality kinds each wrap one static-analysis tool.
// Their findings are surfaced in the job output but never gate the run:
// stricter checks can be adopted incrementally without blocking work.

type lintKind struct{}

func (lintKind) Name() string   { return "lint" }
func (lintKind) Advisory() bool { return true }

func (lintKind) Units(tools config.ToolsConfig, _ config.MatrixSpec) ([]Unit, error) {
	cmd := append([]string{"ruff", "check"}, tools.SourceDirs...)
	return []Unit{{Job: "lint", Advisory: true, Command: cmd}}, nil
}

type formatKind struct{}

func (formatKind) Name() string   { return "format" }
func (formatKind) Advisory() bool { return true }

func (formatKind) Units(tools config.ToolsConfig, _ config.MatrixSpec) ([]Unit, error) {
	cmd := append([]string{"black", "--check"}, tools.SourceDirs...)
	return []Unit{{Job: "format", Advisory: true, Command: cmd}}, nil
}

type typecheckKind struct{}

func (typecheckKind) Name() string   { return "typecheck" }
func (typecheckKind) Advisory() bool { return true }

func (typecheckKind) Units(tools config.ToolsConfig, _ config.MatrixSpec) ([]Unit, error) {
	cmd := append([]string{"mypy"}, tools.TypecheckDirs...)
	return []Unit{{Job: "typecheck", Advisory: true, Command: cmd}}, nil
}
