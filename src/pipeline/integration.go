package pipeline

import (
	"github.com/sofmeright/pipewright/src/config"
)

func init() {
	Register("integration", func() Kind { return integrationKind{} })
}

// integrationKind smoke-tests the packaged CLI entry point: a version query
// and a help query, each of which must exit zero. Blocking — a broken
// entry point means the package is unusable regardless of test results.
type integrationKind struct{}

func (integrationKind) Name() string   { return "integration" }
func (integrationKind) Advisory() bool { return false }

func (integrationKind) Units(tools config.ToolsConfig, _ config.MatrixSpec) ([]Unit, error) {
	return []Unit{
		{Job: "integration", Cell: "version", Command: []string{tools.Entrypoint, "--version"}},
		{Job: "integration", Cell: "help", Command: []string{tools.Entrypoint, "--help"}},
	}, nil
}
