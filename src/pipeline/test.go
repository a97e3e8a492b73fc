package pipeline

import (
	"fmt"
	"sort"

	"github.com/Masterminds/semver/v3"
	"github.com/sofmeright/pipewright/src/config"
)

func init() {
	Register("test", func() Kind { return testKind{} })
}

// testKind runs the test suite once per interpreter version. Every cell is
// an independent execution; the job fails if any cell fails.
type testKind struct{}

func (testKind) Name() string   { return "test" }
func (testKind) Advisory() bool { return false }

func (testKind) Units(tools config.ToolsConfig, matrix config.MatrixSpec) ([]Unit, error) {
	versions := matrix.Python
	if len(versions) == 0 {
		// No matrix — single cell on the ambient interpreter.
		return []Unit{{
			Job:     "test",
			Command: pytestCommand("python3", tools),
		}}, nil
	}

	sorted, err := sortVersions(versions)
	if err != nil {
		return nil, err
	}

	units := make([]Unit, 0, len(sorted))
	for _, v := range sorted {
		units = append(units, Unit{
			Job:     "test",
			Cell:    "python " + v,
			Command: pytestCommand("python"+v, tools),
		})
	}
	return units, nil
}

func pytestCommand(interpreter string, tools config.ToolsConfig) []string {
	return []string{
		interpreter, "-m", "pytest",
		tools.TestsDir, "-v",
		"--cov=" + tools.Package,
	}
}

// sortVersions validates matrix entries as versions and orders them oldest
// first, so report order is stable regardless of manifest order.
func sortVersions(raw []string) ([]string, error) {
	type entry struct {
		raw string
		ver *semver.Version
	}

	entries := make([]entry, 0, len(raw))
	for _, s := range raw {
		v, err := semver.NewVersion(s)
		if err != nil {
			return nil, fmt.Errorf("matrix version %q: %w", s, err)
		}
		entries = append(entries, entry{raw: s, ver: v})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ver.LessThan(entries[j].ver)
	})

	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.raw
	}
	return out, nil
}
