package pipeline

import (
	"fmt"

	"github.com/sofmeright/pipewright/src/config"
)

// Plan expands the manifest's job list into execution units. Kind defaults
// are resolved here; per-job advisory overrides are applied last so a
// manifest can promote an advisory kind to blocking (or the reverse).
func Plan(cfg *config.Config) ([]Unit, error) {
	var units []Unit

	for i, spec := range cfg.Jobs {
		name := spec.Name
		if name == "" {
			name = spec.Kind
		}

		var (
			jobUnits []Unit
			err      error
		)

		switch {
		case spec.Kind != "":
			kind, kerr := Get(spec.Kind)
			if kerr != nil {
				return nil, fmt.Errorf("jobs[%d]: %w", i, kerr)
			}
			jobUnits, err = kind.Units(cfg.Tools, spec.Matrix)
			if err != nil {
				return nil, fmt.Errorf("jobs[%d] (%s): %w", i, name, err)
			}
			for j := range jobUnits {
				jobUnits[j].Advisory = kind.Advisory()
			}
			// Explicit command on a kind job replaces the default invocation
			// but keeps the kind's unit shape only for single-unit kinds.
			if len(spec.Command) > 0 && len(jobUnits) == 1 && jobUnits[0].InProcess == nil {
				jobUnits[0].Command = spec.Command
			}

		case len(spec.Command) > 0:
			jobUnits = []Unit{{Job: name, Command: spec.Command}}

		default:
			return nil, fmt.Errorf("jobs[%d] (%s): no kind or command", i, name)
		}

		for j := range jobUnits {
			jobUnits[j].Job = name
			if spec.Advisory != nil {
				jobUnits[j].Advisory = *spec.Advisory
			}
		}

		units = append(units, jobUnits...)
	}

	if len(units) == 0 {
		return nil, fmt.Errorf("no jobs planned")
	}
	return units, nil
}
