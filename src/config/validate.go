package config

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// validKinds mirrors the built-in kind registry. Kept here so manifest
// validation needs no import of the pipeline package.
var validKinds = map[string]bool{
	"lint":        true,
	"format":      true,
	"typecheck":   true,
	"test":        true,
	"integration": true,
	"secrets":     true,
}

// Validate checks structural invariants of a loaded Config.
// Returns warnings (soft issues) and a hard error if the config is invalid.
func Validate(cfg *Config) (warnings []string, err error) {
	var errs []string

	// ── Trigger ───────────────────────────────────────────────────────────

	warnings = append(warnings, patternWarnings("trigger.push.branches", cfg.Trigger.Push.Branches)...)
	warnings = append(warnings, patternWarnings("trigger.merge_request.branches", cfg.Trigger.MergeRequest.Branches)...)

	// ── Jobs ──────────────────────────────────────────────────────────────

	if len(cfg.Jobs) == 0 {
		errs = append(errs, "jobs: at least one job is required")
	}

	names := make(map[string]bool)
	for i, j := range cfg.Jobs {
		jpath := fmt.Sprintf("jobs[%d]", i)

		name := j.Name
		if name == "" {
			name = j.Kind
		}
		if name == "" {
			errs = append(errs, fmt.Sprintf("%s: name is required for command jobs", jpath))
		} else if names[name] {
			errs = append(errs, fmt.Sprintf("%s: duplicate job name %q", jpath, name))
		} else {
			names[name] = true
		}

		if j.Kind == "" && len(j.Command) == 0 {
			errs = append(errs, fmt.Sprintf("%s: either kind or command is required", jpath))
		}
		if j.Kind != "" && !validKinds[j.Kind] {
			errs = append(errs, fmt.Sprintf("%s: unknown kind %q (supported: %s)", jpath, j.Kind, strings.Join(kindNames(), ", ")))
		}
		if j.Kind == "secrets" && len(j.Command) > 0 {
			warnings = append(warnings, fmt.Sprintf("%s: secrets runs in-process, command is ignored", jpath))
		}

		for _, v := range j.Matrix.Python {
			if _, verr := semver.NewVersion(v); verr != nil {
				errs = append(errs, fmt.Sprintf("%s: matrix version %q is not a valid version", jpath, v))
			}
		}
		if !j.Matrix.IsZero() && j.Kind != "test" && j.Kind != "" {
			warnings = append(warnings, fmt.Sprintf("%s: matrix on kind %q has no effect", jpath, j.Kind))
		}
	}

	if len(errs) > 0 {
		return warnings, fmt.Errorf("invalid config:\n  %s", strings.Join(errs, "\n  "))
	}
	return warnings, nil
}

// patternWarnings flags patterns that fail to compile as regex. They still
// work as literal matches, but that is usually a typo.
func patternWarnings(path string, patterns []string) []string {
	var out []string
	for _, p := range patterns {
		raw := strings.TrimPrefix(p, "!")
		if _, err := regexp.Compile(raw); err != nil {
			out = append(out, fmt.Sprintf("%s: %q is not a valid regex, matching literally", path, p))
		}
	}
	return out
}

func kindNames() []string {
	names := make([]string, 0, len(validKinds))
	for k := range validKinds {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
