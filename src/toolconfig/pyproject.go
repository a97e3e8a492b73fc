// Package toolconfig probes a Python project's pyproject.toml so the stock
// pipeline can adapt to the project without manual manifest edits.
package toolconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// PyProject is the subset of pyproject.toml Pipewright cares about.
type PyProject struct {
	Name           string   // [project] name
	RequiresPython string   // [project] requires-python, e.g. ">=3.10"
	Scripts        []string // console script names from [project.scripts]
	Tools          []string // configured [tool.*] tables we recognize
}

// pyproject mirrors the TOML layout for decoding.
type pyproject struct {
	Project struct {
		Name           string            `toml:"name"`
		RequiresPython string            `toml:"requires-python"`
		Scripts        map[string]string `toml:"scripts"`
	} `toml:"project"`
}

// recognizedTools are the [tool.*] tables that map to built-in job kinds.
var recognizedTools = []string{"ruff", "black", "mypy", "pytest"}

// Load reads pyproject.toml from dir. A missing file returns (nil, nil) —
// the caller falls back to manifest defaults.
func Load(dir string) (*PyProject, error) {
	data, err := os.ReadFile(filepath.Join(dir, "pyproject.toml"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return Parse(data)
}

// Parse decodes pyproject.toml contents.
func Parse(data []byte) (*PyProject, error) {
	var doc pyproject
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing pyproject.toml: %w", err)
	}

	// Tool tables are free-form; decode the raw document a second time into
	// a generic map to learn which recognized tools are configured.
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing pyproject.toml: %w", err)
	}

	p := &PyProject{
		Name:           doc.Project.Name,
		RequiresPython: doc.Project.RequiresPython,
	}

	for name := range doc.Project.Scripts {
		p.Scripts = append(p.Scripts, name)
	}
	sort.Strings(p.Scripts)

	if tool, ok := raw["tool"].(map[string]any); ok {
		for _, name := range recognizedTools {
			if _, configured := tool[name]; configured {
				p.Tools = append(p.Tools, name)
			}
		}
	}

	return p, nil
}

// HasTool reports whether a recognized [tool.*] table is configured.
func (p *PyProject) HasTool(name string) bool {
	for _, t := range p.Tools {
		if t == name {
			return true
		}
	}
	return false
}

// PackageName returns the importable package name (dashes become
// underscores, Python convention).
func (p *PyProject) PackageName() string {
	return strings.ReplaceAll(p.Name, "-", "_")
}

// Entrypoint returns the first console script, or the project name when
// none is declared.
func (p *PyProject) Entrypoint() string {
	if len(p.Scripts) > 0 {
		return p.Scripts[0]
	}
	return p.Name
}

// requiresRe extracts the lower bound from a requires-python constraint.
var requiresRe = regexp.MustCompile(`>=\s*3\.(\d+)`)

// DefaultMatrix derives an interpreter matrix from requires-python, walking
// from the lower bound up to the newest minor Pipewright knows about.
// Returns nil when no usable bound is found.
func (p *PyProject) DefaultMatrix() []string {
	const newestMinor = 12

	m := requiresRe.FindStringSubmatch(p.RequiresPython)
	if m == nil {
		return nil
	}
	var lower int
	fmt.Sscanf(m[1], "%d", &lower)
	if lower < 8 || lower > newestMinor {
		return nil
	}

	var versions []string
	for minor := lower; minor <= newestMinor; minor++ {
		versions = append(versions, fmt.Sprintf("3.%d", minor))
	}
	return versions
}
