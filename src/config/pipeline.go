package config

// TriggerConfig declares when a pipeline run starts.
//
// Push and merge-request events match their branch pattern lists; manual
// dispatch always fires unless explicitly disabled. Pattern syntax follows
// the universal rule primitive used across Pipewright:
//
//	"^main$"       — regex match (default)
//	"!^feature/.*" — negated regex (! prefix)
//	"main"         — literal match when the regex is invalid
//
// A list matches with exclude-first OR semantics (see MatchPatterns).
type TriggerConfig struct {
	Push         EventRule `yaml:"push"`
	MergeRequest EventRule `yaml:"merge_request"`
	Manual       *bool     `yaml:"manual,omitempty"`
}

// EventRule is the branch filter for a single event type.
type EventRule struct {
	Branches []string `yaml:"branches,omitempty"`
}

// JobSpec declares a single pipeline job.
type JobSpec struct {
	// Name identifies the job in reports. Defaults to Kind.
	Name string `yaml:"name,omitempty"`

	// Kind selects a built-in job kind (lint, format, typecheck, test,
	// integration, secrets). Empty for generic command jobs.
	Kind string `yaml:"kind,omitempty"`

	// Command overrides the kind's default invocation. Required when
	// Kind is empty.
	Command []string `yaml:"command,omitempty"`

	// Advisory marks the job non-gating: its failure is reported but
	// never fails the run. Nil means "use the kind's default".
	Advisory *bool `yaml:"advisory,omitempty"`

	// Matrix expands the job over interpreter versions. Only meaningful
	// for kinds that template a version into their command (test).
	Matrix MatrixSpec `yaml:"matrix,omitempty"`
}

// MatrixSpec parameterizes a job over independent environment variants.
type MatrixSpec struct {
	Python []string `yaml:"python,omitempty"`
}

// IsZero reports whether no matrix is declared.
func (m MatrixSpec) IsZero() bool { return len(m.Python) == 0 }

// ToolsConfig locates the project surfaces the built-in kinds operate on.
type ToolsConfig struct {
	// SourceDirs are the path roots linted and format-checked.
	SourceDirs []string `yaml:"source_dirs,omitempty"`

	// TypecheckDirs are the path roots the type checker sees.
	// Defaults to the first source dir.
	TypecheckDirs []string `yaml:"typecheck_dirs,omitempty"`

	// TestsDir is the directory handed to the test runner.
	TestsDir string `yaml:"tests_dir,omitempty"`

	// Package is the import name coverage is measured against.
	Package string `yaml:"package,omitempty"`

	// Entrypoint is the packaged CLI smoke-tested by the integration kind.
	Entrypoint string `yaml:"entrypoint,omitempty"`
}

func (t *ToolsConfig) applyDefaults() {
	def := DefaultToolsConfig()
	if len(t.SourceDirs) == 0 {
		t.SourceDirs = def.SourceDirs
	}
	if len(t.TypecheckDirs) == 0 {
		t.TypecheckDirs = t.SourceDirs[:1]
	}
	if t.TestsDir == "" {
		t.TestsDir = def.TestsDir
	}
	if t.Package == "" {
		t.Package = def.Package
	}
	if t.Entrypoint == "" {
		t.Entrypoint = def.Entrypoint
	}
}

// DefaultTriggerConfig gates push and merge-request runs to the mainline
// branches and leaves manual dispatch open.
func DefaultTriggerConfig() TriggerConfig {
	t := true
	return TriggerConfig{
		Push:         EventRule{Branches: []string{"^main$", "^master$", "^develop$"}},
		MergeRequest: EventRule{Branches: []string{"^main$", "^master$"}},
		Manual:       &t,
	}
}

// DefaultToolsConfig matches the transform-myd-minimal project layout.
func DefaultToolsConfig() ToolsConfig {
	return ToolsConfig{
		SourceDirs:    []string{"src", "tests"},
		TypecheckDirs: []string{"src"},
		TestsDir:      "tests",
		Package:       "transform_myd_minimal",
		Entrypoint:    "transform-myd-minimal",
	}
}

// DefaultJobs is the stock QA pipeline: three advisory quality jobs, a
// blocking test matrix, and a blocking integration smoke.
func DefaultJobs() []JobSpec {
	return []JobSpec{
		{Name: "lint", Kind: "lint"},
		{Name: "format", Kind: "format"},
		{Name: "typecheck", Kind: "typecheck"},
		{Name: "secrets", Kind: "secrets"},
		{Name: "test", Kind: "test", Matrix: MatrixSpec{Python: []string{"3.10", "3.11", "3.12"}}},
		{Name: "integration", Kind: "integration"},
	}
}
