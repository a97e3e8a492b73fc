package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/sofmeright/pipewright/src/badge"
	"github.com/sofmeright/pipewright/src/config"
	"github.com/sofmeright/pipewright/src/gitref"
	"github.com/sofmeright/pipewright/src/output"
	"github.com/sofmeright/pipewright/src/pipeline"
	"github.com/sofmeright/pipewright/src/toolconfig"
	"github.com/sofmeright/pipewright/src/trigger"
)

var (
	runEvent  string
	runBranch string
	runForce  bool
	runJUnit  string
	runBadge  string
)

var runCmd = &cobra.Command{
	Use:   "run [dir]",
	Short: "Evaluate the trigger and run the pipeline",
	Long: `Run the quality-gate pipeline for a repository.

The trigger policy is evaluated first: push and merge-request events must
target a configured branch, manual dispatch always fires. Jobs then run
in parallel; blocking job failures fail the run, advisory job failures
are reported but never gate.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runEvent, "event", "", "override event: push, merge_request, manual (default: detect from CI env, else manual)")
	runCmd.Flags().StringVar(&runBranch, "branch", "", "override target branch (default: detect from CI env or git HEAD)")
	runCmd.Flags().BoolVar(&runForce, "force", false, "run even when the trigger policy declines")
	runCmd.Flags().StringVar(&runJUnit, "junit", "", "write a JUnit XML report to this path")
	runCmd.Flags().StringVar(&runBadge, "badge", "", "write a status badge SVG to this path")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	rootDir, err := resolveRootDir(args)
	if err != nil {
		return err
	}
	if err := probeProject(cfg, rootDir); err != nil {
		return err
	}

	event, branch := resolveEventBranch(rootDir)
	decision := trigger.Evaluate(cfg.Trigger, event, branch)
	if !decision.Run && !runForce {
		fmt.Printf("no pipeline run: %s\n", decision.Reason)
		return nil
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "trigger: %s\n", decision.Reason)
	}

	units, err := pipeline.Plan(cfg)
	if err != nil {
		return fmt.Errorf("planning pipeline: %w", err)
	}

	printer := output.NewPrinter()
	printer.Verbose = verbose

	w := os.Stdout
	output.SectionStart(w, "pipewright_run", "Pipeline run")
	fmt.Fprintf(w, "running %d units (%s, branch %q)\n\n", len(units), event, branch)

	runner := &pipeline.Runner{
		RootDir:  rootDir,
		Workers:  cfg.Workers,
		OnFinish: printer.UnitLine,
	}

	start := time.Now()
	results, err := runner.Run(context.Background(), units)
	if err != nil {
		return fmt.Errorf("running pipeline: %w", err)
	}
	printer.Summary(results, time.Since(start))
	output.SectionEnd(w, "pipewright_run")

	status := pipeline.Aggregate(results)

	if err := writeArtifacts(results, status); err != nil {
		return err
	}

	if status == pipeline.StatusFailed {
		return fmt.Errorf("pipeline failed")
	}
	return nil
}

func writeArtifacts(results []pipeline.Result, status pipeline.Status) error {
	junitPath := runJUnit
	if junitPath == "" {
		junitPath = cfg.Output.JUnit
	}
	if junitPath != "" {
		if err := output.WriteJUnitFile(junitPath, results); err != nil {
			return fmt.Errorf("writing junit report: %w", err)
		}
	}

	badgePath := runBadge
	if badgePath == "" {
		badgePath = cfg.Output.Badge
	}
	if badgePath != "" {
		engine := badge.New(nil)
		svg := engine.Generate(badge.Badge{
			Label: "pipeline",
			Value: status.String(),
			Color: badge.StatusColor(status.String()),
		})
		if err := os.WriteFile(badgePath, []byte(svg), 0o644); err != nil {
			return fmt.Errorf("writing badge: %w", err)
		}
	}

	return nil
}

func resolveRootDir(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	return dir, nil
}

// resolveEventBranch combines CLI overrides with CI env and local git state.
// Outside CI with no override, the event is manual dispatch — running the
// tool by hand IS a manual dispatch.
func resolveEventBranch(rootDir string) (trigger.Event, string) {
	ctx := gitref.Resolve(rootDir)

	branch := runBranch
	if branch == "" {
		branch = ctx.Branch
	}

	if runEvent != "" {
		ev, err := trigger.ParseEvent(runEvent)
		if err == nil {
			return ev, branch
		}
		fmt.Fprintf(os.Stderr, "warning: %v, treating as manual\n", err)
		return trigger.EventManual, branch
	}

	if ctx.Event != "" {
		if ev, err := trigger.ParseEvent(ctx.Event); err == nil {
			return ev, branch
		}
	}

	return trigger.EventManual, branch
}

// probeProject refines a defaults-only config from pyproject.toml: package
// name, entry point, and the interpreter matrix from requires-python.
// A manifest file always wins.
func probeProject(cfg *config.Config, rootDir string) error {
	if cfg.FromFile {
		return nil
	}

	p, err := toolconfig.Load(rootDir)
	if err != nil {
		return fmt.Errorf("probing pyproject.toml: %w", err)
	}
	if p == nil || p.Name == "" {
		return nil
	}

	cfg.Tools.Package = p.PackageName()
	cfg.Tools.Entrypoint = p.Entrypoint()

	if matrix := p.DefaultMatrix(); matrix != nil {
		for i := range cfg.Jobs {
			if cfg.Jobs[i].Kind == "test" {
				cfg.Jobs[i].Matrix.Python = matrix
			}
		}
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "pyproject: package %s, entrypoint %s, tools %v\n",
			cfg.Tools.Package, cfg.Tools.Entrypoint, p.Tools)
	}
	return nil
}
