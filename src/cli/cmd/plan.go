package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/sofmeright/pipewright/src/pipeline"
	"github.com/sofmeright/pipewright/src/trigger"
)

var planCmd = &cobra.Command{
	Use:   "plan [dir]",
	Short: "Show the trigger decision and planned units without running",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().StringVar(&runEvent, "event", "", "override event: push, merge_request, manual")
	planCmd.Flags().StringVar(&runBranch, "branch", "", "override target branch")

	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	rootDir, err := resolveRootDir(args)
	if err != nil {
		return err
	}
	if err := probeProject(cfg, rootDir); err != nil {
		return err
	}

	event, branch := resolveEventBranch(rootDir)
	decision := trigger.Evaluate(cfg.Trigger, event, branch)
	if decision.Run {
		fmt.Printf("trigger: would run — %s\n", decision.Reason)
	} else {
		fmt.Printf("trigger: would NOT run — %s\n", decision.Reason)
	}

	units, err := pipeline.Plan(cfg)
	if err != nil {
		return fmt.Errorf("planning pipeline: %w", err)
	}

	fmt.Printf("\n%d units:\n", len(units))
	for _, u := range units {
		gate := "blocking"
		if u.Advisory {
			gate = "advisory"
		}
		what := strings.Join(u.Command, " ")
		if u.InProcess != nil {
			what = "(in-process)"
		}
		label := u.Job
		if u.Cell != "" {
			label = fmt.Sprintf("%s [%s]", u.Job, u.Cell)
		}
		fmt.Printf("  %-24s %-9s %s\n", label, gate, what)
	}
	return nil
}
