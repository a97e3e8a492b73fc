package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/sofmeright/pipewright/src/config"
	"github.com/sofmeright/pipewright/src/pipeline"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List built-in job kinds and their default commands",
	RunE: func(cmd *cobra.Command, args []string) error {
		tools := cfg.Tools
		for _, name := range pipeline.All() {
			kind, err := pipeline.Get(name)
			if err != nil {
				return err
			}
			gate := "blocking"
			if kind.Advisory() {
				gate = "advisory"
			}

			units, err := kind.Units(tools, config.MatrixSpec{})
			if err != nil {
				return err
			}
			what := "(in-process)"
			if len(units) > 0 && units[0].InProcess == nil {
				what = strings.Join(units[0].Command, " ")
			}
			fmt.Printf("  %-12s %-9s %s\n", name, gate, what)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(jobsCmd)
}
