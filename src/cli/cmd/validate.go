package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/sofmeright/pipewright/src/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the pipeline manifest",
	RunE: func(cmd *cobra.Command, args []string) error {
		warnings, err := config.Validate(cfg)
		for _, w := range warnings {
			fmt.Printf("warning: %s\n", w)
		}
		if err != nil {
			return err
		}
		fmt.Println("config OK")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
