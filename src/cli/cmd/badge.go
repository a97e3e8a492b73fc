package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/sofmeright/pipewright/src/badge"
)

var (
	badgeFont   string
	badgeOutput string
	badgeLabel  string
)

var badgeCmd = &cobra.Command{
	Use:   "badge <status>",
	Short: "Generate a pipeline status badge SVG",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		status := args[0]

		var metrics badge.Metrics
		if badgeFont != "" {
			m, err := badge.LoadFontFile(badgeFont)
			if err != nil {
				return err
			}
			metrics = m
		}

		svg := badge.New(metrics).Generate(badge.Badge{
			Label: badgeLabel,
			Value: status,
			Color: badge.StatusColor(status),
		})

		if badgeOutput == "" {
			fmt.Println(svg)
			return nil
		}
		return os.WriteFile(badgeOutput, []byte(svg), 0o644)
	},
}

func init() {
	badgeCmd.Flags().StringVar(&badgeFont, "font", "", "TTF/OTF font file for text measurement")
	badgeCmd.Flags().StringVarP(&badgeOutput, "output", "o", "", "write SVG to this file (default: stdout)")
	badgeCmd.Flags().StringVar(&badgeLabel, "label", "pipeline", "badge label text")

	rootCmd.AddCommand(badgeCmd)
}
