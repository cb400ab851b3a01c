package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ukaji3/slidemd-go/pkg/slidemd"
	"github.com/ukaji3/slidemd-go/pkg/slidemd/output"
)

var summaryCmd = &cobra.Command{
	Use:   "summary [input.pptx]",
	Short: "Show how a presentation would be processed",
	Long: `Summary reports whether the file can be parsed, its slide count and the
roles resolved for the first slides, without rendering markdown.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := conversionOptions(newLogger())
		if err != nil {
			return err
		}

		s, err := slidemd.Summary(args[0], opts)
		if err != nil {
			return fmt.Errorf("summary failed: %w", err)
		}

		var data []byte
		if asYAML, _ := cmd.Flags().GetBool("yaml"); asYAML {
			data, err = output.ToYAML(s)
		} else {
			data, err = output.ToJSON(s, true)
		}
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		return writeOutput(cmd, "", data)
	},
}

func init() {
	summaryCmd.Flags().Bool("yaml", false, "Emit YAML instead of JSON")

	rootCmd.AddCommand(summaryCmd)
}
