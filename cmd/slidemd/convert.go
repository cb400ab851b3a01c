package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ukaji3/slidemd-go/pkg/slidemd"
	"github.com/ukaji3/slidemd-go/pkg/slidemd/output"
)

var convertCmd = &cobra.Command{
	Use:   "convert [input.pptx]",
	Short: "Convert a presentation to markdown",
	Long: `Convert extracts every slide in reading order and renders markdown,
preceded by a metadata comment unless --no-metadata is set.

The json and yaml formats emit the structured extraction result instead;
html renders the markdown to an HTML fragment.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	convertCmd.Flags().String("format", string(output.FormatMarkdown), "Output format: markdown, json, yaml, html")
	convertCmd.Flags().Bool("pretty", false, "Pretty-print JSON output")
	convertCmd.Flags().Bool("no-metadata", false, "Omit the metadata header")

	_ = viper.BindPFlag("format", convertCmd.Flags().Lookup("format"))

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	logger := newLogger()

	format, err := output.ParseFormat(viper.GetString("format"))
	if err != nil {
		return err
	}

	opts, err := conversionOptions(logger)
	if err != nil {
		return err
	}
	if noMeta, _ := cmd.Flags().GetBool("no-metadata"); noMeta {
		include := false
		opts.IncludeMetadata = &include
	}

	outPath, _ := cmd.Flags().GetString("output")
	pretty, _ := cmd.Flags().GetBool("pretty")

	var data []byte
	switch format {
	case output.FormatJSON, output.FormatYAML:
		extracted, err := slidemd.Extract(inputPath, opts)
		if err != nil {
			return fmt.Errorf("extraction failed: %w", err)
		}
		if format == output.FormatJSON {
			data, err = output.ToJSON(extracted, pretty)
		} else {
			data, err = output.ToYAML(extracted)
		}
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
	default:
		md, err := slidemd.ConvertContext(cmd.Context(), inputPath, opts)
		if err != nil {
			return fmt.Errorf("conversion failed: %w", err)
		}
		data = []byte(md)
		if format == output.FormatHTML {
			if data, err = output.ToHTML(md); err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}
		}
	}

	return writeOutput(cmd, outPath, data)
}
