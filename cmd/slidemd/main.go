// Package main provides the CLI entry point for slidemd-go.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ukaji3/slidemd-go/internal/fallback"
	"github.com/ukaji3/slidemd-go/pkg/slidemd"
	"github.com/ukaji3/slidemd-go/pkg/slidemd/order"
)

// version is set at build time via ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "slidemd",
	Short: "Convert PowerPoint presentations to markdown",
	Long: `slidemd-go converts .pptx presentations to markdown that follows each
slide's reading order: titles first, then body content, with bullets,
numbering, emphasis, tables, charts and hyperlinks preserved.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./slidemd.yaml or ~/.config/slidemd/slidemd.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "log extraction details to stderr")
	rootCmd.PersistentFlags().String("order", string(slidemd.OrderSemantic), "reading order strategy: semantic or simple")
	rootCmd.PersistentFlags().String("fallback", fallback.DefaultBinary, "markitdown executable used when a file cannot be parsed (none to disable)")

	for _, key := range []string{"verbose", "order", "fallback"} {
		_ = viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(key))
	}
	viper.SetDefault("metadata", true)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("slidemd")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "slidemd"))
		}
	}

	viper.SetEnvPrefix("SLIDEMD")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		newLogger().Debug("using config file", slog.String("path", viper.ConfigFileUsed()))
	}
}

// newLogger builds the stderr logger; --verbose lowers the level to debug.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// conversionOptions assembles library options from the merged configuration.
func conversionOptions(logger *slog.Logger) (slidemd.Options, error) {
	strategy, err := order.ParseStrategy(viper.GetString("order"))
	if err != nil {
		return slidemd.Options{}, err
	}

	include := viper.GetBool("metadata")
	opts := slidemd.Options{
		Order:           strategy,
		IncludeMetadata: &include,
		Logger:          logger,
	}

	if bin := viper.GetString("fallback"); bin != "" && bin != "none" {
		conv := fallback.NewMarkItDown(bin)
		if conv.Available() {
			opts.Fallback = conv
		} else {
			logger.Debug("fallback converter not found", slog.String("binary", bin))
		}
	}
	return opts, nil
}

// writeOutput writes data to path, or to the command's stdout when path is empty.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
