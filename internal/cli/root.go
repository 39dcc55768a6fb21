// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/kvasir/internal/config"
	"github.com/aidanlsb/kvasir/internal/discovery"
	"github.com/aidanlsb/kvasir/internal/ui"
)

var (
	// Global flags
	configPath      string
	docsPathsFlag   []string
	maxTOCDepthFlag int
	discountTopFlag bool
	verboseFlag     bool
	noColorFlag     bool

	// Resolved values
	settings config.Settings
	logger   *slog.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "kvs",
	Short: "Kvasir - hierarchical markdown section indexing for agents",
	Long: `Kvasir indexes markdown documentation by its header structure so agents
can skim a table of contents and pull individual sections instead of
whole files.

Every header gets a stable hierarchical id (1, 1/2, 1/2/1) valid for the
current state of the document. Works as a CLI and as an MCP server.

Named for the being of Norse myth whose blood became the mead of poetry:
knowledge, distilled and served by the draught.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip corpus resolution for commands that don't need it
		switch cmd.Name() {
		case "completion", "help", "version":
			return nil
		}
		if cmd.Parent() != nil && cmd.Parent().Name() == "completion" {
			return nil
		}
		// The mcp subcommands edit client config files; only check
		// actually talks to a corpus.
		if cmd.Name() == "mcp" {
			return nil
		}
		if cmd.Parent() != nil && cmd.Parent().Name() == "mcp" && cmd.Name() != "check" {
			return nil
		}
		// The config commands load the file themselves, tolerating a
		// missing or broken one; resolving here would make them fail on
		// exactly the configs they exist to repair.
		if cmd.Name() == "config" || (cmd.Parent() != nil && cmd.Parent().Name() == "config") {
			return nil
		}

		logger = newLogger(verboseFlag)

		cfg, err := loadGlobalConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		settings, err = config.Resolve(cfg, config.Overrides{
			DocsPaths:               docsPathsFlag,
			MaxTOCDepth:             maxDepthOverride(cmd),
			DiscountSingleTopHeader: discountOverride(cmd),
		})
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		ui.ConfigureTheme(settings.UI.Accent)
		ui.ConfigureMarkdownCodeTheme(settings.UI.CodeTheme)
		if noColorFlag {
			ui.DisableColor()
		}

		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringArrayVar(&docsPathsFlag, "docs-path", nil, "Documentation root to index (repeatable)")
	rootCmd.PersistentFlags().IntVar(&maxTOCDepthFlag, "max-toc-depth", 0, "Limit table of contents depth (1-6)")
	rootCmd.PersistentFlags().BoolVar(&discountTopFlag, "discount-single-top-header", false, "Don't count a lone top-level header against the depth limit")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for agent/script use)")
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "Disable colored output")
}

// getSettings returns the resolved settings.
func getSettings() config.Settings {
	return settings
}

// getLogger returns the logger for the current invocation.
func getLogger() *slog.Logger {
	if logger == nil {
		logger = newLogger(verboseFlag)
	}
	return logger
}

// newScanner builds a scanner over the resolved documentation roots.
func newScanner() *discovery.Scanner {
	return discovery.NewScanner(settings.DocsPaths, getLogger())
}

// newLogger returns a text logger on stderr. One-shot commands stay
// quiet below warnings; --verbose lowers the threshold to debug.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func loadGlobalConfig() (*config.Config, error) {
	if strings.TrimSpace(configPath) != "" {
		return config.LoadFrom(configPath)
	}
	return config.Load()
}

// maxDepthOverride returns the --max-toc-depth value, or nil when the
// flag was not given. Changed distinguishes unset from an explicit
// value.
func maxDepthOverride(cmd *cobra.Command) *int {
	if !cmd.Flags().Changed("max-toc-depth") {
		return nil
	}
	v := maxTOCDepthFlag
	return &v
}

func discountOverride(cmd *cobra.Command) *bool {
	if !cmd.Flags().Changed("discount-single-top-header") {
		return nil
	}
	v := discountTopFlag
	return &v
}
