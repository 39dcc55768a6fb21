package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/kvasir/internal/config"
	"github.com/aidanlsb/kvasir/internal/ui"
)

type configFileContext struct {
	cfg    *config.Config
	path   string
	exists bool
}

var (
	configSetDocsPaths   []string
	configSetMaxTOCDepth int
	configSetDiscountTop bool
	configSetEditor      string
	configSetUIAccent    string
	configSetUICodeTheme string

	configUnsetDocsPaths   bool
	configUnsetMaxTOCDepth bool
	configUnsetDiscountTop bool
	configUnsetEditor      bool
	configUnsetUIAccent    bool
	configUnsetUICodeTheme bool
)

// editableConfigPath is the file the config commands operate on: the
// --config flag if given, otherwise the default location.
func editableConfigPath() string {
	if strings.TrimSpace(configPath) != "" {
		return configPath
	}
	return config.DefaultPath()
}

func loadConfigForEdit() (*configFileContext, error) {
	path := editableConfigPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &configFileContext{cfg: &config.Config{}, path: path}, nil
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return nil, err
	}
	return &configFileContext{cfg: cfg, path: path, exists: true}, nil
}

func configData(ctx *configFileContext) map[string]interface{} {
	data := map[string]interface{}{
		"config_path": ctx.path,
		"exists":      ctx.exists,
		"docs_paths":  ctx.cfg.DocsPaths,
		"editor":      strings.TrimSpace(ctx.cfg.Editor),
		"ui": map[string]interface{}{
			"accent":     strings.TrimSpace(ctx.cfg.UI.Accent),
			"code_theme": strings.TrimSpace(ctx.cfg.UI.CodeTheme),
		},
	}
	if ctx.cfg.MaxTOCDepth != nil {
		data["max_toc_depth"] = *ctx.cfg.MaxTOCDepth
	}
	if ctx.cfg.DiscountSingleTopHeader != nil {
		data["discount_single_top_header"] = *ctx.cfg.DiscountSingleTopHeader
	}
	return data
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	ctx, err := loadConfigForEdit()
	if err != nil {
		return handleError(ErrConfigInvalid, err, "")
	}

	if isJSONOutput() {
		outputSuccess(configData(ctx), nil)
		return nil
	}

	if !ctx.exists {
		fmt.Printf("Config file does not exist: %s\n", ui.FilePath(ctx.path))
		fmt.Println(ui.Hint("Run 'kvs config init' to create it."))
		return nil
	}

	fmt.Printf("config: %s\n", ui.FilePath(ctx.path))
	if len(ctx.cfg.DocsPaths) > 0 {
		fmt.Printf("docs_paths: %s\n", strings.Join(ctx.cfg.DocsPaths, ", "))
	}
	if ctx.cfg.MaxTOCDepth != nil {
		fmt.Printf("max_toc_depth: %d\n", *ctx.cfg.MaxTOCDepth)
	}
	if ctx.cfg.DiscountSingleTopHeader != nil {
		fmt.Printf("discount_single_top_header: %t\n", *ctx.cfg.DiscountSingleTopHeader)
	}
	if v := strings.TrimSpace(ctx.cfg.Editor); v != "" {
		fmt.Printf("editor: %s\n", v)
	}
	if v := strings.TrimSpace(ctx.cfg.UI.Accent); v != "" {
		fmt.Printf("ui.accent: %s\n", v)
	}
	if v := strings.TrimSpace(ctx.cfg.UI.CodeTheme); v != "" {
		fmt.Printf("ui.code_theme: %s\n", v)
	}
	return nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the kvasir config file",
	Long: `Manage the kvasir config file.

Use this to initialize, inspect, and edit machine-level configuration.
All subcommands honor the global --config flag.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file if missing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		targetPath := editableConfigPath()
		_, statErr := os.Stat(targetPath)
		existed := statErr == nil
		if statErr != nil && !os.IsNotExist(statErr) {
			return handleError(ErrFileSystemError, statErr, "")
		}

		createdPath, err := config.CreateDefaultAt(targetPath)
		if err != nil {
			return handleError(ErrFileSystemError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"config_path": createdPath,
				"created":     !existed,
			}, nil)
			return nil
		}

		if existed {
			fmt.Printf("Config already exists: %s\n", ui.FilePath(createdPath))
		} else {
			fmt.Println(ui.Successf("Created config: %s", ui.FilePath(createdPath)))
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set one or more config fields",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := loadConfigForEdit()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}

		changed := make([]string, 0, 6)

		if cmd.Flags().Changed("docs-paths") {
			paths := make([]string, 0, len(configSetDocsPaths))
			for _, p := range configSetDocsPaths {
				if v := strings.TrimSpace(p); v != "" {
					paths = append(paths, v)
				}
			}
			if len(paths) == 0 {
				return handleErrorMsg(ErrInvalidParameter, "docs-paths cannot be empty; use 'kvs config unset --docs-paths' to clear it", "")
			}
			ctx.cfg.DocsPaths = paths
			changed = append(changed, "docs_paths")
		}

		if cmd.Flags().Changed("max-toc-depth") {
			if configSetMaxTOCDepth < 1 || configSetMaxTOCDepth > 6 {
				return handleErrorMsg(ErrInvalidParameter, fmt.Sprintf("max-toc-depth must be between 1 and 6, got %d", configSetMaxTOCDepth), "")
			}
			v := configSetMaxTOCDepth
			ctx.cfg.MaxTOCDepth = &v
			changed = append(changed, "max_toc_depth")
		}

		if cmd.Flags().Changed("discount-single-top-header") {
			v := configSetDiscountTop
			ctx.cfg.DiscountSingleTopHeader = &v
			changed = append(changed, "discount_single_top_header")
		}

		if cmd.Flags().Changed("editor") {
			value := strings.TrimSpace(configSetEditor)
			if value == "" {
				return handleErrorMsg(ErrInvalidParameter, "editor cannot be empty; use 'kvs config unset --editor' to clear it", "")
			}
			ctx.cfg.Editor = value
			changed = append(changed, "editor")
		}

		if cmd.Flags().Changed("ui-accent") {
			value := strings.TrimSpace(configSetUIAccent)
			if value == "" {
				return handleErrorMsg(ErrInvalidParameter, "ui-accent cannot be empty; use 'kvs config unset --ui-accent' to clear it", "")
			}
			ctx.cfg.UI.Accent = value
			changed = append(changed, "ui.accent")
		}

		if cmd.Flags().Changed("ui-code-theme") {
			value := strings.TrimSpace(configSetUICodeTheme)
			if value == "" {
				return handleErrorMsg(ErrInvalidParameter, "ui-code-theme cannot be empty; use 'kvs config unset --ui-code-theme' to clear it", "")
			}
			ctx.cfg.UI.CodeTheme = value
			changed = append(changed, "ui.code_theme")
		}

		if len(changed) == 0 {
			return handleErrorMsg(ErrInvalidParameter, "no fields provided; set at least one --docs-paths/--max-toc-depth/--discount-single-top-header/--editor/--ui-accent/--ui-code-theme", "")
		}

		if err := config.SaveTo(ctx.path, ctx.cfg); err != nil {
			return handleError(ErrFileSystemError, err, "")
		}

		ctx.exists = true
		if isJSONOutput() {
			data := configData(ctx)
			data["changed"] = changed
			outputSuccess(data, nil)
			return nil
		}

		fmt.Println(ui.Successf("Updated config: %s", ui.FilePath(ctx.path)))
		fmt.Printf("changed: %s\n", strings.Join(changed, ", "))
		return nil
	},
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset",
	Short: "Clear one or more config fields",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := loadConfigForEdit()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}
		if !ctx.exists {
			return handleErrorMsg(ErrFileNotFound, fmt.Sprintf("config file not found: %s", ctx.path), "Run 'kvs config init' first")
		}

		changed := make([]string, 0, 6)
		if configUnsetDocsPaths {
			ctx.cfg.DocsPaths = nil
			changed = append(changed, "docs_paths")
		}
		if configUnsetMaxTOCDepth {
			ctx.cfg.MaxTOCDepth = nil
			changed = append(changed, "max_toc_depth")
		}
		if configUnsetDiscountTop {
			ctx.cfg.DiscountSingleTopHeader = nil
			changed = append(changed, "discount_single_top_header")
		}
		if configUnsetEditor {
			ctx.cfg.Editor = ""
			changed = append(changed, "editor")
		}
		if configUnsetUIAccent {
			ctx.cfg.UI.Accent = ""
			changed = append(changed, "ui.accent")
		}
		if configUnsetUICodeTheme {
			ctx.cfg.UI.CodeTheme = ""
			changed = append(changed, "ui.code_theme")
		}

		if len(changed) == 0 {
			return handleErrorMsg(ErrInvalidParameter, "no fields selected; pass one or more unset flags", "")
		}

		if err := config.SaveTo(ctx.path, ctx.cfg); err != nil {
			return handleError(ErrFileSystemError, err, "")
		}

		if isJSONOutput() {
			data := configData(ctx)
			data["changed"] = changed
			outputSuccess(data, nil)
			return nil
		}

		fmt.Println(ui.Successf("Updated config: %s", ui.FilePath(ctx.path)))
		fmt.Printf("cleared: %s\n", strings.Join(changed, ", "))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current config values",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	})

	configSetCmd.Flags().StringSliceVar(&configSetDocsPaths, "docs-paths", nil, "Replace the documentation roots (comma-separated)")
	configSetCmd.Flags().IntVar(&configSetMaxTOCDepth, "max-toc-depth", 0, "Set table of contents depth limit (1-6)")
	configSetCmd.Flags().BoolVar(&configSetDiscountTop, "discount-single-top-header", false, "Set whether a lone top-level header counts against the depth limit")
	configSetCmd.Flags().StringVar(&configSetEditor, "editor", "", "Set editor command for terminal hyperlinks")
	configSetCmd.Flags().StringVar(&configSetUIAccent, "ui-accent", "", "Set UI accent color (ANSI 0-255 or #RRGGBB)")
	configSetCmd.Flags().StringVar(&configSetUICodeTheme, "ui-code-theme", "", "Set markdown code theme name")

	configUnsetCmd.Flags().BoolVar(&configUnsetDocsPaths, "docs-paths", false, "Clear docs_paths")
	configUnsetCmd.Flags().BoolVar(&configUnsetMaxTOCDepth, "max-toc-depth", false, "Clear max_toc_depth")
	configUnsetCmd.Flags().BoolVar(&configUnsetDiscountTop, "discount-single-top-header", false, "Clear discount_single_top_header")
	configUnsetCmd.Flags().BoolVar(&configUnsetEditor, "editor", false, "Clear editor")
	configUnsetCmd.Flags().BoolVar(&configUnsetUIAccent, "ui-accent", false, "Clear ui.accent")
	configUnsetCmd.Flags().BoolVar(&configUnsetUICodeTheme, "ui-code-theme", false, "Clear ui.code_theme")

	rootCmd.AddCommand(configCmd)
}
