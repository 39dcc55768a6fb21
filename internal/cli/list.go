package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/kvasir/internal/ui"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List discovered documents",
	Long: `List every markdown document found under the configured roots.

Each document gets a session-scoped file id (f1, f2, ...) usable wherever
a command takes a FILE argument.

Examples:
  kvs list
  kvs list --json
  kvs list --docs-path ./docs --docs-path ./guides`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()
		files := newScanner().Files()
		elapsed := time.Since(start).Milliseconds()

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"documents": files,
			}, &Meta{Count: len(files), QueryTimeMs: elapsed})
			return nil
		}

		if len(files) == 0 {
			fmt.Println("No documents found.")
			fmt.Println(ui.Hint("Point kvs at your docs with --docs-path or docs_paths in config."))
			return nil
		}

		fmt.Printf("%s %s\n\n", ui.Header("Documents"), ui.Count(len(files), "document", "documents"))

		table := ui.NewResultsTable(ui.TerminalWidth(), ui.DocumentsLayout)
		titleWidth := table.ContentWidth("title")
		for _, f := range files {
			title := f.Title
			if f.Description != "" {
				title = fmt.Sprintf("%s - %s", title, f.Description)
			}
			table.AddRow(
				f.ID.String(),
				f.Filename,
				ui.TruncateWithEllipsis(title, titleWidth),
				f.Size,
			)
		}
		fmt.Println(table.Render())

		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
