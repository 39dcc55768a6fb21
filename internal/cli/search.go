package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/kvasir/internal/search"
	"github.com/aidanlsb/kvasir/internal/ui"
)

var (
	searchFile          string
	searchRegex         bool
	searchCaseSensitive bool
	searchLimit         int
	searchNoLinks       bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search document content",
	Long: `Search the discovered documents line by line.

Matching is case-insensitive substring by default; --regex switches to
Go regular expression syntax. Each match reports the section that
contains it, so results feed directly into 'kvs read --section'.

Examples:
  kvs search "connection pool"
  kvs search --regex 'timeout\s*=' --case-sensitive
  kvs search installer --file guide/setup.md --limit 10`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()
		setHyperlinksDisabled(searchNoLinks)

		// Join all args as the search query
		query := strings.Join(args, " ")

		sc := newScanner()
		matches, err := search.Run(sc, search.Options{
			Query:         query,
			File:          searchFile,
			Regex:         searchRegex,
			CaseSensitive: searchCaseSensitive,
			Limit:         searchLimit,
		}, getLogger())
		if err != nil {
			return handleDomainError(err)
		}
		elapsed := time.Since(start).Milliseconds()

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"query":   query,
				"matches": matches,
			}, &Meta{Count: len(matches), QueryTimeMs: elapsed})
			return nil
		}

		if len(matches) == 0 {
			fmt.Printf("No matches found for: %s\n", query)
			return nil
		}

		fmt.Printf("%s %s\n\n", ui.Header(query), ui.Count(len(matches), "match", "matches"))

		table := ui.NewResultsTable(ui.TerminalWidth(), ui.MatchesLayout)
		matchWidth := table.ContentWidth("match")
		sectionWidth := table.ContentWidth("section")

		for i, m := range matches {
			text := ui.TruncateWithEllipsis(m.Text, matchWidth)

			sectionTitle := m.SectionTitle
			if sectionTitle != "" {
				sectionTitle = ui.TruncateWithEllipsis(sectionTitle, sectionWidth)
			}

			absPath := ""
			if f, ok := sc.Lookup(m.FileID); ok {
				absPath = f.AbsPath
			}
			location := formatLocationStyled(absPath, m.Filename, m.Line, ui.Muted.Render)

			table.AddRow(
				ui.FormatRowNum(i+1, len(matches)),
				text,
				sectionTitle,
				location,
			)
		}
		fmt.Println(table.Render())

		return nil
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchFile, "file", "", "Restrict the search to one document")
	searchCmd.Flags().BoolVar(&searchRegex, "regex", false, "Treat the query as a Go regular expression")
	searchCmd.Flags().BoolVar(&searchCaseSensitive, "case-sensitive", false, "Match case exactly")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", search.DefaultLimit, "Maximum number of matches")
	searchCmd.Flags().BoolVar(&searchNoLinks, "no-links", false, "Disable clickable hyperlinks in terminal output")
	rootCmd.AddCommand(searchCmd)
}
