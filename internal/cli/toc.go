package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/kvasir/internal/section"
	"github.com/aidanlsb/kvasir/internal/slugs"
	"github.com/aidanlsb/kvasir/internal/ui"
)

var (
	tocMaxDepth int
	tocFormat   string
)

var tocCmd = &cobra.Command{
	Use:   "toc <file>",
	Short: "Show a document's table of contents",
	Long: `Show the header structure of a document with hierarchical section ids.

The file can be a relative filename (guide/setup.md), a filename without
extension, a slug, or a file id from 'kvs list' (f3).

Section ids are slash-joined positions (1, 1/2, 1/2/1) and feed directly
into 'kvs read --section'. When a depth limit hides subsections, the
entry shows how many are underneath.

Examples:
  kvs toc guide/setup.md
  kvs toc f3 --max-depth 2
  kvs toc setup --format markdown`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()

		switch tocFormat {
		case "text", "json", "markdown":
		default:
			return handleErrorMsg(ErrInvalidParameter,
				fmt.Sprintf("unknown format: %s", tocFormat),
				"Supported formats: text, json, markdown")
		}
		if cmd.Flags().Changed("max-depth") && (tocMaxDepth < 1 || tocMaxDepth > 6) {
			return handleErrorMsg(ErrInvalidParameter,
				fmt.Sprintf("max depth must be between 1 and 6, got %d", tocMaxDepth),
				"")
		}

		file, content, err := newScanner().ReadDocument(args[0])
		if err != nil {
			return handleDomainError(err)
		}

		opts := section.TOCOptions{
			MaxDepth:                settings.MaxTOCDepth,
			DiscountSingleTopHeader: settings.DiscountSingleTopHeader,
		}
		if cmd.Flags().Changed("max-depth") {
			depth := tocMaxDepth
			opts.MaxDepth = &depth
		}

		doc := section.Parse(content)
		entries := section.BuildTOC(doc, opts)
		elapsed := time.Since(start).Milliseconds()

		if tocFormat == "json" || isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"filename": file.Filename,
				"sections": entries,
			}, &Meta{Count: len(entries), QueryTimeMs: elapsed})
			return nil
		}

		if tocFormat == "markdown" {
			fmt.Print(markdownTOC(file.Filename, entries))
			return nil
		}

		fmt.Printf("%s %s\n\n", ui.Header(file.Title), ui.Hint(file.Filename))
		if len(entries) == 0 {
			fmt.Println("No sections found.")
			return nil
		}
		printTOCTree(entries)

		return nil
	},
}

// printTOCTree renders entries as an indented tree: id column, title,
// then muted size and hidden-subsection hints.
func printTOCTree(entries []section.TOCEntry) {
	idWidth := 0
	for _, e := range entries {
		if len(e.ID) > idWidth {
			idWidth = len(e.ID)
		}
	}

	for _, e := range entries {
		indent := strings.Repeat("  ", e.Level-1)
		id := fmt.Sprintf("%-*s", idWidth, e.ID)

		line := fmt.Sprintf("  %s%s  %s", indent, ui.Accent.Render(id), e.Title)
		extras := []string{fmt.Sprintf("%d chars", e.CharacterCount)}
		if e.SubsectionCount > 0 {
			extras = append(extras, ui.Count(e.SubsectionCount, "subsection hidden", "subsections hidden"))
		}
		fmt.Printf("%s  %s\n", line, ui.Hint(strings.Join(extras, " ")))
	}
}

// markdownTOC renders entries as a nested bullet list with
// file#anchor links, for pasting into other documents.
func markdownTOC(filename string, entries []section.TOCEntry) string {
	var b strings.Builder
	for _, e := range entries {
		indent := strings.Repeat("  ", e.Level-1)
		anchor := slugs.HeadingAnchor(e.Title)
		fmt.Fprintf(&b, "%s- [%s](%s#%s)\n", indent, e.Title, filename, anchor)
	}
	return b.String()
}

func init() {
	tocCmd.Flags().IntVar(&tocMaxDepth, "max-depth", 0, "Limit header depth for this call (1-6)")
	tocCmd.Flags().StringVar(&tocFormat, "format", "text", "Output format: text, json, or markdown")
	rootCmd.AddCommand(tocCmd)
}
