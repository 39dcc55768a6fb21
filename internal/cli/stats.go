package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/kvasir/internal/stats"
	"github.com/aidanlsb/kvasir/internal/ui"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show corpus statistics",
	Long: `Displays statistics about the discovered documentation corpus.

Examples:
  kvs stats
  kvs stats --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()
		st := stats.Collect(newScanner(), getLogger())
		elapsed := time.Since(start).Milliseconds()

		if isJSONOutput() {
			outputSuccess(st, &Meta{Count: st.FileCount, QueryTimeMs: elapsed})
			return nil
		}

		// Human-readable output
		fmt.Println(ui.Header("Corpus Statistics"))
		fmt.Printf("%s  %s\n", ui.Muted.Render("Files:      "), ui.Accent.Render(fmt.Sprintf("%d", st.FileCount)))
		fmt.Printf("%s  %s\n", ui.Muted.Render("Total size: "), ui.Accent.Render(st.TotalSize))
		fmt.Printf("%s  %s\n", ui.Muted.Render("Sections:   "), ui.Accent.Render(fmt.Sprintf("%d", st.SectionCount)))
		fmt.Printf("%s  %s\n", ui.Muted.Render("Max depth:  "), ui.Accent.Render(fmt.Sprintf("%d", st.MaxDepth)))
		fmt.Printf("%s  %s\n", ui.Muted.Render("Links:      "), ui.Accent.Render(fmt.Sprintf("%d", st.LinkCount)))
		fmt.Printf("%s  %s\n", ui.Muted.Render("Code blocks:"), ui.Accent.Render(fmt.Sprintf("%d", st.CodeBlockCount)))

		if len(st.HeadingsByLevel) > 0 {
			fmt.Println()
			fmt.Println(ui.Header("Headings by Level"))
			tbl := ui.NewTable(2)
			for level := 1; level <= 6; level++ {
				if n := st.HeadingsByLevel[level]; n > 0 {
					tbl.AddRow(ui.Muted.Render(fmt.Sprintf("H%d:", level)), ui.Accent.Render(fmt.Sprintf("%d", n)))
				}
			}
			fmt.Print(tbl.String())
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
