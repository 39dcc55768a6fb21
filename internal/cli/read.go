package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/aidanlsb/kvasir/internal/docerr"
	"github.com/aidanlsb/kvasir/internal/docid"
	"github.com/aidanlsb/kvasir/internal/section"
	"github.com/aidanlsb/kvasir/internal/ui"
)

var readSectionFlags []string

var readCmd = &cobra.Command{
	Use:   "read <file>",
	Short: "Read a document or selected sections",
	Long: `Read a document, or extract individual sections by id.

Without --section the whole document is printed. With --section only the
named sections are extracted, each including everything nested beneath
it. Requesting a parent and one of its children returns just the parent.

Section ids come from 'kvs toc'. The flag repeats and accepts
comma-separated lists; 'kvs read f1 --section 1/2,3' equals
'kvs read f1 --section 1/2 --section 3'.

Examples:
  kvs read guide/setup.md
  kvs read f1 --section 1/2
  kvs read setup --section 1/2,1/3 --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()

		file, content, err := newScanner().ReadDocument(args[0])
		if err != nil {
			return handleDomainError(err)
		}
		doc := section.Parse(content)

		if len(readSectionFlags) == 0 {
			elapsed := time.Since(start).Milliseconds()
			if isJSONOutput() {
				outputSuccess(map[string]interface{}{
					"filename":   file.Filename,
					"title":      file.Title,
					"content":    doc.Text(),
					"line_count": doc.LineCount(),
				}, &Meta{QueryTimeMs: elapsed})
				return nil
			}
			printMarkdown(doc.Text())
			return nil
		}

		ids, err := parseSectionIDs(readSectionFlags)
		if err != nil {
			return handleDomainError(err)
		}

		extracted, err := section.Extract(doc, file.Filename, ids)
		if err != nil {
			return handleDomainError(err)
		}
		elapsed := time.Since(start).Milliseconds()

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"filename": file.Filename,
				"sections": extracted,
			}, &Meta{Count: len(extracted), QueryTimeMs: elapsed})
			return nil
		}

		for i, s := range extracted {
			if i > 0 {
				fmt.Println()
			}
			printMarkdown(s.Content)
		}

		return nil
	},
}

// parseSectionIDs expands repeated and comma-separated --section values
// into section ids.
func parseSectionIDs(values []string) ([]docid.SectionID, error) {
	var ids []docid.SectionID
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := docid.ParseSection(part)
			if err != nil {
				return nil, docerr.New(docerr.CodeInvalidParameter, "%v", err)
			}
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, docerr.New(docerr.CodeInvalidParameter, "no section ids given")
	}
	return ids, nil
}

// printMarkdown renders through glamour on a TTY; piped output and
// render failures get the raw text.
func printMarkdown(content string) {
	if isatty.IsTerminal(os.Stdout.Fd()) {
		if rendered, err := ui.RenderMarkdown(content, ui.TerminalWidth()); err == nil {
			fmt.Print(rendered)
			return
		}
	}
	fmt.Print(content)
	if !strings.HasSuffix(content, "\n") {
		fmt.Println()
	}
}

func init() {
	readCmd.Flags().StringArrayVar(&readSectionFlags, "section", nil, "Section id to extract (repeatable, comma-separated)")
	rootCmd.AddCommand(readCmd)
}
