package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Alignment represents column text alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
	AlignCenter
)

// ColumnDef defines a column in a ResultsTable.
type ColumnDef struct {
	Name       string         // Column name (for width lookups, not displayed)
	WidthRatio float64        // Proportion of available width (0.0-1.0), 0 means fixed width
	MinWidth   int            // Minimum width in characters
	MaxWidth   int            // Maximum width (0 = no limit)
	Align      Alignment      // Text alignment
	Style      lipgloss.Style // Style applied to cells in this column
}

// ResultRow is one row of cell values.
type ResultRow struct {
	Cells []string
}

// ResultsTable renders listing output in a borderless, width-aware
// table.
type ResultsTable struct {
	width   int
	columns []ColumnDef
	rows    []ResultRow
}

// Standard column definitions shared across listing commands.
var (
	// ColID is the file or row id column (fixed width, muted).
	ColID = ColumnDef{
		Name:     "id",
		MinWidth: 4,
		MaxWidth: 6,
		Align:    AlignLeft,
		Style:    Muted,
	}

	// ColFile is the document filename column.
	ColFile = ColumnDef{
		Name:       "file",
		WidthRatio: 0.35,
		MinWidth:   16,
		MaxWidth:   60,
		Align:      AlignLeft,
		Style:      Accent,
	}

	// ColTitle is the document title column.
	ColTitle = ColumnDef{
		Name:       "title",
		WidthRatio: 0.45,
		MinWidth:   20,
		MaxWidth:   80,
		Align:      AlignLeft,
	}

	// ColSize is the human-readable size column (fixed, right-aligned).
	ColSize = ColumnDef{
		Name:     "size",
		MinWidth: 8,
		MaxWidth: 10,
		Align:    AlignRight,
		Style:    Muted,
	}

	// ColNum is the row number column (fixed width, right-aligned, muted).
	ColNum = ColumnDef{
		Name:     "num",
		MinWidth: 4,
		MaxWidth: 6,
		Align:    AlignRight,
		Style:    Muted,
	}

	// ColMatch is the matching line column (flexible width).
	ColMatch = ColumnDef{
		Name:       "match",
		WidthRatio: 0.55,
		MinWidth:   30,
		MaxWidth:   100,
		Align:      AlignLeft,
	}

	// ColSection is the section attribution column.
	ColSection = ColumnDef{
		Name:       "section",
		WidthRatio: 0.22,
		MinWidth:   12,
		MaxWidth:   35,
		Align:      AlignLeft,
		Style:      Muted,
	}

	// ColLocation is the file:line location column.
	ColLocation = ColumnDef{
		Name:       "location",
		WidthRatio: 0.23,
		MinWidth:   12,
		MaxWidth:   40,
		Align:      AlignLeft,
		Style:      Muted,
	}
)

// Standard layouts.
var (
	// DocumentsLayout is used by the list command: [id, file, title, size]
	DocumentsLayout = []ColumnDef{ColID, ColFile, ColTitle, ColSize}

	// MatchesLayout is used by the search command: [num, match, section, location]
	MatchesLayout = []ColumnDef{ColNum, ColMatch, ColSection, ColLocation}
)

// NewResultsTable creates a ResultsTable for a terminal of the given
// width.
func NewResultsTable(width int, columns []ColumnDef) *ResultsTable {
	if width <= 0 {
		width = DefaultTermWidth
	}
	return &ResultsTable{
		width:   width,
		columns: columns,
		rows:    make([]ResultRow, 0),
	}
}

// AddRow adds a row to the table.
func (t *ResultsTable) AddRow(cells ...string) {
	t.rows = append(t.rows, ResultRow{Cells: cells})
}

// ContentWidth returns the calculated width for a column by name, so
// callers can pre-truncate cell content to what will actually fit.
func (t *ResultsTable) ContentWidth(columnName string) int {
	widths := t.calculateWidths()
	for i, col := range t.columns {
		if col.Name == columnName {
			return widths[i]
		}
	}
	return 60
}

// calculateWidths computes column widths from the terminal size and the
// column definitions.
func (t *ResultsTable) calculateWidths() []int {
	widths := make([]int, len(t.columns))

	var totalRatio float64
	var fixedWidth int
	const columnPadding = 2

	for i, col := range t.columns {
		if col.WidthRatio == 0 {
			widths[i] = col.MinWidth
			if col.MaxWidth > 0 && widths[i] > col.MaxWidth {
				widths[i] = col.MaxWidth
			}
			fixedWidth += widths[i]
		} else {
			totalRatio += col.WidthRatio
		}
	}

	totalPadding := (len(t.columns) - 1) * columnPadding
	leftMargin := 2
	available := t.width - fixedWidth - totalPadding - leftMargin
	if available < 0 {
		available = 0
	}

	for i, col := range t.columns {
		if col.WidthRatio > 0 {
			ratio := col.WidthRatio / totalRatio
			width := int(float64(available) * ratio)
			if width < col.MinWidth {
				width = col.MinWidth
			}
			if col.MaxWidth > 0 && width > col.MaxWidth {
				width = col.MaxWidth
			}
			widths[i] = width
		}
	}

	return widths
}

// Render generates the table output as a string.
func (t *ResultsTable) Render() string {
	if len(t.rows) == 0 {
		return ""
	}

	widths := t.calculateWidths()

	tableRows := make([][]string, len(t.rows))
	for i, row := range t.rows {
		tableRow := make([]string, len(t.columns))
		for j := range t.columns {
			if j < len(row.Cells) {
				tableRow[j] = row.Cells[j]
			}
		}
		tableRows[i] = tableRow
	}

	tbl := table.New().
		Border(lipgloss.Border{}).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderRow(false).
		BorderColumn(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col >= len(t.columns) {
				return lipgloss.NewStyle()
			}

			colDef := t.columns[col]
			style := colDef.Style
			if style.Value() == "" {
				style = lipgloss.NewStyle()
			}

			style = style.Width(widths[col])

			switch colDef.Align {
			case AlignRight:
				style = style.Align(lipgloss.Right)
			case AlignCenter:
				style = style.Align(lipgloss.Center)
			default:
				style = style.Align(lipgloss.Left)
			}

			if col < len(t.columns)-1 {
				style = style.PaddingRight(2)
			}

			return style
		}).
		Rows(tableRows...)

	return tbl.Render()
}

// TruncateWithEllipsis truncates a string to maxLen, adding ellipsis if
// needed. It tries to break at word boundaries.
func TruncateWithEllipsis(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}

	truncated := s[:maxLen-3]
	lastSpace := strings.LastIndex(truncated, " ")
	if lastSpace > maxLen/2 {
		truncated = truncated[:lastSpace]
	}
	return truncated + "..."
}

// FormatRowNum formats a row number with consistent width.
func FormatRowNum(num, maxNum int) string {
	width := len(fmt.Sprintf("%d", maxNum))
	if width < 2 {
		width = 2
	}
	return fmt.Sprintf("%*d", width, num)
}
