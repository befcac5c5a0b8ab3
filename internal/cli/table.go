package cli

import (
	"io"

	"github.com/JonMunkholm/coachgrid/internal/grid"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// newTable returns a borderless, left-aligned table writing to w. aligns,
// when given, overrides the alignment of individual columns.
func newTable(w io.Writer, aligns []tw.Align) *tablewriter.Table {
	return tablewriter.NewTable(w,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{BetweenColumns: tw.Off, BetweenRows: tw.Off},
				Lines:      tw.Lines{ShowHeaderLine: tw.Off, ShowFooterLine: tw.Off},
			},
		})),
		tablewriter.WithConfig(tablewriter.Config{
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.Off},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Row: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft, PerColumn: aligns},
			},
		}),
	)
}

// columnAligns maps grid alignment hints onto table columns. lead is the
// number of extra columns placed before the grid's own.
func columnAligns(cols []grid.Column[grid.Map], lead int) []tw.Align {
	aligns := make([]tw.Align, lead, lead+len(cols))
	for i := range aligns {
		aligns[i] = tw.AlignLeft
	}
	for _, col := range cols {
		switch col.Align {
		case grid.AlignRight:
			aligns = append(aligns, tw.AlignRight)
		case grid.AlignCenter:
			aligns = append(aligns, tw.AlignCenter)
		default:
			aligns = append(aligns, tw.AlignLeft)
		}
	}
	return aligns
}
