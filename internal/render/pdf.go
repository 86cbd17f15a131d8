package render

import (
	"io"

	"github.com/jung-kurt/gofpdf"

	"igo/internal/domain/goboard"
	"igo/internal/domain/gotypes"
)

const (
	pageMargin  = 20.0
	gridWidth   = 170.0
	labelOffset = 5.0
)

// WritePDF draws a board diagram on a single A4 page.
func WritePDF(w io.Writer, b *goboard.Board, title string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.AddPage()

	pdf.SetFont("Courier", "B", 14)
	pdf.Cell(40, 10, title)
	pdf.Ln(12)

	size := b.NumCols
	if b.NumRows > size {
		size = b.NumRows
	}
	step := gridWidth / float64(max(size-1, 1))
	top := pdf.GetY() + labelOffset
	left := pageMargin

	x := func(col int) float64 { return left + float64(col-1)*step }
	y := func(row int) float64 { return top + float64(row-1)*step }

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.3)
	for row := 1; row <= b.NumRows; row++ {
		pdf.Line(x(1), y(row), x(b.NumCols), y(row))
	}
	for col := 1; col <= b.NumCols; col++ {
		pdf.Line(x(col), y(1), x(col), y(b.NumRows))
	}

	pdf.SetFont("Courier", "", 8)
	for col := 1; col <= b.NumCols; col++ {
		pdf.Text(x(col)-1, y(1)-labelOffset+1, string(columnLabel(col)))
	}
	for row := 1; row <= b.NumRows; row++ {
		pdf.Text(left-labelOffset-3, y(row)+1, rowLabel(b.NumRows-row+1))
	}

	radius := step * 0.45
	for row := 1; row <= b.NumRows; row++ {
		for col := 1; col <= b.NumCols; col++ {
			color, ok := b.Get(gotypes.Point{Row: row, Col: col})
			if !ok {
				continue
			}
			if color == gotypes.White {
				pdf.SetFillColor(255, 255, 255)
			} else {
				pdf.SetFillColor(0, 0, 0)
			}
			pdf.Circle(x(col), y(row), radius, "FD")
		}
	}

	return pdf.Output(w)
}
