package render

import (
	"strconv"

	"github.com/matzehuels/gridpress/pkg/canvas"
	"github.com/matzehuels/gridpress/pkg/fonts"
	"github.com/matzehuels/gridpress/pkg/puzzle"
)

// capHeight approximates the height of capitals as a fraction of the font
// size for the core fonts.
const capHeight = 0.7

// GridOptions positions a grid on the page.
type GridOptions struct {
	CellSize     float64
	X, Y         float64 // top-left corner
	ShowSolution bool
}

// GridCellSize returns the side of a square so that n squares fit in
// maxWidth, capped at MaxCellSize.
func GridCellSize(maxWidth float64, n int) float64 {
	if n <= 0 {
		return MaxCellSize
	}
	return min(maxWidth/float64(n), MaxCellSize)
}

// DrawGrid draws the puzzle grid with its top-left corner at (X, Y) and
// returns the y of its bottom edge.
//
// White squares are outlined in black; numbered squares carry their number
// in the top-left corner. With ShowSolution, solution letters are centered
// in the white squares instead of numbers. Black squares are filled solid.
func DrawGrid(s canvas.Surface, p *puzzle.Puzzle, opts GridOptions) float64 {
	cell := opts.CellSize
	numberSize := max(8, cell/4)
	letterSize := max(12, cell*0.6)

	for r, row := range p.Grid {
		top := opts.Y - float64(r)*cell
		bottom := top - cell
		for c, sq := range row {
			x := opts.X + float64(c)*cell

			if sq.Black {
				s.DrawRect(canvas.Rect{X: x, Y: bottom, W: cell, H: cell, Fill: &canvas.Black})
				continue
			}
			s.DrawRect(canvas.Rect{
				X: x, Y: bottom, W: cell, H: cell,
				Fill: &canvas.White, Stroke: &canvas.Black, LineWidth: 1,
			})

			if opts.ShowSolution {
				letter := p.SolutionAt(r, c)
				if letter == "" {
					continue
				}
				w := s.MeasureText(letter, fonts.Bold, letterSize)
				s.DrawText(letter, x+(cell-w)/2, bottom+(cell-letterSize*capHeight)/2,
					fonts.Bold, letterSize, canvas.Black)
				continue
			}
			if sq.Numbered() {
				s.DrawText(strconv.Itoa(sq.Number), x+2, top-2-numberSize*capHeight,
					fonts.Regular, numberSize, canvas.Black)
			}
		}
	}
	return opts.Y - float64(len(p.Grid))*cell
}
