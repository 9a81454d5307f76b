package puzzle

// DefaultTitle is used when the input has no title.
const DefaultTitle = "Crossword Puzzle"

// Puzzle is a normalized crossword. It is read-only after [Normalize].
type Puzzle struct {
	Title     string           `json:"title"`
	Author    string           `json:"author,omitempty"`
	Copyright string           `json:"copyright,omitempty"`
	Grid      [][]Cell         `json:"grid"`
	Solution  [][]SolutionCell `json:"solution,omitempty"`
	Clues     Clues            `json:"clues"`
}

// Rows returns the number of grid rows.
func (p *Puzzle) Rows() int { return len(p.Grid) }

// Cols returns the number of grid columns.
func (p *Puzzle) Cols() int {
	if len(p.Grid) == 0 {
		return 0
	}
	return len(p.Grid[0])
}

// Size returns N for an N×N grid, or the larger dimension of a
// rectangular one.
func (p *Puzzle) Size() int {
	return max(p.Rows(), p.Cols())
}

// SolutionAt returns the solution letter at row r, column c, or "" when the
// puzzle has no solution there.
func (p *Puzzle) SolutionAt(r, c int) string {
	if r < 0 || r >= len(p.Solution) {
		return ""
	}
	row := p.Solution[r]
	if c < 0 || c >= len(row) {
		return ""
	}
	return row[c].Letter
}

// Cell is one grid square: a block, or a white square with an optional
// clue number. Number is 0 when absent.
type Cell struct {
	Black  bool `json:"black,omitempty"`
	Number int  `json:"number,omitempty"`
}

// Block returns a black cell.
func Block() Cell { return Cell{Black: true} }

// White returns a white cell. A number ≤ 0 means unnumbered.
func White(number int) Cell {
	if number < 0 {
		number = 0
	}
	return Cell{Number: number}
}

// Numbered reports whether the cell is white and carries a clue number.
func (c Cell) Numbered() bool { return !c.Black && c.Number > 0 }

// SolutionCell is one square of the answer grid. Letter is empty for blocks
// and unknown squares.
type SolutionCell struct {
	Letter string `json:"letter,omitempty"`
}

// Clue is a numbered clue. Order follows the input file.
type Clue struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// Clues holds the two clue directions.
type Clues struct {
	Across []Clue `json:"across"`
	Down   []Clue `json:"down"`
}

// Len returns the total number of clues.
func (c Clues) Len() int { return len(c.Across) + len(c.Down) }
