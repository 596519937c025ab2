package game

// Grid is a read-only copy of a board, handed to renderers. Mutating the
// board afterwards does not affect an existing Grid, and vice versa.
type Grid struct {
	width, height int
	cells         []Cell // row-major
	status        Status
}

func (board *Board) Grid() Grid {
	grid := Grid{
		width:  board.width,
		height: board.height,
		cells:  make([]Cell, 0, board.NumCells()),
		status: board.state,
	}
	for _, row := range board.cells {
		grid.cells = append(grid.cells, row...)
	}
	return grid
}

func (grid Grid) Width() int {
	return grid.width
}

func (grid Grid) Height() int {
	return grid.height
}

func (grid Grid) Status() Status {
	return grid.status
}

func (grid Grid) At(x, y int) (Cell, bool) {
	if x < 0 || y < 0 || x >= grid.width || y >= grid.height {
		return Cell{Position: Position{x, y}}, false
	}
	return grid.cells[y*grid.width+x], true
}

// Cells returns every cell in row-major order, as a fresh slice
func (grid Grid) Cells() []Cell {
	cells := make([]Cell, len(grid.cells))
	copy(cells, grid.cells)
	return cells
}

// Count returns how many cells satisfy match
func (grid Grid) Count(match func(Cell) bool) int {
	n := 0
	for _, cell := range grid.cells {
		if match(cell) {
			n++
		}
	}
	return n
}
