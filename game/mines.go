package game

// ClampMines bounds a requested mine count to what a width x height board can hold
func ClampMines(width, height, mineCount int) int {
	if mineCount < 0 {
		return 0
	}
	if total := width * height; mineCount > total {
		return total
	}
	return mineCount
}

// placeMines drops count mines on the board. Each mine starts at a random
// cell; if that cell is taken, it scans forward row by row (wrapping to the
// top after the last row) until it finds a free one. Collisions therefore
// favour cells just after existing mines; the distribution is not uniform.
func (board *Board) placeMines(count int) {
	for i := 0; i < count; i++ {
		x := board.rand.Intn(board.width)
		y := board.rand.Intn(board.height)

		for board.cells[y][x].Type == Mine {
			x++
			if x >= board.width {
				x = 0
				y++
				if y >= board.height {
					y = 0
				}
			}
		}

		board.cells[y][x].Type = Mine
		board.numMines++
	}
}

// fillNumbers sets each non-mine cell's neighbour count, and promotes it to
// Number when that count is non-zero
func (board *Board) fillNumbers() {
	for y := range board.cells {
		for x := range board.cells[y] {
			cell := &board.cells[y][x]
			if cell.Type == Mine {
				continue
			}

			cell.Number = board.countMines(x, y)
			if cell.Number > 0 {
				cell.Type = Number
			} else {
				cell.Type = Empty
			}
		}
	}
}

func (board *Board) countMines(cellX, cellY int) int {
	count := 0
	board.eachNeighbor(cellX, cellY, func(neighbor *Cell) {
		if neighbor.Type == Mine {
			count++
		}
	})
	return count
}

// eachNeighbor visits the in-bounds cells of the 8-neighbourhood
func (board *Board) eachNeighbor(cellX, cellY int, visit func(*Cell)) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if neighbor := board.cellAt(cellX+dx, cellY+dy); neighbor != nil {
				visit(neighbor)
			}
		}
	}
}
