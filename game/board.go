package game

import (
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Rand is the part of *math/rand.Rand the board draws mine positions from
type Rand interface {
	Intn(n int) int
}

type Board struct {
	width, height int // in number of cells
	numMines      int
	cells         [][]Cell

	state    Status
	numFlags int
	elapsed  time.Duration

	rand Rand
	seed int64
}

// NewBoard creates an engine drawing from rng. A nil rng is replaced with a
// time-seeded source. No game is started until NewGame is called.
func NewBoard(rng Rand) *Board {
	if rng == nil {
		return NewSeededBoard(time.Now().UnixNano())
	}
	return &Board{rand: rng}
}

func NewSeededBoard(seed int64) *Board {
	return &Board{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

func (board *Board) Width() int {
	return board.width
}

func (board *Board) Height() int {
	return board.height
}

func (board *Board) NumCells() int {
	return board.width * board.height
}

func (board *Board) MineCount() int {
	return board.numMines
}

func (board *Board) FlagCount() int {
	return board.numFlags
}

// RemainingMines is the header counter: mines minus flags, may go negative
func (board *Board) RemainingMines() int {
	return board.numMines - board.numFlags
}

func (board *Board) Status() Status {
	return board.state
}

func (board *Board) Seed() int64 {
	return board.seed
}

func (board *Board) Elapsed() time.Duration {
	return board.elapsed
}

// Advance moves the game timer forward. The timer stops once the game is over.
func (board *Board) Advance(d time.Duration) {
	if board.canPlay() && d > 0 {
		board.elapsed += d
	}
}

func (board *Board) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < board.width && y < board.height
}

// CellAt returns a copy of the cell at (x, y). Out of bounds coordinates
// yield an Invalid cell and false.
func (board *Board) CellAt(x, y int) (Cell, bool) {
	if cell := board.cellAt(x, y); cell != nil {
		return *cell, true
	}
	return Cell{Position: Position{x, y}}, false
}

func (board *Board) cellAt(x, y int) *Cell {
	if board.InBounds(x, y) {
		return &board.cells[y][x]
	}
	return nil
}

func (board *Board) canPlay() bool {
	return board.cells != nil && board.state == Active
}

// NewGame discards the current grid and deals a fresh one. mineCount is
// clamped into [0, width*height].
func (board *Board) NewGame(width, height, mineCount int) (Grid, error) {
	if width <= 0 || height <= 0 {
		return Grid{}, errors.Wrapf(ErrInvalidDimensions, "got %dx%d", width, height)
	}

	board.reset(width, height)
	board.placeMines(ClampMines(width, height, mineCount))
	board.fillNumbers()

	Log.WithFields(logrus.Fields{
		"width":  width,
		"height": height,
		"mines":  board.numMines,
	}).Debug("new game")

	return board.Grid(), nil
}

func (board *Board) reset(width, height int) {
	board.width, board.height = width, height
	board.numMines = 0
	board.numFlags = 0
	board.elapsed = 0
	board.state = Active

	board.cells = make([][]Cell, height)
	for y := 0; y < height; y++ {
		row := make([]Cell, width)
		for x := 0; x < width; x++ {
			row[x] = Cell{
				Position: Position{x, y},
				Type:     Empty,
			}
		}
		board.cells[y] = row
	}
}

// Reveal opens the cell at (x, y), and reports whether anything changed.
// Out of bounds, revealed and flagged cells are ignored, as is any reveal
// after the game has ended.
func (board *Board) Reveal(x, y int) bool {
	if !board.canPlay() {
		return false
	}

	cell := board.cellAt(x, y)
	if cell == nil || cell.Revealed || cell.Flagged {
		return false
	}

	switch cell.Type {
	case Mine:
		board.explode(cell)
	case Empty:
		board.flood(cell)
		board.checkWinCondition()
	default:
		cell.Revealed = true
		board.checkWinCondition()
	}

	return true
}

// ToggleFlag flips the flag on a hidden cell, and reports whether it did.
// There is no limit on the number of flags.
func (board *Board) ToggleFlag(x, y int) bool {
	if !board.canPlay() {
		return false
	}

	cell := board.cellAt(x, y)
	if cell == nil || cell.Revealed {
		return false
	}

	cell.Flagged = !cell.Flagged
	if cell.Flagged {
		board.numFlags++
	} else {
		board.numFlags--
	}

	return true
}

func (board *Board) explode(cell *Cell) {
	cell.Revealed = true
	cell.Exploded = true

	for y := range board.cells {
		for x := range board.cells[y] {
			if other := &board.cells[y][x]; other.Type == Mine {
				other.Revealed = true
			}
		}
	}

	board.lose(cell.Position)
}

func (board *Board) lose(at Position) {
	board.state = Lost
	Log.WithFields(logrus.Fields{
		"cell":    at,
		"elapsed": board.elapsed,
	}).Info("game lost")
}

// checkWinCondition scans the whole grid; it only runs after a user action
func (board *Board) checkWinCondition() bool {
	if !board.allSafeRevealed() {
		return false
	}
	board.win()
	return true
}

func (board *Board) allSafeRevealed() bool {
	for y := range board.cells {
		for x := range board.cells[y] {
			cell := &board.cells[y][x]
			if cell.Type != Mine && !cell.Revealed {
				return false
			}
		}
	}
	return true
}

func (board *Board) win() {
	board.state = Won

	numFlags := 0
	for y := range board.cells {
		for x := range board.cells[y] {
			cell := &board.cells[y][x]
			if cell.Type == Mine {
				cell.Flagged = true
			}
			if cell.Flagged {
				numFlags++
			}
		}
	}
	board.numFlags = numFlags

	Log.WithFields(logrus.Fields{
		"mines":   board.numMines,
		"elapsed": board.elapsed,
	}).Info("game won")
}
