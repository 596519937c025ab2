package game

import (
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	Log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	Log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// boardFromLayout builds a fresh game from snapshot rows, e.g. "O#", "##"
func boardFromLayout(t *testing.T, rows ...string) *Board {
	t.Helper()
	board := NewSeededBoard(1)
	snapshot := &BoardSnapshot{SerializedBoard: strings.Join(rows, "\n")}
	require.NoError(t, board.LoadSnapshot(snapshot, true))
	return board
}

func bruteCount(grid Grid, x, y int) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if cell, ok := grid.At(x+dx, y+dy); ok && cell.Type == Mine {
				count++
			}
		}
	}
	return count
}

func TestNewGameInvariants(t *testing.T) {
	tests := []struct {
		name                 string
		width, height, mines int
	}{
		{"8x8(8)", 8, 8, 8},
		{"16x16(32)", 16, 16, 32},
		{"32x32(128)", 32, 32, 128},
		{"64x64(512)", 64, 64, 512},
		{"5x5(24)", 5, 5, 24},
		{"3x3(9)", 3, 3, 9},
		{"7x3(0)", 7, 3, 0},
		{"1x1(1)", 1, 1, 1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			for seed := int64(1); seed <= 10; seed++ {
				board := NewSeededBoard(seed)
				grid, err := board.NewGame(test.width, test.height, test.mines)
				require.NoError(t, err)

				assert.Equal(t, test.width, grid.Width())
				assert.Equal(t, test.height, grid.Height())
				assert.Equal(t, Active, board.Status())
				assert.Equal(t, test.mines, board.MineCount())
				assert.Equal(t, test.mines, grid.Count(Cell.IsMine))

				for _, cell := range grid.Cells() {
					assert.False(t, cell.Revealed || cell.Flagged || cell.Exploded, "%v starts untouched", cell)
					if cell.Type == Mine {
						continue
					}

					expected := bruteCount(grid, cell.Position.X, cell.Position.Y)
					assert.Equal(t, expected, cell.Number, "%v number", cell)
					if expected > 0 {
						assert.Equal(t, Number, cell.Type, "%v type", cell)
					} else {
						assert.Equal(t, Empty, cell.Type, "%v type", cell)
					}
				}
			}
		})
	}
}

func TestNewGameClampsMines(t *testing.T) {
	board := NewSeededBoard(1)

	_, err := board.NewGame(3, 3, 100)
	require.NoError(t, err)
	assert.Equal(t, 9, board.MineCount())

	_, err = board.NewGame(3, 3, -5)
	require.NoError(t, err)
	assert.Equal(t, 0, board.MineCount())
}

func TestNewGameInvalidDimensions(t *testing.T) {
	board := NewSeededBoard(1)

	for _, dims := range [][2]int{{0, 3}, {3, 0}, {-1, 5}, {5, -1}} {
		_, err := board.NewGame(dims[0], dims[1], 1)
		assert.Equal(t, ErrInvalidDimensions, errors.Cause(err), "%dx%d", dims[0], dims[1])
	}
}

func TestNewGameIsDeterministicPerSeed(t *testing.T) {
	first, err := NewSeededBoard(42).NewGame(16, 16, 32)
	require.NoError(t, err)
	second, err := NewSeededBoard(42).NewGame(16, 16, 32)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestNewGameReplacesPreviousGame(t *testing.T) {
	board := boardFromLayout(t, "O##", "###", "###")
	board.Reveal(0, 0)
	require.Equal(t, Lost, board.Status())

	grid, err := board.NewGame(4, 2, 1)
	require.NoError(t, err)

	assert.Equal(t, Active, board.Status())
	assert.Equal(t, 4, board.Width())
	assert.Equal(t, 2, board.Height())
	assert.Equal(t, 0, grid.Count(func(cell Cell) bool { return cell.Revealed }))
}

func TestRevealFloodWinsThreeByThree(t *testing.T) {
	board := boardFromLayout(t,
		"O##",
		"###",
		"###",
	)

	corner, _ := board.CellAt(2, 2)
	require.Equal(t, Empty, corner.Type)
	center, _ := board.CellAt(1, 1)
	require.Equal(t, Number, center.Type)
	require.Equal(t, 1, center.Number)

	assert.True(t, board.Reveal(2, 2))

	grid := board.Grid()
	for _, cell := range grid.Cells() {
		if cell.Type == Mine {
			assert.False(t, cell.Revealed, "mine is never revealed by flood")
			assert.True(t, cell.Flagged, "mines are flagged on win")
		} else {
			assert.True(t, cell.Revealed, "%v revealed", cell)
		}
	}
	assert.Equal(t, Won, board.Status())
	assert.Equal(t, 0, board.RemainingMines())
}

func TestFloodStopsAtNumbers(t *testing.T) {
	board := boardFromLayout(t,
		"##O##",
		"##O##",
		"##O##",
		"##O##",
		"##O##",
	)

	board.Reveal(0, 0)

	for _, cell := range board.Grid().Cells() {
		switch {
		case cell.Position.X < 2:
			assert.True(t, cell.Revealed, "%v revealed", cell)
		default:
			assert.False(t, cell.Revealed, "%v hidden", cell)
		}
	}
	assert.Equal(t, Active, board.Status())
}

func TestFloodRevealsOnlyRegionAndBorder(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		board := NewSeededBoard(seed)
		grid, err := board.NewGame(16, 16, 40)
		require.NoError(t, err)

		var start *Cell
		for _, cell := range grid.Cells() {
			if cell.Type == Empty {
				cell := cell
				start = &cell
				break
			}
		}
		if start == nil {
			continue
		}

		board.Reveal(start.Position.X, start.Position.Y)
		grid = board.Grid()

		for _, cell := range grid.Cells() {
			if !cell.Revealed {
				continue
			}
			require.NotEqual(t, Mine, cell.Type, "seed %d: flood revealed mine %v", seed, cell)

			if cell.Type == Number {
				touchesRegion := false
				for _, offset := range orthogonalOffsets {
					pos := cell.Position.Add(offset)
					if neighbor, ok := grid.At(pos.X, pos.Y); ok && neighbor.Revealed && neighbor.Type == Empty {
						touchesRegion = true
					}
				}
				assert.True(t, touchesRegion, "seed %d: %v is not on the flood border", seed, cell)
			}
		}
	}
}

func TestFloodLargeBoard(t *testing.T) {
	board := NewSeededBoard(1)
	_, err := board.NewGame(64, 64, 0)
	require.NoError(t, err)

	assert.True(t, board.Reveal(0, 0))
	assert.Equal(t, Won, board.Status())
	assert.Equal(t, 64*64, board.Grid().Count(func(cell Cell) bool { return cell.Revealed }))
}

func TestFloodClearsFlagsOnSafeCells(t *testing.T) {
	board := boardFromLayout(t,
		"O##",
		"###",
		"###",
	)
	require.True(t, board.ToggleFlag(2, 0))
	require.Equal(t, 1, board.FlagCount())

	board.Reveal(2, 2)

	cell, _ := board.CellAt(2, 0)
	assert.True(t, cell.Revealed)
	assert.False(t, cell.Flagged)
	assert.Equal(t, Won, board.Status())
	assert.Equal(t, 1, board.FlagCount())
}

func TestRevealNumberRevealsOnlyItself(t *testing.T) {
	board := boardFromLayout(t,
		"O##",
		"###",
		"###",
	)

	assert.True(t, board.Reveal(1, 1))

	assert.Equal(t, 1, board.Grid().Count(func(cell Cell) bool { return cell.Revealed }))
	assert.Equal(t, Active, board.Status())
}

func TestRevealAlreadyRevealedIsNoop(t *testing.T) {
	board := boardFromLayout(t,
		"O###",
		"####",
		"###O",
	)
	require.True(t, board.Reveal(1, 0))
	before := board.Grid()

	assert.False(t, board.Reveal(1, 0))
	assert.Equal(t, before, board.Grid())
}

func TestRevealOutOfBoundsIsNoop(t *testing.T) {
	board := boardFromLayout(t,
		"O##",
		"###",
		"###",
	)
	before := board.Grid()

	for _, pos := range []Position{{-1, -1}, {3, 0}, {0, 3}, {-1, 1}} {
		assert.False(t, board.Reveal(pos.X, pos.Y), "reveal %v", pos)
		assert.False(t, board.ToggleFlag(pos.X, pos.Y), "flag %v", pos)
	}

	assert.Equal(t, before, board.Grid())
	assert.Equal(t, Active, board.Status())

	cell, ok := board.CellAt(-1, -1)
	assert.False(t, ok)
	assert.Equal(t, Invalid, cell.Type)
	assert.False(t, cell.IsValid())
}

func TestToggleFlagTwiceRestores(t *testing.T) {
	board := boardFromLayout(t,
		"O##",
		"###",
	)

	assert.True(t, board.ToggleFlag(2, 1))
	cell, _ := board.CellAt(2, 1)
	assert.True(t, cell.Flagged)
	assert.Equal(t, 1, board.FlagCount())

	assert.True(t, board.ToggleFlag(2, 1))
	cell, _ = board.CellAt(2, 1)
	assert.False(t, cell.Flagged)
	assert.Equal(t, 0, board.FlagCount())
}

func TestToggleFlagUnlimited(t *testing.T) {
	board := boardFromLayout(t,
		"O##",
		"###",
	)

	for x := 0; x < 3; x++ {
		assert.True(t, board.ToggleFlag(x, 1))
	}
	assert.Equal(t, 3, board.FlagCount())
	assert.Equal(t, -2, board.RemainingMines())
}

func TestToggleFlagOnRevealedIsNoop(t *testing.T) {
	board := boardFromLayout(t,
		"O##",
		"###",
	)
	require.True(t, board.Reveal(1, 0))

	assert.False(t, board.ToggleFlag(1, 0))
	cell, _ := board.CellAt(1, 0)
	assert.False(t, cell.Flagged)
}

func TestFlagBlocksReveal(t *testing.T) {
	board := boardFromLayout(t,
		"O##",
		"###",
	)
	require.True(t, board.ToggleFlag(0, 0))

	assert.False(t, board.Reveal(0, 0))
	cell, _ := board.CellAt(0, 0)
	assert.False(t, cell.Revealed)
	assert.Equal(t, Active, board.Status())
}

func TestRevealMineLoses(t *testing.T) {
	board := boardFromLayout(t,
		"O#O",
		"###",
		"##O",
	)

	assert.True(t, board.Reveal(0, 0))
	assert.Equal(t, Lost, board.Status())

	hit := Position{0, 0}
	for _, cell := range board.Grid().Cells() {
		switch {
		case cell.Position == hit:
			assert.True(t, cell.Revealed)
			assert.True(t, cell.Exploded)
		case cell.Type == Mine:
			assert.True(t, cell.Revealed, "%v revealed", cell)
			assert.False(t, cell.Exploded, "%v exploded", cell)
			assert.False(t, cell.Flagged, "%v flagged", cell)
		default:
			assert.False(t, cell.Revealed, "%v hidden", cell)
		}
	}
}

func TestNoMovesAfterGameOver(t *testing.T) {
	board := boardFromLayout(t,
		"O##",
		"###",
	)
	board.Reveal(0, 0)
	require.Equal(t, Lost, board.Status())
	before := board.Grid()

	assert.False(t, board.Reveal(2, 1))
	assert.False(t, board.ToggleFlag(2, 1))
	assert.Equal(t, before, board.Grid())
}

func TestWinFlagsAllMines(t *testing.T) {
	board := boardFromLayout(t,
		"O#",
	)

	assert.True(t, board.Reveal(1, 0))
	assert.Equal(t, Won, board.Status())

	mine, _ := board.CellAt(0, 0)
	assert.True(t, mine.Flagged)
	assert.False(t, mine.Revealed)
	assert.Equal(t, 1, board.FlagCount())
}

func TestWinRequiresEverySafeCell(t *testing.T) {
	board := boardFromLayout(t,
		"#O#",
	)

	board.Reveal(0, 0)
	assert.Equal(t, Active, board.Status())

	board.Reveal(2, 0)
	assert.Equal(t, Won, board.Status())
}

func TestEdgeMineCounts(t *testing.T) {
	board := NewSeededBoard(3)

	_, err := board.NewGame(4, 4, 0)
	require.NoError(t, err)
	board.Reveal(3, 1)
	assert.Equal(t, Won, board.Status())

	_, err = board.NewGame(4, 4, 16)
	require.NoError(t, err)
	board.Reveal(3, 1)
	assert.Equal(t, Lost, board.Status())
}

func TestTimer(t *testing.T) {
	board := boardFromLayout(t,
		"O##",
		"###",
	)

	board.Advance(time.Second)
	board.Advance(-time.Second)
	board.Advance(500 * time.Millisecond)
	assert.Equal(t, 1500*time.Millisecond, board.Elapsed())

	board.Reveal(0, 0)
	board.Advance(time.Second)
	assert.Equal(t, 1500*time.Millisecond, board.Elapsed())

	_, err := board.NewGame(3, 3, 1)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), board.Elapsed())
}

func TestBoardWithoutGameIgnoresMoves(t *testing.T) {
	board := NewBoard(nil)

	assert.False(t, board.Reveal(0, 0))
	assert.False(t, board.ToggleFlag(0, 0))
	assert.Equal(t, 0, board.Grid().Width())
}
