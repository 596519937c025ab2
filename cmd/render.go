package cmd

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/they4kman/minefield/game"
)

func render(out io.Writer, board *game.Board) {
	grid := board.Grid()

	fmt.Fprintf(out, "%03d   %s", board.RemainingMines(), formatTimer(board.Elapsed()))
	switch grid.Status() {
	case game.Won:
		fmt.Fprint(out, "   WIN!")
	case game.Lost:
		fmt.Fprint(out, "   LOSE :(")
	}
	fmt.Fprintln(out)

	fmt.Fprint(out, renderGrid(grid))
}

func renderGrid(grid game.Grid) string {
	var b strings.Builder

	b.WriteString("   ")
	for x := 0; x < grid.Width(); x++ {
		fmt.Fprintf(&b, "%d", x%10)
	}
	b.WriteString("\n")

	for y := 0; y < grid.Height(); y++ {
		fmt.Fprintf(&b, "%2d ", y)
		for x := 0; x < grid.Width(); x++ {
			cell, _ := grid.At(x, y)
			b.WriteString(cellGlyph(cell))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func cellGlyph(cell game.Cell) string {
	switch {
	case cell.Exploded:
		return "X"
	case cell.Flagged:
		return "F"
	case !cell.Revealed:
		return "#"
	case cell.Type == game.Mine:
		return "*"
	case cell.Type == game.Number:
		return strconv.Itoa(cell.Number)
	default:
		return "."
	}
}

// formatTimer renders elapsed seconds rounded to 4 decimals
func formatTimer(elapsed time.Duration) string {
	seconds := math.Round(elapsed.Seconds()*1e4) / 1e4
	return "Time: " + strconv.FormatFloat(seconds, 'f', -1, 64) + " s"
}
