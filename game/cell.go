package game

import "fmt"

type Position struct {
	X, Y int
}

func (pos Position) String() string {
	return fmt.Sprintf("(%d, %d)", pos.X, pos.Y)
}

func (pos Position) Add(other Position) Position {
	return Position{pos.X + other.X, pos.Y + other.Y}
}

// Cell is a value record; the board hands out copies, never pointers into its grid
type Cell struct {
	Position Position
	Type     CellType

	// Count of mines among the 8 neighbours, meaningful only for Number cells
	Number int

	Revealed, Flagged bool
	// Set only on the mine that lost the game
	Exploded bool
}

func (cell Cell) String() string {
	return fmt.Sprintf("Cell%v", cell.Position)
}

func (cell Cell) IsMine() bool {
	return cell.Type == Mine
}

func (cell Cell) IsValid() bool {
	return cell.Type != Invalid
}

// serialize encodes the cell as a single snapshot character
func (cell Cell) serialize() string {
	switch {
	case cell.Type == Mine:
		switch {
		case cell.Exploded:
			return "*"
		case cell.Flagged:
			return "F"
		case cell.Revealed:
			return "X"
		default:
			return "O"
		}
	case cell.Flagged:
		return "f"
	case cell.Revealed:
		return "."
	default:
		return "#"
	}
}

// deserialize applies a snapshot character to the cell, and reports whether
// the character was recognised. Numbers are recomputed once every mine is known.
func (cell *Cell) deserialize(c rune, fresh bool) bool {
	switch c {
	case '*', 'F', 'X', 'O':
		cell.Type = Mine
	case 'f', '.', '#':
		cell.Type = Empty
	default:
		return false
	}

	if fresh {
		return true
	}

	switch c {
	case '*':
		cell.Revealed = true
		cell.Exploded = true
	case 'X', '.':
		cell.Revealed = true
	case 'F', 'f':
		cell.Flagged = true
	}

	return true
}
