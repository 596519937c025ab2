package game

import "github.com/gammazero/deque"

// flood reveals the connected region of Empty cells around start, plus the
// ring of Number cells bordering it. Number cells are revealed but never
// expanded. Any flag on a cell it reveals is cleared, so a revealed safe cell
// is never flagged. The Revealed flag doubles as the visited marker, so each
// cell is handled at most once and memory is bounded by the board size.
func (board *Board) flood(start *Cell) {
	var queue deque.Deque
	queue.PushBack(start.Position)

	for queue.Len() > 0 {
		pos := queue.PopFront().(Position)

		cell := board.cellAt(pos.X, pos.Y)
		if cell == nil || cell.Revealed || cell.Type == Mine {
			continue
		}

		cell.Revealed = true
		if cell.Flagged {
			cell.Flagged = false
			board.numFlags--
		}

		if cell.Type != Empty {
			continue
		}

		for _, offset := range orthogonalOffsets {
			next := pos.Add(offset)
			if board.InBounds(next.X, next.Y) {
				queue.PushBack(next)
			}
		}
	}
}
