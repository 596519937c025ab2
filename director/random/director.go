package random

import (
	"math/rand"

	"github.com/they4kman/minefield/game"
	"github.com/they4kman/minefield/util/collections"
)

// Director reveals a uniformly random hidden, unflagged cell on every move
type Director struct {
	Rand *rand.Rand

	board      *game.Board
	candidates collections.Set[game.Position]
}

func (director *Director) Init(board *game.Board) {
	director.board = board
	director.candidates = collections.NewSet[game.Position]()
	if director.Rand == nil {
		director.Rand = rand.New(rand.NewSource(board.Seed()))
	}

	for _, cell := range board.Grid().Cells() {
		if !cell.Revealed && !cell.Flagged {
			director.candidates.Add(cell.Position)
		}
	}
}

func (director *Director) Act() bool {
	director.prune()
	if director.candidates.Len() == 0 {
		return false
	}

	positions := director.candidates.Sorted(func(a, b game.Position) bool {
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
	pos := positions[director.Rand.Intn(len(positions))]
	director.candidates.Remove(pos)

	game.Log.WithField("cell", pos).Debug("director reveal")
	return director.board.Reveal(pos.X, pos.Y)
}

// prune drops candidates a previous flood already opened
func (director *Director) prune() {
	for pos := range director.candidates {
		cell, ok := director.board.CellAt(pos.X, pos.Y)
		if !ok || cell.Revealed || cell.Flagged {
			director.candidates.Remove(pos)
		}
	}
}
