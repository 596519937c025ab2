package game

// Director plays a board through its public operations, one move at a time
type Director interface {
	// Init binds the director to a board with a game already dealt
	Init(*Board)

	// Act performs a single move, and reports whether it made one
	Act() bool
}

// Autoplay lets director act until the game ends or it has no move left,
// and returns the final status
func Autoplay(board *Board, director Director) Status {
	director.Init(board)
	for board.canPlay() && director.Act() {
	}
	return board.Status()
}
