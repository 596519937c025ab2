package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/they4kman/minefield/game"
)

const prompt = "> "

const help = `commands:
  r X Y   reveal the cell at column X, row Y
  f X Y   toggle a flag on the cell at column X, row Y
  s       open or close the size menu; the timer stops and moves wait while it is open
  s SIZE  pick the board size for the next game (name or index) and close the menu
  n       start a new game (once the current one is over)
  q       quit`

var errGameInProgress = errors.New("the current game is not over yet")
var errSizeMenuOpen = errors.New("the size menu is open, pick a size or close it with s")

// session feeds terminal commands into a board and draws it after each one
type session struct {
	config game.GameConfig
	board  *game.Board

	// preset applied by the next "n"
	nextPreset int
	inSizeMenu bool

	in  *bufio.Scanner
	out io.Writer

	now      func() time.Time
	lastTick time.Time

	dumpSnapshots bool
}

func newSession(config game.GameConfig, in io.Reader, out io.Writer) (*session, error) {
	board, err := config.CreateBoard()
	if err != nil {
		return nil, err
	}

	return &session{
		config:     config,
		board:      board,
		nextPreset: config.PresetIndex,
		in:         bufio.NewScanner(in),
		out:        out,
		now:        time.Now,
	}, nil
}

func (s *session) run() error {
	if s.config.Director != nil {
		game.Autoplay(s.board, s.config.Director)
		render(s.out, s.board)
		s.gameEnded()
		return nil
	}

	s.lastTick = s.now()
	render(s.out, s.board)
	fmt.Fprint(s.out, prompt)

	for s.in.Scan() {
		s.tick()

		quit, err := s.handle(s.in.Text())
		if quit {
			return nil
		}
		if err != nil {
			fmt.Fprintln(s.out, err)
		} else {
			render(s.out, s.board)
		}
		fmt.Fprint(s.out, prompt)
	}

	return s.in.Err()
}

func (s *session) tick() {
	now := s.now()
	if !s.inSizeMenu {
		s.board.Advance(now.Sub(s.lastTick))
	}
	s.lastTick = now
}

func (s *session) handle(line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	switch strings.ToLower(fields[0]) {
	case "r", "reveal":
		if s.inSizeMenu {
			return false, errSizeMenuOpen
		}
		x, y, err := parseCoords(fields[1:])
		if err != nil {
			return false, err
		}
		wasOver := s.board.Status().IsOver()
		if s.board.Reveal(x, y) && !wasOver && s.board.Status().IsOver() {
			s.gameEnded()
		}
	case "f", "flag":
		if s.inSizeMenu {
			return false, errSizeMenuOpen
		}
		x, y, err := parseCoords(fields[1:])
		if err != nil {
			return false, err
		}
		s.board.ToggleFlag(x, y)
	case "s", "size":
		switch len(fields) {
		case 1:
			s.inSizeMenu = !s.inSizeMenu
			if s.inSizeMenu {
				fmt.Fprintln(s.out, presetUsage())
			}
		case 2:
			index, err := game.ParsePreset(fields[1])
			if err != nil {
				return false, err
			}
			s.nextPreset = index
			s.inSizeMenu = false
		default:
			return false, errors.New("usage: s [SIZE]")
		}
	case "n", "new":
		if !s.board.Status().IsOver() {
			return false, errGameInProgress
		}
		s.inSizeMenu = false
		return false, s.newGame()
	case "q", "quit":
		return true, nil
	case "h", "help", "?":
		fmt.Fprintln(s.out, help)
	default:
		return false, errors.Errorf("unknown command %q, try h", fields[0])
	}

	return false, nil
}

func (s *session) newGame() error {
	preset, err := game.PresetAt(s.nextPreset)
	if err != nil {
		return err
	}
	_, err = preset.NewGame(s.board)
	return err
}

func (s *session) gameEnded() {
	if s.dumpSnapshots {
		fmt.Fprint(s.out, s.board.Snapshot().Serialize())
	}
}

func parseCoords(args []string) (int, int, error) {
	if len(args) != 2 {
		return 0, 0, errors.New("expected X and Y")
	}
	x, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, errors.Wrap(err, "parsing X")
	}
	y, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, errors.Wrap(err, "parsing Y")
	}
	return x, y, nil
}
