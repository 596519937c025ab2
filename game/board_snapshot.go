package game

import (
	"math/rand"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// BoardSnapshot captures a board's layout and play state as text, one row per
// line with y = 0 first:
//
//	#  hidden safe cell     O  hidden mine
//	.  revealed safe cell   X  revealed mine
//	f  flagged safe cell    F  flagged mine
//	                        *  exploded mine
type BoardSnapshot struct {
	Seed            int64  `yaml:"seed"`
	SerializedBoard string `yaml:"board"`
}

const snapshotGlyphs = "#.fOXF*"

func (snapshot *BoardSnapshot) Serialize() string {
	out, err := yaml.Marshal(snapshot)
	if err != nil {
		panic(err)
	}

	return string(out)
}

func LoadSnapshot(in string) (*BoardSnapshot, error) {
	var snapshot BoardSnapshot
	if err := yaml.Unmarshal([]byte(in), &snapshot); err != nil {
		return nil, errors.Wrap(err, "decoding board snapshot")
	}
	return &snapshot, nil
}

func (board *Board) Snapshot() *BoardSnapshot {
	rows := make([]string, len(board.cells))
	for y, row := range board.cells {
		var b strings.Builder
		for _, cell := range row {
			b.WriteString(cell.serialize())
		}
		rows[y] = b.String()
	}

	return &BoardSnapshot{
		Seed:            board.seed,
		SerializedBoard: strings.Join(rows, "\n"),
	}
}

// LoadSnapshot replaces the current game with the snapshot's layout. With
// fresh set, only mine positions are kept and play starts over.
func (board *Board) LoadSnapshot(snapshot *BoardSnapshot, fresh bool) error {
	rows, err := snapshot.rows()
	if err != nil {
		return err
	}

	board.reset(len(rows[0]), len(rows))
	if snapshot.Seed != 0 {
		board.seed = snapshot.Seed
		board.rand = rand.New(rand.NewSource(snapshot.Seed))
	}

	for y, row := range rows {
		for x, c := range row {
			cell := &board.cells[y][x]
			cell.deserialize(c, fresh)

			if cell.Type == Mine {
				board.numMines++
			}
			if cell.Flagged {
				board.numFlags++
			}
		}
	}

	board.fillNumbers()
	board.restoreStatus()

	Log.WithField("status", board.state).Debug("loaded snapshot")

	return nil
}

func (snapshot *BoardSnapshot) rows() ([][]rune, error) {
	text := strings.TrimSpace(snapshot.SerializedBoard)
	if text == "" {
		return nil, errors.Wrap(ErrInvalidSnapshot, "empty board")
	}

	lines := strings.Split(text, "\n")
	rows := make([][]rune, len(lines))
	for y, line := range lines {
		rows[y] = []rune(strings.TrimSpace(line))

		for x, c := range rows[y] {
			if !strings.ContainsRune(snapshotGlyphs, c) {
				return nil, errors.Wrapf(ErrInvalidSnapshot, "unexpected %q at %v", c, Position{x, y})
			}
		}
		if len(rows[y]) != len(rows[0]) {
			return nil, errors.Wrapf(
				ErrInvalidSnapshot, "row %d has %d cells, expected %d", y, len(rows[y]), len(rows[0]),
			)
		}
	}

	return rows, nil
}

func (board *Board) restoreStatus() {
	anyRevealed := false
	for y := range board.cells {
		for x := range board.cells[y] {
			cell := &board.cells[y][x]
			if cell.Exploded {
				board.state = Lost
				return
			}
			anyRevealed = anyRevealed || cell.Revealed
		}
	}

	if anyRevealed && board.allSafeRevealed() {
		board.win()
		return
	}

	board.state = Active
}
