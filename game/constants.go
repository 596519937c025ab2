package game

type CellType int
type Status int

const (
	// Invalid is returned for coordinates outside the board
	Invalid CellType = iota
	Empty
	Mine
	Number
)

var cellTypeNames = map[CellType]string{
	Invalid: "invalid",
	Empty:   "empty",
	Mine:    "mine",
	Number:  "number",
}

func (t CellType) String() string {
	if name, ok := cellTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

const (
	Active Status = iota
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case Active:
		return "active"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// IsOver reports whether the status is terminal
func (s Status) IsOver() bool {
	return s == Won || s == Lost
}

// orthogonal offsets, used by flood
var orthogonalOffsets = [4]Position{
	{-1, 0},
	{1, 0},
	{0, -1},
	{0, 1},
}
