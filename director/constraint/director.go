package constraint

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/they4kman/minefield/director/random"
	"github.com/they4kman/minefield/game"
	"github.com/they4kman/minefield/util/collections"
)

const simplifyRounds = 4

// Director deduces safe cells and mines from the revealed numbers. When
// nothing can be deduced it reveals the frontier cell least likely to hold a
// mine, and with no frontier at all it falls back to a random reveal.
type Director struct {
	Rand *rand.Rand

	// Moves made without a deduction behind them
	Guesses int

	board *game.Board
	grid  game.Grid

	observations       []*Observation
	observationsByCell map[game.Position][]*Observation
}

// Observation states that exactly numMines of cells are mines
type Observation struct {
	origin   *game.Position
	numMines int
	cells    collections.Set[game.Position]
}

func (observation Observation) String() string {
	var cellsRepr strings.Builder
	for i, pos := range sortedCells(observation.cells) {
		if i > 0 {
			cellsRepr.WriteString(", ")
		}
		cellsRepr.WriteString(pos.String())
	}

	originRepr := "?"
	if observation.origin != nil {
		originRepr = observation.origin.String()
	}

	return fmt.Sprintf("Obs[%8s, %d ε %s]", originRepr, observation.numMines, cellsRepr.String())
}

func (observation Observation) MineProbability() float64 {
	return float64(observation.numMines) / float64(observation.cells.Len())
}

func (director *Director) Init(board *game.Board) {
	director.board = board
	director.Guesses = 0
	if director.Rand == nil {
		director.Rand = rand.New(rand.NewSource(board.Seed()))
	}
}

func (director *Director) Act() bool {
	director.observe()

	actors := []func() bool{
		director.actDeliberate,
		director.actLowestProbability,
		director.actRandom,
	}
	for _, actor := range actors {
		if actor() {
			return true
		}
	}
	return false
}

func (director *Director) actDeliberate() bool {
	for _, observation := range director.observations {
		if observation.cells.Len() == 0 {
			continue
		}

		switch observation.numMines {
		case observation.cells.Len():
			game.Log.WithField("observation", observation).Debug("flagging deduced mines")
			for _, pos := range sortedCells(observation.cells) {
				director.board.ToggleFlag(pos.X, pos.Y)
			}
			return true

		case 0:
			game.Log.WithField("observation", observation).Debug("revealing deduced safe cells")
			for _, pos := range sortedCells(observation.cells) {
				director.board.Reveal(pos.X, pos.Y)
			}
			return true
		}
	}
	return false
}

func (director *Director) actLowestProbability() bool {
	lowestProbability := math.Inf(1)
	cellProbabilities := make(map[game.Position]float64)

	for _, observation := range director.observations {
		if observation.cells.Len() == 0 {
			continue
		}
		probability := observation.MineProbability()

		for pos := range observation.cells {
			if past, ok := cellProbabilities[pos]; !ok || probability < past {
				cellProbabilities[pos] = probability
			}
			if probability < lowestProbability {
				lowestProbability = probability
			}
		}
	}

	if len(cellProbabilities) == 0 {
		return false
	}

	lowestProbabilityCells := collections.NewSet[game.Position]()
	for pos, probability := range cellProbabilities {
		if probability <= lowestProbability {
			lowestProbabilityCells.Add(pos)
		}
	}

	candidates := sortedCells(lowestProbabilityCells)
	pos := candidates[director.Rand.Intn(len(candidates))]

	director.Guesses++
	game.Log.WithFields(logrus.Fields{
		"cell":        pos,
		"probability": lowestProbability,
	}).Debug("guessing lowest mine probability")

	return director.board.Reveal(pos.X, pos.Y)
}

func (director *Director) actRandom() bool {
	randomDirector := &random.Director{Rand: director.Rand}
	randomDirector.Init(director.board)
	if !randomDirector.Act() {
		return false
	}
	director.Guesses++
	return true
}

// observe rebuilds every observation from the current board
func (director *Director) observe() {
	director.grid = director.board.Grid()
	director.observations = nil
	director.observationsByCell = make(map[game.Position][]*Observation)

	for _, cell := range director.grid.Cells() {
		if cell.Revealed && cell.Type != game.Mine {
			director.cellRevealed(cell)
		}
	}

	for i := 0; i < simplifyRounds; i++ {
		director.simplifyObservations()
	}
}

func (director *Director) cellRevealed(cell game.Cell) {
	hidden := collections.NewSet[game.Position]()
	flagged := collections.NewSet[game.Position]()

	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			neighbor, ok := director.grid.At(cell.Position.X+dx, cell.Position.Y+dy)
			if !ok || neighbor.Revealed || (dx == 0 && dy == 0) {
				continue
			}
			hidden.Add(neighbor.Position)
			if neighbor.Flagged {
				flagged.Add(neighbor.Position)
			}
		}
	}

	origin := cell.Position
	observation := &Observation{
		origin:   &origin,
		numMines: cell.Number - flagged.Len(),
		cells:    hidden.Difference(flagged),
	}

	// Flags placed by hand may contradict the number; such a cell tells us nothing
	if observation.numMines < 0 || observation.numMines > observation.cells.Len() {
		return
	}

	director.addObservation(observation)
}

// simplifyObservations derives new observations from overlapping pairs
func (director *Director) simplifyObservations() {
	numObservations := len(director.observations)

	for i := 0; i < numObservations; i++ {
		observation := director.observations[i]
		if observation.cells.Len() == 0 {
			continue
		}

		visited := collections.NewSet[*Observation]()

		for _, pos := range sortedCells(observation.cells) {
			for _, intersectingObs := range director.observationsByCell[pos] {
				if intersectingObs == observation || visited.Contains(intersectingObs) {
					continue
				}
				visited.Add(intersectingObs)

				onlyIntersecting := intersectingObs.cells.Difference(observation.cells)
				isSubset := observation.cells.Len()+onlyIntersecting.Len() == intersectingObs.cells.Len()

				if isSubset {
					director.addObservation(&Observation{
						numMines: intersectingObs.numMines - observation.numMines,
						cells:    onlyIntersecting,
					})
					continue
				}

				// observation's single mine can account for at most one of the
				// intersecting observation's mines
				numShared := intersectingObs.cells.Len() - onlyIntersecting.Len()
				occludedMines := intersectingObs.numMines - observation.numMines
				if observation.numMines == 1 && numShared > 1 && occludedMines == onlyIntersecting.Len() {
					director.addObservation(&Observation{
						numMines: occludedMines,
						cells:    onlyIntersecting,
					})
				}
			}
		}
	}
}

func (director *Director) addObservation(observation *Observation) {
	// Don't add vacuous observations
	if observation.cells.Len() == 0 {
		return
	}

	// Any duplicate covers every cell, so checking one cell's list is enough
	for pos := range observation.cells {
		for _, otherObs := range director.observationsByCell[pos] {
			if sameCells(observation.cells, otherObs.cells) {
				return
			}
		}
		break
	}

	for pos := range observation.cells {
		director.observationsByCell[pos] = append(director.observationsByCell[pos], observation)
	}
	director.observations = append(director.observations, observation)
}

func sameCells(a, b collections.Set[game.Position]) bool {
	return a.Len() == b.Len() && a.Difference(b).Len() == 0
}

func sortedCells(cells collections.Set[game.Position]) []game.Position {
	return cells.Sorted(func(a, b game.Position) bool {
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
}
