package game

import "time"

type GameConfig struct {
	// Index into Presets
	PresetIndex int

	// Seed for mine placement; zero picks one from the clock
	Seed int64

	// Snapshot to load board configuration from
	Snapshot *BoardSnapshot
	// Whether to set all cells as unrevealed when loading the Snapshot
	LoadSnapshotFresh bool

	Director Director
}

func NewGameConfig() GameConfig {
	return GameConfig{
		PresetIndex:       DefaultPresetIndex,
		LoadSnapshotFresh: true,
	}
}

func (config GameConfig) Preset() (Preset, error) {
	return PresetAt(config.PresetIndex)
}

// CreateBoard deals the first game described by config
func (config GameConfig) CreateBoard() (*Board, error) {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	board := NewSeededBoard(seed)

	if config.Snapshot != nil {
		if err := board.LoadSnapshot(config.Snapshot, config.LoadSnapshotFresh); err != nil {
			return nil, err
		}
		return board, nil
	}

	preset, err := config.Preset()
	if err != nil {
		return nil, err
	}
	if _, err := preset.NewGame(board); err != nil {
		return nil, err
	}
	return board, nil
}
