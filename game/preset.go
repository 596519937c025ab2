package game

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Preset is one of the fixed difficulty tiers. Boards are always square.
type Preset struct {
	Name     string
	Size     int
	NumMines int
}

var Presets = []Preset{
	{Name: "beginner", Size: 8, NumMines: 8},
	{Name: "intermediate", Size: 16, NumMines: 32},
	{Name: "expert", Size: 32, NumMines: 128},
	{Name: "huge", Size: 64, NumMines: 512},
}

const DefaultPresetIndex = 1

func PresetAt(index int) (Preset, error) {
	if index < 0 || index >= len(Presets) {
		return Preset{}, errors.Wrapf(ErrUnknownPreset, "index %d", index)
	}
	return Presets[index], nil
}

// ParsePreset accepts either a preset name or its index
func ParsePreset(value string) (int, error) {
	value = strings.ToLower(strings.TrimSpace(value))

	for i, preset := range Presets {
		if preset.Name == value {
			return i, nil
		}
	}

	if index, err := strconv.Atoi(value); err == nil {
		if _, err := PresetAt(index); err != nil {
			return 0, err
		}
		return index, nil
	}

	return 0, errors.Wrapf(ErrUnknownPreset, "%q", value)
}

func (preset Preset) NewGame(board *Board) (Grid, error) {
	return board.NewGame(preset.Size, preset.Size, preset.NumMines)
}
