package game

import "github.com/pkg/errors"

var (
	ErrInvalidDimensions = errors.New("board dimensions must be positive")
	ErrUnknownPreset     = errors.New("unknown board preset")
	ErrInvalidSnapshot   = errors.New("invalid board snapshot")
)
