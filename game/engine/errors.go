package engine

import "errors"

var (
	ErrOutOfRange      = errors.New("coordinate out of range")
	ErrBoardCapacity   = errors.New("not enough free cells for placement")
	ErrInvalidConfig   = errors.New("invalid run configuration")
	ErrAlreadyRun      = errors.New("engine has already run")
	ErrMissionComplete = errors.New("mission complete")
)
