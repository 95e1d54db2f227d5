package manipulate

import "errors"

var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrEmptyScript   = errors.New("script has no steps")
	ErrUnknownStep   = errors.New("unknown script step")
	ErrNoElement     = errors.New("no element to drive")
)
