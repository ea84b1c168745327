package logger

import "errors"

var (
	// ErrInvalidName is returned for logger names with empty segments,
	// such as ".a", "a." or "a..b".
	ErrInvalidName = errors.New("invalid logger name")

	// ErrUnsupported is returned for level changes the current mode does
	// not allow.
	ErrUnsupported = errors.New("unsupported operation")

	// ErrReentrant is returned when a level is changed from inside a
	// level-change handler of the same logger.
	ErrReentrant = errors.New("level change already in progress")
)
