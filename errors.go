package kalori

import (
	"errors"
)

var (
	ErrClosed       = errors.New("site is closed")
	ErrRedisConnect = errors.New("failed to connect to Redis")
	ErrOpenDatabase = errors.New("failed to open food database")
)
