package game

import "errors"

var (
	ErrResumeDisabled  = errors.New("resume needs REDIS_URL to be configured")
	ErrHistoryDisabled = errors.New("history needs DATABASE_URL to be configured")
	ErrInvalidGameID   = errors.New("not a game id")
)
