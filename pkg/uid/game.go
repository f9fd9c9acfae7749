package uid

import "github.com/google/uuid"

// GenerateGameID returns a random id used to key a game in the cache and the
// history table.
func GenerateGameID() string {
	return uuid.NewString()
}

// IsGameID reports whether s looks like an id from GenerateGameID.
func IsGameID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
