package pkg

import "github.com/google/uuid"

// GenerateGameID returns a short game code players can share.
func GenerateGameID() string {
	return uuid.NewString()[:8]
}

func GenerateNewSessionID() string {
	return uuid.NewString()
}
