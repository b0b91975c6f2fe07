package pkg

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateIDs(t *testing.T) {
	gameID := GenerateGameID()
	assert.Len(t, gameID, 8)
	assert.NotEqual(t, gameID, GenerateGameID())

	_, err := uuid.Parse(GenerateNewSessionID())
	require.NoError(t, err)
}
