package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentHashDeterministic(t *testing.T) {
	first, err := ContentHash("canonical document text")
	require.NoError(t, err)

	second, err := ContentHash("canonical document text")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 64) // hex-encoded SHA-256
}

func TestContentHashDiffersForDifferentText(t *testing.T) {
	a, err := ContentHash("document one")
	require.NoError(t, err)

	b, err := ContentHash("document two")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestContentHashAfterNormalization(t *testing.T) {
	// The digest is taken over canonical text, so surface variation that
	// normalization erases yields the same hash
	a, err := ContentHash(Normalize("The  Quick   Brown Fox."))
	require.NoError(t, err)

	b, err := ContentHash(Normalize("the quick brown fox."))
	require.NoError(t, err)

	assert.Equal(t, a, b)
}
