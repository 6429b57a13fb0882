package web

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRendererParsesAllTemplates(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)
	require.NotNil(t, renderer)
}

func TestRenderLeaderboardWithoutEntries(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	data := struct {
		Title   string
		Entries []struct {
			PlayerName string
			ClubName   string
			Score      float64
		}
	}{Title: "Leaderboard - Liga A (2023)"}

	err = renderer.Render(&buf, "leaderboard", data)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Leaderboard - Liga A (2023)")
	assert.Contains(t, buf.String(), "Keine Eintr&auml;ge gefunden.")
}

func TestRenderUnknownTemplate(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = renderer.Render(&buf, "missing.html", nil)
	assert.Error(t, err)
}
