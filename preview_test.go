package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sreeharips1/portfolio/internal/config"
	"github.com/Sreeharips1/portfolio/internal/content"
)

func testPreview(t *testing.T) previewModel {
	t.Helper()
	c, err := content.Load()
	require.NoError(t, err)
	m, err := newPreviewModel(c.Profile, c.Certifications, config.Default())
	require.NoError(t, err)
	return m
}

func update(t *testing.T, m previewModel, msg tea.Msg) (previewModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	pm, ok := next.(previewModel)
	require.True(t, ok)
	return pm, cmd
}

func TestPreviewArrowKeysRotate(t *testing.T) {
	m := testPreview(t)
	n := len(m.certs)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, m.carousel.Active())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, n-1, m.carousel.Active())
	assert.Contains(t, m.View(), m.certs[n-1].Issuer)
}

func TestPreviewTicks(t *testing.T) {
	m := testPreview(t)

	m, cmd := update(t, m, rotateMsg{})
	assert.NotNil(t, cmd)
	assert.Equal(t, 1, m.carousel.Active())

	m, cmd = update(t, m, typeMsg{})
	assert.NotNil(t, cmd)
	assert.Equal(t, "F", m.tagline.Text)

	m, _ = update(t, m, typeMsg{})
	assert.Equal(t, "Fu", m.tagline.Text)
	assert.Contains(t, m.View(), "Fu")
}

func TestPreviewQuit(t *testing.T) {
	m := testPreview(t)
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
