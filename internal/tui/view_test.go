package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/taskpro/internal/testutil"
)

func TestView_LoadingBeforeFirstResponse(t *testing.T) {
	m := newTestModel(t, testutil.NewMockTaskStore(milk))

	view := m.View()

	assert.Contains(t, view, "Chargement des tâches")
	assert.NotContains(t, view, "Buy milk")
}

func TestView_EmptyList(t *testing.T) {
	// Setup
	m := newTestModel(t, testutil.NewMockTaskStore())
	run(t, m, m.listCmd())

	// Execute
	view := m.View()

	// Assert
	assert.Contains(t, view, "Aucune tâche pour le moment")
	assert.Contains(t, view, "Créez votre première tâche pour commencer !")
	assert.NotContains(t, view, "⚠")
}

func TestView_SingleTask(t *testing.T) {
	// Setup
	m := newTestModel(t, testutil.NewMockTaskStore(milk))
	run(t, m, m.listCmd())

	// Execute
	view := m.View()

	// Assert
	assert.Contains(t, view, "Buy milk")
	assert.Contains(t, view, "[ ]")
	assert.Contains(t, view, "⏳ En cours")
	assert.Contains(t, view, "1 janvier 2024")
	assert.Contains(t, view, "1 tâche(s), 0 terminée(s)")
}

func TestView_CompletedTask(t *testing.T) {
	m := newTestModel(t, testutil.NewMockTaskStore(bread))
	run(t, m, m.listCmd())

	view := m.View()

	assert.Contains(t, view, "[x]")
	assert.Contains(t, view, "✅ Terminée")
	assert.Contains(t, view, "15 mars 2024")
	assert.Contains(t, view, "Sourdough, 500g flour")
}

func TestView_ErrorBannerKeepsList(t *testing.T) {
	// Setup
	store := testutil.NewMockTaskStore(milk)
	m := newTestModel(t, store)
	run(t, m, m.listCmd())
	store.ListErr = errors.New("connection refused")

	// Execute
	run(t, m, m.listCmd())
	view := m.View()

	// Assert
	assert.Contains(t, view, "Impossible de charger les tâches. Vérifiez votre connexion.")
	assert.Contains(t, view, "Buy milk", "previous list stays visible")
}

func TestView_Form(t *testing.T) {
	m := newTestModel(t, testutil.NewMockTaskStore())
	run(t, m, m.listCmd())

	press(m, keyRunes("n"))
	view := m.View()

	assert.Contains(t, view, "Nouvelle Tâche")
	assert.Contains(t, view, "Titre *")
	assert.Contains(t, view, "Description")
	assert.Contains(t, view, "➕ Ajouter la tâche")
}

func TestView_ConfirmDialog(t *testing.T) {
	m := newTestModel(t, testutil.NewMockTaskStore(milk))
	run(t, m, m.listCmd())
	done := startDelete(t, m)
	defer func() {
		press(m, keyRunes("n"))
		<-done
	}()

	view := m.View()

	assert.Contains(t, view, "Êtes-vous sûr de vouloir supprimer cette tâche ?")
	assert.Contains(t, view, "Supprimer : Buy milk")
}

func TestView_Detail(t *testing.T) {
	m := newTestModel(t, testutil.NewMockTaskStore(bread))
	run(t, m, m.listCmd())

	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	view := m.View()

	assert.Contains(t, view, "#2")
	assert.Contains(t, view, "Bake bread")
	assert.Contains(t, view, "Sourdough, 500g flour")
}

func TestView_HeaderTruncated(t *testing.T) {
	m := newTestModel(t, testutil.NewMockTaskStore())
	m.Update(tea.WindowSizeMsg{Width: 30, Height: 20})

	header := m.viewHeader()

	for _, line := range strings.Split(strings.TrimRight(header, "\n"), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), m.contentWidth())
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  string
		width int
	}{
		{name: "fits", in: "short", width: 10, want: "short"},
		{name: "cut", in: "a rather long title", width: 10, want: "a rathe..."},
		{name: "wide runes", in: "タスクの一覧表示", width: 9, want: "タスク..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fit(tt.in, tt.width))
		})
	}
}

func TestEscapeNewlines(t *testing.T) {
	require.Equal(t, "a b c d", escapeNewlines("a\r\nb\nc\rd"))
}
