package i18n

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		locale string
		want   language.Tag
	}{
		{"", language.French},
		{"fr", language.French},
		{"fr-FR", language.French},
		{"fr_FR.UTF-8", language.French},
		{"en", language.English},
		{"en-US", language.English},
		{"en_GB", language.English},
		{"not a locale!", language.French},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(tt.locale))
		})
	}
}

func TestCatalog_Text(t *testing.T) {
	fr := New("fr")
	en := New("en")

	assert.Equal(t, "Le titre est obligatoire", fr.Text(TitleRequired))
	assert.Equal(t, "Title is required", en.Text(TitleRequired))
	assert.Equal(t, "Impossible de charger les tâches. Vérifiez votre connexion.", fr.Text(LoadFailed))
	assert.Equal(t, "Task not found: 42", en.Text(TaskNotFound, "42"))
	assert.Equal(t, "3 task(s), 1 done", en.Text(TaskCount, 3, 1))
}

func TestCatalog_EveryKeyTranslated(t *testing.T) {
	fr := messages[language.French]
	en := messages[language.English]
	assert.Len(t, en, len(fr))
	for k := range fr {
		_, ok := en[k]
		assert.True(t, ok, "missing english message for %s", k)
	}
}

func TestCatalog_Date(t *testing.T) {
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "1 janvier 2024", New("fr", WithLocation(time.UTC)).Date(ts))
	assert.Equal(t, "January 1, 2024", New("en", WithLocation(time.UTC)).Date(ts))
	assert.Equal(t, "15 août 2023", New("fr", WithLocation(time.UTC)).Date(time.Date(2023, 8, 15, 12, 0, 0, 0, time.UTC)))
	assert.Empty(t, New("fr").Date(time.Time{}))
}

func TestCatalog_Date_UsesLocation(t *testing.T) {
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	loc := time.FixedZone("UTC-5", -5*60*60)

	assert.Equal(t, "31 décembre 2023", New("fr", WithLocation(loc)).Date(ts))
}

func TestCatalog_Status(t *testing.T) {
	c := New("fr")
	assert.Equal(t, "✅ Terminée", c.Status(true))
	assert.Equal(t, "⏳ En cours", c.Status(false))
}
