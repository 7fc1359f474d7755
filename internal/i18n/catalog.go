// Package i18n holds the user-visible messages and date formatting for each supported locale.
package i18n

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Key identifies a user-visible message.
type Key string

// Message keys.
const (
	LoadFailed             Key = "load_failed"
	CreateFailed           Key = "create_failed"
	UpdateFailed           Key = "update_failed"
	DeleteFailed           Key = "delete_failed"
	TitleRequired          Key = "title_required"
	ConfirmDelete          Key = "confirm_delete"
	DeleteCancelled        Key = "delete_cancelled"
	TaskNotFound           Key = "task_not_found"
	Loading                Key = "loading"
	EmptyTitle             Key = "empty_title"
	EmptyHint              Key = "empty_hint"
	StatusDone             Key = "status_done"
	StatusPending          Key = "status_pending"
	ActionComplete         Key = "action_complete"
	ActionReopen           Key = "action_reopen"
	ActionDelete           Key = "action_delete"
	AppTitle               Key = "app_title"
	AppSubtitle            Key = "app_subtitle"
	NewTask                Key = "new_task"
	FieldTitle             Key = "field_title"
	FieldDescription       Key = "field_description"
	PlaceholderTitle       Key = "placeholder_title"
	PlaceholderDescription Key = "placeholder_description"
	Submit                 Key = "submit"
	TaskCount              Key = "task_count"
)

// Supported locales, in matching preference order.
var supported = []language.Tag{
	language.French,
	language.English,
}

var matcher = language.NewMatcher(supported)

var messages = map[language.Tag]map[Key]string{
	language.French: {
		LoadFailed:             "Impossible de charger les tâches. Vérifiez votre connexion.",
		CreateFailed:           "Impossible de créer la tâche",
		UpdateFailed:           "Impossible de mettre à jour la tâche",
		DeleteFailed:           "Impossible de supprimer la tâche",
		TitleRequired:          "Le titre est obligatoire",
		ConfirmDelete:          "Êtes-vous sûr de vouloir supprimer cette tâche ?",
		DeleteCancelled:        "Suppression annulée",
		TaskNotFound:           "Tâche introuvable : %s",
		Loading:                "Chargement des tâches",
		EmptyTitle:             "Aucune tâche pour le moment",
		EmptyHint:              "Créez votre première tâche pour commencer !",
		StatusDone:             "✅ Terminée",
		StatusPending:          "⏳ En cours",
		ActionComplete:         "✓ Terminer",
		ActionReopen:           "↩ Réactiver",
		ActionDelete:           "Supprimer",
		AppTitle:               "⚡ Task Manager Pro",
		AppSubtitle:            "Gérez vos tâches avec style et efficacité",
		NewTask:                "Nouvelle Tâche",
		FieldTitle:             "Titre *",
		FieldDescription:       "Description",
		PlaceholderTitle:       "Entrez le titre de la tâche...",
		PlaceholderDescription: "Ajoutez des détails (optionnel)...",
		Submit:                 "➕ Ajouter la tâche",
		TaskCount:              "%d tâche(s), %d terminée(s)",
	},
	language.English: {
		LoadFailed:             "Unable to load tasks. Check your connection.",
		CreateFailed:           "Unable to create the task",
		UpdateFailed:           "Unable to update the task",
		DeleteFailed:           "Unable to delete the task",
		TitleRequired:          "Title is required",
		ConfirmDelete:          "Are you sure you want to delete this task?",
		DeleteCancelled:        "Deletion cancelled",
		TaskNotFound:           "Task not found: %s",
		Loading:                "Loading tasks",
		EmptyTitle:             "No tasks yet",
		EmptyHint:              "Create your first task to get started!",
		StatusDone:             "✅ Done",
		StatusPending:          "⏳ In progress",
		ActionComplete:         "✓ Complete",
		ActionReopen:           "↩ Reopen",
		ActionDelete:           "Delete",
		AppTitle:               "⚡ Task Manager Pro",
		AppSubtitle:            "Manage your tasks with style and efficiency",
		NewTask:                "New Task",
		FieldTitle:             "Title *",
		FieldDescription:       "Description",
		PlaceholderTitle:       "Enter the task title...",
		PlaceholderDescription: "Add details (optional)...",
		Submit:                 "➕ Add task",
		TaskCount:              "%d task(s), %d done",
	},
}

var monthNames = map[language.Tag][12]string{
	language.French: {
		"janvier", "février", "mars", "avril", "mai", "juin",
		"juillet", "août", "septembre", "octobre", "novembre", "décembre",
	},
	language.English: {
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	},
}

var builder = newBuilder()

func newBuilder() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.French))
	for tag, msgs := range messages {
		for k, v := range msgs {
			// Keys and messages are static; SetString only fails on malformed input.
			if err := b.SetString(tag, string(k), v); err != nil {
				panic(fmt.Sprintf("i18n: set %s/%s: %v", tag, k, err))
			}
		}
	}
	return b
}

// Catalog renders messages and dates for one locale.
type Catalog struct {
	printer *message.Printer
	loc     *time.Location
	tag     language.Tag
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLocation sets the time zone dates are shown in (default time.Local).
func WithLocation(loc *time.Location) Option {
	return func(c *Catalog) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// New returns the catalog best matching locale, e.g. "fr", "en-US", "fr_FR".
// Unknown locales fall back to French.
func New(locale string, opts ...Option) *Catalog {
	tag := Match(locale)
	c := &Catalog{
		printer: message.NewPrinter(tag, message.Catalog(builder)),
		loc:     time.Local,
		tag:     tag,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Match returns the supported tag closest to locale.
func Match(locale string) language.Tag {
	if locale == "" {
		return supported[0]
	}
	desired, err := language.Parse(normalize(locale))
	if err != nil {
		return supported[0]
	}
	_, idx, conf := matcher.Match(desired)
	if conf == language.No {
		return supported[0]
	}
	return supported[idx]
}

// normalize accepts POSIX style locales such as fr_FR.UTF-8.
func normalize(locale string) string {
	for i, r := range locale {
		if r == '.' || r == '@' {
			locale = locale[:i]
			break
		}
	}
	b := []byte(locale)
	for i := range b {
		if b[i] == '_' {
			b[i] = '-'
		}
	}
	return string(b)
}

// Tag returns the catalog's language.
func (c *Catalog) Tag() language.Tag {
	return c.tag
}

// Text returns the message for key, formatted with args.
func (c *Catalog) Text(key Key, args ...any) string {
	return c.printer.Sprintf(string(key), args...)
}

// Date formats t as a long date, e.g. "1 janvier 2024" or "January 1, 2024".
// A zero time yields an empty string.
func (c *Catalog) Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	t = t.In(c.loc)
	months := monthNames[c.tag]
	month := months[t.Month()-1]
	if c.tag == language.English {
		return fmt.Sprintf("%s %d, %d", month, t.Day(), t.Year())
	}
	return fmt.Sprintf("%d %s %d", t.Day(), month, t.Year())
}

// Status returns the status label for a completion flag.
func (c *Catalog) Status(completed bool) string {
	if completed {
		return c.Text(StatusDone)
	}
	return c.Text(StatusPending)
}
