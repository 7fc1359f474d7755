package domain

import "strings"

// Draft is the in-progress new-task form. It lives only on the client.
type Draft struct {
	Title       string
	Description string
}

// IsEmpty reports whether both fields are empty.
func (d Draft) IsEmpty() bool {
	return d.Title == "" && d.Description == ""
}

// Validate checks the title is non-blank after trimming.
func (d Draft) Validate() error {
	return ValidateTitle(d.Title)
}

// Request builds the create body for the draft.
// Title and description are sent as typed; new tasks always start incomplete.
func (d Draft) Request() CreateTaskRequest {
	return CreateTaskRequest{
		Title:       d.Title,
		Description: d.Description,
		Completed:   false,
	}
}

// ValidateTitle returns ErrEmptyTitle when title is blank after trimming.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	return nil
}
