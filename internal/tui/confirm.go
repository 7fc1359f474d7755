package tui

import (
	"context"

	"github.com/runoshun/taskpro/internal/domain"
)

// confirmRequest is one question waiting for the user.
type confirmRequest struct {
	reply  chan bool
	prompt string
}

// answer delivers ok to the waiting Confirm call. It never blocks.
func (r confirmRequest) answer(ok bool) {
	select {
	case r.reply <- ok:
	default:
	}
}

// promptConfirmer asks the running model to confirm.
// Confirm blocks in a command goroutine while the model shows the dialog.
type promptConfirmer struct {
	requests chan confirmRequest
}

// Ensure promptConfirmer implements domain.Confirmer interface.
var _ domain.Confirmer = (*promptConfirmer)(nil)

func newPromptConfirmer() *promptConfirmer {
	return &promptConfirmer{requests: make(chan confirmRequest)}
}

// Confirm hands the prompt to the model and waits for the answer.
func (c *promptConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	req := confirmRequest{prompt: prompt, reply: make(chan bool, 1)}
	select {
	case c.requests <- req:
	case <-ctx.Done():
		return false, ctx.Err()
	}
	select {
	case ok := <-req.reply:
		return ok, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}
