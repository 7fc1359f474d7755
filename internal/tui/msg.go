package tui

import (
	"github.com/runoshun/taskpro/internal/board"
	"github.com/runoshun/taskpro/internal/domain"
)

// Msg is the sealed interface for all TUI messages.
// All message types must implement the sealed() method.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgStateChanged is sent when the board reports a change.
type MsgStateChanged struct {
	State board.State
}

func (MsgStateChanged) sealed() {}

// MsgOpDone is sent when a board operation returns.
// Err is nil on success; failures are already reflected in the board state.
type MsgOpDone struct {
	Err error
	Op  domain.Op
}

func (MsgOpDone) sealed() {}

// MsgConfirmRequest is sent when a delete waits for the user's answer.
type MsgConfirmRequest struct {
	req confirmRequest
}

func (MsgConfirmRequest) sealed() {}

// Ensure all message types implement Msg.
var (
	_ Msg = MsgStateChanged{}
	_ Msg = MsgOpDone{}
	_ Msg = MsgConfirmRequest{}
)
