package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mwhitfield/clavier/internal/models"
	"github.com/mwhitfield/clavier/internal/services"
	"github.com/mwhitfield/clavier/internal/session"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var _ tea.Msg = Msg{}

const (
	MsgSessionChanged MsgKind = iota
	MsgListChanged
	MsgToastsChanged
	MsgStatsFetched
	MsgLoginResult
	MsgSignupResult
	MsgMutationDone
)

// sessionChangedMsg is the constructor for [MsgSessionChanged]
func sessionChangedMsg(state session.State) Msg {
	return Msg{kind: MsgSessionChanged, data: state}
}

// listChangedMsg is the constructor for [MsgListChanged]
func listChangedMsg(view ViewState) Msg {
	return Msg{kind: MsgListChanged, data: view}
}

// toastsChangedMsg is the constructor for [MsgToastsChanged]
func toastsChangedMsg() Msg {
	return Msg{kind: MsgToastsChanged}
}

// statsFetchedMsg is the constructor for [MsgStatsFetched]
func statsFetchedMsg(stats *models.Stats, err error) Msg {
	return Msg{
		kind: MsgStatsFetched,
		data: struct {
			stats *models.Stats
			err   error
		}{stats, err},
	}
}

// loginResultMsg is the constructor for [MsgLoginResult]
func loginResultMsg(result *services.Result[services.LoginData], err error) Msg {
	return Msg{
		kind: MsgLoginResult,
		data: struct {
			result *services.Result[services.LoginData]
			err    error
		}{result, err},
	}
}

// signupResultMsg is the constructor for [MsgSignupResult]
func signupResultMsg(result *services.Result[struct{}], err error) Msg {
	return Msg{
		kind: MsgSignupResult,
		data: struct {
			result *services.Result[struct{}]
			err    error
		}{result, err},
	}
}

// mutationDoneMsg is the constructor for [MsgMutationDone]
func mutationDoneMsg(view ViewState, message string, ok bool) Msg {
	return Msg{
		kind: MsgMutationDone,
		data: struct {
			view    ViewState
			message string
			ok      bool
		}{view, message, ok},
	}
}
