// Package ui hosts the Start Board dashboard in the terminal.
package ui

import (
	"os/exec"

	"github.com/lazyvibe/startboard/internal/host"
	"github.com/lazyvibe/startboard/internal/protocol"
)

// outboundMsg delivers a core message to the dashboard.
type outboundMsg struct {
	msg protocol.Outbound
}

// toastMsg shows a transient notification in the status bar.
type toastMsg struct {
	notification host.Notification
}

// clearToastMsg clears the toast with the given sequence number.
type clearToastMsg struct {
	seq int
}

// promptMsg asks the user to pick one of the notification's actions.
type promptMsg struct {
	notification host.Notification
	reply        chan<- string
}

// openMsg runs the open command on the dashboard's terminal.
type openMsg struct {
	cmd  *exec.Cmd
	done chan<- error
}

// openDoneMsg is sent when the open command exited.
type openDoneMsg struct {
	err  error
	done chan<- error
}

// revealMsg brings the dashboard to the front.
type revealMsg struct{}

// commandDoneMsg is sent when a host command finished.
type commandDoneMsg struct {
	name string
	err  error
}
