// Package testing provides test utilities for the grievance TUI.
package testing

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultCommandTimeout bounds how long ProcessCommands waits for a single
// command. Commands that take longer, such as cursor blinks, are dropped.
const DefaultCommandTimeout = 250 * time.Millisecond

// TestRenderer captures the output of a Bubble Tea model without requiring a real terminal.
type TestRenderer struct {
	// Output contains the last rendered view
	Output string

	// Commands contains the commands returned by Update calls that have not been processed yet
	Commands []tea.Cmd

	// Messages contains all messages sent to the model
	Messages []tea.Msg

	// Timeout bounds each command run by ProcessCommands
	Timeout time.Duration

	// UpdateCount tracks how many times Update was called
	UpdateCount int
}

// NewTestRenderer creates a new test renderer.
func NewTestRenderer() *TestRenderer {
	return &TestRenderer{
		Commands: make([]tea.Cmd, 0),
		Messages: make([]tea.Msg, 0),
		Timeout:  DefaultCommandTimeout,
	}
}

// Init renders the model and queues its Init command.
func (r *TestRenderer) Init(model tea.Model) tea.Model {
	if cmd := model.Init(); cmd != nil {
		r.Commands = append(r.Commands, cmd)
	}
	r.Output = model.View()
	return model
}

// Render renders a model and captures its output.
func (r *TestRenderer) Render(model tea.Model) string {
	r.Output = model.View()
	return r.Output
}

// Update sends a message to the model and captures the result.
func (r *TestRenderer) Update(model tea.Model, msg tea.Msg) (tea.Model, tea.Cmd) {
	r.Messages = append(r.Messages, msg)
	r.UpdateCount++

	newModel, cmd := model.Update(msg)
	if cmd != nil {
		r.Commands = append(r.Commands, cmd)
	}

	r.Output = newModel.View()

	return newModel, cmd
}

// ProcessCommands runs queued commands, feeds their messages back into the
// model and repeats until nothing is left. Batches are expanded. It returns
// the updated model and every message delivered.
func (r *TestRenderer) ProcessCommands(model tea.Model) (tea.Model, []tea.Msg) {
	var delivered []tea.Msg

	for len(r.Commands) > 0 {
		cmd := r.Commands[0]
		r.Commands = r.Commands[1:]

		msg, ok := r.run(cmd)
		if !ok || msg == nil {
			continue
		}

		if batch, isBatch := msg.(tea.BatchMsg); isBatch {
			for _, c := range batch {
				if c != nil {
					r.Commands = append(r.Commands, c)
				}
			}
			continue
		}

		delivered = append(delivered, msg)
		model, _ = r.Update(model, msg)
	}

	return model, delivered
}

// run executes cmd, giving up after the renderer timeout.
func (r *TestRenderer) run(cmd tea.Cmd) (tea.Msg, bool) {
	if cmd == nil {
		return nil, false
	}

	done := make(chan tea.Msg, 1)
	go func() {
		done <- cmd()
	}()

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}

	select {
	case msg := <-done:
		return msg, true
	case <-time.After(timeout):
		return nil, false
	}
}

// LastCommand returns the most recent command, or nil if no commands were generated.
func (r *TestRenderer) LastCommand() tea.Cmd {
	if len(r.Commands) == 0 {
		return nil
	}
	return r.Commands[len(r.Commands)-1]
}

// StripANSI removes ANSI escape codes from the output for content-only testing.
func (r *TestRenderer) StripANSI() string {
	return StripANSI(r.Output)
}

// Lines returns the output split by newlines.
func (r *TestRenderer) Lines() []string {
	return strings.Split(r.Output, "\n")
}

// Reset clears all captured data.
func (r *TestRenderer) Reset() {
	r.Output = ""
	r.Commands = nil
	r.Messages = nil
	r.UpdateCount = 0
}
