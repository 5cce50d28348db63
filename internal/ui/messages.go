// Package ui provides the Bubble Tea topic browser and the styled
// terminal rendering used by the run command.
package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/topicradar/internal/model"
)

// TopicsLoaded is sent when a research run finishes.
type TopicsLoaded struct {
	Response *model.ResearchResponse
	Err      error
}

// RunFunc performs one research run.
type RunFunc func(ctx context.Context) (*model.ResearchResponse, error)

// Loader adapts run into the load function NewApp expects. Every call
// starts a fresh run bound to ctx.
func Loader(ctx context.Context, run RunFunc) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg {
			resp, err := run(ctx)
			return TopicsLoaded{Response: resp, Err: err}
		}
	}
}
