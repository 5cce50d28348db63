package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/topicradar/internal/model"
)

// App is the root Bubble Tea model.
// App never runs the pipeline itself; results arrive as TopicsLoaded.
type App struct {
	load func() tea.Cmd

	spinner spinner.Model
	resp    *model.ResearchResponse
	cursor  int
	err     error
	width   int
	height  int
	ready   bool
	loading bool
	detail  bool
}

// NewApp creates an App. load returns a Cmd that performs one research
// run and reports it as TopicsLoaded; it may be nil.
func NewApp(load func() tea.Cmd) App {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = Header
	return App{
		load:    load,
		spinner: s,
		loading: load != nil,
	}
}

// Init starts the first run.
func (a App) Init() tea.Cmd {
	if a.load == nil {
		return nil
	}
	return tea.Batch(a.spinner.Tick, a.load())
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		return a, nil

	case TopicsLoaded:
		a.loading = false
		if msg.Err != nil {
			a.err = msg.Err
			return a, nil
		}
		a.resp = msg.Response
		a.err = nil
		if n := len(a.Topics()); a.cursor >= n {
			a.cursor = max(n-1, 0)
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	return a, nil
}

func (a App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.err != nil {
		a.err = nil
	}
	n := len(a.Topics())

	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit

	case "j", "down":
		if a.cursor < n-1 {
			a.cursor++
		}

	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}

	case "g", "home":
		a.cursor = 0

	case "G", "end":
		if n > 0 {
			a.cursor = n - 1
		}

	case "enter", "tab":
		if n > 0 {
			a.detail = !a.detail
		}

	case "esc":
		a.detail = false

	case "r":
		if a.load != nil && !a.loading {
			a.loading = true
			return a, tea.Batch(a.spinner.Tick, a.load())
		}
	}

	return a, nil
}

// View renders the UI.
func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}

	var out string
	used := 1 // status bar

	if a.resp != nil {
		header := renderHeader(a.resp, a.width)
		out += header + "\n"
		used++
	}

	if a.loading && a.resp == nil {
		out += HelpStyle.Render(a.spinner.View() + " Researching trending topics...")
		out += "\n"
		used += 3
	}

	var detail string
	if a.detail && a.cursor < len(a.Topics()) {
		detail = RenderDetail(a.Topics()[a.cursor], a.width)
		used += lineCount(detail)
	}

	errorBar := ""
	if a.err != nil {
		errorBar = ErrorStyle.Width(a.width).Render("Error: "+a.err.Error()+" (press any key to dismiss)") + "\n"
		used++
	}

	if a.resp != nil {
		out += RenderList(a.Topics(), a.cursor, a.width, a.height-used)
	}
	if detail != "" {
		out += detail + "\n"
	}

	return out + errorBar + RenderStatusBar(a.cursor, len(a.Topics()), a.width, a.loading)
}

// Cursor returns the current cursor position (for testing).
func (a App) Cursor() int {
	return a.cursor
}

// Topics returns the topics of the last successful run.
func (a App) Topics() []model.Topic {
	if a.resp == nil {
		return nil
	}
	return a.resp.Topics
}

// Err returns the last run error, if any.
func (a App) Err() error {
	return a.err
}

// Loading reports whether a run is in flight.
func (a App) Loading() bool {
	return a.loading
}

func lineCount(s string) int {
	n := 1
	for _, r := range s {
		if r == '\n' {
			n++
		}
	}
	return n
}
