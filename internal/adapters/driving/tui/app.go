package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/NovemberMoon/iac-generator-rag/internal/adapters/driving/tui/components/status"
	"github.com/NovemberMoon/iac-generator-rag/internal/adapters/driving/tui/keymap"
	"github.com/NovemberMoon/iac-generator-rag/internal/adapters/driving/tui/messages"
	"github.com/NovemberMoon/iac-generator-rag/internal/adapters/driving/tui/styles"
	"github.com/NovemberMoon/iac-generator-rag/internal/core/domain"
)

const (
	inputHeight = 4
	// chrome is the rows taken by title, tabs, input border and status bar.
	chrome = inputHeight + 8
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keys   *keymap.KeyMap

	input     textarea.Model
	spinner   spinner.Model
	output    viewport.Model
	help      help.Model
	statusBar *status.Bar

	// tool is the grammar the next request targets.
	tool domain.Tool

	// busy is set while a request is in flight.
	busy bool

	// result is the last successful generation.
	result *domain.GenerationResult

	err      error
	showHelp bool

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if ports == nil {
		return nil, fmt.Errorf("creating app: %w", ErrMissingGenerationService)
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	input := textarea.New()
	input.Placeholder = "Describe the infrastructure you need..."
	input.ShowLineNumbers = false
	input.SetHeight(inputHeight)
	input.Focus()

	spin := spinner.New(spinner.WithSpinner(spinner.Dot))
	spin.Style = s.Warning

	mode := "local"
	if ports.Remote() {
		mode = ports.API
	}

	return &App{
		ports:     ports,
		ctx:       context.Background(),
		styles:    s,
		keys:      km,
		input:     input,
		spinner:   spin,
		output:    viewport.New(80, 10),
		help:      help.New(),
		statusBar: status.NewBar(s, km, mode),
		tool:      domain.DefaultTool,
	}, nil
}

// WithContext sets the context requests run under.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		tea.SetWindowTitle("iacgen"),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case spinner.TickMsg:
		if !a.busy {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case messages.GenerationCompleted:
		a.busy = false
		if msg.Err != nil {
			a.fail(msg.Err)
			return a, nil
		}
		a.err = nil
		result := msg.Result
		a.result = &result
		a.output.SetContent(result.Code)
		a.output.GotoTop()
		if result.SavedPath != "" {
			a.statusBar.SetState(status.StateSaved, result.SavedPath)
		} else {
			a.statusBar.SetState(status.StateDone, verdict(result))
		}
		return a, nil

	case messages.ArtifactSaved:
		a.busy = false
		if msg.Err != nil {
			a.fail(msg.Err)
			return a, nil
		}
		if a.result != nil {
			a.result.SavedPath = msg.Path
		}
		a.statusBar.SetState(status.StateSaved, msg.Path)
		return a, nil

	case messages.ErrorOccurred:
		a.fail(msg.Err)
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, a.keys.Quit):
		return a, tea.Quit

	case keymap.Matches(k, a.keys.Help):
		a.showHelp = !a.showHelp
		return a, nil

	case a.busy:
		// Input is frozen while a request is in flight.
		return a, nil

	case keymap.Matches(k, a.keys.Generate):
		return a, a.generate()

	case keymap.Matches(k, a.keys.ToggleTool):
		a.ToggleTool()
		return a, nil

	case keymap.Matches(k, a.keys.Save):
		return a, a.save()

	case keymap.Matches(k, a.keys.Clear):
		a.input.Reset()
		a.statusBar.Clear()
		return a, nil
	}

	switch msg.Type {
	case tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		a.output, cmd = a.output.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// generate starts a request for the current query.
func (a *App) generate() tea.Cmd {
	query := strings.TrimSpace(a.input.Value())
	if query == "" {
		a.statusBar.SetState(status.StateError, "query is empty")
		return nil
	}
	return a.run(domain.GenerationRequest{Query: query, Tool: a.tool})
}

// save persists the last valid result. Locally it goes through the artifact
// writer; remotely the query is re-sent with save enabled.
func (a *App) save() tea.Cmd {
	if a.result == nil || !a.result.IsValid {
		a.fail(ErrNothingToSave)
		return nil
	}

	if a.ports.Remote() {
		query := strings.TrimSpace(a.input.Value())
		if query == "" {
			a.fail(ErrNothingToSave)
			return nil
		}
		return a.run(domain.GenerationRequest{Query: query, Tool: a.result.Tool, Save: true})
	}

	if a.ports.Artifacts == nil {
		a.fail(ErrNoArtifactWriter)
		return nil
	}
	writer := a.ports.Artifacts
	result := *a.result
	return func() tea.Msg {
		path, err := writer.Save(result.Tool, result.Code)
		return messages.ArtifactSaved{Path: path, Err: err}
	}
}

func (a *App) run(req domain.GenerationRequest) tea.Cmd {
	a.busy = true
	a.err = nil
	a.statusBar.SetState(status.StateGenerating, "")

	ctx := a.ctx
	svc := a.ports.Generation
	return tea.Batch(
		a.spinner.Tick,
		func() tea.Msg {
			result, err := svc.Generate(ctx, req)
			return messages.GenerationCompleted{Request: req, Result: result, Err: err}
		},
	)
}

func (a *App) fail(err error) {
	a.err = err
	a.statusBar.SetState(status.StateError, err.Error())
}

// ToggleTool switches the target grammar between terraform and ansible.
func (a *App) ToggleTool() {
	if a.tool == domain.ToolTerraform {
		a.tool = domain.ToolAnsible
	} else {
		a.tool = domain.ToolTerraform
	}
}

func verdict(r domain.GenerationResult) string {
	if r.IsValid {
		return r.Tool.String() + ": valid"
	}
	return r.Tool.String() + ": failed syntax validation"
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	sections := []string{
		a.styles.Title.Render("iacgen"),
		a.renderTabs(),
		a.styles.InputField.Render(a.input.View()),
		a.renderResult(),
	}
	if a.showHelp {
		sections = append(sections, a.help.FullHelpView(a.keys.FullHelp()))
	}
	sections = append(sections, a.statusBar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a *App) renderTabs() string {
	tabs := make([]string, 0, 2)
	for _, t := range []domain.Tool{domain.ToolTerraform, domain.ToolAnsible} {
		if t == a.tool {
			tabs = append(tabs, a.styles.ActiveTab.Render(t.String()))
		} else {
			tabs = append(tabs, a.styles.Tab.Render(t.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (a *App) renderResult() string {
	if a.busy {
		return a.spinner.View() + " " + a.styles.Muted.Render("Generating "+a.tool.String()+"...")
	}
	if a.result == nil {
		return a.styles.Muted.Render("No result yet.")
	}

	badge := a.styles.ValidBadge.Render("VALID")
	if !a.result.IsValid {
		badge = a.styles.InvalidBadge.Render("INVALID")
	}
	header := badge + " " + a.styles.Normal.Render(a.result.Tool.String())
	if a.result.SavedPath != "" {
		header += " " + a.styles.Success.Render("saved to "+a.result.SavedPath)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, a.styles.Result.Render(a.output.View()))
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	a.input.SetWidth(width - 4)
	a.output.Width = width - 4
	outHeight := height - chrome
	if outHeight < 3 {
		outHeight = 3
	}
	a.output.Height = outHeight
	a.statusBar.SetWidth(width)
}

// SetQuery replaces the query text.
func (a *App) SetQuery(q string) {
	a.input.SetValue(q)
}

// Query returns the current query text.
func (a *App) Query() string {
	return a.input.Value()
}

// Tool returns the grammar the next request targets.
func (a *App) Tool() domain.Tool {
	return a.tool
}

// Result returns the last generation result, or nil.
func (a *App) Result() *domain.GenerationResult {
	return a.result
}

// Busy reports whether a request is in flight.
func (a *App) Busy() bool {
	return a.busy
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// Status returns the status bar state.
func (a *App) Status() status.State {
	return a.statusBar.State()
}
