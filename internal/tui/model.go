package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/lazyfeed/internal/errors"
	"github.com/Iron-Ham/lazyfeed/internal/feed"
	"github.com/Iron-Ham/lazyfeed/internal/scroll"
	"github.com/Iron-Ham/lazyfeed/internal/tui/pane"
	"github.com/Iron-Ham/lazyfeed/internal/tui/styles"
)

// Items is the content the model renders.
type Items interface {
	Items() []feed.Item
	Exhausted() bool
}

// Source is a loader whose fetched items can be rendered.
type Source interface {
	Items
	Load() <-chan error
}

// Options configures a Model.
type Options struct {
	// Theme is a styles theme name.
	Theme string
	// ShowHelp renders the key binding help row.
	ShowHelp bool
	// LateElement is registered as the scroll target after the first layout.
	LateElement scroll.ElementID
	// InitialLoad requests the first page when the program starts.
	InitialLoad bool
}

// initialLoadMsg asks the controller for the first page.
type initialLoadMsg struct{}

// Model is the bubbletea model for the feed view.
type Model struct {
	ctrl     *scroll.Controller
	host     *Host
	panes    *pane.Manager
	items    Items
	renderer *renderer
	opts     Options

	styles  *styles.Styles
	keys    keyMap
	help    help.Model
	spinner spinner.Model

	width    int
	height   int
	ready    bool
	quitting bool
}

// NewModel creates the feed view and the scroll controller that drives it.
// ctrlOpts configure the controller. host, panes and src must be non-nil.
func NewModel(host *Host, panes *pane.Manager, src Source, opts Options, ctrlOpts ...scroll.Option) Model {
	if host == nil || panes == nil || src == nil {
		panic("tui: NewModel requires a host, panes and a source")
	}

	st := styles.ForTheme(opts.Theme)
	r := newRenderer(panes, src, st, PaneFeed)
	ctrl := scroll.New(host, r.wrap(src.Load), ctrlOpts...)

	cfg := ctrl.Config()
	panes.Create(PaneFeed, 0)
	panes.Create(PaneDocument, 0)
	if cfg.Element != "" {
		panes.Create(string(cfg.Element), 0)
	}
	if id, ok := PaneFor(scroll.ResolveTarget(cfg.UseDocument, cfg.Element)); ok {
		r.moveTo(id)
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(st.Spinner))

	return Model{
		ctrl:     ctrl,
		host:     host,
		panes:    panes,
		items:    src,
		renderer: r,
		opts:     opts,
		styles:   st,
		keys:     defaultKeyMap(),
		help:     help.New(),
		spinner:  sp,
	}
}

// Controller returns the scroll controller owned by the model.
func (m Model) Controller() *scroll.Controller {
	return m.ctrl
}

// Init attaches the controller and starts the spinner.
func (m Model) Init() tea.Cmd {
	m.ctrl.Attach()

	cmds := []tea.Cmd{m.spinner.Tick}
	if m.opts.InitialLoad {
		cmds = append(cmds, func() tea.Msg { return initialLoadMsg{} })
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		if !m.ready {
			m.ready = true
			m.registerLateElement()
		}

	case tea.KeyMsg:
		cmd = m.handleKey(msg)

	case callbackMsg:
		msg.fn()

	case initialLoadMsg:
		m.ctrl.LoadMore()

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
	}

	m.sync()
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	id := m.renderer.target()
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit
	case key.Matches(msg, m.keys.Down):
		m.host.Scroll(id, 1)
	case key.Matches(msg, m.keys.Up):
		m.host.Scroll(id, -1)
	case key.Matches(msg, m.keys.PageDown):
		m.host.Scroll(id, max(1, m.panes.Height(id)))
	case key.Matches(msg, m.keys.PageUp):
		m.host.Scroll(id, -max(1, m.panes.Height(id)))
	case key.Matches(msg, m.keys.Top):
		m.host.ScrollToTop(id)
	case key.Matches(msg, m.keys.Bottom):
		m.host.ScrollToBottom(id)
	case key.Matches(msg, m.keys.LoadMore), key.Matches(msg, m.keys.Retry):
		m.ctrl.LoadMore()
	}
	return nil
}

// resize gives every pane the viewport height for the current window.
func (m *Model) resize() {
	for _, id := range m.panes.IDs() {
		if id == PaneDocument {
			m.panes.SetHeight(id, DocumentHeight(m.height))
			continue
		}
		m.panes.SetHeight(id, FramedPaneHeight(m.height))
	}
}

// registerLateElement hands the late element to the controller once the
// layout exists. Content moves first so the rebind measures real rows.
func (m *Model) registerLateElement() {
	el := m.opts.LateElement
	if el == "" {
		return
	}
	id := string(el)
	existed := m.panes.Has(id)
	m.panes.Create(id, FramedPaneHeight(m.height))
	prev := m.renderer.moveTo(id)
	if !m.ctrl.RegisterElement(el) {
		m.renderer.moveTo(prev)
		if !existed {
			m.panes.Remove(id)
		}
	}
}

// sync renders any items not yet shown and refreshes which bindings are
// offered.
func (m *Model) sync() {
	m.renderer.render()

	st := m.ctrl.State()
	m.keys.LoadMore.SetEnabled(!st.Loading && !m.items.Exhausted() && (!st.Scrollable || st.Err != nil))
	m.keys.Retry.SetEnabled(!st.Loading && errors.IsRetryable(st.Err))
}
