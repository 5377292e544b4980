package tui

import (
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/lazyfeed/internal/config"
	"github.com/Iron-Ham/lazyfeed/internal/event"
	"github.com/Iron-Ham/lazyfeed/internal/logging"
	"github.com/Iron-Ham/lazyfeed/internal/scroll"
	"github.com/Iron-Ham/lazyfeed/internal/tui/pane"
)

// App wraps the Bubbletea program
type App struct {
	program *tea.Program
	model   Model
	ctrl    *scroll.Controller
	sched   *Scheduler
	bus     *event.Bus
	logger  *logging.Logger
}

// New creates the TUI application. bus and logger may be nil.
func New(cfg *config.Config, source Source, bus *event.Bus, logger *logging.Logger) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = logging.NopLogger()
	}
	if bus == nil {
		bus = event.NewBus(event.WithLogger(logger))
	}

	panes := pane.NewManager()
	host := NewHost(panes, bus)
	sched := NewScheduler()

	// The hook only fires after Attach, by which point id is set.
	var id string
	opts := Options{
		Theme:       cfg.TUI.Theme,
		ShowHelp:    cfg.TUI.ShowHelp,
		LateElement: scroll.ElementID(cfg.Scroller.LateElement),
		InitialLoad: true,
	}
	model := NewModel(host, panes, source, opts,
		scroll.WithConfig(cfg.Scroller.ControllerConfig()),
		scroll.WithScheduler(sched),
		scroll.WithLogger(logger),
		scroll.WithStateHook(func(st scroll.State) {
			bus.Publish(event.NewScrollStateEvent(id, st))
		}),
	)
	ctrl := model.Controller()
	id = ctrl.ID()

	return &App{
		model:  model,
		ctrl:   ctrl,
		sched:  sched,
		bus:    bus,
		logger: logger.WithComponent("tui"),
	}
}

// Controller returns the scroll controller driving the feed.
func (a *App) Controller() *scroll.Controller {
	return a.ctrl
}

// Run starts the TUI application and blocks until it exits.
func (a *App) Run() error {
	defer a.ctrl.Teardown()

	stateSub := a.bus.Subscribe(event.TypeScrollState, a.logState)
	defer a.bus.Unsubscribe(stateSub)

	a.program = tea.NewProgram(
		a.model,
		tea.WithAltScreen(),
	)
	a.sched.Bind(a.program.Send)

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	go func() {
		if _, ok := <-sigChan; ok {
			a.program.Send(tea.Quit())
		}
	}()

	a.logger.Info("tui started")
	_, err := a.program.Run()

	// Clean up signal handler
	signal.Stop(sigChan)
	close(sigChan)

	a.logger.Info("tui stopped", "error", err)
	return err
}

func (a *App) logState(e event.Event) {
	ev, ok := e.(event.ScrollStateEvent)
	if !ok {
		return
	}
	errText := ""
	if ev.State.Err != nil {
		errText = ev.State.Err.Error()
	}
	a.logger.Debug("scroll state",
		"controller_id", ev.ControllerID,
		"loading", ev.State.Loading,
		"scrollable", ev.State.Scrollable,
		"bound", ev.State.Bound,
		"target", ev.State.Target.String(),
		"error", errText,
	)
}
