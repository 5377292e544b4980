package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Iron-Ham/lazyfeed/internal/config"
	"github.com/Iron-Ham/lazyfeed/internal/event"
	"github.com/Iron-Ham/lazyfeed/internal/logging"
	"github.com/Iron-Ham/lazyfeed/internal/scroll"
)

func TestNew_AppliesConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Scroller.Leeway = 25
	cfg.Scroller.DebounceMs = 100
	cfg.Scroller.UseDocument = true

	app := New(cfg, &fakeSource{pageSize: 1, total: 1}, nil, nil)
	defer app.Controller().Teardown()

	got := app.Controller().Config()
	if got.Leeway != 25 {
		t.Errorf("Leeway = %v, want 25%%", got.Leeway)
	}
	if got.Debounce != cfg.Scroller.Debounce() {
		t.Errorf("Debounce = %v, want %v", got.Debounce, cfg.Scroller.Debounce())
	}
	if !got.UseDocument {
		t.Error("UseDocument not carried into the controller")
	}
	if app.model.renderer.target() != PaneDocument {
		t.Errorf("rendering into %q, want %q", app.model.renderer.target(), PaneDocument)
	}
}

func TestNew_NilConfigUsesDefaults(t *testing.T) {
	app := New(nil, &fakeSource{pageSize: 1, total: 1}, nil, nil)
	defer app.Controller().Teardown()

	if got := app.Controller().Config().Debounce; got != scroll.DefaultDebounce {
		t.Errorf("Debounce = %v, want %v", got, scroll.DefaultDebounce)
	}
	if !app.model.opts.InitialLoad {
		t.Error("the app should request the first page on start")
	}
}

func TestNew_PublishesStateEvents(t *testing.T) {
	bus := event.NewBus()
	var got []event.ScrollStateEvent
	bus.Subscribe(event.TypeScrollState, func(e event.Event) {
		got = append(got, e.(event.ScrollStateEvent))
	})

	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, logging.LevelDebug)

	app := New(config.Default(), &fakeSource{pageSize: 5, total: 10}, bus, logger)
	defer app.Controller().Teardown()
	unsub := bus.Subscribe(event.TypeScrollState, app.logState)
	defer bus.Unsubscribe(unsub)

	app.model.Init()
	app.Controller().LoadMore()

	if len(got) != 3 {
		t.Fatalf("got %d state events, want bind, start and finish", len(got))
	}
	for _, ev := range got {
		if ev.ControllerID != app.Controller().ID() {
			t.Errorf("event carries controller %q, want %q", ev.ControllerID, app.Controller().ID())
		}
	}
	if !got[1].State.Loading || got[2].State.Loading {
		t.Error("expected the load to start and then finish")
	}
	if !strings.Contains(buf.String(), `"msg":"scroll state"`) {
		t.Errorf("state transitions were not logged:\n%s", buf.String())
	}
}
