package runtime

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/odvcencio/furry-store/backend"
)

// Run drives the loop until Quit or ctx is done. It returns ctx.Err().
// The root is detached and effects are canceled on every return path.
func (a *App) Run(ctx context.Context) error {
	if a.backend == nil {
		return errors.New("backend is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := a.backend.Init(); err != nil {
		return fmt.Errorf("init backend: %w", err)
	}
	defer a.backend.Fini()

	a.tasks.start(ctx)
	defer a.tasks.stop()

	a.backend.HideCursor()
	w, h := a.backend.Size()
	a.screen = NewScreen(w, h)
	a.screen.SetServices(a.Services())
	a.screen.SetRoot(a.root)
	defer a.screen.SetRoot(nil)

	a.running.Store(true)
	defer a.running.Store(false)
	a.logger.Debug("app started", zap.Int("width", w), zap.Int("height", h))

	go a.pollEvents()

	var ticks <-chan time.Time
	if a.tickRate > 0 {
		ticker := time.NewTicker(a.tickRate)
		defer ticker.Stop()
		ticks = ticker.C
	}

	a.present()
	for a.running.Load() {
		select {
		case <-ctx.Done():
			a.stop()
		case msg := <-a.messages:
			a.step(msg)
		case now := <-ticks:
			a.step(TickMsg{Time: now})
		}
	}

	a.logger.Debug("app stopped", zap.Error(ctx.Err()))
	return ctx.Err()
}

// step handles one message and presents the frame if anything changed.
func (a *App) step(msg Message) {
	dirty := a.update(a, msg)
	if !a.running.Load() {
		return
	}
	if a.flushQueueIfNeeded(msg) {
		dirty = true
	}
	if _, ok := msg.(InvalidateMsg); ok {
		a.invalidator.ack()
	}
	if dirty {
		a.present()
	}
}

func (a *App) stop() {
	a.running.Store(false)
	a.tasks.cancelRunning()
}

// DefaultUpdate resizes the screen, honors render requests and routes every
// other message through the widget tree.
func DefaultUpdate(app *App, msg Message) bool {
	if app == nil || app.screen == nil {
		return false
	}
	switch m := msg.(type) {
	case ResizeMsg:
		app.screen.Resize(m.Width, m.Height)
		return true
	case InvalidateMsg:
		return true
	case QueueFlushMsg:
		return false
	}
	result := app.screen.HandleMessage(msg)
	dirty := result.Handled
	for _, cmd := range result.Commands {
		if app.handleCommand(cmd) {
			dirty = true
		}
	}
	return dirty
}

func (a *App) handleCommand(cmd Command) bool {
	switch c := cmd.(type) {
	case Quit:
		a.logger.Debug("quit requested")
		a.stop()
		return false
	case Refresh:
		if a.screen != nil {
			a.screen.Buffer().MarkAllDirty()
		}
		return true
	case SendMsg:
		a.Post(c.Message)
		return false
	case Effect:
		a.tasks.run(c)
		return false
	}
	if a.commandHandler != nil {
		return a.commandHandler(cmd)
	}
	a.logger.Debug("unhandled command", zap.String("type", fmt.Sprintf("%T", cmd)))
	return false
}

func (a *App) flushQueueIfNeeded(msg Message) bool {
	if a == nil || !a.flushPolicy.Flushes(msg) {
		return false
	}
	return a.deliveries.Drain() > 0
}

func (a *App) pollEvents() {
	for a.running.Load() {
		switch e := a.backend.PollEvent().(type) {
		case backend.KeyEvent:
			a.Post(KeyMsg{Key: e.Key, Rune: e.Rune, Alt: e.Alt, Ctrl: e.Ctrl, Shift: e.Shift})
		case backend.ResizeEvent:
			a.Post(ResizeMsg{Width: e.Width, Height: e.Height})
		}
	}
}

// present renders the tree and copies dirty rows to the backend.
func (a *App) present() {
	if a.screen == nil {
		return
	}
	a.screen.Render()
	buf := a.screen.Buffer()
	if buf.IsDirty() {
		rows, _ := a.backend.(backend.RowWriter)
		_, h := buf.Size()
		for y := 0; y < h; y++ {
			row := buf.Row(y)
			if rows != nil {
				rows.SetRow(y, 0, row)
				continue
			}
			for x, cell := range row {
				if cell.Rune != 0 {
					a.backend.SetContent(x, y, cell.Rune, nil, cell.Style)
				}
			}
		}
		buf.ClearDirty()
	}
	a.backend.Show()
}
