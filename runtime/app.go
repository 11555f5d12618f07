package runtime

import (
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/odvcencio/furry-store/backend"
	"github.com/odvcencio/furry-store/state"
)

// UpdateFunc handles a message and returns true if a render is needed.
type UpdateFunc func(app *App, msg Message) bool

// CommandHandler handles commands the app does not know.
// Return true if the command requires a render.
type CommandHandler func(cmd Command) bool

// AppConfig configures a runtime App.
type AppConfig struct {
	Backend        backend.Backend
	Root           Widget
	Update         UpdateFunc
	CommandHandler CommandHandler
	// MessageBuffer is the mailbox size. Defaults to 128.
	MessageBuffer int
	// TickRate enables TickMsg when positive.
	TickRate time.Duration
	// StateQueue receives deferred store deliveries. One is created if nil.
	StateQueue  *state.Queue
	FlushPolicy FlushPolicy
	Logger      *zap.Logger
}

// App runs a widget tree against a terminal backend.
type App struct {
	backend        backend.Backend
	root           Widget
	update         UpdateFunc
	commandHandler CommandHandler
	tickRate       time.Duration
	flushPolicy    FlushPolicy
	logger         *zap.Logger

	messages    chan Message
	screen      *Screen
	deliveries  *QueueScheduler
	invalidator *Invalidator
	tasks       tasks
	running     atomic.Bool
}

// NewApp creates a new App from config.
func NewApp(cfg AppConfig) *App {
	size := cfg.MessageBuffer
	if size <= 0 {
		size = 128
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	update := cfg.Update
	if update == nil {
		update = DefaultUpdate
	}
	a := &App{
		backend:        cfg.Backend,
		root:           cfg.Root,
		update:         update,
		commandHandler: cfg.CommandHandler,
		tickRate:       cfg.TickRate,
		flushPolicy:    cfg.FlushPolicy,
		logger:         logger,
		messages:       make(chan Message, size),
	}
	a.deliveries = NewQueueScheduler(cfg.StateQueue, a.tryPost)
	a.invalidator = NewInvalidator(a.tryPost)
	a.tasks.post = a.tryPost
	return a
}

// Screen returns the active screen, or nil outside Run.
func (a *App) Screen() *Screen {
	return a.screen
}

// StateScheduler returns the scheduler that defers deliveries to the loop.
func (a *App) StateScheduler() state.Scheduler {
	if a == nil || a.deliveries == nil {
		return nil
	}
	return a.deliveries
}

// PendingDeliveries returns the number of deliveries waiting for a flush.
func (a *App) PendingDeliveries() int {
	if a == nil {
		return 0
	}
	return a.deliveries.Pending()
}

// Invalidate requests a render pass.
func (a *App) Invalidate() {
	if a == nil {
		return
	}
	a.invalidator.Invalidate()
}

// Spawn starts an effect under the Run context.
// Effects spawned before Run are held until it starts.
func (a *App) Spawn(effect Effect) {
	if a == nil {
		return
	}
	a.tasks.spawn(effect)
}

// Post sends a message to the loop, dropping it if the mailbox is full.
func (a *App) Post(msg Message) {
	_ = a.tryPost(msg)
}

// TryPost sends a message to the loop without blocking.
func (a *App) TryPost(msg Message) bool {
	return a.tryPost(msg)
}

func (a *App) tryPost(msg Message) bool {
	if a == nil || a.messages == nil || msg == nil {
		return false
	}
	select {
	case a.messages <- msg:
		return true
	default:
		return false
	}
}

// ExecuteCommand runs a command as if a widget had returned it.
func (a *App) ExecuteCommand(cmd Command) bool {
	if a == nil {
		return false
	}
	return a.handleCommand(cmd)
}
