package runtime

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/odvcencio/furry-store/backend"
)

type fakeBackend struct {
	mu      sync.Mutex
	events  chan backend.Event
	done    chan struct{}
	once    sync.Once
	initErr error
	cells   map[[2]int]rune
	shows   int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		events: make(chan backend.Event, 8),
		done:   make(chan struct{}),
		cells:  make(map[[2]int]rune),
	}
}

func (f *fakeBackend) Init() error      { return f.initErr }
func (f *fakeBackend) Fini()            { f.once.Do(func() { close(f.done) }) }
func (f *fakeBackend) Size() (int, int) { return 10, 2 }
func (f *fakeBackend) HideCursor()      {}

func (f *fakeBackend) inject(ev backend.Event) { f.events <- ev }

func (f *fakeBackend) SetContent(x, y int, mainc rune, combc []rune, style backend.Style) {
	f.mu.Lock()
	f.cells[[2]int{x, y}] = mainc
	f.mu.Unlock()
}

func (f *fakeBackend) Show() {
	f.mu.Lock()
	f.shows++
	f.mu.Unlock()
}

func (f *fakeBackend) PollEvent() backend.Event {
	select {
	case <-f.done:
		return nil
	case ev := <-f.events:
		return ev
	}
}

type quitWidget struct {
	mounted   int
	unmounted int
	keys      []rune
}

func (w *quitWidget) Measure(c Constraints) Size { return c.Constrain(Size{Width: 1, Height: 1}) }
func (w *quitWidget) Layout(bounds Rect)         {}
func (w *quitWidget) Render(ctx RenderContext) {
	ctx.Buffer.SetString(0, 0, "ok", backend.DefaultStyle())
}
func (w *quitWidget) Mount()   { w.mounted++ }
func (w *quitWidget) Unmount() { w.unmounted++ }
func (w *quitWidget) HandleMessage(msg Message) HandleResult {
	key, ok := msg.(KeyMsg)
	if !ok {
		return Unhandled()
	}
	w.keys = append(w.keys, key.Rune)
	if key.Rune == 'q' {
		return WithCommand(Quit{})
	}
	return Handled()
}

func TestApp_RunQuitDetachesRoot(t *testing.T) {
	defer goleak.VerifyNone(t)

	be := newFakeBackend()
	root := &quitWidget{}
	app := NewApp(AppConfig{Backend: be, Root: root})

	be.inject(backend.KeyEvent{Rune: 'x'})
	be.inject(backend.KeyEvent{Rune: 'q'})

	errc := make(chan error, 1)
	go func() { errc <- app.Run(context.Background()) }()

	select {
	case err := <-errc:
		if err != nil {
			t.Fatalf("expected clean quit, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("app did not quit")
	}

	if root.mounted != 1 || root.unmounted != 1 {
		t.Fatalf("expected one mount and unmount, got %d and %d", root.mounted, root.unmounted)
	}
	if len(root.keys) != 2 || root.keys[0] != 'x' {
		t.Fatalf("unexpected keys %q", string(root.keys))
	}
	be.mu.Lock()
	defer be.mu.Unlock()
	if be.shows == 0 {
		t.Fatalf("expected at least one render")
	}
	if be.cells[[2]int{0, 0}] != 'o' || be.cells[[2]int{1, 0}] != 'k' {
		t.Fatalf("expected rendered text ok")
	}
}

func TestApp_RunContextCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	be := newFakeBackend()
	root := &quitWidget{}
	app := NewApp(AppConfig{Backend: be, Root: root})
	ctx, cancel := context.WithCancel(context.Background())

	errc := make(chan error, 1)
	go func() { errc <- app.Run(ctx) }()
	cancel()

	select {
	case err := <-errc:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("app did not stop")
	}
	if root.unmounted != 1 {
		t.Fatalf("expected root to be unmounted on cancel, got %d", root.unmounted)
	}
}

func TestApp_RunErrors(t *testing.T) {
	if err := NewApp(AppConfig{}).Run(context.Background()); err == nil {
		t.Fatalf("expected missing backend error")
	}

	be := newFakeBackend()
	be.initErr = errors.New("no tty")
	err := NewApp(AppConfig{Backend: be}).Run(context.Background())
	if err == nil || !errors.Is(err, be.initErr) {
		t.Fatalf("expected wrapped init error, got %v", err)
	}
}

func TestApp_HandleCommand_SendMsg(t *testing.T) {
	app := NewApp(AppConfig{})
	msg := ResizeMsg{Width: 10, Height: 5}

	if app.handleCommand(SendMsg{Message: msg}) {
		t.Fatalf("expected SendMsg to not force render")
	}

	select {
	case got := <-app.messages:
		if got != msg {
			t.Fatalf("unexpected message: %#v", got)
		}
	default:
		t.Fatal("expected message to be posted")
	}
}

func TestApp_HandleCommand_Effect(t *testing.T) {
	app := NewApp(AppConfig{})
	done := make(chan struct{})

	app.handleCommand(Effect{Run: func(ctx context.Context, post PostFunc) {
		post(ResizeMsg{Width: 1, Height: 2})
		close(done)
	}})

	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("effect did not run")
	}

	select {
	case <-app.messages:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("expected effect to post a message")
	}
}

func TestApp_SpawnPendingEffect(t *testing.T) {
	app := NewApp(AppConfig{})
	ran := make(chan struct{}, 1)

	app.Spawn(Effect{Run: func(ctx context.Context, post PostFunc) {
		ran <- struct{}{}
	}})

	select {
	case <-ran:
		t.Fatal("expected pending effect to wait for start")
	default:
	}
	if app.tasks.held() != 1 {
		t.Fatalf("expected 1 held effect, got %d", app.tasks.held())
	}

	app.tasks.start(context.Background())
	defer app.tasks.stop()

	select {
	case <-ran:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("expected pending effect to run")
	}
}

func TestApp_StateSchedulerFlushesOnLoop(t *testing.T) {
	app := NewApp(AppConfig{})
	calls := 0
	app.StateScheduler().Schedule(func() { calls++ })

	select {
	case msg := <-app.messages:
		if _, ok := msg.(QueueFlushMsg); !ok {
			t.Fatalf("expected QueueFlushMsg, got %#v", msg)
		}
		if !app.flushQueueIfNeeded(msg) {
			t.Fatalf("expected flush to report work")
		}
	default:
		t.Fatal("expected flush message")
	}
	if calls != 1 {
		t.Fatalf("expected scheduled callback to run, got %d", calls)
	}
}

func TestApp_ManualFlushWaitsForFlushMsg(t *testing.T) {
	app := NewApp(AppConfig{FlushPolicy: FlushManual})
	calls := 0
	app.StateScheduler().Schedule(func() { calls++ })
	<-app.messages

	if app.PendingDeliveries() != 1 {
		t.Fatalf("expected 1 pending delivery, got %d", app.PendingDeliveries())
	}
	if app.flushQueueIfNeeded(ResizeMsg{Width: 1, Height: 1}) || calls != 0 {
		t.Fatalf("manual policy flushed on resize")
	}
	if !app.flushQueueIfNeeded(QueueFlushMsg{}) || calls != 1 {
		t.Fatalf("expected flush on QueueFlushMsg, calls %d", calls)
	}
}

type customCommand struct{}

func (customCommand) Command() {}

func TestApp_CommandHandlerReceivesUnknownCommands(t *testing.T) {
	var got []Command
	app := NewApp(AppConfig{CommandHandler: func(cmd Command) bool {
		got = append(got, cmd)
		return true
	}})
	if !app.ExecuteCommand(customCommand{}) {
		t.Fatalf("expected handler result to force render")
	}
	if app.ExecuteCommand(Quit{}) {
		t.Fatalf("quit should not force render")
	}
	if len(got) != 1 {
		t.Fatalf("expected only the custom command, got %v", got)
	}
}
