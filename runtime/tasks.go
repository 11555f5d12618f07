package runtime

import (
	"context"
	"sync"
)

// tasks runs effects under one cancelable context. Effects spawned before
// start are held and launched by start.
type tasks struct {
	mu      sync.Mutex
	post    PostFunc
	ctx     context.Context
	cancel  context.CancelFunc
	pending []Effect
}

func (t *tasks) start(parent context.Context) {
	ctx, cancel := context.WithCancel(parent)
	t.mu.Lock()
	t.ctx, t.cancel = ctx, cancel
	held := t.pending
	t.pending = nil
	t.mu.Unlock()
	for _, effect := range held {
		t.launch(ctx, effect)
	}
}

// stop cancels running effects. Later spawns are held for the next start.
func (t *tasks) stop() {
	t.mu.Lock()
	cancel := t.cancel
	t.ctx, t.cancel = nil, nil
	t.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// cancelRunning signals running effects without forgetting the context.
func (t *tasks) cancelRunning() {
	t.mu.Lock()
	cancel := t.cancel
	t.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (t *tasks) spawn(effect Effect) {
	if effect.Run == nil {
		return
	}
	t.mu.Lock()
	ctx := t.ctx
	if ctx == nil {
		t.pending = append(t.pending, effect)
		t.mu.Unlock()
		return
	}
	t.mu.Unlock()
	t.launch(ctx, effect)
}

// run launches effect now, on a background context when not started.
func (t *tasks) run(effect Effect) {
	if effect.Run == nil {
		return
	}
	t.mu.Lock()
	ctx := t.ctx
	t.mu.Unlock()
	if ctx == nil {
		ctx = context.Background()
	}
	t.launch(ctx, effect)
}

func (t *tasks) launch(ctx context.Context, effect Effect) {
	go effect.Run(ctx, t.post)
}

func (t *tasks) held() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pending)
}
