package embedding

import (
	"context"
	"sync"
	"time"
)

// prober is implemented by providers that can cheaply verify their
// backing model is loadable.
type prober interface {
	Ping(ctx context.Context) error
}

// Lazy wraps a Provider and resolves availability exactly once per
// process, on first use. If the probe fails, every subsequent Embed
// returns the unavailable soft state without touching the backend, so
// the rest of the system degrades to keyword search instead of paying a
// connection timeout on every request.
type Lazy struct {
	inner        Provider
	probeTimeout time.Duration

	once      sync.Once
	available bool
}

func NewLazy(inner Provider, probeTimeout time.Duration) *Lazy {
	if probeTimeout <= 0 {
		probeTimeout = 5 * time.Second
	}
	return &Lazy{inner: inner, probeTimeout: probeTimeout}
}

func (l *Lazy) Model() string  { return l.inner.Model() }
func (l *Lazy) Dimension() int { return l.inner.Dimension() }

// Available resolves and reports the pinned availability state.
func (l *Lazy) Available(ctx context.Context) bool {
	l.once.Do(func() {
		p, ok := l.inner.(prober)
		if !ok {
			l.available = true
			return
		}
		probeCtx, cancel := context.WithTimeout(ctx, l.probeTimeout)
		defer cancel()
		l.available = p.Ping(probeCtx) == nil
	})
	return l.available
}

func (l *Lazy) Embed(ctx context.Context, text string) (*Result, error) {
	if !l.Available(ctx) {
		return nil, nil
	}
	return l.inner.Embed(ctx, text)
}
