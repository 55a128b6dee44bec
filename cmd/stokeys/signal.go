package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// signalContext is cancelled on SIGINT or SIGTERM and remembers which signal
// cancelled it.
type signalContext struct {
	context.Context
	cancel func()

	mu     sync.Mutex
	signal os.Signal
}

func newSignalContext(parent context.Context) *signalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &signalContext{Context: ctx, cancel: cancel}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		defer signal.Stop(sigCh)
		select {
		case sig := <-sigCh:
			sc.mu.Lock()
			sc.signal = sig
			sc.mu.Unlock()
			cancel()
		case <-ctx.Done():
		}
	}()
	return sc
}

// Signal returns the signal that cancelled the context, if any.
func (sc *signalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.signal
}
