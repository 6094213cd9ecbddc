// Package shutdown runs cleanup hooks when the process is interrupted or finishes
package shutdown

import (
	"container/heap"
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/flanksource/commons/logger"
)

// Hook priorities; lower runs first
const (
	PriorityJobs     = 0
	PriorityDefault  = 100
	PriorityOutput   = 200
	PriorityDatabase = 300
)

type hook struct {
	label    string
	priority int
	seq      int
	fn       func()
	index    int
}

type hookHeap []*hook

func (h hookHeap) Len() int { return len(h) }
func (h hookHeap) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority < h[j].priority
	}
	return h[i].seq < h[j].seq
}
func (h hookHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *hookHeap) Push(x any) {
	item := x.(*hook)
	item.index = len(*h)
	*h = append(*h, item)
}

func (h *hookHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*h = old[:n-1]
	return item
}

var (
	hooks    hookHeap
	hooksMux sync.Mutex
	seq      int
)

// AddHook registers a hook with default priority
func AddHook(label string, fn func()) {
	AddHookWithPriority(label, PriorityDefault, fn)
}

// AddHookWithPriority registers a hook; hooks of equal priority run in registration order
func AddHookWithPriority(label string, priority int, fn func()) {
	hooksMux.Lock()
	defer hooksMux.Unlock()
	seq++
	heap.Push(&hooks, &hook{label: label, priority: priority, seq: seq, fn: fn})
}

// Shutdown runs and removes every registered hook. A panicking hook is logged and the
// remaining hooks still run.
func Shutdown() {
	hooksMux.Lock()
	defer hooksMux.Unlock()

	if len(hooks) == 0 {
		return
	}
	logger.Debugf("Executing %d shutdown hooks", len(hooks))

	for hooks.Len() > 0 {
		h := heap.Pop(&hooks).(*hook)
		logger.Debugf("Executing shutdown hook: %s (priority=%d)", h.label, h.priority)
		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Errorf("Panic in shutdown hook %s: %v", h.label, r)
				}
			}()
			h.fn()
		}()
	}
}

// WithSignals returns a context cancelled by the first SIGINT or SIGTERM, which also runs
// the shutdown hooks. A second signal exits immediately. The returned CancelFunc stops
// listening.
func WithSignals(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	sigs := make(chan os.Signal, 2)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	stopped := make(chan struct{})

	go func() {
		select {
		case sig := <-sigs:
			fmt.Fprintf(os.Stderr, "\nReceived %s, cancelling. Press Ctrl+C again to force exit\n", sig)
			cancel()
			go func() {
				select {
				case <-sigs:
					fmt.Fprintln(os.Stderr, "Force exit")
					os.Exit(1)
				case <-stopped:
				}
			}()
			Shutdown()
		case <-stopped:
		}
	}()

	var once sync.Once
	return ctx, func() {
		once.Do(func() {
			signal.Stop(sigs)
			close(stopped)
			cancel()
		})
	}
}
