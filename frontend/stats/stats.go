// Package stats starts a background statsview dashboard so a running
// session can be inspected (goroutine count, GC pauses, memory) without
// attaching a debugger. It has no effect on emulation correctness; see
// SPEC_FULL.md's ambient-stack section for why this is wired in at all.
package stats

import (
	"sync"

	"github.com/go-echarts/statsview"
)

var once sync.Once

// Start launches the statsview HTTP server on its default address
// (127.0.0.1:18066) in the background. Safe to call more than once; only
// the first call has any effect.
func Start() {
	once.Do(func() {
		go statsview.New().Start()
	})
}
