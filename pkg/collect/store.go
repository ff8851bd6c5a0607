// Package collect provides passive signal collection for a browser session:
// an append-only signal store plus CDP event listeners that normalize
// console, network and security events into signals.
package collect

import (
	"sync"

	"github.com/probelab-dev/webprobe/pkg/core"
)

// SignalStore is a shared, append-only sequence of signals. Collectors append
// from the CDP event goroutine while probes append from the orchestrator
// goroutine, so all access goes through the mutex. Ordering across
// collectors carries no meaning; within one collector it is event order.
type SignalStore struct {
	mu      sync.Mutex
	signals []core.Signal
}

// NewSignalStore creates an empty store.
func NewSignalStore() *SignalStore {
	return &SignalStore{}
}

// Append adds one signal.
func (st *SignalStore) Append(sig core.Signal) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.signals = append(st.signals, sig)
}

// AppendAll adds a batch of signals preserving their order.
func (st *SignalStore) AppendAll(sigs []core.Signal) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.signals = append(st.signals, sigs...)
}

// Snapshot returns a copy of the collected signals in insertion order.
// The copy outlives the session; late events appended after a snapshot do
// not mutate it.
func (st *SignalStore) Snapshot() []core.Signal {
	st.mu.Lock()
	defer st.mu.Unlock()
	out := make([]core.Signal, len(st.signals))
	copy(out, st.signals)
	return out
}

// Len returns the number of collected signals.
func (st *SignalStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.signals)
}
