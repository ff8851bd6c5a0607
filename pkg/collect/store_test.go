package collect

import (
	"fmt"
	"sync"
	"testing"

	"github.com/probelab-dev/webprobe/pkg/core"
)

func TestSignalStore_AppendAndSnapshot(t *testing.T) {
	store := NewSignalStore()

	store.Append(core.NewSignal(core.SignalScriptError, "first"))
	store.Append(core.NewSignal(core.SignalNetworkFailure, "second"))

	snap := store.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("len(Snapshot()) = %d, want 2", len(snap))
	}
	if snap[0].Message != "first" || snap[1].Message != "second" {
		t.Errorf("order = [%s, %s], want capture order", snap[0].Message, snap[1].Message)
	}

	// The snapshot is a copy: later appends must not show up in it.
	store.Append(core.NewSignal(core.SignalScriptError, "third"))
	if len(snap) != 2 {
		t.Error("snapshot changed after a later append")
	}
	if store.Len() != 3 {
		t.Errorf("Len() = %d, want 3", store.Len())
	}
}

func TestSignalStore_ConcurrentAppend(t *testing.T) {
	store := NewSignalStore()

	const writers = 8
	const perWriter = 100

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				store.Append(core.NewSignal(core.SignalScriptError,
					fmt.Sprintf("writer %d signal %d", w, i)))
			}
		}(w)
	}
	wg.Wait()

	if got := store.Len(); got != writers*perWriter {
		t.Errorf("Len() = %d, want %d", got, writers*perWriter)
	}
}
