package scheduler

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// Workers race to schedule, move and cancel deadlines for their own tasks.
// Every task that survives must fire exactly once at its final deadline and
// no cancelled task may fire.
func TestEngineStressRescheduleAndCancel(t *testing.T) {
	engine := NewEngine(4096)
	engine.Start()
	defer engine.Stop()

	const workers = 8
	const perWorker = 150

	start := time.Now().UTC()
	var (
		mu        sync.Mutex
		kept      = map[string]bool{}
		cancelled = map[string]bool{}
		wg        sync.WaitGroup
	)
	for w := 0; w < workers; w++ {
		w := w
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				id := fmt.Sprintf("%d-%d", w, i)
				if err := engine.Schedule(DeadlineEvent{TaskID: id, TriggerAt: start.Add(time.Hour)}); err != nil {
					t.Errorf("schedule %s: %v", id, err)
					return
				}
				if i%3 == 0 {
					engine.Cancel(id)
					mu.Lock()
					cancelled[id] = true
					mu.Unlock()
					continue
				}
				due := start.Add(time.Duration(20+(w*perWorker+i)%40) * time.Millisecond)
				if err := engine.Schedule(DeadlineEvent{TaskID: id, Name: "moved", TriggerAt: due}); err != nil {
					t.Errorf("reschedule %s: %v", id, err)
					return
				}
				mu.Lock()
				kept[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	fired := map[string]int{}
	timeout := time.After(5 * time.Second)
	for len(fired) < len(kept) {
		select {
		case <-timeout:
			t.Fatalf("timed out: fired=%d want=%d dropped=%d", len(fired), len(kept), engine.Dropped())
		case ev := <-engine.C():
			if cancelled[ev.TaskID] {
				t.Fatalf("cancelled task %s fired", ev.TaskID)
			}
			if ev.Name != "moved" {
				t.Fatalf("task %s fired with its replaced deadline", ev.TaskID)
			}
			fired[ev.TaskID]++
		}
	}

	select {
	case ev := <-engine.C():
		t.Fatalf("unexpected extra deadline: %+v", ev)
	case <-time.After(100 * time.Millisecond):
	}
	for id, n := range fired {
		if n != 1 {
			t.Fatalf("task %s fired %d times", id, n)
		}
	}
	if engine.Pending() != 0 {
		t.Fatalf("expected empty queue, pending=%d", engine.Pending())
	}
	if engine.Dropped() != 0 {
		t.Fatalf("expected zero drops with an active consumer, got %d", engine.Dropped())
	}
}
