package convert

import (
	"sync"

	"convertly/internal/api"
)

// Tracker holds the authoritative task state for one conversion batch.
// Poll goroutines merge results concurrently, so every accessor takes the
// lock; callers only ever see copies.
type Tracker struct {
	mu    sync.Mutex
	order []string
	tasks map[string]*Task
}

func NewTracker() *Tracker {
	return &Tracker{tasks: make(map[string]*Task)}
}

// Add registers a task. Re-adding an existing identifier is a no-op so a
// retried upload cannot reset state polling has already advanced.
func (t *Tracker) Add(task Task) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.tasks[task.ID]; ok {
		return
	}
	stored := task
	t.tasks[task.ID] = &stored
	t.order = append(t.order, task.ID)
}

// Apply merges a poll result into the matching task and returns the updated
// copy. Progress never regresses, status only moves forward, a terminal
// task never changes again, and a completed status forces progress to 100.
// Results for unknown identifiers are dropped.
func (t *Tracker) Apply(resp *api.ProgressResponse) (Task, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	task, ok := t.tasks[resp.ID]
	if !ok {
		return Task{}, false
	}
	if task.Status.Terminal() {
		return *task, true
	}

	if resp.Progress > task.Progress {
		task.Progress = resp.Progress
	}
	if next := ParseStatus(resp.Status); next.rank() > task.Status.rank() {
		task.Status = next
	}
	if task.Status == StatusCompleted {
		task.Progress = 100
	}
	return *task, true
}

// MarkError forces a task into the error state with a message. Terminal
// tasks are left alone.
func (t *Tracker) MarkError(id, message string) (Task, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	task, ok := t.tasks[id]
	if !ok {
		return Task{}, false
	}
	if task.Status.Terminal() {
		return *task, true
	}
	task.Status = StatusError
	task.Message = message
	return *task, true
}

// Get returns a copy of the task for id.
func (t *Tracker) Get(id string) (Task, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	task, ok := t.tasks[id]
	if !ok {
		return Task{}, false
	}
	return *task, true
}

// Snapshot returns copies of every task in insertion order.
func (t *Tracker) Snapshot() []Task {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Task, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, *t.tasks[id])
	}
	return out
}
