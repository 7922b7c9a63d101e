// Package scheduler drives long-running console commands.
//
// A routine is an iter.Seq[time.Duration]: the body runs until it yields, the
// yielded duration is the pause requested before the next step. Every Tick advances
// each due routine by exactly one step, in start order. Routines cannot be
// cancelled individually; Close stops all of them.
package scheduler

import (
	"fmt"
	"iter"
	"time"

	"github.com/NikitaCOEUR/devconsole/internal/logger"
	"github.com/ef-ds/deque"
)

// Handle identifies a started routine
type Handle struct {
	ID   uint64
	Name string
}

func (h Handle) String() string {
	return fmt.Sprintf("%s#%d", h.Name, h.ID)
}

type task struct {
	handle   Handle
	next     func() (time.Duration, bool)
	stop     func()
	resumeAt time.Time
	steps    int
}

// Scheduler is a cooperative FIFO of routines. It is not safe for concurrent use;
// the host calls it from the console's thread.
type Scheduler struct {
	queue   *deque.Deque
	tasks   map[uint64]*task
	lastID  uint64
	onFail  func(Handle, error)
	log     *logger.Logger
	stopped bool
}

// New creates an empty scheduler
func New(log *logger.Logger) *Scheduler {
	if log == nil {
		log = logger.Nop()
	}
	return &Scheduler{
		queue: deque.New(),
		tasks: make(map[uint64]*task),
		log:   log,
	}
}

// OnFailure registers a callback invoked when a routine step panics
func (s *Scheduler) OnFailure(fn func(Handle, error)) {
	s.onFail = fn
}

// Start queues a routine; its first step runs on the next Tick
func (s *Scheduler) Start(name string, seq iter.Seq[time.Duration]) Handle {
	s.lastID++
	h := Handle{ID: s.lastID, Name: name}

	if s.stopped || seq == nil {
		s.log.Warn().Str("routine", h.String()).Msg("Routine not started")
		return h
	}

	next, stop := iter.Pull(seq)
	t := &task{handle: h, next: next, stop: stop}
	s.tasks[h.ID] = t
	s.queue.PushBack(t)

	s.log.Debug().Str("routine", h.String()).Msg("Routine started")
	return h
}

// Tick advances every routine whose pause has elapsed by one step and
// returns the number of steps run.
func (s *Scheduler) Tick(now time.Time) int {
	advanced := 0
	for range s.queue.Len() {
		v, ok := s.queue.PopFront()
		if !ok {
			break
		}
		t := v.(*task)
		if _, live := s.tasks[t.handle.ID]; !live {
			continue
		}
		if now.Before(t.resumeAt) {
			s.queue.PushBack(t)
			continue
		}

		pause, more, err := s.step(t)
		advanced++
		switch {
		case err != nil:
			s.finish(t)
			s.log.Debug().Str("routine", t.handle.String()).Err(err).Msg("Routine failed")
			if s.onFail != nil {
				s.onFail(t.handle, err)
			}
		case !more:
			s.finish(t)
			s.log.Debug().Str("routine", t.handle.String()).Int("steps", t.steps).Msg("Routine finished")
		default:
			t.resumeAt = now.Add(pause)
			s.queue.PushBack(t)
		}
	}
	return advanced
}

func (s *Scheduler) step(t *task) (pause time.Duration, more bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("routine %s panicked: %v", t.handle, r)
		}
	}()
	pause, more = t.next()
	if more {
		t.steps++
	}
	return pause, more, nil
}

func (s *Scheduler) finish(t *task) {
	delete(s.tasks, t.handle.ID)
	t.stop()
}

// Running reports whether the routine behind h has steps left
func (s *Scheduler) Running(h Handle) bool {
	_, ok := s.tasks[h.ID]
	return ok
}

// Pending returns the number of live routines
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}

// NextDue returns the earliest time a live routine can advance
func (s *Scheduler) NextDue() (time.Time, bool) {
	var due time.Time
	found := false
	for _, t := range s.tasks {
		if !found || t.resumeAt.Before(due) {
			due = t.resumeAt
			found = true
		}
	}
	return due, found
}

// Close stops every live routine. Routines started afterwards are ignored.
func (s *Scheduler) Close() {
	for id, t := range s.tasks {
		t.stop()
		delete(s.tasks, id)
	}
	s.queue = deque.New()
	s.stopped = true
	s.log.Debug().Msg("Scheduler closed")
}
