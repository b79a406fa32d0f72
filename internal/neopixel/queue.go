package neopixel

import (
	"errors"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Queue shares the LEDs between effects, some of which run for a long time.
// Taking a turn marks the queue as interrupted; a running effect SHOULD check
// IsInterrupted and return so the next one in line gets the LEDs.
type Queue struct {
	waiting int
	runLock sync.Mutex
	mu      sync.Mutex
}

type Unlocker func()

// Queue waits for a turn on the LEDs and returns the function that gives it
// back.
func (q *Queue) Queue() Unlocker {
	q.interrupt()
	q.runLock.Lock()
	q.running()

	var once sync.Once
	return func() {
		once.Do(q.done)
	}
}

func (q *Queue) interrupt() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.waiting++
	log.Debug("Added to queue: ", q.waiting)
}

func (q *Queue) running() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.waiting--
}

// IsInterrupted reports whether someone is waiting for a turn.
func (q *Queue) IsInterrupted() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.waiting != 0
}

func (q *Queue) done() {
	defer q.runLock.Unlock()

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.waiting < 0 {
		log.Warn(errors.New("number waiting in queue less than zero"))
	}
}
