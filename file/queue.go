package file

import (
	"sync"
	"time"

	"github.com/abyssdigger/plog"
)

// job is the unit handed to the worker: either an entry to write or, when
// done is set, a barrier (Flush) or the stop command (Close).
type job struct {
	at    time.Time
	level plog.Level
	tag   string
	msg   string
	done  chan struct{}
	stop  bool
}

// queue is an unbounded FIFO with exactly one consumer. put never blocks
// beyond the mutex; take blocks while the queue is empty. Once sealed (by
// a stop job or by seal) the queue refuses every further job.
type queue struct {
	mtx    sync.Mutex
	items  []job
	sealed bool
	signal chan struct{}
}

func newQueue() *queue {
	return &queue{signal: make(chan struct{}, 1)}
}

// put appends j and reports whether it was accepted.
func (q *queue) put(j job) bool {
	q.mtx.Lock()
	if q.sealed {
		q.mtx.Unlock()
		return false
	}
	q.items = append(q.items, j)
	q.sealed = j.stop
	q.mtx.Unlock()
	select {
	case q.signal <- struct{}{}:
	default:
	}
	return true
}

// seal refuses further jobs without queueing a stop job, for a queue that
// never got a consumer.
func (q *queue) seal() {
	q.mtx.Lock()
	q.sealed = true
	q.mtx.Unlock()
}

// take returns everything queued so far, in order, waiting for at least
// one job.
func (q *queue) take() []job {
	for {
		q.mtx.Lock()
		if len(q.items) > 0 {
			batch := q.items
			q.items = nil
			q.mtx.Unlock()
			return batch
		}
		q.mtx.Unlock()
		<-q.signal
	}
}

func (q *queue) len() int {
	q.mtx.Lock()
	defer q.mtx.Unlock()
	return len(q.items)
}
