package handler

import (
	"sync"
	"time"

	"github.com/philipp01105/nlogtree/core"
)

// asyncQueue hands records to a background goroutine that calls write.
// It is shared by the console and file handlers.
type asyncQueue struct {
	write        func(*core.Record) error
	queue        chan core.Record
	closed       chan struct{}
	closeOnce    sync.Once
	wg           sync.WaitGroup
	policy       LevelPolicy
	blockTimeout time.Duration
	drainTimeout time.Duration
	stats        *Stats

	// mu is held shared by enqueue and exclusively by close, so no send
	// can land after the drain started
	mu       sync.RWMutex
	isClosed bool
}

func newAsyncQueue(size int, policy LevelPolicy, blockTimeout, drainTimeout time.Duration, stats *Stats, write func(*core.Record) error) *asyncQueue {
	q := &asyncQueue{
		write:        write,
		queue:        make(chan core.Record, size),
		closed:       make(chan struct{}),
		policy:       policy,
		blockTimeout: blockTimeout,
		drainTimeout: drainTimeout,
		stats:        stats,
	}
	q.wg.Add(1)
	go q.process()
	return q
}

// enqueue applies the overflow policy for the record's level
func (q *asyncQueue) enqueue(rec core.Record) error {
	q.mu.RLock()
	if q.isClosed {
		q.mu.RUnlock()
		// Handler is closing, write synchronously
		return q.write(&rec)
	}
	defer q.mu.RUnlock()

	switch q.policy.For(rec.Level) {
	case Block:
		select {
		case q.queue <- rec:
			return nil
		default:
		}
		timer := time.NewTimer(q.blockTimeout)
		defer timer.Stop()
		select {
		case q.queue <- rec:
			return nil
		case <-timer.C:
			// Timeout - fall back to synchronous write
			q.stats.IncrementBlocked()
			return q.write(&rec)
		}

	case DropOldest:
		select {
		case q.queue <- rec:
			return nil
		default:
			// Queue full - try to drop oldest
			select {
			case old := <-q.queue:
				q.stats.IncrementDropped(old.Level)
			default:
			}
			select {
			case q.queue <- rec:
				return nil
			default:
				// Still full, drop this one
				q.stats.IncrementDropped(rec.Level)
				return nil
			}
		}

	default:
		select {
		case q.queue <- rec:
			return nil
		default:
			// Queue full - drop this record
			q.stats.IncrementDropped(rec.Level)
			return nil
		}
	}
}

// process writes queued records until the queue is closed
func (q *asyncQueue) process() {
	defer q.wg.Done()

	for {
		select {
		case rec := <-q.queue:
			_ = q.write(&rec)
		case <-q.closed:
			// Drain remaining records with timeout
			deadline := time.After(q.drainTimeout)
			for {
				select {
				case rec := <-q.queue:
					_ = q.write(&rec)
				case <-deadline:
					return
				default:
					return
				}
			}
		}
	}
}

// close stops accepting queued records and waits for the drain
func (q *asyncQueue) close() {
	q.closeOnce.Do(func() {
		q.mu.Lock()
		q.isClosed = true
		close(q.closed)
		q.mu.Unlock()
		q.wg.Wait()
	})
}
