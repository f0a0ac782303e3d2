// Package parallel runs batches of independent CPU tasks on a fixed set of
// goroutines.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool owns one queue per worker. A worker drains its own queue first and
// steals from its siblings when that queue is empty. Idle workers block on
// their queue and on wake, which Run signals after every enqueue.
//
// Pool is safe for concurrent use, but a task must not call Run on the pool
// executing it.
type Pool struct {
	queues []chan func()
	wake   chan struct{}
	done   chan struct{}
	wg     sync.WaitGroup
	open   atomic.Bool
}

// NewPool starts a pool of the given size. Sizes <= 0 use GOMAXPROCS.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	depth := max(workers*4, 8)

	p := &Pool{
		queues: make([]chan func(), workers),
		wake:   make(chan struct{}, workers),
		done:   make(chan struct{}),
	}
	for i := range p.queues {
		p.queues[i] = make(chan func(), depth)
	}
	p.open.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.work(i)
	}
	return p
}

func (p *Pool) work(id int) {
	defer p.wg.Done()
	own := p.queues[id]
	for {
		select {
		case <-p.done:
			return
		case task := <-own:
			task()
			continue
		default:
		}

		if task := p.steal(id); task != nil {
			task()
			continue
		}

		select {
		case <-p.done:
			return
		case <-p.wake:
		case task := <-own:
			task()
		}
	}
}

func (p *Pool) steal(id int) func() {
	for i, q := range p.queues {
		if i == id {
			continue
		}
		select {
		case task := <-q:
			return task
		default:
		}
	}
	return nil
}

// Run deals tasks round-robin across the workers and blocks until all of
// them have returned. It does nothing once the pool is closed.
func (p *Pool) Run(tasks []func()) {
	if len(tasks) == 0 || !p.open.Load() {
		return
	}

	var pending sync.WaitGroup
	pending.Add(len(tasks))
	for i, task := range tasks {
		wrapped := func() {
			defer pending.Done()
			task()
		}
		select {
		case p.queues[i%len(p.queues)] <- wrapped:
		case <-p.done:
			pending.Done()
			continue
		}
		select {
		case p.wake <- struct{}{}:
		default:
		}
	}
	pending.Wait()
}

// Workers reports the pool size.
func (p *Pool) Workers() int { return len(p.queues) }

// Close stops the workers. Close must not race with Run. It is safe to call
// more than once.
func (p *Pool) Close() {
	if !p.open.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}
