package webfx

import (
	"net"
	"sync"
)

// workerPool runs connection-handling tasks on a fixed set of
// goroutines, one connection per task. The queue is a bounded channel:
// when it fills, Submit blocks the accept loop, which pushes the
// backpressure down into the kernel's TCP accept queue instead of
// growing memory without bound.
type workerPool struct {
	tasks  chan net.Conn
	handle func(net.Conn)
	wg     sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

func newWorkerPool(workers, queueDepth int, handle func(net.Conn)) *workerPool {
	if workers <= 0 {
		workers = defaultWorkers
	}
	if queueDepth <= 0 {
		queueDepth = defaultQueueDepth
	}
	p := &workerPool{
		tasks:  make(chan net.Conn, queueDepth),
		handle: handle,
	}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.run()
	}
	return p
}

func (p *workerPool) run() {
	defer p.wg.Done()
	for c := range p.tasks {
		p.handle(c)
	}
}

// Submit enqueues a connection, blocking while the queue is full.
// It returns ErrPoolClosed after Shutdown; the caller still owns the
// connection in that case.
func (p *workerPool) Submit(c net.Conn) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPoolClosed
	}
	p.tasks <- c
	return nil
}

// Shutdown stops accepting new tasks. Queued and in-flight tasks run
// to completion; nothing is cancelled.
func (p *workerPool) Shutdown() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	close(p.tasks)
}

// Wait blocks until all workers have drained and exited.
func (p *workerPool) Wait() {
	p.wg.Wait()
}
