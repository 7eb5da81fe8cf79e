package crawler

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/fuzumoe/crawltorch-api/internal/model"
)

// ErrBusy means the session queue is full; the caller should retry later.
var ErrBusy = errors.New("crawl queue full")

// Pool bounds how many crawl sessions run concurrently. Fetches within one
// session stay serial; only whole sessions are parallelized.
type Pool interface {
	// Start runs background workers until the passed context is cancelled.
	Start(ctx context.Context)
	// Run queues a session and blocks until its result is ready.
	Run(ctx context.Context, s *Session) (*model.CrawlResult, error)
	Shutdown()
}

// NewPool creates a session pool with the given worker and queue sizes.
func NewPool(workers, buf int) Pool {
	if workers <= 0 {
		workers = 4
	}
	if buf <= 0 {
		buf = 64
	}

	// Start with a background context; Start swaps in its own child.
	ctx, cancel := context.WithCancel(context.Background())

	return &pool{
		workers: workers,
		tasks:   make(chan *job, buf),
		ctx:     ctx,
		cancel:  cancel,
	}
}

type job struct {
	ctx     context.Context
	session *Session
	out     chan *model.CrawlResult
}

type pool struct {
	workers int
	tasks   chan *job

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc

	wg        sync.WaitGroup
	closeOnce sync.Once
}

// Start spins up background workers and blocks until ctx is cancelled.
// The child context and its cancel are published under the mutex so that
// Run and a direct Shutdown always see the live ones.
func (p *pool) Start(ctx context.Context) {
	childCtx, cancel := context.WithCancel(ctx)
	p.mu.Lock()
	p.ctx = childCtx
	p.cancel = cancel
	p.mu.Unlock()

	for i := 0; i < p.workers; i++ {
		id := i + 1
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			p.run(childCtx, id)
		}()
	}

	<-childCtx.Done()
	p.Shutdown()
}

// Run enqueues the session and waits for its result. A full queue rejects
// immediately with ErrBusy instead of blocking the caller.
func (p *pool) Run(ctx context.Context, s *Session) (*model.CrawlResult, error) {
	poolCtx := p.context()
	if err := poolCtx.Err(); err != nil {
		return nil, err
	}

	j := &job{ctx: ctx, session: s, out: make(chan *model.CrawlResult, 1)}
	select {
	case p.tasks <- j:
	default:
		log.Printf("[crawler] queue full – rejecting session=%s", s.ID)
		return nil, ErrBusy
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-poolCtx.Done():
		return nil, poolCtx.Err()
	case res := <-j.out:
		return res, nil
	}
}

func (p *pool) context() context.Context {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ctx
}

func (p *pool) run(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		case j, ok := <-p.tasks:
			if !ok {
				return
			}
			start := time.Now()
			res := j.session.Run(j.ctx)
			j.out <- res
			log.Printf("[crawler:%d] session=%s %s in %s (pages=%d)",
				id, j.session.ID, res.Status,
				time.Since(start).Truncate(time.Millisecond), len(res.Pages))
		}
	}
}

// Shutdown cancels the live context, waits for all workers to finish, and
// then closes the tasks channel.
func (p *pool) Shutdown() {
	p.mu.Lock()
	cancel := p.cancel
	p.mu.Unlock()
	cancel()
	p.wg.Wait()
	p.closeOnce.Do(func() { close(p.tasks) })
}
