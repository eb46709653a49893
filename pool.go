package pastemd

import (
	"runtime"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps concurrent engine subprocesses.
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for the engine's own processes.
	cpuDivisor = 2
)

// ServicePool bounds concurrent conversion jobs. Services are cheap and
// stateless, but each in-flight job runs an engine subprocess, so the
// pool caps how many run at once.
type ServicePool struct {
	sem chan *Service
}

// NewServicePool creates a pool of n services built with the given
// options. Fails when the options fail to build a service, e.g. on a
// malformed rule set.
func NewServicePool(n int, opts ...Option) (*ServicePool, error) {
	if n < MinPoolSize {
		n = MinPoolSize
	}

	sem := make(chan *Service, n)
	for range n {
		svc, err := New(opts...)
		if err != nil {
			return nil, err
		}
		sem <- svc
	}
	return &ServicePool{sem: sem}, nil
}

// Acquire gets a service from the pool, blocking while all are in use.
func (p *ServicePool) Acquire() *Service {
	return <-p.sem
}

// Release returns a service to the pool.
func (p *ServicePool) Release(svc *Service) {
	p.sem <- svc
}

// Size returns the pool capacity.
func (p *ServicePool) Size() int {
	return cap(p.sem)
}

// ResolvePoolSize determines the pool size.
// Priority: explicit workers > GOMAXPROCS-based calculation.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	n := runtime.GOMAXPROCS(0) / cpuDivisor
	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
