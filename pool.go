package md2docx

import "sync"

// MaxPoolSize bounds ExporterPool capacity. Each exporter in use can hold a
// subprocess tree (mmdc spawns a headless browser), so the bound keeps
// batch conversion from forking the machine over.
const MaxPoolSize = 16

// ExporterPool manages a pool of Exporter instances for parallel batch
// processing. Exporters are created lazily on first acquire.
type ExporterPool struct {
	size      int
	opts      []Option
	exporters []*Exporter
	sem       chan *Exporter
	mu        sync.Mutex
	created   int
	closed    bool
}

// NewExporterPool creates a pool with capacity for n Exporter instances,
// clamped to [1, MaxPoolSize]. Options are applied to every exporter the
// pool creates.
func NewExporterPool(n int, opts ...Option) *ExporterPool {
	if n < 1 {
		n = 1
	}
	if n > MaxPoolSize {
		n = MaxPoolSize
	}

	return &ExporterPool{
		size:      n,
		opts:      opts,
		exporters: make([]*Exporter, 0, n),
		sem:       make(chan *Exporter, n),
	}
}

// Acquire gets an exporter from the pool, creating one if needed.
// Blocks if all exporters are in use.
func (p *ExporterPool) Acquire() *Exporter {
	// Try to get an existing exporter (non-blocking)
	select {
	case exp := <-p.sem:
		return exp
	default:
	}

	// Check if we can create a new exporter
	p.mu.Lock()
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		exp := NewExporter(p.opts...)

		p.mu.Lock()
		p.exporters = append(p.exporters, exp)
		p.mu.Unlock()

		return exp
	}
	p.mu.Unlock()

	// All exporters created, wait for one to be released
	return <-p.sem
}

// Release returns an exporter to the pool.
func (p *ExporterPool) Release(exp *Exporter) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.closed {
		p.sem <- exp
	}
}

// Close releases all exporters.
func (p *ExporterPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sem)
	exporters := p.exporters
	p.mu.Unlock()

	var lastErr error
	for _, exp := range exporters {
		if err := exp.Close(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// Size returns the pool capacity.
func (p *ExporterPool) Size() int {
	return p.size
}
