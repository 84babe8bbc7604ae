package md2docx

import (
	"sync"
	"testing"
	"time"
)

func TestNewExporterPoolClampsSize(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want int
	}{
		{"zero clamps to one", 0, 1},
		{"negative clamps to one", -5, 1},
		{"in range kept", 4, 4},
		{"over max clamps", MaxPoolSize + 10, MaxPoolSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewExporterPool(tt.n)
			defer p.Close()
			if p.size != tt.want {
				t.Errorf("size = %d, want %d", p.size, tt.want)
			}
		})
	}
}

func TestPoolLazyCreation(t *testing.T) {
	p := NewExporterPool(3)
	defer p.Close()

	if p.created != 0 {
		t.Fatalf("created = %d before any Acquire, want 0", p.created)
	}

	exp := p.Acquire()
	if exp == nil {
		t.Fatal("Acquire() returned nil")
	}
	if p.created != 1 {
		t.Errorf("created = %d after one Acquire, want 1", p.created)
	}
	p.Release(exp)
}

func TestPoolReusesReleasedExporter(t *testing.T) {
	p := NewExporterPool(2)
	defer p.Close()

	first := p.Acquire()
	p.Release(first)
	second := p.Acquire()
	defer p.Release(second)

	if first != second {
		t.Error("Acquire() created a new exporter instead of reusing the released one")
	}
	if p.created != 1 {
		t.Errorf("created = %d, want 1", p.created)
	}
}

func TestPoolBlocksWhenExhausted(t *testing.T) {
	p := NewExporterPool(1)
	defer p.Close()

	exp := p.Acquire()

	acquired := make(chan *Exporter)
	go func() {
		acquired <- p.Acquire()
	}()

	select {
	case <-acquired:
		t.Fatal("Acquire() did not block with pool exhausted")
	case <-time.After(20 * time.Millisecond):
	}

	p.Release(exp)

	select {
	case got := <-acquired:
		if got != exp {
			t.Error("blocked Acquire() got a different exporter")
		}
	case <-time.After(time.Second):
		t.Fatal("Acquire() still blocked after Release")
	}
}

func TestPoolConcurrentAcquireRelease(t *testing.T) {
	p := NewExporterPool(4)
	defer p.Close()

	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			exp := p.Acquire()
			time.Sleep(time.Millisecond)
			p.Release(exp)
		}()
	}
	wg.Wait()

	if p.created > 4 {
		t.Errorf("created = %d, want at most 4", p.created)
	}
}

func TestPoolCloseIdempotent(t *testing.T) {
	p := NewExporterPool(2)
	exp := p.Acquire()
	p.Release(exp)

	if err := p.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	// Release after close must not panic on the closed channel.
	p.Release(exp)
}
