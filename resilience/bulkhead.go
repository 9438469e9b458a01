package resilience

import "runtime"

// BulkheadConfig configures a bulkhead.
type BulkheadConfig struct {
	// Name is passed to the callbacks.
	Name string
	// MaxConcurrent is the number of worker slots. Defaults to GOMAXPROCS.
	MaxConcurrent int
	// OnReject is called when a slot request is refused.
	OnReject func(name string)
	// OnAcquire is called when a slot is acquired.
	OnAcquire func(name string)
	// OnRelease is called when a slot is released.
	OnRelease func(name string)
}

// Bulkhead is a fixed pool of worker slots.
type Bulkhead struct {
	config BulkheadConfig
	sem    chan struct{}
}

// NewBulkhead creates a new bulkhead.
func NewBulkhead(config BulkheadConfig) *Bulkhead {
	if config.MaxConcurrent <= 0 {
		config.MaxConcurrent = runtime.GOMAXPROCS(0)
	}

	return &Bulkhead{
		config: config,
		sem:    make(chan struct{}, config.MaxConcurrent),
	}
}

// TryAcquire takes a slot if one is free and never blocks. A true result
// must be paired with Release.
func (b *Bulkhead) TryAcquire() bool {
	select {
	case b.sem <- struct{}{}:
		if b.config.OnAcquire != nil {
			b.config.OnAcquire(b.config.Name)
		}
		return true
	default:
		if b.config.OnReject != nil {
			b.config.OnReject(b.config.Name)
		}
		return false
	}
}

// Release returns a slot taken by TryAcquire.
func (b *Bulkhead) Release() {
	<-b.sem
	if b.config.OnRelease != nil {
		b.config.OnRelease(b.config.Name)
	}
}

// Available returns the number of free slots.
func (b *Bulkhead) Available() int {
	return b.config.MaxConcurrent - len(b.sem)
}

// InUse returns the number of slots currently held.
func (b *Bulkhead) InUse() int {
	return len(b.sem)
}

// MaxConcurrent returns the number of slots.
func (b *Bulkhead) MaxConcurrent() int {
	return b.config.MaxConcurrent
}
