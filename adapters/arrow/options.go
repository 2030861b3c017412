package arrowadapter

import (
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/magpierre/rowtable/datatable"
)

type options struct {
	mem    memory.Allocator
	logger *datatable.Logger
}

// Option configures the Arrow adapter.
type Option func(*options)

// WithAllocator sets the allocator used for built arrays.
// If nil is passed, memory.DefaultAllocator is used.
func WithAllocator(mem memory.Allocator) Option {
	return func(o *options) {
		if mem == nil {
			mem = memory.DefaultAllocator
		}
		o.mem = mem
	}
}

// WithLogger sets the logger for build and read operations.
func WithLogger(l *datatable.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = datatable.NoopLogger()
		}
		o.logger = l
	}
}

func applyOptions(opts []Option) *options {
	o := &options{
		mem:    memory.DefaultAllocator,
		logger: datatable.NoopLogger(),
	}
	for _, fn := range opts {
		fn(o)
	}
	return o
}
