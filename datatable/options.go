package datatable

type options struct {
	kind    RowKind
	kindSet bool
	labels  []Label
	keys    []Label
	logger  *Logger
}

// Option configures table construction.
type Option func(*options)

// WithRowKind selects how rows are materialized. Constructors default to
// ArrayRows, except FromRecords over structs which defaults to RecordRows.
func WithRowKind(kind RowKind) Option {
	return func(o *options) {
		o.kind = kind
		o.kindSet = true
	}
}

// WithLabels supplies column labels where the input carries none, such as
// FromRecords over column slices.
func WithLabels(labels ...Label) Option {
	return func(o *options) {
		o.labels = labels
	}
}

// WithKeys fixes the key order used to project maps in FromRecords.
func WithKeys(keys ...Label) Option {
	return func(o *options) {
		o.keys = keys
	}
}

// WithLogger attaches a logger to the table and everything derived from it.
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

func applyOptions(opts []Option) *options {
	o := &options{kind: ArrayRows}
	for _, fn := range opts {
		fn(o)
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}
