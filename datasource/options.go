package datasource

// DefaultMaxBytes caps a single document unless overridden.
const DefaultMaxBytes int64 = 100 << 20

// LoadOptions represents options for loading documents
type LoadOptions struct {
	// Recursive indicates whether to recursively load from prefixes
	Recursive bool
	// Filter is a function that determines whether to load a document
	Filter func(metadata map[string]interface{}) bool
	// MaxItems is the maximum number of items to load (0 for no limit)
	MaxItems int
	// MaxBytes is the largest document accepted (0 for no limit)
	MaxBytes int64
}

// Option is a function type to modify LoadOptions
type Option func(*LoadOptions)

// NewLoadOptions applies opts over the defaults.
func NewLoadOptions(opts ...Option) *LoadOptions {
	options := &LoadOptions{
		Recursive: true,
		MaxBytes:  DefaultMaxBytes,
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// WithRecursive sets whether to load recursively
func WithRecursive(recursive bool) Option {
	return func(o *LoadOptions) {
		o.Recursive = recursive
	}
}

// WithFilter sets a filter function for documents
func WithFilter(filter func(metadata map[string]interface{}) bool) Option {
	return func(o *LoadOptions) {
		o.Filter = filter
	}
}

// WithMaxItems sets the maximum number of items to load
func WithMaxItems(max int) Option {
	return func(o *LoadOptions) {
		o.MaxItems = max
	}
}

// WithMaxBytes sets the size limit for a single document
func WithMaxBytes(max int64) Option {
	return func(o *LoadOptions) {
		o.MaxBytes = max
	}
}

// Accept reports whether a document with the given metadata passes Filter.
func (o *LoadOptions) Accept(metadata map[string]interface{}) bool {
	return o.Filter == nil || o.Filter(metadata)
}

// Full reports whether n loaded documents reach MaxItems.
func (o *LoadOptions) Full(n int) bool {
	return o.MaxItems > 0 && n >= o.MaxItems
}

// TooLarge reports whether size exceeds MaxBytes.
func (o *LoadOptions) TooLarge(size int64) bool {
	return o.MaxBytes > 0 && size > o.MaxBytes
}
