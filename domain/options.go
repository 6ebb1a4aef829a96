package domain

// WithItem sets the pattern documents are matched against. A falsy pattern
// (nil, zero value, empty string) selects every document.
func WithItem(p any) QueryOption {
	return func(qo *QueryOptions) {
		qo.Item = p
	}
}

// WithCount caps a query. For finds it is the maximum number of results, for
// removals it is the maximum number of scanned documents. A negative count
// sets no cap.
func WithCount(c int) QueryOption {
	return func(qo *QueryOptions) {
		qo.Count = c
		qo.Limited = true
	}
}

// WithExcept inverts the pattern, selecting documents that do not match it.
func WithExcept(e bool) QueryOption {
	return func(qo *QueryOptions) {
		qo.Except = e
	}
}

// QueryOption configures query behavior through the functional options
// pattern.
type QueryOption func(*QueryOptions)

// QueryOptions contains parameters for find and remove operations.
type QueryOptions struct {
	// Item is the pattern documents are matched against.
	Item any
	// Count caps the operation, only if Limited is set.
	Count int
	// Limited reports whether Count was set.
	Limited bool
	// Except inverts the result of the match.
	Except bool
}

// WithOverride replaces the stored data with the new value instead of merging
// it.
func WithOverride(o bool) UpdateOption {
	return func(uo *UpdateOptions) {
		uo.Override = o
	}
}

// UpdateOption configures update behavior through the functional options
// pattern.
type UpdateOption func(*UpdateOptions)

// UpdateOptions contains parameters for customizing update operations.
type UpdateOptions struct {
	// Override replaces data instead of shallow merging the new value.
	Override bool
}
