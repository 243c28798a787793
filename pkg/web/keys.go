package web

// ctxKey is a private type for context keys defined in this package.
type ctxKey int

const (
	// requestIDKey is the context key under which the request ID is stored.
	requestIDKey ctxKey = iota
)
