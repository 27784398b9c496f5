package download

import "errors"

var (
	// ErrTransport means the request never produced a response
	ErrTransport = errors.New("transport failure")

	// ErrHTTPStatus means the server answered with a non-success status
	ErrHTTPStatus = errors.New("http error")

	// ErrStorage means the response could not be written to disk
	ErrStorage = errors.New("storage failure")

	// ErrNotDispatched means the run context ended before the file got a slot
	ErrNotDispatched = errors.New("not dispatched")
)

// ErrorKind classifies a per-file failure for logging
type ErrorKind string

const (
	KindNone          ErrorKind = ""
	KindTransport     ErrorKind = "transport"
	KindHTTP          ErrorKind = "http_status"
	KindStorage       ErrorKind = "storage"
	KindNotDispatched ErrorKind = "not_dispatched"
	KindUnknown       ErrorKind = "unknown"
)

// Classify maps a fetch error onto its ErrorKind
func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrTransport):
		return KindTransport
	case errors.Is(err, ErrHTTPStatus):
		return KindHTTP
	case errors.Is(err, ErrStorage):
		return KindStorage
	case errors.Is(err, ErrNotDispatched):
		return KindNotDispatched
	default:
		return KindUnknown
	}
}
