package gateway

// Kind classifies a failed operation. Stores flatten errors to a single
// message for the view layer, but the kind is kept on the error value for
// logging and tests.
type Kind int

const (
	// KindTransport covers network failures and non-2xx statuses; the
	// message comes from the transport layer.
	KindTransport Kind = iota
	// KindRejected covers transport-successful responses whose payload
	// encodes an application-level failure; the message comes from the
	// payload.
	KindRejected
	// KindAuth covers credential mismatches during login; the message is
	// synthesized, not taken from any response.
	KindAuth
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindRejected:
		return "rejected"
	case KindAuth:
		return "auth"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

func Transport(err error) *Error {
	return &Error{Kind: KindTransport, Message: err.Error(), cause: err}
}

func Rejected(message string) *Error {
	return &Error{Kind: KindRejected, Message: message}
}

func AuthFailure(message string) *Error {
	return &Error{Kind: KindAuth, Message: message}
}
