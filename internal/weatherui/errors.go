package weatherui

import "fmt"

// Kind separates the two ways a lookup can fail
type Kind int

const (
	// KindApplication means the backend answered with success:false
	KindApplication Kind = iota + 1
	// KindTransport means no usable answer arrived: network failure, timeout
	// or a body that is not JSON
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindApplication:
		return "application"
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// User-facing messages
const (
	MsgDetectFailed   = "Could not detect your location. Please enter your city manually."
	MsgWeatherFailed  = "Failed to fetch weather data."
	MsgCityNotFound   = "City not found. Please try again."
	MsgEmptyCity      = "Please enter a city name."
	MsgNetworkFailure = "Network error. Please check your connection and try again."
)

// LookupError is a failed lookup. Message is what the user sees; Err is the
// underlying cause and is never displayed.
type LookupError struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (e *LookupError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// applicationError uses the server-supplied message when present
func applicationError(op, serverMsg, fallback string) *LookupError {
	msg := serverMsg
	if msg == "" {
		msg = fallback
	}
	return &LookupError{Kind: KindApplication, Op: op, Message: msg}
}

func transportError(op string, err error) *LookupError {
	return &LookupError{Kind: KindTransport, Op: op, Message: MsgNetworkFailure, Err: err}
}
