package uci

import "fmt"

// Four error kinds per spec.md §7: Transport, Protocol, Parameter, and
// Device status. Device status is deliberately NOT an error type — it is
// returned to the caller as a Status value (see enums_core.go).

type errTransport struct {
	msg string
	err error
}

func (e *errTransport) Error() string {
	if e.err != nil {
		return fmt.Sprintf("transport: %s: %v", e.msg, e.err)
	}
	return "transport: " + e.msg
}

func (e *errTransport) Unwrap() error { return e.err }

// NewTransportError wraps a lower-level transport failure (open/read/write,
// unknown URL scheme, response timeout) as a TransportError.
func NewTransportError(msg string, cause error) error {
	return &errTransport{msg: msg, err: cause}
}

// IsTransportError reports whether err is a transport-kind failure.
func IsTransportError(err error) bool {
	_, ok := err.(*errTransport)
	return ok
}

// IsTimeoutError reports whether err is the specific transport timeout
// produced when a command's response does not arrive within its deadline.
func IsTimeoutError(err error) bool {
	te, ok := err.(*errTransport)
	return ok && te.msg == "response timeout"
}

// NewTimeoutError builds the sentinel timeout TransportError used by
// Client.Command, spec.md §4.5.1.
func NewTimeoutError() error {
	return &errTransport{msg: "response timeout"}
}

type errProtocol struct {
	msg string
}

func (e *errProtocol) Error() string { return "protocol: " + e.msg }

// NewProtocolError reports a header field out of range, a response
// (gid,oid) mismatch, or a fragment-sequence inconsistency, per spec.md §7.2.
func NewProtocolError(msg string) error {
	return &errProtocol{msg: msg}
}

// IsProtocolError reports whether err is a protocol-kind failure.
func IsProtocolError(err error) bool {
	_, ok := err.(*errProtocol)
	return ok
}

type errParameter struct {
	msg string
}

func (e *errParameter) Error() string { return "parameter: " + e.msg }

// NewParameterError reports an unknown tag, a bad declared length, a
// fixed-point overflow, or an unknown calibration key, per spec.md §7.3.
func NewParameterError(msg string) error {
	return &errParameter{msg: msg}
}

// IsParameterError reports whether err is a parameter/value-kind failure.
func IsParameterError(err error) bool {
	_, ok := err.(*errParameter)
	return ok
}

type errSyntax struct {
	msg string
}

func (e *errSyntax) Error() string { return "syntax: " + e.msg }

// NewSyntaxError reports a caller-supplied argument shape violation, e.g.
// an update_multicast_list controlee list not a multiple of 3.
func NewSyntaxError(msg string) error {
	return &errSyntax{msg: msg}
}

// IsSyntaxError reports whether err is a caller argument-shape failure.
func IsSyntaxError(err error) bool {
	_, ok := err.(*errSyntax)
	return ok
}
