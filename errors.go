package statsd

import "github.com/joomcode/errorx"

// Errors is the namespace of all errors produced by the client
var Errors = errorx.NewNamespace("statsd")

var (
	// ErrConfig indicates invalid configuration. It is raised from the
	// configuration step only, never from a send call.
	ErrConfig = Errors.NewType("config")
	// ErrConnection indicates a datagram channel open failure. It is
	// returned from send calls unless errors are silenced.
	ErrConnection = Errors.NewType("connection")

	// PropertyClientID carries the identity of the client the error
	// originated from
	PropertyClientID = errorx.RegisterPrintableProperty("client_id")
)

// ClientID extracts the originating client identity from an error
func ClientID(err error) (string, bool) {
	ex := errorx.Cast(err)
	if ex == nil {
		return "", false
	}

	val, ok := ex.Property(PropertyClientID)
	if !ok {
		return "", false
	}

	id, ok := val.(string)
	return id, ok
}
