package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
)

// ErrorKind classifies why a remote call failed.
type ErrorKind string

const (
	// KindTimeout is a call that did not complete within the deadline.
	KindTimeout ErrorKind = "timeout"
	// KindRefused is a connection actively refused by the host.
	KindRefused ErrorKind = "refused"
	// KindDNS is a name that could not be resolved.
	KindDNS ErrorKind = "dns"
	// KindNoConnection is any other transport failure.
	KindNoConnection ErrorKind = "no-connection"
	// KindStatus is a completed call whose status was not 2xx.
	KindStatus ErrorKind = "http-status"
	// KindBadShape is a 2xx response whose body broke the contract, for
	// list calls an HTML error page instead of a JSON array. Callers treat
	// it exactly like a network failure.
	KindBadShape ErrorKind = "bad-shape"
)

// RemoteError describes a failed remote call.
type RemoteError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Detail  string
}

func (e *RemoteError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("remote: %s (%s, status %d): %s", e.Message, e.Kind, e.Status, e.Detail)
	}
	return fmt.Sprintf("remote: %s (%s): %s", e.Message, e.Kind, e.Detail)
}

// classify maps a transport error onto the RemoteError taxonomy.
func classify(op string, err error) *RemoteError {
	kind := KindNoConnection

	var dnsErr *net.DNSError
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = KindTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		kind = KindTimeout
	case errors.As(err, &dnsErr):
		kind = KindDNS
	case errors.Is(err, syscall.ECONNREFUSED):
		kind = KindRefused
	}

	return &RemoteError{
		Kind:    kind,
		Message: op + " failed",
		Detail:  err.Error(),
	}
}
