package api

import "fmt"

// ServiceError is returned when the API answers with a non-2xx status.
// No retry is attempted; the user re-invokes the action manually.
type ServiceError struct {
	Status int
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("api error: status %d", e.Status)
}

// TransportError is returned when the request never produced an HTTP
// response (network unreachable, timeout, connection reset).
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("api unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
