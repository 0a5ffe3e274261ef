package gitclient

import "fmt"

// Typed clone errors enabling structured classification without string parsing upstream.

type InvalidRemoteError struct{ URL string }

func (e *InvalidRemoteError) Error() string {
	return fmt.Sprintf("remote %q does not match https://<prefix>.git", e.URL)
}

type AuthError struct {
	Op, URL string
	Err     error
}

func (e *AuthError) Error() string { return fmt.Sprintf("%s auth error for %s: %v", e.Op, e.URL, e.Err) }
func (e *AuthError) Unwrap() error { return e.Err }

type NotFoundError struct {
	Op, URL string
	Err     error
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("%s not found %s: %v", e.Op, e.URL, e.Err) }
func (e *NotFoundError) Unwrap() error { return e.Err }

type NetworkTimeoutError struct {
	Op, URL string
	Err     error
}

func (e *NetworkTimeoutError) Error() string {
	return fmt.Sprintf("%s network timeout %s: %v", e.Op, e.URL, e.Err)
}
func (e *NetworkTimeoutError) Unwrap() error { return e.Err }
