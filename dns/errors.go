package dns

import "errors"

// Errors returned by Client implementations. Callers must be able to tell
// "no such record" apart from a failed query: ErrNotFound is a normal empty
// outcome, everything else means the answer could not be obtained.
var (
	ErrNotFound = errors.New("dns: no records found")
	ErrServFail = errors.New("dns: server failure")
	ErrRefused  = errors.New("dns: query refused")
	ErrTimeout  = errors.New("dns: query timed out")
)

// IsNotFound reports whether err means the name has no matching records or
// does not exist at all (NXDOMAIN).
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsTemporary reports whether err is a transient failure that may succeed
// on retry.
func IsTemporary(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, ErrServFail) || errors.Is(err, ErrRefused)
}
