package mldsa

import (
	"errors"
)

// Errors reported by this package. They are wrapped with some context
// before being returned; use errors.Is to test for them. An invalid
// signature is not an error: Verify simply returns false.
var (
	// Malformed or mis-sized byte input, or a value that cannot be
	// represented in its fixed-width encoding.
	ErrInvalidEncoding = errors.New("mldsa: invalid encoding")

	// Unsupported security level.
	ErrInvalidParameterSet = errors.New("mldsa: invalid parameter set")

	// The signing loop ran out of attempts. This cannot happen with
	// correct parameters and a working random source.
	ErrRejectionLimitExceeded = errors.New("mldsa: rejection limit exceeded")

	// The random source failed to provide the requested bytes.
	ErrEntropySourceFailure = errors.New("mldsa: entropy source failure")

	// The domain separation context is longer than 255 bytes.
	ErrContextTooLong = errors.New("mldsa: context string too long")

	// The pre-hash function identifier is not supported.
	ErrUnsupportedHash = errors.New("mldsa: unsupported pre-hash function")

	// The signing key was scrubbed with Destroy.
	ErrKeyDestroyed = errors.New("mldsa: signing key has been destroyed")
)
