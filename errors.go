package popsign

import (
	"errors"
	"fmt"
)

// Sentinel errors - key material
var (
	ErrInvalidKeyMaterial = errors.New("popsign: invalid key material")
	ErrKeyMismatch        = errors.New("popsign: public key does not match private key")
)

// Sentinel errors - signing and verification
var (
	ErrSigningFailure        = errors.New("popsign: signing failed")
	ErrRandomnessUnavailable = errors.New("popsign: secure randomness unavailable")
	ErrInvalidSignature      = errors.New("popsign: invalid signature")
	ErrUnknownScheme         = errors.New("popsign: unknown signature scheme")
)

// Error codes carried by Error. They mirror the sentinel errors and are
// stable identifiers suitable for machine handling.
const (
	CodeInvalidKeyMaterial    = "invalid_key_material"
	CodeKeyMismatch           = "key_mismatch"
	CodeSigningFailure        = "signing_failure"
	CodeRandomnessUnavailable = "randomness_unavailable"
	CodeInvalidSignature      = "invalid_signature"
	CodeUnknownScheme         = "unknown_scheme"
)

// Error is a structured signing error. Every failure surfaces enough
// detail (expected vs. actual values where applicable) to diagnose
// without re-running the call.
type Error struct {
	// Code is the stable error code.
	Code string
	// Message is a human-readable description.
	Message string
	// Details carries diagnostic values, e.g. the expected and
	// received public keys on a mismatch.
	Details map[string]string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("popsign: %s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("popsign: %s: %s %v", e.Code, e.Message, e.Details)
}

// Is maps error codes onto the package sentinel errors so callers can
// use errors.Is against them.
func (e *Error) Is(target error) bool {
	switch e.Code {
	case CodeInvalidKeyMaterial:
		return target == ErrInvalidKeyMaterial
	case CodeKeyMismatch:
		return target == ErrKeyMismatch
	case CodeSigningFailure:
		return target == ErrSigningFailure
	case CodeRandomnessUnavailable:
		return target == ErrRandomnessUnavailable
	case CodeInvalidSignature:
		return target == ErrInvalidSignature
	case CodeUnknownScheme:
		return target == ErrUnknownScheme
	default:
		return false
	}
}

// newError creates an Error with a formatted message and no details.
func newError(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// newKeyMismatchError reports a failed key-consistency check with both
// the derived (expected) and supplied (received) public keys.
func newKeyMismatchError(expected, received string) *Error {
	return &Error{
		Code:    CodeKeyMismatch,
		Message: "derived public key does not match supplied public key",
		Details: map[string]string{
			"expected": expected,
			"received": received,
		},
	}
}

// AsError converts err to *Error if possible.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
