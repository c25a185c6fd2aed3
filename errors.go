package solana

import (
	"errors"
	"fmt"
)

// ErrorCategory represents the category of an error raised by this package
type ErrorCategory string

const (
	ErrorCategoryMalformedInput ErrorCategory = "malformed_input"
	ErrorCategoryRange          ErrorCategory = "range"
	ErrorCategoryVerification   ErrorCategory = "verification"
	ErrorCategoryArithmetic     ErrorCategory = "arithmetic"
	ErrorCategoryValidation     ErrorCategory = "validation"
)

// Error represents a structured error in the Solana core. None of these
// conditions are fixed by retrying with the same input.
type Error struct {
	Category ErrorCategory `json:"category"`
	Code     string        `json:"code"`
	Message  string        `json:"message"`
	Details  string        `json:"details,omitempty"`
	Cause    error         `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := fmt.Sprintf("[%s:%s] %s", e.Category, e.Code, e.Message)
	if e.Details != "" {
		msg += ": " + e.Details
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target carries the same code, so that copies produced by
// WithDetails and WithCause still match the package-level sentinels.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Category == t.Category
}

// WithDetails returns a copy of the error carrying a formatted detail string
func (e *Error) WithDetails(format string, args ...interface{}) *Error {
	c := *e
	c.Details = fmt.Sprintf(format, args...)
	return &c
}

// WithCause returns a copy of the error wrapping cause
func (e *Error) WithCause(cause error) *Error {
	c := *e
	c.Cause = cause
	return &c
}

// NewError creates a new structured error
func NewError(category ErrorCategory, code, message string) *Error {
	return &Error{
		Category: category,
		Code:     code,
		Message:  message,
	}
}

// Malformed input errors
var (
	ErrInvalidPointLength = NewError(
		ErrorCategoryMalformedInput, "INVALID_POINT_LENGTH",
		"point encoding must be 32 bytes")

	ErrNonCanonicalPoint = NewError(
		ErrorCategoryMalformedInput, "NON_CANONICAL_POINT",
		"point y-coordinate is not below the field prime")

	ErrNoSquareRoot = NewError(
		ErrorCategoryMalformedInput, "NO_SQUARE_ROOT",
		"no x-coordinate exists for the encoded y-coordinate")

	ErrInvalidSignBit = NewError(
		ErrorCategoryMalformedInput, "INVALID_SIGN_BIT",
		"sign bit is set for a point with x = 0")

	ErrPointNotOnCurve = NewError(
		ErrorCategoryMalformedInput, "POINT_NOT_ON_CURVE",
		"coordinates do not satisfy the curve equation")

	ErrInvalidScalar = NewError(
		ErrorCategoryMalformedInput, "INVALID_SCALAR",
		"scalar encoding is not canonical")

	ErrInvalidPublicKey = NewError(
		ErrorCategoryMalformedInput, "INVALID_PUBLIC_KEY",
		"public key is not a valid point encoding")

	ErrInvalidSignature = NewError(
		ErrorCategoryMalformedInput, "INVALID_SIGNATURE",
		"signature is malformed")

	ErrInvalidBase58 = NewError(
		ErrorCategoryMalformedInput, "INVALID_BASE58",
		"base58 string does not decode to the expected length")

	ErrInvalidCompactU16 = NewError(
		ErrorCategoryMalformedInput, "INVALID_COMPACT_U16",
		"compact-u16 encoding is malformed")

	ErrMalformedTransaction = NewError(
		ErrorCategoryMalformedInput, "MALFORMED_TRANSACTION",
		"transaction bytes could not be decoded")

	ErrKeypairMismatch = NewError(
		ErrorCategoryMalformedInput, "KEYPAIR_MISMATCH",
		"public half of the keypair does not match the private key")

	ErrInvalidAccountIndex = NewError(
		ErrorCategoryMalformedInput, "INVALID_ACCOUNT_INDEX",
		"instruction references an account outside the message")
)

// Range errors
var (
	ErrCompactU16Range = NewError(
		ErrorCategoryRange, "COMPACT_U16_RANGE",
		"value does not fit in a compact-u16")

	ErrTransactionTooLarge = NewError(
		ErrorCategoryRange, "TRANSACTION_TOO_LARGE",
		"serialized transaction exceeds the packet limit")

	ErrTooManyAccounts = NewError(
		ErrorCategoryRange, "TOO_MANY_ACCOUNTS",
		"message references more than 256 accounts")
)

// Verification errors
var (
	ErrSignatureVerificationFailed = NewError(
		ErrorCategoryVerification, "SIGNATURE_VERIFICATION_FAILED",
		"signature verification failed")
)

// Arithmetic errors
var (
	ErrDivisionByZero = NewError(
		ErrorCategoryArithmetic, "DIVISION_BY_ZERO",
		"division by zero")
)

// Validation errors
var (
	ErrMissingSigner = NewError(
		ErrorCategoryValidation, "MISSING_SIGNER",
		"no private key supplied for a required signer")

	ErrUnexpectedSigner = NewError(
		ErrorCategoryValidation, "UNEXPECTED_SIGNER",
		"private key does not belong to a required signer")

	ErrSignatureCountMismatch = NewError(
		ErrorCategoryValidation, "SIGNATURE_COUNT_MISMATCH",
		"signature count does not match the required signers")

	ErrInvalidSeeds = NewError(
		ErrorCategoryValidation, "INVALID_SEEDS",
		"program address seeds are invalid")

	ErrNoInstructions = NewError(
		ErrorCategoryValidation, "NO_INSTRUCTIONS",
		"at least one instruction is required")

	ErrNoProgramAddress = NewError(
		ErrorCategoryValidation, "NO_PROGRAM_ADDRESS",
		"no bump seed yields an address off the curve")
)

// WrapError wraps an existing error with structured context
func WrapError(err error, category ErrorCategory, code, message string) *Error {
	return NewError(category, code, message).WithCause(err)
}

// IsErrorCategory checks if an error, or any error it wraps, belongs to category
func IsErrorCategory(err error, category ErrorCategory) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Category == category
	}
	return false
}
