package allauth

import "github.com/goliatone/go-errors"

const (
	TextCodeTransportFailure = "session_transport_failure"
	TextCodeInvalidPayload   = "session_invalid_payload"
	TextCodeTokenNotFound    = "credential_token_not_found"
	TextCodeTokenStorage     = "credential_token_storage_failed"
	TextCodeMissingLoginID   = "login_identifier_missing"
	TextCodeInvalidPhone     = "phone_identifier_invalid"
)

// ErrTransportFailure is returned when the HTTP request itself fails; the
// server never produced a payload to inspect.
var ErrTransportFailure = errors.New("session request failed", errors.CategoryOperation).
	WithTextCode(TextCodeTransportFailure)

// ErrInvalidPayload is returned when a request body cannot be serialized or a
// caller-supplied value cannot be decoded into the expected shape.
var ErrInvalidPayload = errors.New("invalid session payload", errors.CategoryBadInput).
	WithTextCode(TextCodeInvalidPayload).
	WithCode(errors.CodeBadRequest)

// ErrTokenNotFound is returned by TokenStorage.Get when no credential token
// is held for the scope.
var ErrTokenNotFound = errors.New("credential token not found", errors.CategoryNotFound).
	WithTextCode(TextCodeTokenNotFound).
	WithCode(errors.CodeNotFound)

// ErrTokenStorage is returned when the durable credential store cannot be
// read or written.
var ErrTokenStorage = errors.New("credential token storage failed", errors.CategoryInternal).
	WithTextCode(TextCodeTokenStorage)

// ErrMissingLoginIdentifier is returned when a login or signup request names
// no principal (no username, email, or phone).
var ErrMissingLoginIdentifier = errors.New("login identifier required", errors.CategoryValidation).
	WithTextCode(TextCodeMissingLoginID).
	WithCode(errors.CodeBadRequest)

// ErrInvalidPhoneIdentifier is returned when a phone identifier does not
// parse as a dialable number.
var ErrInvalidPhoneIdentifier = errors.New("invalid phone identifier", errors.CategoryValidation).
	WithTextCode(TextCodeInvalidPhone).
	WithCode(errors.CodeBadRequest)
