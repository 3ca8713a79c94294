package service

import "errors"

// Business-rule failures. These are expected outcomes of normal operation:
// they are returned as values, matched with errors.Is at the API boundary,
// and carry the user-facing message. Anything else that escapes a service is
// an internal failure and must not be shown to end users verbatim.
var (
	// ErrAdmissionDenied is returned when an IP address has reached its
	// account-creation limit.
	ErrAdmissionDenied = errors.New("account limit reached for this IP address")

	// ErrInvalidCredentials is returned when no user matches the presented
	// username/password pair.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrBanned is returned when a banned user presents correct credentials.
	ErrBanned = errors.New("you are banned")

	// ErrAlreadyRedeemed is returned when a user retries a code they have
	// already consumed.
	ErrAlreadyRedeemed = errors.New("code already used")

	// ErrInvalidOrExhausted is returned for unknown codes and codes with no
	// activations left.
	ErrInvalidOrExhausted = errors.New("invalid or expired code")

	// ErrInvalidCommand is returned for admin command lines that do not
	// parse: unknown verb, wrong argument count, or malformed number.
	ErrInvalidCommand = errors.New("invalid command")
)
