package constants

import "errors"

// Configuration errors.
var (
	ErrNoAPIConfigured   = errors.New("no API endpoint configured, use 'storefront config set api <url>' or --api")
	ErrNotAuthenticated  = errors.New("not authenticated, use 'storefront login' first")
	ErrEmptyPassword     = errors.New("password is required")
	ErrEmptyEmail        = errors.New("email is required")
	ErrUnknownConfigKey  = errors.New("unknown configuration key")
	ErrInvalidOutput     = errors.New("invalid output format")
	ErrInvalidJWTFormat  = errors.New("invalid JWT format")
	ErrNoExpirationClaim = errors.New("no expiration claim found")
)

// Required field errors.
var (
	ErrNameRequired     = errors.New("--name flag is required")
	ErrPriceRequired    = errors.New("--price flag is required")
	ErrBookingTarget    = errors.New("exactly one of --service or --course is required")
	ErrScheduleRequired = errors.New("--at flag is required for service bookings")
)
