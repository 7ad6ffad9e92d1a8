package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the timeout applied when a caller opts into timeouts
	// without choosing a value.
	DefaultHTTPTimeout = 30 * time.Second
)

// Retry limits. Retries are disabled unless RetryMax is set.
const (
	// DefaultRetryWaitMin is the minimum wait between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second

	// ExtendedRetryWaitMax is used for operations that need longer waits.
	ExtendedRetryWaitMax = 30 * time.Second
)

// TokenExpiryBuffer treats a token as expired this long before its exp claim.
const TokenExpiryBuffer = 30 * time.Second

// Concurrency limits.
const (
	// DefaultConcurrencyLimit limits concurrent batch operations.
	DefaultConcurrencyLimit = 3
)

// HTTP status boundaries.
const (
	// HTTPStatusOK represents a successful HTTP response.
	HTTPStatusOK = 200

	// HTTPStatusMultipleChoices is the first status outside the 2xx range.
	HTTPStatusMultipleChoices = 300
)

// Pagination defaults.
const (
	// StandardPageSize is the default number of items per page.
	StandardPageSize = 20

	// MaxPages bounds FetchAllPages so a misbehaving backend cannot loop forever.
	MaxPages = 1000
)

// Cache defaults.
const (
	// DefaultCacheSize is the default number of entries in the memory cache.
	DefaultCacheSize = 500

	// DefaultCacheTTL is the default lifetime of a cached GET response.
	DefaultCacheTTL = 1 * time.Minute

	// DefaultNATSBucket is the default NATS KV bucket name.
	DefaultNATSBucket = "storefront-cache"
)

// Header names.
const (
	HeaderAuthorization = "Authorization"
	HeaderAccept        = "Accept"
	HeaderContentType   = "Content-Type"
	HeaderUserAgent     = "User-Agent"
	HeaderRequestID     = "X-Request-ID"
	HeaderETag          = "ETag"
)

const (
	// ContentTypeJSON is the only content type the backend speaks.
	ContentTypeJSON = "application/json"

	// DefaultUserAgent identifies this client to the backend.
	DefaultUserAgent = "storefront-go/1.0"

	// BearerPrefix precedes the session token in the Authorization header.
	BearerPrefix = "Bearer "
)

// Output formats understood by the CLI.
const (
	OutputFormatTable = "table"
	OutputFormatJSON  = "json"
	OutputFormatYAML  = "yaml"
)

// Time formats.
const (
	// DisplayTimeFormat is the layout used in CLI tables.
	DisplayTimeFormat = "2006-01-02 15:04:05"
)
