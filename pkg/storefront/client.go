package storefront

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CatalogClients provides access to the storefront catalog.
type CatalogClients interface {
	Products() ProductsClient
	Brands() BrandsClient
	Categories() CategoriesClient
}

// BookingClients provides access to bookable offerings and bookings.
type BookingClients interface {
	Services() ServicesClient
	Courses() CoursesClient
	Bookings() BookingsClient
}

// Client is the entry point for the storefront backend.
type Client interface {
	CatalogClients
	BookingClients

	// Auth logs in and out of the backend, updating Session.
	Auth() AuthClient

	// Session is the store holding the current token.
	Session() SessionStore

	// Transport executes raw requests and feeds the generic hooks.
	Transport() Transport

	// Close releases resources held by the response cache.
	Close() error
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a Client.
//
// Retries are disabled unless RetryMax is positive; when enabled, only 429
// and 5xx responses and connection errors are retried. Timeout is zero by
// default, leaving deadlines to the caller's context. Cache is nil by
// default, meaning every GET reaches the backend.
type Config struct {
	// APIEndpoint is the backend base URL, e.g. "https://api.example.com/v1".
	APIEndpoint string

	// AccessToken seeds the session store, e.g. a token persisted by the CLI.
	AccessToken string

	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Debug logs every request and response through Logger.
	Debug bool

	// Logger receives transport and hook diagnostics.
	Logger Logger

	// RetryMax is the number of retries after the first attempt.
	RetryMax int

	// RetryWaitMin and RetryWaitMax bound the backoff between retries.
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	// Timeout bounds each request including retries.
	Timeout time.Duration

	// Cache enables response caching for unauthenticated GETs.
	Cache *CacheConfig

	// Interceptors run before and after every request.
	Interceptors *InterceptorChain
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c == nil {
		return ErrConfigRequired
	}

	if c.APIEndpoint == "" {
		return ErrAPIEndpointRequired
	}

	return validation.ValidateStruct(c,
		validation.Field(&c.RetryMax, validation.Min(0)),
		validation.Field(&c.RetryWaitMin, validation.Min(time.Duration(0))),
		validation.Field(&c.RetryWaitMax, validation.Min(time.Duration(0))),
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
	)
}

// ResourceClient is the CRUD surface shared by resource clients.
type ResourceClient[T, L, C, U any] interface {
	List(ctx context.Context, params QueryParams) (*L, error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, request *C) (*T, error)
	Update(ctx context.Context, id string, request *U) (*T, error)
	Delete(ctx context.Context, id string) error
}

// ProductsClient manages catalog products.
type ProductsClient interface {
	ResourceClient[Product, ProductList, ProductCreateRequest, ProductUpdateRequest]
}

// BrandsClient manages brands.
type BrandsClient interface {
	ResourceClient[Brand, BrandList, BrandCreateRequest, BrandUpdateRequest]
}

// CategoriesClient manages product categories.
type CategoriesClient interface {
	ResourceClient[Category, CategoryList, CategoryCreateRequest, CategoryUpdateRequest]
}

// ServicesClient manages bookable services.
type ServicesClient interface {
	ResourceClient[Service, ServiceList, ServiceCreateRequest, ServiceUpdateRequest]
}

// CoursesClient manages courses.
type CoursesClient interface {
	ResourceClient[Course, CourseList, CourseCreateRequest, CourseUpdateRequest]
}

// BookingsClient manages bookings of services and courses.
type BookingsClient interface {
	ResourceClient[Booking, BookingList, BookingCreateRequest, BookingUpdateRequest]
	Cancel(ctx context.Context, id string) (*Booking, error)
}

// AuthClient logs in and out.
type AuthClient interface {
	Login(ctx context.Context, request *LoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*User, error)
}
