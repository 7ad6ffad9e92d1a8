package storefront

import (
	"time"
)

// Resource holds the fields every backend document carries.
type Resource struct {
	ID        string    `json:"id"                  yaml:"id"`
	CreatedAt time.Time `json:"createdAt,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty" yaml:"updated_at,omitempty"`
}

// Pagination describes one page of a collection.
type Pagination struct {
	Page       int  `json:"page"              yaml:"page"`
	Limit      int  `json:"limit"             yaml:"limit"`
	Total      int  `json:"total"             yaml:"total"`
	TotalPages int  `json:"totalPages"        yaml:"total_pages"`
	HasNext    bool `json:"hasNext,omitempty" yaml:"has_next,omitempty"`
	HasPrev    bool `json:"hasPrev,omitempty" yaml:"has_prev,omitempty"`
}

// Next reports whether a page follows this one.
func (p Pagination) Next() bool {
	if p.HasNext {
		return true
	}

	return p.TotalPages > 0 && p.Page < p.TotalPages
}

// Page is implemented by every list payload so pages can be walked
// generically.
type Page[T any] interface {
	Items() []T
	PageInfo() Pagination
}

// Product is a catalog item.
type Product struct {
	Resource `yaml:",inline"`

	Name          string   `json:"name"                    yaml:"name"`
	Slug          string   `json:"slug"                    yaml:"slug"`
	Description   string   `json:"description,omitempty"   yaml:"description,omitempty"`
	Price         float64  `json:"price"                   yaml:"price"`
	DiscountPrice *float64 `json:"discountPrice,omitempty" yaml:"discount_price,omitempty"`
	Currency      string   `json:"currency,omitempty"      yaml:"currency,omitempty"`
	Stock         int      `json:"stock"                   yaml:"stock"`
	Brand         string   `json:"brand,omitempty"         yaml:"brand,omitempty"`
	Category      string   `json:"category,omitempty"      yaml:"category,omitempty"`
	Images        []string `json:"images,omitempty"        yaml:"images,omitempty"`
	Tags          []string `json:"tags,omitempty"          yaml:"tags,omitempty"`
	IsActive      bool     `json:"isActive"                yaml:"is_active"`
}

// ProductList is the payload of GET /products.
type ProductList struct {
	Products   []Product  `json:"products"   yaml:"products"`
	Pagination Pagination `json:"pagination" yaml:"pagination"`
}

// Items implements Page.
func (l ProductList) Items() []Product { return l.Products }

// PageInfo implements Page.
func (l ProductList) PageInfo() Pagination { return l.Pagination }

// ProductCreateRequest is the body of POST /products.
type ProductCreateRequest struct {
	Name          string   `json:"name"`
	Slug          string   `json:"slug,omitempty"`
	Description   string   `json:"description,omitempty"`
	Price         float64  `json:"price"`
	DiscountPrice *float64 `json:"discountPrice,omitempty"`
	Currency      string   `json:"currency,omitempty"`
	Stock         int      `json:"stock"`
	Brand         string   `json:"brand,omitempty"`
	Category      string   `json:"category,omitempty"`
	Images        []string `json:"images,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	IsActive      *bool    `json:"isActive,omitempty"`
}

// ProductUpdateRequest is the body of PATCH /products/{id}.
type ProductUpdateRequest struct {
	Name          *string  `json:"name,omitempty"`
	Slug          *string  `json:"slug,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	DiscountPrice *float64 `json:"discountPrice,omitempty"`
	Currency      *string  `json:"currency,omitempty"`
	Stock         *int     `json:"stock,omitempty"`
	Brand         *string  `json:"brand,omitempty"`
	Category      *string  `json:"category,omitempty"`
	Images        []string `json:"images,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	IsActive      *bool    `json:"isActive,omitempty"`
}

// Brand is one of the storefront's brands.
type Brand struct {
	Resource `yaml:",inline"`

	Name        string `json:"name"                  yaml:"name"`
	Slug        string `json:"slug"                  yaml:"slug"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Logo        string `json:"logo,omitempty"        yaml:"logo,omitempty"`
	Website     string `json:"website,omitempty"     yaml:"website,omitempty"`
	IsActive    bool   `json:"isActive"              yaml:"is_active"`
}

// BrandList is the payload of GET /brands.
type BrandList struct {
	Brands     []Brand    `json:"brands"     yaml:"brands"`
	Pagination Pagination `json:"pagination" yaml:"pagination"`
}

// Items implements Page.
func (l BrandList) Items() []Brand { return l.Brands }

// PageInfo implements Page.
func (l BrandList) PageInfo() Pagination { return l.Pagination }

// BrandCreateRequest is the body of POST /brands.
type BrandCreateRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
	Logo        string `json:"logo,omitempty"`
	Website     string `json:"website,omitempty"`
	IsActive    *bool  `json:"isActive,omitempty"`
}

// BrandUpdateRequest is the body of PATCH /brands/{id}.
type BrandUpdateRequest struct {
	Name        *string `json:"name,omitempty"`
	Slug        *string `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
	Logo        *string `json:"logo,omitempty"`
	Website     *string `json:"website,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// Category groups products.
type Category struct {
	Resource `yaml:",inline"`

	Name   string  `json:"name"             yaml:"name"`
	Slug   string  `json:"slug"             yaml:"slug"`
	Parent *string `json:"parent,omitempty" yaml:"parent,omitempty"`
}

// CategoryList is the payload of GET /categories.
type CategoryList struct {
	Categories []Category `json:"categories" yaml:"categories"`
	Pagination Pagination `json:"pagination" yaml:"pagination"`
}

// Items implements Page.
func (l CategoryList) Items() []Category { return l.Categories }

// PageInfo implements Page.
func (l CategoryList) PageInfo() Pagination { return l.Pagination }

// CategoryCreateRequest is the body of POST /categories.
type CategoryCreateRequest struct {
	Name   string  `json:"name"`
	Slug   string  `json:"slug,omitempty"`
	Parent *string `json:"parent,omitempty"`
}

// CategoryUpdateRequest is the body of PATCH /categories/{id}.
type CategoryUpdateRequest struct {
	Name   *string `json:"name,omitempty"`
	Slug   *string `json:"slug,omitempty"`
	Parent *string `json:"parent,omitempty"`
}

// Service is a bookable appointment offered by a brand.
type Service struct {
	Resource `yaml:",inline"`

	Name            string  `json:"name"                  yaml:"name"`
	Slug            string  `json:"slug"                  yaml:"slug"`
	Brand           string  `json:"brand,omitempty"       yaml:"brand,omitempty"`
	Description     string  `json:"description,omitempty" yaml:"description,omitempty"`
	Price           float64 `json:"price"                 yaml:"price"`
	Currency        string  `json:"currency,omitempty"    yaml:"currency,omitempty"`
	DurationMinutes int     `json:"durationMinutes"       yaml:"duration_minutes"`
	IsActive        bool    `json:"isActive"              yaml:"is_active"`
}

// ServiceList is the payload of GET /services.
type ServiceList struct {
	Services   []Service  `json:"services"   yaml:"services"`
	Pagination Pagination `json:"pagination" yaml:"pagination"`
}

// Items implements Page.
func (l ServiceList) Items() []Service { return l.Services }

// PageInfo implements Page.
func (l ServiceList) PageInfo() Pagination { return l.Pagination }

// ServiceCreateRequest is the body of POST /services.
type ServiceCreateRequest struct {
	Name            string  `json:"name"`
	Slug            string  `json:"slug,omitempty"`
	Brand           string  `json:"brand,omitempty"`
	Description     string  `json:"description,omitempty"`
	Price           float64 `json:"price"`
	Currency        string  `json:"currency,omitempty"`
	DurationMinutes int     `json:"durationMinutes"`
	IsActive        *bool   `json:"isActive,omitempty"`
}

// ServiceUpdateRequest is the body of PATCH /services/{id}.
type ServiceUpdateRequest struct {
	Name            *string  `json:"name,omitempty"`
	Slug            *string  `json:"slug,omitempty"`
	Brand           *string  `json:"brand,omitempty"`
	Description     *string  `json:"description,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	Currency        *string  `json:"currency,omitempty"`
	DurationMinutes *int     `json:"durationMinutes,omitempty"`
	IsActive        *bool    `json:"isActive,omitempty"`
}

// Course is a scheduled course with a limited number of seats.
type Course struct {
	Resource `yaml:",inline"`

	Title          string     `json:"title"                 yaml:"title"`
	Slug           string     `json:"slug"                  yaml:"slug"`
	Brand          string     `json:"brand,omitempty"       yaml:"brand,omitempty"`
	Description    string     `json:"description,omitempty" yaml:"description,omitempty"`
	Price          float64    `json:"price"                 yaml:"price"`
	Currency       string     `json:"currency,omitempty"    yaml:"currency,omitempty"`
	StartDate      *time.Time `json:"startDate,omitempty"   yaml:"start_date,omitempty"`
	EndDate        *time.Time `json:"endDate,omitempty"     yaml:"end_date,omitempty"`
	Seats          int        `json:"seats"                 yaml:"seats"`
	SeatsAvailable int        `json:"seatsAvailable"        yaml:"seats_available"`
	IsActive       bool       `json:"isActive"              yaml:"is_active"`
}

// CourseList is the payload of GET /courses.
type CourseList struct {
	Courses    []Course   `json:"courses"    yaml:"courses"`
	Pagination Pagination `json:"pagination" yaml:"pagination"`
}

// Items implements Page.
func (l CourseList) Items() []Course { return l.Courses }

// PageInfo implements Page.
func (l CourseList) PageInfo() Pagination { return l.Pagination }

// CourseCreateRequest is the body of POST /courses.
type CourseCreateRequest struct {
	Title       string     `json:"title"`
	Slug        string     `json:"slug,omitempty"`
	Brand       string     `json:"brand,omitempty"`
	Description string     `json:"description,omitempty"`
	Price       float64    `json:"price"`
	Currency    string     `json:"currency,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Seats       int        `json:"seats"`
	IsActive    *bool      `json:"isActive,omitempty"`
}

// CourseUpdateRequest is the body of PATCH /courses/{id}.
type CourseUpdateRequest struct {
	Title       *string    `json:"title,omitempty"`
	Slug        *string    `json:"slug,omitempty"`
	Brand       *string    `json:"brand,omitempty"`
	Description *string    `json:"description,omitempty"`
	Price       *float64   `json:"price,omitempty"`
	Currency    *string    `json:"currency,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Seats       *int       `json:"seats,omitempty"`
	IsActive    *bool      `json:"isActive,omitempty"`
}

// BookingKind says what a booking reserves.
type BookingKind string

const (
	BookingKindService BookingKind = "service"
	BookingKindCourse  BookingKind = "course"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// Booking reserves a service slot or a course seat for a user.
type Booking struct {
	Resource `yaml:",inline"`

	Kind        BookingKind   `json:"kind"                  yaml:"kind"`
	Service     string        `json:"service,omitempty"     yaml:"service,omitempty"`
	Course      string        `json:"course,omitempty"      yaml:"course,omitempty"`
	User        string        `json:"user,omitempty"        yaml:"user,omitempty"`
	ScheduledAt *time.Time    `json:"scheduledAt,omitempty" yaml:"scheduled_at,omitempty"`
	Status      BookingStatus `json:"status"                yaml:"status"`
	Notes       string        `json:"notes,omitempty"       yaml:"notes,omitempty"`
}

// BookingList is the payload of GET /bookings.
type BookingList struct {
	Bookings   []Booking  `json:"bookings"   yaml:"bookings"`
	Pagination Pagination `json:"pagination" yaml:"pagination"`
}

// Items implements Page.
func (l BookingList) Items() []Booking { return l.Bookings }

// PageInfo implements Page.
func (l BookingList) PageInfo() Pagination { return l.Pagination }

// BookingCreateRequest is the body of POST /bookings.
type BookingCreateRequest struct {
	Kind        BookingKind `json:"kind"`
	Service     string      `json:"service,omitempty"`
	Course      string      `json:"course,omitempty"`
	ScheduledAt *time.Time  `json:"scheduledAt,omitempty"`
	Notes       string      `json:"notes,omitempty"`
}

// BookingUpdateRequest is the body of PATCH /bookings/{id}.
type BookingUpdateRequest struct {
	ScheduledAt *time.Time     `json:"scheduledAt,omitempty"`
	Status      *BookingStatus `json:"status,omitempty"`
	Notes       *string        `json:"notes,omitempty"`
}

// User is an authenticated account.
type User struct {
	Resource `yaml:",inline"`

	Name  string `json:"name"  yaml:"name"`
	Email string `json:"email" yaml:"email"`
	Role  string `json:"role"  yaml:"role"`
}

// IsAdmin reports whether the user may use the admin endpoints.
func (u User) IsAdmin() bool {
	return u.Role == "admin"
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the payload of POST /auth/login.
type LoginResponse struct {
	Token string `json:"token" yaml:"token"`
	User  User   `json:"user"  yaml:"user"`
}
