package storefront

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"
)

// QueryParams maps query keys to primitive values. Values are stringified
// when the request is built; see Values for the accepted types.
type QueryParams map[string]any

// NewQueryParams creates an empty parameter set.
func NewQueryParams() QueryParams {
	return QueryParams{}
}

// WithPage sets the 1-based page number.
func (q QueryParams) WithPage(page int) QueryParams {
	q["page"] = page

	return q
}

// WithLimit sets the page size.
func (q QueryParams) WithLimit(limit int) QueryParams {
	q["limit"] = limit

	return q
}

// WithSort sets the sort expression, e.g. "-createdAt".
func (q QueryParams) WithSort(sort string) QueryParams {
	q["sort"] = sort

	return q
}

// WithSearch sets the free text search term.
func (q QueryParams) WithSearch(term string) QueryParams {
	q["search"] = term

	return q
}

// WithFilter sets an arbitrary filter key.
func (q QueryParams) WithFilter(key string, value any) QueryParams {
	q[key] = value

	return q
}

// Clone returns a shallow copy.
func (q QueryParams) Clone() QueryParams {
	if q == nil {
		return nil
	}

	clone := make(QueryParams, len(q))
	for key, value := range q {
		clone[key] = value
	}

	return clone
}

// Values stringifies every parameter. Accepted values are strings, booleans,
// every integer, unsigned and float kind, time.Time (RFC 3339), fmt.Stringer,
// and slices of those (joined with ","). A nil value omits the key.
func (q QueryParams) Values() (url.Values, error) {
	values := url.Values{}

	for key, value := range q {
		if isNilValue(value) {
			continue
		}

		str, err := stringifyQueryValue(value)
		if err != nil {
			return nil, fmt.Errorf("query parameter %q: %w", key, err)
		}

		values.Set(key, str)
	}

	return values, nil
}

// Encode returns the canonical query string with keys sorted, or "" when
// there are no parameters.
func (q QueryParams) Encode() (string, error) {
	values, err := q.Values()
	if err != nil {
		return "", err
	}

	return values.Encode(), nil
}

// Keys returns the parameter keys in sorted order.
func (q QueryParams) Keys() []string {
	keys := make([]string, 0, len(q))
	for key := range q {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

func isNilValue(value any) bool {
	if value == nil {
		return true
	}

	reflected := reflect.ValueOf(value)

	return reflected.Kind() == reflect.Pointer && reflected.IsNil()
}

func stringifyQueryValue(value any) (string, error) {
	switch typed := value.(type) {
	case string:
		return typed, nil
	case bool:
		return strconv.FormatBool(typed), nil
	case time.Time:
		return typed.UTC().Format(time.RFC3339), nil
	case *time.Time:
		if typed == nil {
			return "", nil
		}

		return typed.UTC().Format(time.RFC3339), nil
	case fmt.Stringer:
		return typed.String(), nil
	}

	reflected := reflect.ValueOf(value)

	switch reflected.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(reflected.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(reflected.Uint(), 10), nil
	case reflect.Float32:
		return strconv.FormatFloat(reflected.Float(), 'f', -1, 32), nil
	case reflect.Float64:
		return strconv.FormatFloat(reflected.Float(), 'f', -1, 64), nil
	case reflect.String:
		return reflected.String(), nil
	case reflect.Bool:
		return strconv.FormatBool(reflected.Bool()), nil
	case reflect.Slice, reflect.Array:
		parts := make([]string, 0, reflected.Len())

		for i := range reflected.Len() {
			part, err := stringifyQueryValue(reflected.Index(i).Interface())
			if err != nil {
				return "", err
			}

			parts = append(parts, part)
		}

		return strings.Join(parts, ","), nil
	case reflect.Pointer:
		if reflected.IsNil() {
			return "", nil
		}

		return stringifyQueryValue(reflected.Elem().Interface())
	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupportedQueryValue, value)
	}
}
