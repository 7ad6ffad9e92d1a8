package storefront

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fivetwenty-io/storefront/internal/constants"
)

// CacheType selects a cache backend.
type CacheType string

const (
	// CacheTypeMemory keeps responses in process.
	CacheTypeMemory CacheType = "memory"

	// CacheTypeNATS keeps responses in a JetStream key-value bucket shared by
	// every client pointing at it.
	CacheTypeNATS CacheType = "nats"

	// CacheTypeNone disables caching.
	CacheTypeNone CacheType = "none"
)

var (
	ErrNATSConfigRequired    = errors.New("NATS configuration required for NATS cache")
	ErrUnsupportedCacheType  = errors.New("unsupported cache type")
	ErrKeyNotFoundInAnyCache = errors.New("key not found in any cache")
)

// CacheConfig selects and configures the response cache.
//
// For CacheTypeNATS, a non-nil Memory puts a process-local cache of that
// size in front of the bucket.
type CacheConfig struct {
	Type    CacheType
	Memory  *MemoryCacheConfig
	NATS    *NATSKVConfig
	Options *CacheOptions
}

// CacheOptionsOrDefault returns Options, or DefaultCacheOptions when unset.
func (c *CacheConfig) CacheOptionsOrDefault() *CacheOptions {
	if c == nil || c.Options == nil {
		return DefaultCacheOptions()
	}

	return c.Options
}

// MemoryCacheConfig sizes a MemoryCache.
type MemoryCacheConfig struct {
	MaxSize int
}

// DefaultCacheConfig is an in-process cache with the default size and TTL.
func DefaultCacheConfig() *CacheConfig {
	return &CacheConfig{
		Type:    CacheTypeMemory,
		Memory:  &MemoryCacheConfig{MaxSize: constants.DefaultCacheSize},
		Options: DefaultCacheOptions(),
	}
}

// NewCacheFromConfig builds the cache config describes. A nil config yields
// DefaultCacheConfig; CacheTypeNone yields a nil Cache, which transports
// treat as caching disabled.
func NewCacheFromConfig(ctx context.Context, config *CacheConfig) (Cache, error) {
	if config == nil {
		config = DefaultCacheConfig()
	}

	switch config.Type {
	case CacheTypeMemory:
		return NewMemoryCacheFromConfig(config.Memory), nil
	case CacheTypeNATS:
		if config.NATS == nil {
			return nil, ErrNATSConfigRequired
		}

		shared, err := NewNATSKVCache(ctx, config.NATS)
		if err != nil {
			return nil, err
		}

		if config.Memory == nil {
			return shared, nil
		}

		return NewCacheChain(NewMemoryCacheFromConfig(config.Memory), shared), nil
	case CacheTypeNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCacheType, config.Type)
	}
}

// NewMemoryCacheFromConfig creates a MemoryCache; nil uses the default size.
func NewMemoryCacheFromConfig(config *MemoryCacheConfig) *MemoryCache {
	if config == nil {
		return NewMemoryCache(constants.DefaultCacheSize)
	}

	return NewMemoryCache(config.MaxSize)
}

// CacheBuilder assembles a CacheConfig.
type CacheBuilder struct {
	config *CacheConfig
}

// NewCacheBuilder starts from a memory cache with default options.
func NewCacheBuilder() *CacheBuilder {
	return &CacheBuilder{
		config: &CacheConfig{Type: CacheTypeMemory, Options: DefaultCacheOptions()},
	}
}

// WithType sets the backend.
func (b *CacheBuilder) WithType(cacheType CacheType) *CacheBuilder {
	b.config.Type = cacheType

	return b
}

// WithMemoryConfig sizes the memory cache, or the local layer of a NATS cache.
func (b *CacheBuilder) WithMemoryConfig(maxSize int) *CacheBuilder {
	b.config.Memory = &MemoryCacheConfig{MaxSize: maxSize}

	return b
}

// WithNATSConfig sets the bucket connection.
func (b *CacheBuilder) WithNATSConfig(config *NATSKVConfig) *CacheBuilder {
	b.config.NATS = config

	return b
}

// WithOptions sets TTL and path filtering.
func (b *CacheBuilder) WithOptions(options *CacheOptions) *CacheBuilder {
	b.config.Options = options

	return b
}

// Config returns the configuration built so far.
func (b *CacheBuilder) Config() *CacheConfig {
	return b.config
}

// Build creates the cache.
func (b *CacheBuilder) Build(ctx context.Context) (Cache, error) {
	return NewCacheFromConfig(ctx, b.config)
}

// CacheChain layers caches, fastest first. Reads return the first hit and
// copy it into the layers in front; writes and deletes go to every layer.
type CacheChain struct {
	caches []Cache
}

// NewCacheChain layers caches in the given order.
func NewCacheChain(caches ...Cache) *CacheChain {
	return &CacheChain{caches: caches}
}

// Get returns the entry from the first layer holding it.
func (c *CacheChain) Get(ctx context.Context, key string) (*CacheEntry, error) {
	for i, cache := range c.caches {
		entry, err := cache.Get(ctx, key)
		if err != nil {
			continue
		}

		for _, front := range c.caches[:i] {
			_ = front.Set(ctx, key, entry)
		}

		return entry, nil
	}

	return nil, ErrKeyNotFoundInAnyCache
}

// Set stores entry in every layer.
func (c *CacheChain) Set(ctx context.Context, key string, entry *CacheEntry) error {
	return c.each(func(cache Cache) error {
		return cache.Set(ctx, key, entry)
	})
}

// Delete removes key from every layer.
func (c *CacheChain) Delete(ctx context.Context, key string) error {
	return c.each(func(cache Cache) error {
		return cache.Delete(ctx, key)
	})
}

// Clear empties every layer.
func (c *CacheChain) Clear(ctx context.Context) error {
	return c.each(func(cache Cache) error {
		return cache.Clear(ctx)
	})
}

// DeletePrefix drops matching keys from layers that support it and clears
// the rest.
func (c *CacheChain) DeletePrefix(ctx context.Context, prefix string) error {
	return c.each(func(cache Cache) error {
		if scoped, ok := cache.(ScopedCache); ok {
			return scoped.DeletePrefix(ctx, prefix)
		}

		return cache.Clear(ctx)
	})
}

// Has reports whether any layer holds key.
func (c *CacheChain) Has(ctx context.Context, key string) bool {
	for _, cache := range c.caches {
		if cache.Has(ctx, key) {
			return true
		}
	}

	return false
}

// Close closes every layer that holds a connection.
func (c *CacheChain) Close() error {
	return c.each(func(cache Cache) error {
		if closer, ok := cache.(io.Closer); ok {
			return closer.Close()
		}

		return nil
	})
}

func (c *CacheChain) each(fn func(Cache) error) error {
	var errs []error

	for _, cache := range c.caches {
		err := fn(cache)
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
