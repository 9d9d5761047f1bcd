package cache

import (
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

var ErrInvalidSize = errors.New("cache size must be positive")

// Bounded is a fixed-capacity map which evicts the least recently added or updated entry when full.
// It is safe for concurrent use.
type Bounded[K comparable, V any] struct {
	name  string
	size  int
	cache *lru.Cache[K, V]
}

func NewBounded[K comparable, V any](name string, size int) (*Bounded[K, V], error) {
	if size <= 0 {
		return nil, errors.Join(ErrInvalidSize, fmt.Errorf("%s cache: %d", name, size))
	}

	c, err := lru.New[K, V](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s cache: %w", name, err)
	}

	return &Bounded[K, V]{name: name, size: size, cache: c}, nil
}

// Set inserts or replaces the value for key and marks it most recently used.
func (b *Bounded[K, V]) Set(key K, value V) {
	b.cache.Add(key, value)
}

// Get returns the value for key without changing its position in the eviction order.
func (b *Bounded[K, V]) Get(key K) (V, bool) {
	return b.cache.Peek(key)
}

func (b *Bounded[K, V]) Remove(key K) bool {
	return b.cache.Remove(key)
}

func (b *Bounded[K, V]) Contains(key K) bool {
	return b.cache.Contains(key)
}

func (b *Bounded[K, V]) Len() int {
	return b.cache.Len()
}

// Keys returns the keys from the first to be evicted to the last to be evicted.
func (b *Bounded[K, V]) Keys() []K {
	return b.cache.Keys()
}

func (b *Bounded[K, V]) Purge() {
	b.cache.Purge()
}

func (b *Bounded[K, V]) Name() string {
	return b.name
}

func (b *Bounded[K, V]) Size() int {
	return b.size
}
