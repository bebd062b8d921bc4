package lrucache

import (
	"sync"
)

type cacheEntry[K comparable, V any] struct {
	key   K
	value V
	prev  *cacheEntry[K, V]
	next  *cacheEntry[K, V]
}

// LRU is a fixed size cache evicting the least recently used entry. It is
// safe for concurrent use.
type LRU[K comparable, V any] struct {
	entries map[K]*cacheEntry[K, V]
	head    *cacheEntry[K, V]
	tail    *cacheEntry[K, V]
	maxSize int
	mu      sync.Mutex
}

// New returns a cache holding at most maxSize entries. A size below one
// disables caching: Put stores nothing.
func New[K comparable, V any](maxSize int) *LRU[K, V] {
	return &LRU[K, V]{
		entries: make(map[K]*cacheEntry[K, V]),
		maxSize: maxSize,
	}
}

// Get returns the cached value and marks it most recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.moveToFront(entry)

	return entry.value, true
}

func (c *LRU[K, V]) Put(key K, value V) {
	if c.maxSize < 1 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[key]; ok {
		entry.value = value
		c.moveToFront(entry)
		return
	}

	entry := &cacheEntry[K, V]{
		key:   key,
		value: value,
	}
	c.entries[key] = entry
	c.addToFront(entry)

	if len(c.entries) > c.maxSize {
		c.evictLRU()
	}
}

func (c *LRU[K, V]) Remove(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return
	}
	c.unlink(entry)
	delete(c.entries, key)
}

// Purge drops every entry.
func (c *LRU[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]*cacheEntry[K, V])
	c.head, c.tail = nil, nil
}

func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

func (c *LRU[K, V]) moveToFront(entry *cacheEntry[K, V]) {
	if entry == c.head {
		return
	}
	c.unlink(entry)
	c.addToFront(entry)
}

func (c *LRU[K, V]) unlink(entry *cacheEntry[K, V]) {
	if entry.prev != nil {
		entry.prev.next = entry.next
	} else {
		c.head = entry.next
	}
	if entry.next != nil {
		entry.next.prev = entry.prev
	} else {
		c.tail = entry.prev
	}
	entry.prev, entry.next = nil, nil
}

func (c *LRU[K, V]) addToFront(entry *cacheEntry[K, V]) {
	entry.next = c.head
	entry.prev = nil

	if c.head != nil {
		c.head.prev = entry
	}
	c.head = entry

	if c.tail == nil {
		c.tail = entry
	}
}

func (c *LRU[K, V]) evictLRU() {
	if c.tail == nil {
		return
	}
	oldTail := c.tail
	c.unlink(oldTail)
	delete(c.entries, oldTail.key)
}
