// Package patterncache keeps compiled regular expressions in a bounded,
// thread-safe LRU so that repeated evaluations of the same rule set do not
// recompile their pattern on every call.
//
// Compilation failures are cached as well: a malformed pattern is reported
// with the same error every time it is requested.
package patterncache

import (
	"container/list"
	"regexp"
	"sync"
)

type entry struct {
	source string
	re     *regexp.Regexp
	err    error
}

// Cache is an LRU of compiled patterns keyed by their source expression.
type Cache struct {
	capacity int
	items    map[string]*list.Element
	order    *list.List
	mu       sync.Mutex
}

// New creates a cache holding at most capacity compiled patterns.
// The capacity must be positive, otherwise it panics.
func New(capacity int) *Cache {
	if capacity <= 0 {
		panic("patterncache: capacity must be positive")
	}
	return &Cache{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		order:    list.New(),
	}
}

// Compile returns the compiled form of source, compiling it on a miss.
// The least recently used pattern is evicted once the cache is full.
func (c *Cache) Compile(source string) (*regexp.Regexp, error) {
	c.mu.Lock()
	if elem, ok := c.items[source]; ok {
		c.order.MoveToFront(elem)
		e := elem.Value.(*entry)
		c.mu.Unlock()
		return e.re, e.err
	}
	c.mu.Unlock()

	// Compile outside the lock; a concurrent miss on the same source
	// compiles twice and the second Put wins, which is harmless.
	re, err := regexp.Compile(source)

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[source]; ok {
		c.order.MoveToFront(elem)
		e := elem.Value.(*entry)
		return e.re, e.err
	}

	c.items[source] = c.order.PushFront(&entry{source: source, re: re, err: err})
	if c.order.Len() > c.capacity {
		c.evictOldest()
	}

	return re, err
}

// Contains reports whether source is cached without touching its recency.
func (c *Cache) Contains(source string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[source]
	return ok
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Purge drops every cached pattern.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*list.Element)
	c.order.Init()
}

// Must be called with lock held.
func (c *Cache) evictOldest() {
	elem := c.order.Back()
	if elem == nil {
		return
	}
	c.order.Remove(elem)
	delete(c.items, elem.Value.(*entry).source)
}
