package client

import "sync"

// Cache holds one view's copy of an entity list, keyed by id and kept in the
// order the server returned it.
type Cache[T any] struct {
	mu     sync.RWMutex
	key    func(T) string
	ids    []string
	items  map[string]T
	loaded bool
}

func NewCache[T any](key func(T) string) *Cache[T] {
	return &Cache[T]{key: key, items: map[string]T{}}
}

// Replace swaps in a freshly fetched list.
func (c *Cache[T]) Replace(list []T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ids = make([]string, 0, len(list))
	c.items = make(map[string]T, len(list))
	for _, v := range list {
		id := c.key(v)
		c.ids = append(c.ids, id)
		c.items[id] = v
	}
	c.loaded = true
}

// Reset drops everything; the next reader has to refetch.
func (c *Cache[T]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ids = nil
	c.items = map[string]T{}
	c.loaded = false
}

func (c *Cache[T]) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

func (c *Cache[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, c.items[id])
	}
	return out
}

func (c *Cache[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.items[id]
	return v, ok
}

// Put replaces v in place, or appends it when the id is new.
func (c *Cache[T]) Put(v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.key(v)
	if _, ok := c.items[id]; !ok {
		c.ids = append(c.ids, id)
	}
	c.items[id] = v
}

func (c *Cache[T]) Prepend(v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.key(v)
	if _, ok := c.items[id]; ok {
		c.items[id] = v
		return
	}
	c.ids = append([]string{id}, c.ids...)
	c.items[id] = v
}

// Update edits the entry for id in place and reports whether it existed.
func (c *Cache[T]) Update(id string, fn func(*T)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.items[id]
	if !ok {
		return false
	}
	fn(&v)
	c.items[id] = v
	return true
}

func (c *Cache[T]) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[id]; !ok {
		return false
	}
	delete(c.items, id)
	for i, existing := range c.ids {
		if existing == id {
			c.ids = append(c.ids[:i], c.ids[i+1:]...)
			break
		}
	}
	return true
}
